package client_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"nextalk-server/client"
)

type fakePlatform struct {
	supported  bool
	permission client.PermissionState

	promptResult client.PermissionState
	promptErr    error
	promptCalls  int

	displayed []client.LocalNotification
}

func (p *fakePlatform) Supported() bool                    { return p.supported }
func (p *fakePlatform) Permission() client.PermissionState { return p.permission }

func (p *fakePlatform) RequestPermission(ctx context.Context) (client.PermissionState, error) {
	p.promptCalls++
	return p.promptResult, p.promptErr
}

func (p *fakePlatform) Display(n client.LocalNotification) error {
	p.displayed = append(p.displayed, n)
	return nil
}

type fakeTokenSource struct {
	token string
	err   error
}

func (s *fakeTokenSource) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

type fakeRegistrarAPI struct {
	tokens []string
	err    error
}

func (a *fakeRegistrarAPI) AddToken(ctx context.Context, token string) error {
	a.tokens = append(a.tokens, token)
	return a.err
}

func TestRegistrarNeverRepromptsDecidedUsers(t *testing.T) {
	for _, state := range []client.PermissionState{client.PermissionGranted, client.PermissionDenied} {
		t.Run(string(state), func(t *testing.T) {
			platform := &fakePlatform{supported: true, permission: state}
			registrar := client.NewRegistrar(platform, &fakeTokenSource{token: "tok"}, &fakeRegistrarAPI{})

			result := registrar.Register(context.Background())

			assert.Equal(t, state, result.Permission)
			assert.Equal(t, 0, platform.promptCalls)
		})
	}
}

func TestRegistrarPromptsOnlyWhenUndecided(t *testing.T) {
	platform := &fakePlatform{supported: true, permission: client.PermissionDefault, promptResult: client.PermissionGranted}
	api := &fakeRegistrarAPI{}
	registrar := client.NewRegistrar(platform, &fakeTokenSource{token: "fcm-token"}, api)

	result := registrar.Register(context.Background())

	assert.Equal(t, 1, platform.promptCalls)
	assert.Equal(t, client.PermissionGranted, result.Permission)
	assert.Equal(t, []string{"fcm-token"}, api.tokens)
	assert.Empty(t, result.Warnings)
}

func TestRegistrarUnsupportedPlatform(t *testing.T) {
	platform := &fakePlatform{supported: false}
	api := &fakeRegistrarAPI{}
	registrar := client.NewRegistrar(platform, &fakeTokenSource{token: "tok"}, api)

	result := registrar.Register(context.Background())

	assert.Equal(t, client.PermissionDenied, result.Permission)
	assert.Equal(t, 0, platform.promptCalls)
	assert.Empty(t, api.tokens)
}

func TestRegistrarDeniedSkipsTokenRegistration(t *testing.T) {
	platform := &fakePlatform{supported: true, permission: client.PermissionDenied}
	api := &fakeRegistrarAPI{}
	registrar := client.NewRegistrar(platform, &fakeTokenSource{token: "tok"}, api)

	result := registrar.Register(context.Background())

	assert.Empty(t, api.tokens, "denied permission must never reach the token endpoint")
	assert.Len(t, result.Warnings, 1)
	assert.Empty(t, platform.displayed)
}

func TestRegistrarDismissedPromptIsSilent(t *testing.T) {
	platform := &fakePlatform{supported: true, permission: client.PermissionDefault, promptResult: client.PermissionDefault}
	api := &fakeRegistrarAPI{}
	registrar := client.NewRegistrar(platform, &fakeTokenSource{token: "tok"}, api)

	result := registrar.Register(context.Background())

	assert.Equal(t, client.PermissionDefault, result.Permission)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, api.tokens)
}

func TestRegistrarGrantedFailuresAreNonFatal(t *testing.T) {
	t.Run("token mint fails", func(t *testing.T) {
		platform := &fakePlatform{supported: true, permission: client.PermissionGranted}
		api := &fakeRegistrarAPI{}
		registrar := client.NewRegistrar(platform, &fakeTokenSource{err: errors.New("provider unreachable")}, api)

		result := registrar.Register(context.Background())

		assert.Equal(t, client.PermissionGranted, result.Permission)
		assert.Len(t, result.Warnings, 1)
		assert.Empty(t, api.tokens)
		// The welcome notification is UX feedback, independent of the
		// registration outcome.
		assert.Len(t, platform.displayed, 1)
	})

	t.Run("token submission fails", func(t *testing.T) {
		platform := &fakePlatform{supported: true, permission: client.PermissionGranted}
		api := &fakeRegistrarAPI{err: errors.New("backend down")}
		registrar := client.NewRegistrar(platform, &fakeTokenSource{token: "tok"}, api)

		result := registrar.Register(context.Background())

		assert.Equal(t, "tok", result.Token)
		assert.Len(t, result.Warnings, 1)
		assert.Len(t, platform.displayed, 1)
	})
}

func TestRegistrarWelcomeNotification(t *testing.T) {
	platform := &fakePlatform{supported: true, permission: client.PermissionGranted}
	registrar := client.NewRegistrar(platform, &fakeTokenSource{token: "tok"}, &fakeRegistrarAPI{})

	registrar.Register(context.Background())

	if assert.Len(t, platform.displayed, 1) {
		assert.Equal(t, "Welcome to NexTalk!", platform.displayed[0].Title)
	}
}
