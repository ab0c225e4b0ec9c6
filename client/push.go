package client

import (
	"context"
	"log"
)

type PermissionState string

const (
	PermissionGranted PermissionState = "granted"
	PermissionDenied  PermissionState = "denied"
	PermissionDefault PermissionState = "default"
)

// LocalNotification is a notification displayed directly by the platform,
// without going through the push provider.
type LocalNotification struct {
	Title string
	Body  string
	Icon  string
}

// Platform is the notification surface of the host environment. In a real
// deployment this wraps the browser Notification API.
type Platform interface {
	Supported() bool
	Permission() PermissionState
	RequestPermission(ctx context.Context) (PermissionState, error)
	Display(n LocalNotification) error
}

// TokenSource mints a delivery token from the push provider (the FCM web
// client with its VAPID key sits behind this).
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenRegistrar submits a minted token to the backend. *Client satisfies it.
type TokenRegistrar interface {
	AddToken(ctx context.Context, token string) error
}

// Registrar runs the post-login push setup. Every failure is non-fatal:
// login proceeds no matter what happens here.
type Registrar struct {
	platform Platform
	tokens   TokenSource
	api      TokenRegistrar
	logf     func(format string, args ...interface{})
}

func NewRegistrar(platform Platform, tokens TokenSource, api TokenRegistrar) *Registrar {
	return &Registrar{
		platform: platform,
		tokens:   tokens,
		api:      api,
		logf:     log.Printf,
	}
}

// RegistrationResult reports how push setup went. Warnings are surfaced to
// the user as non-blocking notices.
type RegistrationResult struct {
	Permission PermissionState
	Token      string
	Warnings   []string
}

// Register asks for notification permission, mints a delivery token, and
// submits it to the backend. A user who already decided is never prompted
// again; only the undecided ("default") state triggers the platform prompt.
func (r *Registrar) Register(ctx context.Context) RegistrationResult {
	result := RegistrationResult{Permission: r.requestPermission(ctx)}

	switch result.Permission {
	case PermissionGranted:
		token, err := r.tokens.Token(ctx)
		if err != nil {
			r.logf("failed to obtain delivery token: %v", err)
			result.Warnings = append(result.Warnings, "Failed to set up push delivery")
		} else if token != "" {
			result.Token = token
			if err := r.api.AddToken(ctx, token); err != nil {
				r.logf("failed to save delivery token: %v", err)
				result.Warnings = append(result.Warnings, "Failed to save delivery token")
			}
		}

		// UX feedback only; shown whether or not registration worked.
		if err := r.platform.Display(LocalNotification{
			Title: "Welcome to NexTalk!",
			Body:  "You will now receive notifications for new messages",
			Icon:  appIcon,
		}); err != nil {
			r.logf("failed to display welcome notification: %v", err)
		}

	case PermissionDenied:
		result.Warnings = append(result.Warnings, "Notifications are disabled. You won't receive push notifications.")

	case PermissionDefault:
		// The user dismissed the prompt without deciding.
		r.logf("notification permission dismissed")
	}

	return result
}

func (r *Registrar) requestPermission(ctx context.Context) PermissionState {
	if !r.platform.Supported() {
		return PermissionDenied
	}

	if r.platform.Permission() != PermissionDefault {
		return r.platform.Permission()
	}

	state, err := r.platform.RequestPermission(ctx)
	if err != nil {
		r.logf("failed to request notification permission: %v", err)
		return PermissionDenied
	}
	return state
}
