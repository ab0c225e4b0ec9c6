package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nextalk-server/client"
)

func TestClientLoginCarriesSessionCookie(t *testing.T) {
	var meCookie string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin", body["username"])
		assert.Equal(t, "secret", body["password"])

		http.SetCookie(w, &http.Cookie{Name: "nextalk_session", Value: "abc123", Path: "/"})
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": "1", "username": "admin", "is_superuser": true},
		})
	})
	mux.HandleFunc("GET /login", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("nextalk_session")
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
			return
		}
		meCookie = cookie.Value
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{"id": "1", "username": "admin", "is_superuser": true},
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	user, err := c.Login(context.Background(), "admin", "secret")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)

	// The session cookie from login is sent back automatically.
	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "admin", me.Username)
	assert.Equal(t, "abc123", meCookie)
}

func TestClientMarkRead(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/notifications", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"message": "Notification marked as read"})
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	require.NoError(t, c.MarkRead(context.Background(), "10"))
	assert.Equal(t, map[string]string{"id": "10"}, got)
}

func TestClientBroadcastJSON(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"message": "Notification sent", "recipients": 2})
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	err = c.Broadcast(context.Background(), client.BroadcastRequest{
		UserIDs: []string{"1", "2"},
		Title:   "Hi",
		Body:    "Hello",
	})
	require.NoError(t, err)

	assert.Equal(t, []interface{}{"1", "2"}, got["userIds"])
	assert.Equal(t, "Hi", got["title"])
	assert.NotContains(t, got, "actionUrl")
}

func TestClientBroadcastMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		var ids []string
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("userIds")), &ids))
		assert.Equal(t, []string{"1"}, ids)
		assert.Equal(t, "Hi", r.FormValue("title"))
		assert.Equal(t, "https://nextalk.app/chat/7", r.FormValue("actionUrl"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "photo.png", header.Filename)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"message": "Notification sent", "recipients": 1})
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	err = c.Broadcast(context.Background(), client.BroadcastRequest{
		UserIDs:   []string{"1"},
		Title:     "Hi",
		Body:      "Hello",
		ActionURL: "https://nextalk.app/chat/7",
		Image: &client.Attachment{
			FileName:    "photo.png",
			ContentType: "image/png",
			Data:        []byte{0x89, 0x50, 0x4e, 0x47},
		},
	})
	require.NoError(t, err)
}

func TestClientSurfacesServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid username or password"})
	}))
	defer srv.Close()

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "admin", "wrong")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid username or password", apiErr.Error())
}
