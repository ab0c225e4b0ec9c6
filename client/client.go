// Package client is the Go client for the NexTalk backend. It mirrors what
// the browser frontend does: cookie-session requests against the REST API,
// push registration after login, a route guard, the notification inbox, and
// the admin broadcast composer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar,omitempty"`
	IsSuperuser bool   `json:"is_superuser"`
}

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Image     string    `json:"image,omitempty"`
	ActionURL string    `json:"action_url,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type RosterUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Attachment is an image included with a broadcast.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

type BroadcastRequest struct {
	UserIDs   []string
	Title     string
	Body      string
	ActionURL string
	Image     *Attachment
}

// APIError carries the human-readable message the server surfaced; failures
// are distinguished by message only, there are no structured codes.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// Client talks to the backend with an implicit session cookie, the same way
// the browser does. Requests are single attempts with no retry and no
// timeout beyond the transport default.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Jar: jar},
	}, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	body := map[string]string{"username": username, "password": password}
	var result struct {
		User    *User  `json:"user"`
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", body, &result); err != nil {
		return nil, err
	}
	return result.User, nil
}

// Me issues the "who am I" request; it doubles as the auth check and the
// profile fetch.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var result struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/login", nil, &result); err != nil {
		return nil, err
	}
	return result.User, nil
}

// Logout ends the session. When the browser still holds a delivery token it
// is passed along so the backend stops pushing to this installation.
func (c *Client) Logout(ctx context.Context, deliveryToken string) error {
	body := map[string]string{}
	if deliveryToken != "" {
		body["token"] = deliveryToken
	}
	return c.do(ctx, http.MethodPost, "/logout", body, nil)
}

func (c *Client) AddToken(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/addToken", map[string]string{"token": token}, nil)
}

func (c *Client) Users(ctx context.Context) ([]RosterUser, error) {
	var result struct {
		Users []RosterUser `json:"users"`
	}
	if err := c.do(ctx, http.MethodGet, "/getUsers", nil, &result); err != nil {
		return nil, err
	}
	return result.Users, nil
}

func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var result struct {
		Notifications []Notification `json:"notifications"`
	}
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &result); err != nil {
		return nil, err
	}
	return result.Notifications, nil
}

func (c *Client) MarkRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/notifications", map[string]string{"id": id}, nil)
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/notifications/read-all", nil, nil)
}

// Broadcast posts a notification to the selected recipients: multipart form
// data when an image is attached, plain JSON otherwise.
func (c *Client) Broadcast(ctx context.Context, req BroadcastRequest) error {
	if req.Image == nil {
		body := map[string]interface{}{
			"userIds": req.UserIDs,
			"title":   req.Title,
			"body":    req.Body,
		}
		if req.ActionURL != "" {
			body["actionUrl"] = req.ActionURL
		}
		return c.do(ctx, http.MethodPost, "/notifications", body, nil)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	userIDs, err := json.Marshal(req.UserIDs)
	if err != nil {
		return err
	}
	if err := writer.WriteField("userIds", string(userIDs)); err != nil {
		return err
	}
	if err := writer.WriteField("title", req.Title); err != nil {
		return err
	}
	if err := writer.WriteField("body", req.Body); err != nil {
		return err
	}
	if req.ActionURL != "" {
		if err := writer.WriteField("actionUrl", req.ActionURL); err != nil {
			return err
		}
	}

	part, err := writer.CreateFormFile("image", req.Image.FileName)
	if err != nil {
		return err
	}
	if _, err := part.Write(req.Image.Data); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/notifications", &buf)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkResponse(resp, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkResponse(resp, result)
}

func checkResponse(resp *http.Response, result interface{}) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if result == nil {
		return nil
	}
	return json.Unmarshal(data, result)
}
