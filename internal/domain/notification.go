package domain

import (
	"errors"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"-" db:"user_id"`
	Title     string     `json:"title" db:"title"`
	Body      string     `json:"body" db:"body"`
	Image     *string    `json:"image,omitempty" db:"image"`
	ActionURL *string    `json:"action_url,omitempty" db:"action_url"`
	IsRead    bool       `json:"is_read" db:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty" db:"read_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

const (
	TitleMaxLen = 100
	BodyMaxLen  = 500
)

// Fallbacks used when a push payload arrives without a title or body.
const (
	FallbackTitle = "NexTalk Notification"
	FallbackBody  = "You have a new message"
)

var (
	ErrNoRecipients    = errors.New("at least one recipient is required")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleTooLong    = errors.New("title must be at most 100 characters")
	ErrBodyRequired    = errors.New("body is required")
	ErrBodyTooLong     = errors.New("body must be at most 500 characters")
	ErrInvalidActionURL = errors.New("action URL must be a valid absolute URL")
)

type BroadcastInput struct {
	UserIDs   []uuid.UUID
	Title     string
	Body      string
	ActionURL *string
}

func (in *BroadcastInput) Validate() error {
	if len(in.UserIDs) == 0 {
		return ErrNoRecipients
	}
	if in.Title == "" {
		return ErrTitleRequired
	}
	// Limits are in characters, not bytes.
	if utf8.RuneCountInString(in.Title) > TitleMaxLen {
		return ErrTitleTooLong
	}
	if in.Body == "" {
		return ErrBodyRequired
	}
	if utf8.RuneCountInString(in.Body) > BodyMaxLen {
		return ErrBodyTooLong
	}
	if in.ActionURL != nil && *in.ActionURL != "" {
		u, err := url.Parse(*in.ActionURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return ErrInvalidActionURL
		}
	}
	return nil
}
