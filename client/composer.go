package client

import (
	"context"
	"errors"
	"net/url"
	"unicode/utf8"
)

const (
	titleMaxLen = 100
	bodyMaxLen  = 500
)

var (
	ErrNoneSelected     = errors.New("no recipients selected")
	ErrTitleRequired    = errors.New("title is required")
	ErrTitleTooLong     = errors.New("title must be at most 100 characters")
	ErrBodyRequired     = errors.New("body is required")
	ErrBodyTooLong      = errors.New("body must be at most 500 characters")
	ErrInvalidActionURL = errors.New("redirect URL must be a valid absolute URL")
)

// ComposerAPI is what the composer needs from the backend. *Client
// satisfies it.
type ComposerAPI interface {
	Users(ctx context.Context) ([]RosterUser, error)
	Broadcast(ctx context.Context, req BroadcastRequest) error
}

// Draft is the notification an operator is writing.
type Draft struct {
	Title     string
	Body      string
	ActionURL string
	Image     *Attachment
}

// Validate applies the same field rules the backend enforces, so bad input
// never reaches the network.
func (d *Draft) Validate() error {
	if d.Title == "" {
		return ErrTitleRequired
	}
	// Limits are in characters, not bytes.
	if utf8.RuneCountInString(d.Title) > titleMaxLen {
		return ErrTitleTooLong
	}
	if d.Body == "" {
		return ErrBodyRequired
	}
	if utf8.RuneCountInString(d.Body) > bodyMaxLen {
		return ErrBodyTooLong
	}
	if d.ActionURL != "" {
		u, err := url.Parse(d.ActionURL)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return ErrInvalidActionURL
		}
	}
	return nil
}

// Composer drives the admin broadcast screen: a roster with a selection,
// a draft, and a single-attempt send.
type Composer struct {
	api ComposerAPI

	roster   []RosterUser
	selected map[string]bool
	draft    Draft
}

func NewComposer(api ComposerAPI) *Composer {
	return &Composer{
		api:      api,
		selected: make(map[string]bool),
	}
}

func (c *Composer) LoadRoster(ctx context.Context) error {
	roster, err := c.api.Users(ctx)
	if err != nil {
		return err
	}
	c.roster = roster
	return nil
}

func (c *Composer) Roster() []RosterUser { return c.roster }

func (c *Composer) Toggle(id string) {
	if c.selected[id] {
		delete(c.selected, id)
	} else {
		c.selected[id] = true
	}
}

func (c *Composer) SelectAll() {
	for _, u := range c.roster {
		c.selected[u.ID] = true
	}
}

func (c *Composer) DeselectAll() {
	c.selected = make(map[string]bool)
}

// Selected returns the selected ids in roster order.
func (c *Composer) Selected() []string {
	ids := make([]string, 0, len(c.selected))
	for _, u := range c.roster {
		if c.selected[u.ID] {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

// CanSend mirrors the disabled state of the send button: false while no
// user is selected.
func (c *Composer) CanSend() bool {
	return len(c.selected) > 0
}

func (c *Composer) UpdateDraft(d Draft) { c.draft = d }
func (c *Composer) Draft() Draft        { return c.draft }

// Send validates and submits the draft to the selected recipients, once.
// On success the selection and the draft are cleared; on failure both are
// preserved so the operator can retry without re-entering anything.
func (c *Composer) Send(ctx context.Context) error {
	if !c.CanSend() {
		return ErrNoneSelected
	}
	if err := c.draft.Validate(); err != nil {
		return err
	}

	req := BroadcastRequest{
		UserIDs:   c.Selected(),
		Title:     c.draft.Title,
		Body:      c.draft.Body,
		ActionURL: c.draft.ActionURL,
		Image:     c.draft.Image,
	}
	if err := c.api.Broadcast(ctx, req); err != nil {
		return err
	}

	c.DeselectAll()
	c.draft = Draft{}
	return nil
}
