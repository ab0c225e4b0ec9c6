package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type InboxState string

const (
	InboxLoading InboxState = "loading"
	InboxLoaded  InboxState = "loaded"
	InboxEmpty   InboxState = "empty"
	InboxError   InboxState = "error"
)

// InboxAPI is what the inbox needs from the backend. *Client satisfies it.
type InboxAPI interface {
	Me(ctx context.Context) (*User, error)
	Notifications(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// Inbox holds one view instance's copy of the notification list. A second
// inbox in another tab sees nothing of this one until it re-fetches.
type Inbox struct {
	api InboxAPI

	state         InboxState
	err           error
	notifications []Notification
	profile       *User
}

func NewInbox(api InboxAPI) *Inbox {
	return &Inbox{api: api, state: InboxLoading}
}

// Load fetches the notification list and the profile together and waits for
// both; if either fails the view lands in a single error state.
func (i *Inbox) Load(ctx context.Context) error {
	i.state = InboxLoading
	i.err = nil

	var notifications []Notification
	var profile *User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		notifications, err = i.api.Notifications(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		profile, err = i.api.Me(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		i.state = InboxError
		i.err = err
		return err
	}

	i.notifications = notifications
	i.profile = profile
	if len(notifications) == 0 {
		i.state = InboxEmpty
	} else {
		i.state = InboxLoaded
	}
	return nil
}

func (i *Inbox) State() InboxState            { return i.state }
func (i *Inbox) Err() error                   { return i.err }
func (i *Inbox) Notifications() []Notification { return i.notifications }
func (i *Inbox) Profile() *User               { return i.profile }

// UnreadCount is derived from the in-memory list; it is never fetched on
// its own.
func (i *Inbox) UnreadCount() int {
	count := 0
	for _, n := range i.notifications {
		if !n.IsRead {
			count++
		}
	}
	return count
}

// MarkRead marks one notification read and reloads the whole list from the
// backend rather than patching the local copy. On failure the local state
// is left untouched.
func (i *Inbox) MarkRead(ctx context.Context, id string) error {
	if err := i.api.MarkRead(ctx, id); err != nil {
		return err
	}
	return i.Load(ctx)
}

func (i *Inbox) MarkAllRead(ctx context.Context) error {
	if err := i.api.MarkAllRead(ctx); err != nil {
		return err
	}
	return i.Load(ctx)
}

// Open returns the URL to navigate to for a clicked notification, or ""
// when it carries no action URL.
func (i *Inbox) Open(n Notification) string {
	return n.ActionURL
}
