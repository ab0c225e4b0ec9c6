package client

import "context"

type Page string

const (
	PageLogin     Page = "/"
	PageDashboard Page = "/dashboard"
	PageAdmin     Page = "/admin"
)

// SessionSource answers the "who am I" check. *Client satisfies it.
type SessionSource interface {
	Me(ctx context.Context) (*User, error)
}

// Guard decides where a navigation should land based on the current
// session. It re-checks the backend on every call and caches nothing.
type Guard struct {
	api SessionSource
}

func NewGuard(api SessionSource) *Guard {
	return &Guard{api: api}
}

// Resolve returns the page the user should be on. Anonymous users go to
// login; administrators belong on the admin page and everyone else on the
// dashboard. When the user is already on the right page for their role the
// current page is returned unchanged.
func (g *Guard) Resolve(ctx context.Context, current Page) Page {
	user, err := g.api.Me(ctx)
	if err != nil || user == nil {
		return PageLogin
	}

	if user.IsSuperuser {
		if current != PageAdmin {
			return PageAdmin
		}
		return current
	}

	if current != PageDashboard {
		return PageDashboard
	}
	return current
}
