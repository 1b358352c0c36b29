// Package session owns the authenticated-user lifecycle for the storefront
// client: restoring a persisted credential pair at startup, logging in and
// out, and resolving where to navigate after authentication.
package session

import (
	"context"
	"errors"
	"net/url"

	"github.com/nepdora/go-storefront-auth/token"
)

var (
	// ErrNoAccessToken is returned when a login response carries no access
	// token.
	ErrNoAccessToken = errors.New("No access token received from server")
	// ErrRestorePending is returned when Login or Signup is called before
	// Restore has completed.
	ErrRestorePending = errors.New("session restore has not completed")
	// ErrBusy is returned when a session operation is already in flight.
	ErrBusy = errors.New("session operation already in progress")
)

// State names the position of the session lifecycle.
type State int

const (
	StateUnauthenticated State = iota
	StateRestoring
	StateAuthenticated
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// User is the application-facing user record, derived 1:1 from the access
// token claims. Username mirrors Email.
type User struct {
	ID        string
	Email     string
	Username  string
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

// IsZero reports whether no user is held.
func (u User) IsZero() bool { return u == User{} }

func userFromClaims(c token.Claims) User {
	return User{
		ID:        c.UserID,
		Email:     c.Email,
		Username:  c.Email,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Address:   c.Address,
	}
}

// Credentials is the login payload. Its contents are opaque to the manager
// and passed through to the backend unchanged.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupData is the registration payload. ConfirmPassword is checked client
// side only and is stripped before the data leaves the manager.
type SignupData struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
}

// AuthAPI is the backend surface the manager drives.
type AuthAPI interface {
	// Login exchanges credentials for a token pair.
	Login(ctx context.Context, credentials Credentials) (token.Pair, error)
	// Signup registers a new account. It does not authenticate.
	Signup(ctx context.Context, data SignupData) error
	// PageExists probes whether a published page exists for a site.
	PageExists(ctx context.Context, site, page string) (bool, error)
}

// Notifier surfaces user-visible notices. Calls are fire-and-forget.
type Notifier interface {
	Success(text string)
	Error(text string)
}

// Navigator performs page navigation. Calls are fire-and-forget.
type Navigator interface {
	GoTo(path string)
}

// Locator reports the URL the user is currently on. It may return nil when
// no current URL is known (for example in a headless client).
type Locator interface {
	Current() *url.URL
}
