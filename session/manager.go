package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nepdora/go-storefront-auth/apierror"
	"github.com/nepdora/go-storefront-auth/session/storage"
	"github.com/nepdora/go-storefront-auth/token"
)

// CredentialsKey is the fixed storage key the persisted credential record
// lives under. It keeps its historical name so existing stored sessions
// keep working.
const CredentialsKey = "customer-authTokens"

const (
	redirectStashKey = "redirectAfterLogin"
	loginPath        = "/login"
	homePath         = "/home"
	basePath         = "/"
	homePage         = "home"
)

// Notices shown through the Notifier.
const (
	noticeSessionExpired = "Session expired. Please log in again."
	noticeLoginSuccess   = "Login successful! Welcome back!"
	noticeSignupSuccess  = "Account created successfully! Please log in to continue."
	noticeLogoutSuccess  = "You have been successfully logged out."
)

// Deps holds the collaborators the manager drives. API, Store, Notifier and
// Navigator are required; Stash and Locator default to an in-memory stash
// and a nil current URL.
type Deps struct {
	API       AuthAPI
	Store     storage.Repo // durable credential storage
	Stash     storage.Repo // transient cross-request storage
	Notifier  Notifier
	Navigator Navigator
	Locator   Locator
}

// Manager is the single owner of the persisted credential record and the
// in-memory session user. All lifecycle transitions go through its four
// operations: Restore, Login, Signup, Logout.
//
// Operations are serialized: Restore must complete before Login or Signup
// is accepted, and only one mutating operation runs at a time. There is no
// cancellation of an in-flight login; a logout issued while a login is
// waiting on the backend simply loses to the login once it resolves. That
// interleaving is a known hazard of the lifecycle, not a supported pattern.
type Manager struct {
	api      AuthAPI
	store    storage.Repo
	stash    storage.Repo
	notifier Notifier
	nav      Navigator
	locator  Locator
	log      zerolog.Logger
	nowTime  func() time.Time

	localSuffix string
	prodSuffix  string

	mu       sync.Mutex
	loading  bool
	restored bool
	state    State
	user     User
	pair     token.Pair
}

// Option modifies a Manager during construction.
type Option func(*Manager)

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Manager) { m.nowTime = nowFunc }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) { m.log = logger }
}

// WithHostSuffixes overrides the local and production hostname suffixes used
// for site-identifier extraction.
func WithHostSuffixes(local, production string) Option {
	return func(m *Manager) {
		m.localSuffix = local
		m.prodSuffix = production
	}
}

// New initializes a Manager with required dependencies. Optional behavior
// can be provided via options (e.g. WithNowTime for testing).
func New(deps Deps, options ...Option) (*Manager, error) {
	if deps.API == nil {
		return nil, errors.New("[session.New] API is required")
	}
	if deps.Store == nil {
		return nil, errors.New("[session.New] Store is required")
	}
	if deps.Notifier == nil {
		return nil, errors.New("[session.New] Notifier is required")
	}
	if deps.Navigator == nil {
		return nil, errors.New("[session.New] Navigator is required")
	}
	if deps.Stash == nil {
		deps.Stash = storage.NewInMemoryRepo()
	}

	m := &Manager{
		api:         deps.API,
		store:       deps.Store,
		stash:       deps.Stash,
		notifier:    deps.Notifier,
		nav:         deps.Navigator,
		locator:     deps.Locator,
		log:         zerolog.Nop(),
		nowTime:     time.Now,
		localSuffix: ".localhost",
		prodSuffix:  ".nepdora.com",
		state:       StateUnauthenticated,
	}
	for _, option := range options {
		option(m)
	}
	return m, nil
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// User returns the current session user, zero when unauthenticated.
func (m *Manager) User() User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Tokens returns the credential pair held in memory, zero when
// unauthenticated.
func (m *Manager) Tokens() token.Pair {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pair
}

// IsAuthenticated reports whether a user and credential pair are held.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.user.IsZero() && !m.pair.IsZero()
}

// Restore loads the persisted credential record and, when it holds a fresh
// access token, rebuilds the session from it. It runs exactly once per
// Manager; later calls return the state reached by the first.
//
// A missing record leaves the session empty. A malformed record or an
// undecodable token deletes the record and leaves the session empty without
// surfacing an error beyond a diagnostic log. A decodable but expired token
// deletes the record and emits a session-expired notice.
func (m *Manager) Restore(ctx context.Context) State {
	m.mu.Lock()
	if m.restored || m.loading {
		state := m.state
		m.mu.Unlock()
		return state
	}
	m.loading = true
	m.state = StateRestoring
	m.mu.Unlock()

	user, pair, ok := m.restoreFromStore(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.user = user
		m.pair = pair
		m.state = StateAuthenticated
	} else {
		m.state = StateUnauthenticated
	}
	m.restored = true
	m.loading = false
	return m.state
}

func (m *Manager) restoreFromStore(ctx context.Context) (User, token.Pair, bool) {
	raw, err := m.store.Get(ctx, CredentialsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.log.Err(err).Msg("Failed to read stored credentials")
		}
		return User{}, token.Pair{}, false
	}

	var stored token.StoredPair
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		m.log.Err(err).Msg("Failed to parse stored credentials")
		m.deleteStored(ctx)
		return User{}, token.Pair{}, false
	}

	claims, err := token.Decode(stored.Access)
	if err != nil {
		m.log.Err(err).Msg("Failed to decode stored access token")
		m.deleteStored(ctx)
		return User{}, token.Pair{}, false
	}

	if !claims.Fresh(m.nowTime()) {
		m.deleteStored(ctx)
		m.notifier.Error(noticeSessionExpired)
		return User{}, token.Pair{}, false
	}

	return userFromClaims(claims), stored.Pair(), true
}

// Login authenticates against the backend, persists the returned credential
// pair, and navigates to the resolved redirect target. Any failure before
// the pair is persisted leaves the session unchanged; the failure is
// surfaced to the user through the Notifier and returned to the caller.
func (m *Manager) Login(ctx context.Context, credentials Credentials) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	pair, err := m.api.Login(ctx, credentials)
	if err != nil {
		return m.failLogin(err)
	}
	if pair.Access == "" {
		return m.failLogin(ErrNoAccessToken)
	}

	claims, err := token.Decode(pair.Access)
	if err != nil {
		return m.failLogin(err)
	}
	user := userFromClaims(claims)

	record, err := json.Marshal(pair.Stored())
	if err != nil {
		return m.failLogin(fmt.Errorf("failed to encode credentials: %w", err))
	}
	if err := m.store.Set(ctx, CredentialsKey, string(record)); err != nil {
		return m.failLogin(fmt.Errorf("failed to persist credentials: %w", err))
	}

	m.mu.Lock()
	m.user = user
	m.pair = pair
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.notifier.Success(noticeLoginSuccess)
	m.nav.GoTo(m.resolveRedirect(ctx, user))
	return nil
}

func (m *Manager) failLogin(err error) error {
	message := apierror.LoginMessage(err)
	m.notifier.Error(message)
	m.log.Err(err).Str("notice", message).Msg("Login failed")
	return err
}

// Signup registers a new account. It does not authenticate; on success the
// user is told to log in and sent to the login page.
func (m *Manager) Signup(ctx context.Context, data SignupData) error {
	if err := m.begin(); err != nil {
		return err
	}
	defer m.end()

	// The confirmation field is checked by the form and never leaves the
	// client.
	data.ConfirmPassword = ""

	if err := m.api.Signup(ctx, data); err != nil {
		message := apierror.LoginMessage(err)
		m.notifier.Error(message)
		m.log.Err(err).Str("notice", message).Msg("Signup failed")
		return err
	}

	m.notifier.Success(noticeSignupSuccess)

	// The tenant label is extracted for parity with the login redirect flow,
	// but per-tenant signup landings are not wired up, so every branch is
	// the shared login route.
	_ = m.siteIdentifier(m.currentURL(), User{})
	m.nav.GoTo(loginPath)
	return nil
}

// Logout clears the in-memory session, deletes the persisted record and any
// stashed redirect, and sends the user to the login page. It works from any
// state, including when nobody is logged in.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.user = User{}
	m.pair = token.Pair{}
	m.state = StateUnauthenticated
	m.mu.Unlock()

	m.deleteStored(ctx)
	if err := m.stash.Delete(ctx, redirectStashKey); err != nil {
		m.log.Err(err).Msg("Failed to clear stashed redirect")
	}

	m.notifier.Success(noticeLogoutSuccess)
	m.nav.GoTo(loginPath)
}

// StashRedirect records a target to navigate to after the next successful
// login. The value is consumed by that login and then discarded.
func (m *Manager) StashRedirect(ctx context.Context, target string) error {
	return m.stash.Set(ctx, redirectStashKey, target)
}

// begin takes the loading gate. Restore must have completed first.
func (m *Manager) begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.restored {
		return ErrRestorePending
	}
	if m.loading {
		return ErrBusy
	}
	m.loading = true
	return nil
}

func (m *Manager) end() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

func (m *Manager) deleteStored(ctx context.Context) {
	if err := m.store.Delete(ctx, CredentialsKey); err != nil {
		m.log.Err(err).Msg("Failed to delete stored credentials")
	}
}
