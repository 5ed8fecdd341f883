package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"investhub/internal/adapters/persistence/repositories"
	"investhub/internal/core/domain"

	"gorm.io/gorm"
)

// Gate timing defaults
const (
	DefaultGateTimeout    = 15 * time.Second
	DefaultOAuthRetryWait = 1500 * time.Millisecond
)

// Denial reasons surfaced to the operator
const (
	ReasonNotSignedIn = "not signed in"
	ReasonSignedOut   = "signed out"
	ReasonTimedOut    = "authorization timed out"
)

// SessionSource resolves the current auth session, if any
type SessionSource interface {
	Current(ctx context.Context) (*domain.Session, error)
}

// SessionRevoker force-terminates all sessions for a user
type SessionRevoker interface {
	RevokeSessions(ctx context.Context, userID string) error
}

// Gate guards the admin area. It resolves the caller's session, looks the
// role up in the users table and renders exactly one of three states:
// loading, denied (with reason) or authorized. The lookup fails closed:
// only an explicit admin role authorizes. A denial caused by a wrong or
// missing role also revokes the underlying session so a non-admin session
// never lingers; a denial caused by a transient lookup error does not, so
// the operator can retry without logging in again.
type Gate struct {
	users     repositories.UserRepository
	sessions  SessionSource
	revoker   SessionRevoker
	timeout   time.Duration
	retryWait time.Duration

	mu       sync.Mutex
	result   domain.AuthorizationResult
	admitted map[string]bool // role checks that already authorized, keyed by user id
	gen      int             // bumped on sign-out so stale async results are discarded
	timer    *time.Timer
}

// NewGate creates a gate with the default safety timeout
func NewGate(users repositories.UserRepository, sessions SessionSource, revoker SessionRevoker) *Gate {
	return &Gate{
		users:     users,
		sessions:  sessions,
		revoker:   revoker,
		timeout:   DefaultGateTimeout,
		retryWait: DefaultOAuthRetryWait,
		result:    domain.AuthorizationResult{State: domain.AuthLoading},
		admitted:  map[string]bool{},
	}
}

// SetTiming overrides the safety timeout and OAuth retry wait
func (g *Gate) SetTiming(timeout, retryWait time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.timeout = timeout
	g.retryWait = retryWait
}

// Result returns the latest resolution attempt
func (g *Gate) Result() domain.AuthorizationResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result
}

// Watch drains session events from the store until ctx is done. The timer
// and subscription are released on teardown.
func (g *Gate) Watch(ctx context.Context, store *SessionStore) {
	events, cancel := store.Subscribe()
	defer cancel()
	defer g.stopTimer()

	for {
		select {
		case evt := <-events:
			g.HandleEvent(ctx, evt)
		case <-ctx.Done():
			return
		}
	}
}

// HandleEvent advances the gate's state machine for one provider event
func (g *Gate) HandleEvent(ctx context.Context, evt domain.SessionEvent) {
	// A failed OAuth redirect carries the provider's error in the URL
	// markers; surface it and stop, the session never materialized.
	if evt.OAuthError != "" {
		g.deny(fmt.Sprintf("login failed: %s", evt.OAuthError), "")
		return
	}

	switch evt.Type {
	case domain.EventInitial:
		if evt.Session != nil {
			g.CheckRole(ctx, evt.Session.UserID)
			return
		}
		if evt.OAuthPending {
			g.resolvePendingOAuth(ctx)
			return
		}
		g.deny(ReasonNotSignedIn, "")

	case domain.EventSignedIn:
		if evt.Session != nil {
			g.CheckRole(ctx, evt.Session.UserID)
		}

	case domain.EventSignedOut:
		if evt.OAuthPending {
			// Providers emit a sign-out while the code exchange is
			// still in flight; keep waiting instead of bouncing the
			// operator back to login.
			g.resolvePendingOAuth(ctx)
			return
		}
		g.signOutLocal()
	}
}

// CheckRole resolves authorization for a user id. Repeated calls for a user
// already admitted are no-ops so duplicate SIGNED_IN notifications never
// re-run the lookup.
func (g *Gate) CheckRole(ctx context.Context, userID string) domain.AuthorizationResult {
	g.mu.Lock()
	if g.admitted[userID] && g.result.State == domain.AuthAuthorized && g.result.CheckedUserID == userID {
		result := g.result
		g.mu.Unlock()
		return result
	}
	gen := g.gen
	g.enterLoadingLocked()
	g.mu.Unlock()

	role, err := g.users.GetRole(ctx, userID)

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		g.revokeSessions(ctx, userID)
		return g.denyAt(gen, fmt.Sprintf("user authenticated (id %s) but missing in users table", userID), userID)
	case err != nil:
		// Transient lookup failure: deny without revoking so a retry
		// does not require re-entering credentials.
		return g.denyAt(gen, fmt.Sprintf("profile lookup failed: %v", err), userID)
	case role != string(domain.RoleAdmin):
		g.revokeSessions(ctx, userID)
		return g.denyAt(gen, fmt.Sprintf("access denied: role is '%s', expected 'admin'", role), userID)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.gen {
		// A sign-out won the race; drop this stale authorization.
		return g.result
	}
	g.stopTimerLocked()
	g.admitted[userID] = true
	g.result = domain.AuthorizationResult{State: domain.AuthAuthorized, CheckedUserID: userID}
	return g.result
}

// Authorize is the per-request entry used by the HTTP middleware. Users
// already admitted skip the lookup entirely.
func (g *Gate) Authorize(ctx context.Context, userID string) domain.AuthorizationResult {
	g.mu.Lock()
	if g.admitted[userID] {
		g.mu.Unlock()
		return domain.AuthorizationResult{State: domain.AuthAuthorized, CheckedUserID: userID}
	}
	g.mu.Unlock()
	return g.CheckRole(ctx, userID)
}

// Invalidate drops a user's cached admission (sign-out, role change)
func (g *Gate) Invalidate(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.admitted, userID)
}

// resolvePendingOAuth handles "session absent but callback markers present":
// the provider may still be exchanging the code, so check immediately, then
// once more after a short wait before giving up.
func (g *Gate) resolvePendingOAuth(ctx context.Context) {
	g.mu.Lock()
	gen := g.gen
	g.enterLoadingLocked()
	retryWait := g.retryWait
	g.mu.Unlock()

	session, err := g.sessions.Current(ctx)
	if err != nil {
		log.Printf("⚠️ Session check during OAuth callback failed: %v", err)
	}
	if session != nil {
		g.CheckRole(ctx, session.UserID)
		return
	}

	select {
	case <-time.After(retryWait):
	case <-ctx.Done():
		return
	}

	session, err = g.sessions.Current(ctx)
	if err == nil && session != nil {
		g.CheckRole(ctx, session.UserID)
		return
	}
	g.denyAt(gen, "authentication failed, please try logging in again", "")
}

// revokeSessions force-signs-out a rejected session, best effort
func (g *Gate) revokeSessions(ctx context.Context, userID string) {
	if g.revoker == nil {
		return
	}
	if err := g.revoker.RevokeSessions(ctx, userID); err != nil {
		log.Printf("⚠️ Failed to revoke sessions for %s: %v", userID, err)
	}
	g.Invalidate(userID)
}

// signOutLocal resets the gate after a SIGNED_OUT event. Any in-flight role
// check is invalidated by the generation bump.
func (g *Gate) signOutLocal() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.gen++
	g.stopTimerLocked()
	g.admitted = map[string]bool{}
	g.result = domain.AuthorizationResult{State: domain.AuthDenied, Reason: ReasonSignedOut}
}

// enterLoadingLocked moves to Loading and arms the safety timer. The timer
// only fires if the same generation is still loading when it expires.
func (g *Gate) enterLoadingLocked() {
	g.stopTimerLocked()
	g.result = domain.AuthorizationResult{State: domain.AuthLoading}
	gen := g.gen
	g.timer = time.AfterFunc(g.timeout, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if gen == g.gen && g.result.State == domain.AuthLoading {
			g.result = domain.AuthorizationResult{State: domain.AuthDenied, Reason: ReasonTimedOut}
			// the attempt is dead; a late lookup result must not resurrect it
			g.gen++
		}
	})
}

func (g *Gate) deny(reason, userID string) domain.AuthorizationResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopTimerLocked()
	g.result = domain.AuthorizationResult{State: domain.AuthDenied, Reason: reason, CheckedUserID: userID}
	return g.result
}

// denyAt denies only if no sign-out superseded the attempt that began at gen
func (g *Gate) denyAt(gen int, reason, userID string) domain.AuthorizationResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.gen {
		return g.result
	}
	g.stopTimerLocked()
	g.result = domain.AuthorizationResult{State: domain.AuthDenied, Reason: reason, CheckedUserID: userID}
	return g.result
}

func (g *Gate) stopTimer() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopTimerLocked()
}

func (g *Gate) stopTimerLocked() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}
