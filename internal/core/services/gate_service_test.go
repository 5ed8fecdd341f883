package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/core/domain"
	"investhub/internal/core/services"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeUserRepo implements repositories.UserRepository in memory. Gate tests
// lean on GetRole; auth tests use the email and ID lookups.
type fakeUserRepo struct {
	mu        sync.Mutex
	roles     map[string]string
	users     map[string]*models.User
	roleErr   error
	roleCalls int
	block     chan struct{} // when set, GetRole waits on it
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		roles: map[string]string{},
		users: map[string]*models.User{},
	}
}

func (f *fakeUserRepo) add(user *models.User) {
	f.users[user.ID] = user
	f.roles[user.ID] = user.Role
}

func (f *fakeUserRepo) GetRole(ctx context.Context, id string) (string, error) {
	f.mu.Lock()
	f.roleCalls++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roleErr != nil {
		return "", f.roleErr
	}
	role, ok := f.roles[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return role, nil
}

func (f *fakeUserRepo) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.roleCalls
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id string) error         { return nil }
func (f *fakeUserRepo) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	return nil, 0, nil
}
func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (f *fakeUserRepo) CountByRole(ctx context.Context, role string) (int64, error) { return 0, nil }

// fakeSessionSource returns a scripted sequence of sessions
type fakeSessionSource struct {
	mu       sync.Mutex
	sessions []*domain.Session
}

func (f *fakeSessionSource) Current(ctx context.Context) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sessions) == 0 {
		return nil, nil
	}
	s := f.sessions[0]
	if len(f.sessions) > 1 {
		f.sessions = f.sessions[1:]
	}
	return s, nil
}

// fakeRevoker records revocations
type fakeRevoker struct {
	mu      sync.Mutex
	revoked []string
}

func (f *fakeRevoker) RevokeSessions(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked = append(f.revoked, userID)
	return nil
}

func (f *fakeRevoker) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.revoked)
}

func TestGateAdminAuthorized(t *testing.T) {
	users := newFakeUserRepo()
	users.roles["u1"] = "admin"
	revoker := &fakeRevoker{}
	gate := services.NewGate(users, &fakeSessionSource{}, revoker)

	result := gate.CheckRole(context.Background(), "u1")

	require.Equal(t, domain.AuthAuthorized, result.State)
	require.Equal(t, "u1", result.CheckedUserID)
	require.Empty(t, result.Reason)
	require.Zero(t, revoker.count())
}

func TestGateNonAdminDeniedAndRevoked(t *testing.T) {
	users := newFakeUserRepo()
	users.roles["u2"] = "investor"
	revoker := &fakeRevoker{}
	gate := services.NewGate(users, &fakeSessionSource{}, revoker)

	result := gate.CheckRole(context.Background(), "u2")

	require.Equal(t, domain.AuthDenied, result.State)
	require.Contains(t, result.Reason, "role is 'investor'")
	require.Contains(t, result.Reason, "expected 'admin'")
	require.Equal(t, 1, revoker.count())
}

func TestGateMissingProfileDeniedAndRevoked(t *testing.T) {
	users := newFakeUserRepo()
	revoker := &fakeRevoker{}
	gate := services.NewGate(users, &fakeSessionSource{}, revoker)

	result := gate.CheckRole(context.Background(), "ghost")

	require.Equal(t, domain.AuthDenied, result.State)
	require.Contains(t, result.Reason, "missing in users table")
	require.Equal(t, 1, revoker.count())
}

func TestGateTransientErrorDeniesWithoutRevoking(t *testing.T) {
	users := newFakeUserRepo()
	users.roleErr = errors.New("connection reset")
	revoker := &fakeRevoker{}
	gate := services.NewGate(users, &fakeSessionSource{}, revoker)

	result := gate.CheckRole(context.Background(), "u3")

	require.Equal(t, domain.AuthDenied, result.State)
	require.Contains(t, result.Reason, "profile lookup failed")
	require.Zero(t, revoker.count(), "a transient failure must not sign the user out")
}

func TestGateRepeatedSignedInChecksRoleOnce(t *testing.T) {
	users := newFakeUserRepo()
	users.roles["u1"] = "admin"
	gate := services.NewGate(users, &fakeSessionSource{}, &fakeRevoker{})

	evt := domain.SessionEvent{
		Type:    domain.EventSignedIn,
		Session: &domain.Session{UserID: "u1"},
	}
	gate.HandleEvent(context.Background(), evt)
	gate.HandleEvent(context.Background(), evt)
	gate.HandleEvent(context.Background(), evt)

	require.Equal(t, 1, users.calls(), "duplicate SIGNED_IN must not re-run the role lookup")
	require.Equal(t, domain.AuthAuthorized, gate.Result().State)
}

func TestGateTimeoutDeniesStuckResolution(t *testing.T) {
	users := newFakeUserRepo()
	users.roles["u1"] = "admin"
	users.block = make(chan struct{})
	gate := services.NewGate(users, &fakeSessionSource{}, &fakeRevoker{})
	gate.SetTiming(30*time.Millisecond, 5*time.Millisecond)

	go gate.HandleEvent(context.Background(), domain.SessionEvent{
		Type:    domain.EventSignedIn,
		Session: &domain.Session{UserID: "u1"},
	})

	require.Eventually(t, func() bool {
		r := gate.Result()
		return r.State == domain.AuthDenied && r.Reason == services.ReasonTimedOut
	}, time.Second, 5*time.Millisecond)

	// A lookup that finishes after the deadline must not resurrect the
	// attempt.
	close(users.block)
	time.Sleep(20 * time.Millisecond)
	r := gate.Result()
	require.Equal(t, domain.AuthDenied, r.State)
	require.Equal(t, services.ReasonTimedOut, r.Reason)
}

func TestGateSignOutResetsAdmission(t *testing.T) {
	users := newFakeUserRepo()
	users.roles["u1"] = "admin"
	gate := services.NewGate(users, &fakeSessionSource{}, &fakeRevoker{})

	gate.CheckRole(context.Background(), "u1")
	require.Equal(t, domain.AuthAuthorized, gate.Result().State)

	gate.HandleEvent(context.Background(), domain.SessionEvent{Type: domain.EventSignedOut})
	r := gate.Result()
	require.Equal(t, domain.AuthDenied, r.State)
	require.Equal(t, services.ReasonSignedOut, r.Reason)

	// Admission cache was cleared: the next authorize re-runs the lookup
	before := users.calls()
	result := gate.Authorize(context.Background(), "u1")
	require.Equal(t, domain.AuthAuthorized, result.State)
	require.Equal(t, before+1, users.calls())
}

func TestGateInitialWithoutSessionDenies(t *testing.T) {
	users := newFakeUserRepo()
	gate := services.NewGate(users, &fakeSessionSource{}, &fakeRevoker{})

	gate.HandleEvent(context.Background(), domain.SessionEvent{Type: domain.EventInitial})

	r := gate.Result()
	require.Equal(t, domain.AuthDenied, r.State)
	require.Equal(t, services.ReasonNotSignedIn, r.Reason)
	require.Zero(t, users.calls())
}

func TestGateOAuthErrorDenies(t *testing.T) {
	gate := services.NewGate(newFakeUserRepo(), &fakeSessionSource{}, &fakeRevoker{})

	gate.HandleEvent(context.Background(), domain.SessionEvent{
		Type:       domain.EventInitial,
		OAuthError: "access_denied",
	})

	r := gate.Result()
	require.Equal(t, domain.AuthDenied, r.State)
	require.Contains(t, r.Reason, "access_denied")
}

func TestGateOAuthPendingResolvesOnRetry(t *testing.T) {
	users := newFakeUserRepo()
	users.roles["u1"] = "admin"
	// First check finds nothing, the retry finds the session
	sessions := &fakeSessionSource{sessions: []*domain.Session{nil, {UserID: "u1"}}}
	gate := services.NewGate(users, sessions, &fakeRevoker{})
	gate.SetTiming(time.Second, 5*time.Millisecond)

	gate.HandleEvent(context.Background(), domain.SessionEvent{
		Type:         domain.EventInitial,
		OAuthPending: true,
	})

	r := gate.Result()
	require.Equal(t, domain.AuthAuthorized, r.State)
	require.Equal(t, "u1", r.CheckedUserID)
}

func TestGateOAuthPendingGivesUpAfterRetry(t *testing.T) {
	users := newFakeUserRepo()
	sessions := &fakeSessionSource{} // never yields a session
	gate := services.NewGate(users, sessions, &fakeRevoker{})
	gate.SetTiming(time.Second, 5*time.Millisecond)

	gate.HandleEvent(context.Background(), domain.SessionEvent{
		Type:         domain.EventInitial,
		OAuthPending: true,
	})

	r := gate.Result()
	require.Equal(t, domain.AuthDenied, r.State)
	require.Contains(t, r.Reason, "authentication failed")
}

func TestGateSignedOutDuringOAuthKeepsWaiting(t *testing.T) {
	users := newFakeUserRepo()
	users.roles["u1"] = "admin"
	// The provider's spurious SIGNED_OUT arrives while the code exchange
	// is still completing; the retry then finds the real session.
	sessions := &fakeSessionSource{sessions: []*domain.Session{nil, {UserID: "u1"}}}
	gate := services.NewGate(users, sessions, &fakeRevoker{})
	gate.SetTiming(time.Second, 5*time.Millisecond)

	gate.HandleEvent(context.Background(), domain.SessionEvent{
		Type:         domain.EventSignedOut,
		OAuthPending: true,
	})

	r := gate.Result()
	require.Equal(t, domain.AuthAuthorized, r.State)
}

func TestGateWatchDrainsStore(t *testing.T) {
	users := newFakeUserRepo()
	users.roles["u1"] = "admin"
	gate := services.NewGate(users, &fakeSessionSource{}, &fakeRevoker{})

	store := services.NewSessionStore()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go gate.Watch(ctx, store)

	// Give the subscriber time to register before publishing
	time.Sleep(10 * time.Millisecond)
	store.Publish(domain.SessionEvent{
		Type:    domain.EventSignedIn,
		Session: &domain.Session{UserID: "u1"},
	})

	require.Eventually(t, func() bool {
		return gate.Result().State == domain.AuthAuthorized
	}, time.Second, 5*time.Millisecond)
}
