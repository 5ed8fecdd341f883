package domain

import "time"

// Role represents user role in the system
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleAgent    Role = "agent"
	RoleInvestor Role = "investor"
)

// RequestStatus represents the lifecycle state of an investor request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
	StatusActive   RequestStatus = "active"
)

// StatusAll bypasses status filtering in list queries
const StatusAll = "all"

// IsTerminal reports whether the status can no longer be decided by an operator
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusActive
}

// Session is the transient local copy of an auth-provider session
type Session struct {
	UserID string
	Email  string
}

// SessionEventType mirrors the auth provider's change notifications
type SessionEventType string

const (
	EventInitial   SessionEventType = "INITIAL"
	EventSignedIn  SessionEventType = "SIGNED_IN"
	EventSignedOut SessionEventType = "SIGNED_OUT"
)

// SessionEvent is delivered by the session store to its subscribers.
// OAuthPending is set when the request URL carries OAuth callback markers
// (a provider code exchange may still be in flight); OAuthError carries the
// provider's error_description when the redirect itself failed.
type SessionEvent struct {
	Type         SessionEventType
	Session      *Session
	OAuthPending bool
	OAuthError   string
}

// AuthState is the gate's resolution state
type AuthState int

const (
	AuthLoading AuthState = iota
	AuthDenied
	AuthAuthorized
)

func (s AuthState) String() string {
	switch s {
	case AuthLoading:
		return "loading"
	case AuthDenied:
		return "denied"
	case AuthAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// AuthorizationResult is one gate resolution attempt. It is superseded as a
// whole by the next attempt; protected content renders only when State is
// AuthAuthorized.
type AuthorizationResult struct {
	State         AuthState
	Reason        string
	CheckedUserID string
}

// DisbursementAccount is an administrator-owned bank account an approved
// investor pays into. Approvals embed a verbatim copy so later configuration
// changes never alter historical records.
type DisbursementAccount struct {
	BankName          string `json:"bank_name"`
	AccountHolderName string `json:"account_holder_name"`
	AccountNumber     string `json:"account_number"`
	IFSCCode          string `json:"ifsc_code"`
	Branch            string `json:"branch,omitempty"`
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RefreshToken represents a refresh token in the domain
type RefreshToken struct {
	ID        uint
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}
