package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"

	"investhub/internal/adapters/persistence/models"
	"investhub/internal/adapters/persistence/repositories"
	"investhub/internal/core/domain"
)

// Request workflow errors
var (
	ErrNoDisbursementAccounts = errors.New("no admin bank accounts configured, add one in settings first")
	ErrAccountNotConfigured   = errors.New("selected bank account is not in the configured list")
	ErrEmptyReason            = errors.New("rejection reason is required")
)

// AccountSource supplies the configured disbursement accounts at decision time
type AccountSource interface {
	DisbursementAccounts(ctx context.Context) ([]domain.DisbursementAccount, error)
}

// RequestService handles the investor request review workflow. Requests are
// created by the investor app; the back office only lists them and moves
// pending rows to a terminal status. Decisions are guarded twice: an
// in-process in-flight set rejects double submission of the same request,
// and the status check rejects re-deciding an already terminal row.
type RequestService struct {
	requestRepo repositories.RequestRepository
	accounts    AccountSource
	notifyRepo  repositories.NotificationRepository

	mu       sync.Mutex
	inflight map[string]bool
}

// NewRequestService creates a new request service
func NewRequestService(requestRepo repositories.RequestRepository, accounts AccountSource, notifyRepo repositories.NotificationRepository) *RequestService {
	return &RequestService{
		requestRepo: requestRepo,
		accounts:    accounts,
		notifyRepo:  notifyRepo,
		inflight:    map[string]bool{},
	}
}

// List returns requests newest first, optionally filtered by status.
// An empty filter or "all" returns everything.
func (s *RequestService) List(ctx context.Context, status string) ([]*models.InvestorRequest, error) {
	if status == "" || status == domain.StatusAll {
		return s.requestRepo.List(ctx)
	}
	return s.requestRepo.ListByStatus(ctx, status)
}

// GetByID returns a single request with its investor profile
func (s *RequestService) GetByID(ctx context.Context, id string) (*models.InvestorRequest, error) {
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}
	return req, nil
}

// ApproveInput selects the disbursement account for an approval
type ApproveInput struct {
	AccountNumber string `json:"account_number" validate:"required"`
}

// Approve moves a pending request to approved and embeds a verbatim copy of
// the selected disbursement account. The copy is what the investor pays
// into; editing the account list later never changes decided requests.
func (s *RequestService) Approve(ctx context.Context, id string, input *ApproveInput) (*models.InvestorRequest, error) {
	if err := s.beginDecision(id); err != nil {
		return nil, err
	}
	defer s.endDecision(id)

	// 1. Load and check the row is still decidable
	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}
	if domain.RequestStatus(req.Status) != domain.StatusPending {
		return nil, domain.ErrAlreadyDecided
	}

	// 2. Resolve the selected account against the configured list
	configured, err := s.accounts.DisbursementAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(configured) == 0 {
		return nil, ErrNoDisbursementAccounts
	}
	var snapshot *domain.DisbursementAccount
	for i := range configured {
		if configured[i].AccountNumber == input.AccountNumber {
			snapshot = &configured[i]
			break
		}
	}
	if snapshot == nil {
		return nil, ErrAccountNotConfigured
	}

	// 3. Targeted update: only the decision fields change
	details, err := json.Marshal(snapshot)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{
		"status":             string(domain.StatusApproved),
		"is_confirmed":       true,
		"admin_bank_details": string(details),
	}
	if err := s.requestRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	s.recordDecision(ctx, models.NotifySuccess, "Investment Approved",
		"Request "+id+" for plan "+req.PlanName+" was approved")
	log.Printf("✅ Request approved: %s (plan: %s, account: %s)", id, req.PlanName, snapshot.BankName)

	return s.requestRepo.GetByID(ctx, id)
}

// RejectInput carries the operator's reason for a rejection
type RejectInput struct {
	Reason string `json:"reason" validate:"required"`
}

// Reject moves a pending request to rejected with the operator's reason.
// The reason is trimmed and validated before anything is read or written,
// so a blank submission touches no state at all.
func (s *RequestService) Reject(ctx context.Context, id string, input *RejectInput) (*models.InvestorRequest, error) {
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}

	if err := s.beginDecision(id); err != nil {
		return nil, err
	}
	defer s.endDecision(id)

	req, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}
	if domain.RequestStatus(req.Status) != domain.StatusPending {
		return nil, domain.ErrAlreadyDecided
	}

	fields := map[string]interface{}{
		"status":           string(domain.StatusRejected),
		"rejection_reason": reason,
		"is_confirmed":     false,
	}
	if err := s.requestRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	s.recordDecision(ctx, models.NotifyWarning, "Investment Rejected",
		"Request "+id+" was rejected: "+reason)
	log.Printf("✅ Request rejected: %s (reason: %s)", id, reason)

	return s.requestRepo.GetByID(ctx, id)
}

// beginDecision claims a request for one decision attempt
func (s *RequestService) beginDecision(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inflight[id] {
		return domain.ErrDecisionInFlight
	}
	s.inflight[id] = true
	return nil
}

func (s *RequestService) endDecision(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}

// recordDecision writes an audit notification, best effort
func (s *RequestService) recordDecision(ctx context.Context, notifyType, title, message string) {
	if s.notifyRepo == nil {
		return
	}
	n := &models.Notification{Title: title, Message: message, Type: notifyType}
	if err := s.notifyRepo.Create(ctx, n); err != nil {
		log.Printf("⚠️ Failed to record notification: %v", err)
	}
}
