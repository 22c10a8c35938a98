package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerlab/pointd/internal/keylock"
	"github.com/ledgerlab/pointd/internal/metrics"
	"github.com/ledgerlab/pointd/internal/models"
	repo "github.com/ledgerlab/pointd/internal/repository"
	"github.com/ledgerlab/pointd/internal/worker"
)

const (
	actionCharge = "charge"
	actionUse    = "use"

	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
)

// PointService is the only place a balance is allowed to change. It
// serializes mutations per user through the lock registry and records a
// history entry for every committed mutation.
type PointService struct {
	points    repo.Points
	histories repo.Histories
	logs      repo.AuditLogs
	locks     *keylock.Registry
	wp        *worker.Pool
	maxCharge int64
}

func NewPointService(r repo.Repositories, wp *worker.Pool, maxCharge int64) *PointService {
	return &PointService{
		points:    r.Points,
		histories: r.Histories,
		logs:      r.AuditLogs,
		locks:     keylock.New(),
		wp:        wp,
		maxCharge: maxCharge,
	}
}

// Point returns the current balance without taking the user's lock; an
// unseen user reads as a zero-balance record.
func (s *PointService) Point(userID int64) (models.UserPoint, error) {
	return s.points.SelectByID(userID)
}

// Histories returns the user's committed mutations in insertion order.
func (s *PointService) Histories(userID int64) ([]models.PointHistory, error) {
	return s.histories.SelectAllByUserID(userID)
}

// AuditTrail returns every recorded charge/use attempt for the user,
// including rejected ones.
func (s *PointService) AuditTrail(userID int64) ([]models.AuditLog, error) {
	return s.logs.ListByUser(userID)
}

func (s *PointService) Charge(userID, amount int64) (models.UserPoint, error) {
	// amount bounds are checked before the lock so malformed requests never
	// contend with real traffic
	if err := validateCharge(amount, s.maxCharge); err != nil {
		s.reject(userID, actionCharge, amount, err)
		return models.UserPoint{}, err
	}
	p, err := s.mutate(userID, amount, amount, models.TxnCharge)
	if err != nil {
		s.reject(userID, actionCharge, amount, err)
		return models.UserPoint{}, err
	}
	metrics.OperationsTotal.WithLabelValues(string(models.TxnCharge)).Inc()
	s.audit(userID, actionCharge, amount, outcomeAccepted, "")
	return p, nil
}

func (s *PointService) Use(userID, amount int64) (models.UserPoint, error) {
	if err := validateUse(amount); err != nil {
		s.reject(userID, actionUse, amount, err)
		return models.UserPoint{}, err
	}
	p, err := s.mutate(userID, amount, -amount, models.TxnUse)
	if err != nil {
		s.reject(userID, actionUse, amount, err)
		return models.UserPoint{}, err
	}
	metrics.OperationsTotal.WithLabelValues(string(models.TxnUse)).Inc()
	s.audit(userID, actionUse, amount, outcomeAccepted, "")
	return p, nil
}

// mutate holds the user's lock for the whole read-modify-write so the
// committed balances form a serial history. Sufficiency and overflow are
// checked against the balance read under the lock, never a cached one.
func (s *PointService) mutate(userID, amount, delta int64, txnType models.TransactionType) (models.UserPoint, error) {
	s.locks.Acquire(userID)
	defer s.locks.Release(userID)

	current, err := s.points.SelectByID(userID)
	if err != nil {
		return models.UserPoint{}, fmt.Errorf("select point: %w", err)
	}
	next, err := computeNewBalance(current.Point, delta)
	if err != nil {
		return models.UserPoint{}, err
	}
	updated, err := s.points.InsertOrUpdate(userID, next)
	if err != nil {
		return models.UserPoint{}, fmt.Errorf("upsert point: %w", err)
	}
	// history strictly after the balance persists; only committed deltas
	if _, err := s.histories.Insert(userID, amount, txnType, updated.UpdateMillis); err != nil {
		return models.UserPoint{}, fmt.Errorf("append history: %w", err)
	}
	return updated, nil
}

func (s *PointService) reject(userID int64, action string, amount int64, err error) {
	metrics.RejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
	s.audit(userID, action, amount, outcomeRejected, err.Error())
}

// audit is fire-and-forget: a failed audit write never fails the operation.
func (s *PointService) audit(userID int64, action string, amount int64, outcome, detail string) {
	l := models.AuditLog{
		ID:            uuid.NewString(),
		UserID:        userID,
		Action:        action,
		Amount:        amount,
		Outcome:       outcome,
		Detail:        detail,
		CreatedMillis: time.Now().UnixMilli(),
	}
	s.wp.Submit(func() { _ = s.logs.Create(l) })
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, ErrPointOverflow):
		return "point_overflow"
	default:
		return "internal"
	}
}
