package repository

import "github.com/ledgerlab/pointd/internal/models"

// Points is the balance table. Each call is atomic on its own; the service
// layer owns any cross-call locking.
type Points interface {
	// SelectByID never fails for an unseen user: it returns a zero-balance
	// record instead.
	SelectByID(userID int64) (models.UserPoint, error)
	// InsertOrUpdate overwrites the stored balance and returns the persisted
	// record with a fresh timestamp.
	InsertOrUpdate(userID, point int64) (models.UserPoint, error)
}

// Histories is the append-only transaction ledger.
type Histories interface {
	Insert(userID, amount int64, txnType models.TransactionType, updateMillis int64) (models.PointHistory, error)
	// SelectAllByUserID returns entries in insertion order.
	SelectAllByUserID(userID int64) ([]models.PointHistory, error)
}

type AuditLogs interface {
	Create(l models.AuditLog) error
	ListByUser(userID int64) ([]models.AuditLog, error)
}

type Repositories struct {
	Points    Points
	Histories Histories
	AuditLogs AuditLogs
}
