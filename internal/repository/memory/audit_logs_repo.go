package memory

import (
	"sync"

	"github.com/ledgerlab/pointd/internal/models"
)

type auditLogsRepo struct {
	mu   sync.Mutex
	rows []models.AuditLog
}

func (r *auditLogsRepo) Create(l models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, l)
	return nil
}

func (r *auditLogsRepo) ListByUser(userID int64) ([]models.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AuditLog
	for _, l := range r.rows {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}
