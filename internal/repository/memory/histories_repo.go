package memory

import (
	"sync"

	"github.com/ledgerlab/pointd/internal/models"
)

type historiesRepo struct {
	mu     sync.Mutex
	rows   []models.PointHistory
	nextID int64
}

func (r *historiesRepo) Insert(userID, amount int64, txnType models.TransactionType, updateMillis int64) (models.PointHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	h := models.PointHistory{
		ID:           r.nextID,
		UserID:       userID,
		Amount:       amount,
		Type:         txnType,
		UpdateMillis: updateMillis,
	}
	r.rows = append(r.rows, h)
	return h, nil
}

func (r *historiesRepo) SelectAllByUserID(userID int64) ([]models.PointHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.PointHistory
	for _, h := range r.rows {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}
