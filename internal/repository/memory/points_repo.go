package memory

import (
	"sync"
	"time"

	"github.com/ledgerlab/pointd/internal/models"
)

type pointsRepo struct {
	mu   sync.RWMutex
	rows map[int64]models.UserPoint
}

func (r *pointsRepo) SelectByID(userID int64) (models.UserPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.rows[userID]; ok {
		return p, nil
	}
	// implicit zero record for an unseen user
	return models.UserPoint{ID: userID, Point: 0, UpdateMillis: time.Now().UnixMilli()}, nil
}

func (r *pointsRepo) InsertOrUpdate(userID, point int64) (models.UserPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := models.UserPoint{ID: userID, Point: point, UpdateMillis: time.Now().UnixMilli()}
	r.rows[userID] = p
	return p, nil
}
