// Package memory provides the default in-process storage backend. Each
// table guards itself with its own mutex, so individual calls are atomic,
// but no locking spans calls — that is the service layer's job.
package memory

import (
	repo "github.com/ledgerlab/pointd/internal/repository"
	"github.com/ledgerlab/pointd/internal/models"
)

func NewRepositories() repo.Repositories {
	return repo.Repositories{
		Points:    &pointsRepo{rows: make(map[int64]models.UserPoint)},
		Histories: &historiesRepo{},
		AuditLogs: &auditLogsRepo{},
	}
}
