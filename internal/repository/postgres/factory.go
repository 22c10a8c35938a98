package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/ledgerlab/pointd/internal/repository"
)

func NewRepositories(pool *pgxpool.Pool) repo.Repositories {
	return repo.Repositories{
		Points:    &pointsRepo{pool},
		Histories: &historiesRepo{pool},
		AuditLogs: &auditLogsRepo{pool},
	}
}
