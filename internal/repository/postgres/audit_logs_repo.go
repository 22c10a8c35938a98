package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerlab/pointd/internal/models"
)

type auditLogsRepo struct{ pool *pgxpool.Pool }

func (r *auditLogsRepo) Create(l models.AuditLog) error {
	_, err := r.pool.Exec(
		context.Background(),
		`INSERT INTO audit_logs(id, user_id, action, amount, outcome, detail, created_at_ms)
		 VALUES($1,$2,$3,$4,$5,$6,$7)`,
		l.ID, l.UserID, l.Action, l.Amount, l.Outcome, l.Detail, l.CreatedMillis,
	)
	return err
}

func (r *auditLogsRepo) ListByUser(userID int64) ([]models.AuditLog, error) {
	rows, err := r.pool.Query(
		context.Background(),
		`SELECT id, user_id, action, amount, outcome, detail, created_at_ms
		   FROM audit_logs
		  WHERE user_id=$1
		  ORDER BY created_at_ms ASC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Amount, &l.Outcome, &l.Detail, &l.CreatedMillis); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
