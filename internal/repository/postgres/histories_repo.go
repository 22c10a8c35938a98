package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerlab/pointd/internal/models"
)

type historiesRepo struct{ pool *pgxpool.Pool }

func (r *historiesRepo) Insert(userID, amount int64, txnType models.TransactionType, updateMillis int64) (models.PointHistory, error) {
	h := models.PointHistory{UserID: userID, Amount: amount, Type: txnType, UpdateMillis: updateMillis}
	err := r.pool.QueryRow(
		context.Background(),
		`INSERT INTO point_histories(user_id, amount, type, updated_at_ms)
		 VALUES($1, $2, $3, $4)
		 RETURNING id`,
		userID, amount, txnType, updateMillis,
	).Scan(&h.ID)
	return h, err
}

func (r *historiesRepo) SelectAllByUserID(userID int64) ([]models.PointHistory, error) {
	rows, err := r.pool.Query(
		context.Background(),
		`SELECT id, user_id, amount, type, updated_at_ms
		   FROM point_histories
		  WHERE user_id=$1
		  ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PointHistory
	for rows.Next() {
		var h models.PointHistory
		if err := rows.Scan(&h.ID, &h.UserID, &h.Amount, &h.Type, &h.UpdateMillis); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
