package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerlab/pointd/internal/models"
)

type pointsRepo struct{ pool *pgxpool.Pool }

func (r *pointsRepo) SelectByID(userID int64) (models.UserPoint, error) {
	var p models.UserPoint
	err := r.pool.QueryRow(
		context.Background(),
		`SELECT user_id, point, updated_at_ms
		   FROM points
		  WHERE user_id=$1`,
		userID,
	).Scan(&p.ID, &p.Point, &p.UpdateMillis)
	if errors.Is(err, pgx.ErrNoRows) {
		// unseen user reads as a zero-balance record
		return models.UserPoint{ID: userID, Point: 0, UpdateMillis: time.Now().UnixMilli()}, nil
	}
	return p, err
}

func (r *pointsRepo) InsertOrUpdate(userID, point int64) (models.UserPoint, error) {
	var p models.UserPoint
	err := r.pool.QueryRow(
		context.Background(),
		`INSERT INTO points(user_id, point, updated_at_ms)
		 VALUES($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE
		    SET point = EXCLUDED.point,
		        updated_at_ms = EXCLUDED.updated_at_ms
		 RETURNING user_id, point, updated_at_ms`,
		userID, point, time.Now().UnixMilli(),
	).Scan(&p.ID, &p.Point, &p.UpdateMillis)
	return p, err
}
