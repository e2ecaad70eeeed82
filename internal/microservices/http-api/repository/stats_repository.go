package repository

import (
	"context"
	"fmt"

	"blogdesk/internal/moderation"

	"github.com/jmoiron/sqlx"
)

// AccountStats counts plain user accounts by activity.
type AccountStats struct {
	TotalUsers    int64 `db:"total_users" json:"total_users"`
	ActiveUsers   int64 `db:"active_users" json:"active_users"`
	InactiveUsers int64 `db:"inactive_users" json:"inactive_users"`
	TotalAdmins   int64 `db:"total_admins" json:"total_admins"`
}

// StatsRepository runs the reporting aggregates. It shares the connection
// pool gorm opened but talks plain SQL.
type StatsRepository interface {
	AccountStats(ctx context.Context) (AccountStats, error)
	BlogStatusCounts(ctx context.Context) (map[moderation.Status]int64, error)
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

const accountStatsQuery = `
SELECT
  COUNT(*) FILTER (WHERE role = $1)                       AS total_users,
  COUNT(*) FILTER (WHERE role = $1 AND is_active)         AS active_users,
  COUNT(*) FILTER (WHERE role = $1 AND NOT is_active)     AS inactive_users,
  COUNT(*) FILTER (WHERE role IN ($2, $3))                AS total_admins
FROM profiles`

func (r *statsRepository) AccountStats(ctx context.Context) (AccountStats, error) {
	var stats AccountStats
	err := r.db.GetContext(ctx, &stats, accountStatsQuery,
		moderation.RoleUser, moderation.RoleAdmin, moderation.RoleSuperAdmin)
	if err != nil {
		return AccountStats{}, fmt.Errorf("account stats: %w", err)
	}
	return stats, nil
}

func (r *statsRepository) BlogStatusCounts(ctx context.Context) (map[moderation.Status]int64, error) {
	rows := []struct {
		Status string `db:"status"`
		Count  int64  `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS count FROM blogs GROUP BY status`); err != nil {
		return nil, fmt.Errorf("blog status counts: %w", err)
	}
	counts := map[moderation.Status]int64{
		moderation.StatusDraft:    0,
		moderation.StatusPending:  0,
		moderation.StatusApproved: 0,
		moderation.StatusRejected: 0,
	}
	for _, row := range rows {
		counts[moderation.Status(row.Status)] = row.Count
	}
	return counts, nil
}
