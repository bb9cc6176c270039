//go:build e2e

package dbtest

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ResetDB wipes circulation state between subtests. TRUNCATE is much
// cheaper than dropping and recreating the per-process database.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, `
		TRUNCATE TABLE
			notification_jobs,
			holds,
			loans,
			books,
			sequence_counters
		RESTART IDENTITY CASCADE
	`)
	return err
}
