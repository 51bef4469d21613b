package database

import (
	"context"
	"fmt"
	"time"

	"jobharvest/internal/store"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const (
	upsertBatchSize = 50
	//short pause between batches to stay friendly to the pooler
	interBatchDelay = 200 * time.Millisecond
)

// Repository syncs the merged job table to a Supabase Postgres.
type Repository struct {
	db  *pgxpool.Pool
	log *zap.SugaredLogger
}

// Connect builds the optional sync client. Callers hold it as a nil-able
// value instead of reading a process-wide availability flag.
func Connect(ctx context.Context, connString string, log *zap.SugaredLogger) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: Supabase connection pooler (PgBouncer in Transaction mode)
	// does not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool, log: log}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

const upsertQuery = `
	INSERT INTO jobs (job_id, job_link, title, company, location, posted,
		minimum_requirements, good_to_have, job_description,
		years_of_experience, keywords, source)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (job_id)
	DO UPDATE SET
		job_link = EXCLUDED.job_link,
		title = EXCLUDED.title,
		company = EXCLUDED.company,
		location = EXCLUDED.location,
		posted = EXCLUDED.posted,
		minimum_requirements = EXCLUDED.minimum_requirements,
		good_to_have = EXCLUDED.good_to_have,
		job_description = EXCLUDED.job_description,
		years_of_experience = EXCLUDED.years_of_experience,
		keywords = EXCLUDED.keywords,
		source = EXCLUDED.source`

// UpsertJobs pushes the merged table in fixed-size batches. A failing
// batch is logged in full and skipped; the remaining batches still run.
func (r *Repository) UpsertJobs(ctx context.Context, table store.Table) error {
	ids := table.Order
	for start := 0; start < len(ids); start += upsertBatchSize {
		end := start + upsertBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		batch := &pgx.Batch{}
		for _, id := range ids[start:end] {
			row := table.Rows[id]
			batch.Queue(upsertQuery,
				row["Job ID"], row["Job Link"], row["Title"], row["Company"],
				row["Location"], row["Posted"], row["Minimum Requirements"],
				row["Good to Have"], row["Job Description"],
				row["Years of Experience"], row["Keywords"], row["Source"],
			)
		}

		if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
			r.log.Errorf("❌ Failed to upsert batch %d-%d: %v", start, end, err)
		} else {
			r.log.Infof("Upserted jobs %d-%d of %d", start+1, end, len(ids))
		}

		if end < len(ids) {
			select {
			case <-time.After(interBatchDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}
