package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// durableSchema creates the cache table. The expires_at index serves the
// sweep's range delete.
const durableSchema = `
CREATE TABLE IF NOT EXISTS cv_cache_entries (
	key           TEXT PRIMARY KEY,
	value         BYTEA NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	expires_at    TIMESTAMPTZ NOT NULL,
	size_bytes    BIGINT NOT NULL,
	access_count  BIGINT NOT NULL DEFAULT 0,
	last_accessed TIMESTAMPTZ NOT NULL,
	tags          TEXT[] NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_cv_cache_entries_expires ON cv_cache_entries (expires_at);
`

// DurableTier is the persistent tier backed by PostgreSQL.
type DurableTier struct {
	pool *pgxpool.Pool
	cfg  TierConfig
	now  func() time.Time
}

// ConnectDurableTier establishes a connection pool and ensures the cache
// table exists.
func ConnectDurableTier(ctx context.Context, databaseURL string, cfg TierConfig) (*DurableTier, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, durableSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure cache schema: %w", err)
	}
	return &DurableTier{pool: pool, cfg: cfg, now: time.Now}, nil
}

// NewDurableTier wraps an existing pool, for callers that manage their own
// connection lifecycle. A nil clock means time.Now.
func NewDurableTier(pool *pgxpool.Pool, cfg TierConfig, now func() time.Time) *DurableTier {
	if now == nil {
		now = time.Now
	}
	return &DurableTier{pool: pool, cfg: cfg, now: now}
}

// Close releases the connection pool. Callers that supplied their own pool
// through NewDurableTier manage its lifecycle themselves and should not call
// Close.
func (d *DurableTier) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}

// Name implements Tier.
func (d *DurableTier) Name() TierName { return TierDurable }

// Config implements Tier.
func (d *DurableTier) Config() TierConfig { return d.cfg }

// Get implements Tier. The access bump and the expiry check happen in one
// statement.
func (d *DurableTier) Get(ctx context.Context, key string) (*Entry, error) {
	now := d.now()
	var e Entry
	err := d.pool.QueryRow(ctx,
		`UPDATE cv_cache_entries
		 SET access_count = access_count + 1, last_accessed = $2
		 WHERE key = $1 AND expires_at > $2
		 RETURNING key, value, created_at, expires_at, size_bytes, access_count, last_accessed, tags`,
		key, now,
	).Scan(&e.Key, &e.Value, &e.CreatedAt, &e.ExpiresAt, &e.Size, &e.AccessCount, &e.LastAccessed, &e.Tags)
	if err == pgx.ErrNoRows {
		// Lazily purge an expired row if one is present.
		_, _ = d.pool.Exec(ctx, `DELETE FROM cv_cache_entries WHERE key = $1 AND expires_at <= $2`, key, now)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("durable tier get %s: %w", key, err)
	}
	return &e, nil
}

// Set implements Tier; the upsert fully replaces any prior entry.
func (d *DurableTier) Set(ctx context.Context, e *Entry) (int, error) {
	if int64(e.Size) > d.cfg.MaxBytes {
		logOversized(TierDurable, e.Key, int64(e.Size), d.cfg.MaxBytes)
		return 0, nil
	}

	evicted, err := d.evictForSpace(ctx, int64(e.Size), e.Key)
	if err != nil {
		return evicted, err
	}

	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err = d.pool.Exec(ctx,
		`INSERT INTO cv_cache_entries (key, value, created_at, expires_at, size_bytes, access_count, last_accessed, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at,
			size_bytes = EXCLUDED.size_bytes,
			access_count = EXCLUDED.access_count,
			last_accessed = EXCLUDED.last_accessed,
			tags = EXCLUDED.tags`,
		e.Key, []byte(e.Value), e.CreatedAt, e.ExpiresAt, e.Size, e.AccessCount, e.LastAccessed, tags,
	)
	if err != nil {
		return evicted, fmt.Errorf("durable tier set %s: %w", e.Key, err)
	}
	return evicted, nil
}

// Remove implements Tier; removing an absent key is a no-op.
func (d *DurableTier) Remove(ctx context.Context, key string) error {
	if _, err := d.pool.Exec(ctx, `DELETE FROM cv_cache_entries WHERE key = $1`, key); err != nil {
		return fmt.Errorf("durable tier remove %s: %w", key, err)
	}
	return nil
}

// Clear implements Tier.
func (d *DurableTier) Clear(ctx context.Context, f Filter) (int, error) {
	query := `DELETE FROM cv_cache_entries WHERE TRUE`
	args := []any{}
	if len(f.Tags) > 0 {
		args = append(args, f.Tags)
		query += fmt.Sprintf(` AND tags && $%d::text[]`, len(args))
	}
	if f.OlderThan > 0 {
		args = append(args, d.now().Add(-f.OlderThan))
		query += fmt.Sprintf(` AND created_at < $%d`, len(args))
	}
	tag, err := d.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("durable tier clear: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Sweep implements Tier via a range delete over the expires_at index.
func (d *DurableTier) Sweep(ctx context.Context) (int, error) {
	tag, err := d.pool.Exec(ctx, `DELETE FROM cv_cache_entries WHERE expires_at < $1`, d.now())
	if err != nil {
		return 0, fmt.Errorf("durable tier sweep: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// evictForSpace removes oldest-accessed rows until the new entry fits both
// budgets.
func (d *DurableTier) evictForSpace(ctx context.Context, size int64, replaceKey string) (int, error) {
	var totalBytes int64
	var count int
	err := d.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(size_bytes), 0), COUNT(*) FROM cv_cache_entries WHERE key <> $1`,
		replaceKey,
	).Scan(&totalBytes, &count)
	if err != nil {
		return 0, fmt.Errorf("durable tier usage: %w", err)
	}
	if totalBytes+size <= d.cfg.MaxBytes && count+1 <= d.cfg.MaxEntries {
		return 0, nil
	}

	rows, err := d.pool.Query(ctx,
		`SELECT key, size_bytes FROM cv_cache_entries WHERE key <> $1 ORDER BY last_accessed ASC, created_at ASC`,
		replaceKey,
	)
	if err != nil {
		return 0, fmt.Errorf("durable tier eviction scan: %w", err)
	}
	defer rows.Close()

	type victim struct {
		key  string
		size int64
	}
	var victims []victim
	for rows.Next() {
		var v victim
		if err := rows.Scan(&v.key, &v.size); err != nil {
			return 0, fmt.Errorf("durable tier eviction scan: %w", err)
		}
		victims = append(victims, v)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("durable tier eviction scan: %w", err)
	}

	evicted := 0
	for _, v := range victims {
		if totalBytes+size <= d.cfg.MaxBytes && count+1 <= d.cfg.MaxEntries {
			break
		}
		if _, err := d.pool.Exec(ctx, `DELETE FROM cv_cache_entries WHERE key = $1`, v.key); err != nil {
			return evicted, fmt.Errorf("durable tier evict %s: %w", v.key, err)
		}
		totalBytes -= v.size
		count--
		evicted++
	}
	return evicted, nil
}
