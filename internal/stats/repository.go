package stats

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryPort defines data access for store statistics.
type RepositoryPort interface {
	Totals(ctx context.Context, ownerID *string) (Summary, error)
	Series(ctx context.Context, ownerID *string, since time.Time) ([]Bucket, error)
	// RollupDay accumulates the day's orders into store_stats buckets and
	// returns the number of buckets written.
	RollupDay(ctx context.Context, day time.Time) (int64, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Totals returns the headline aggregates, restricted to the owner's stores
// when ownerID is non-nil.
func (r *Repository) Totals(ctx context.Context, ownerID *string) (Summary, error) {
	var s Summary

	query := `
		SELECT COALESCE(SUM(st.revenue), 0),
		       COALESCE(SUM(st.orders_count), 0),
		       COALESCE(SUM(st.products_sold), 0)
		FROM store_stats st
		JOIN stores s ON st.store_id = s.id`
	storeQuery := `SELECT COUNT(*) FROM stores`
	var args []interface{}
	if ownerID != nil {
		query += ` WHERE s.owner_id = $1`
		storeQuery += ` WHERE owner_id = $1`
		args = append(args, *ownerID)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.TotalRevenue, &s.TotalOrders, &s.ProductsSold); err != nil {
		return Summary{}, err
	}
	if err := r.pool.QueryRow(ctx, storeQuery, args...).Scan(&s.TotalStores); err != nil {
		return Summary{}, err
	}
	return s, nil
}

// Series returns daily buckets since the given date, oldest first.
func (r *Repository) Series(ctx context.Context, ownerID *string, since time.Time) ([]Bucket, error) {
	query := `
		SELECT st.bucket, SUM(st.revenue), SUM(st.orders_count), SUM(st.products_sold)
		FROM store_stats st
		JOIN stores s ON st.store_id = s.id
		WHERE st.bucket >= $1`
	args := []interface{}{since}
	if ownerID != nil {
		query += ` AND s.owner_id = $2`
		args = append(args, *ownerID)
	}
	query += ` GROUP BY st.bucket ORDER BY st.bucket`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Bucket
	for rows.Next() {
		var b Bucket
		if err := rows.Scan(&b.Bucket, &b.Revenue, &b.OrdersCount, &b.ProductsSold); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// RollupDay accumulates paid and shipped orders of the given day into
// store_stats. Idempotent per day via upsert.
func (r *Repository) RollupDay(ctx context.Context, day time.Time) (int64, error) {
	bucket := day.UTC().Truncate(24 * time.Hour)
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO store_stats (store_id, bucket, revenue, orders_count, products_sold)
		SELECT o.store_id, $1::date, SUM(o.total_amount), COUNT(*), COUNT(*)
		FROM orders o
		WHERE o.created_at >= $1 AND o.created_at < $1::date + INTERVAL '1 day'
		  AND o.status IN ('paid', 'shipped')
		GROUP BY o.store_id
		ON CONFLICT (store_id, bucket) DO UPDATE SET
			revenue = EXCLUDED.revenue,
			orders_count = EXCLUDED.orders_count,
			products_sold = EXCLUDED.products_sold`,
		bucket,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ RepositoryPort = (*Repository)(nil)
