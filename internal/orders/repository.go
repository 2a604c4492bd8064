package orders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines read access to orders. Orders are never mutated by the
// back office.
type Repository interface {
	List(ctx context.Context, req ListOrdersRequest) ([]OrderWithStore, int, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// List returns orders visible to the given filter. Owner restriction goes
// through the store join: there is no denormalized owner column on orders.
func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]OrderWithStore, int, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if req.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("s.owner_id = $%d", argPos))
		args = append(args, *req.OwnerID)
		argPos++
	}
	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("o.status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + conditions[0]
		for i := 1; i < len(conditions); i++ {
			whereClause += " AND " + conditions[i]
		}
	}

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM orders o JOIN stores s ON o.store_id = s.id %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`
		SELECT o.id, o.store_id, o.status, o.total_amount, o.currency,
		       o.customer_name, o.customer_email, o.created_at,
		       s.name AS store_name
		FROM orders o
		JOIN stores s ON o.store_id = s.id
		%s
		ORDER BY o.created_at DESC, o.id
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)
	args = append(args, limit, req.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []OrderWithStore
	for rows.Next() {
		var o OrderWithStore
		if err := rows.Scan(
			&o.ID, &o.StoreID, &o.Status, &o.TotalAmount, &o.Currency,
			&o.CustomerName, &o.CustomerEmail, &o.CreatedAt,
			&o.StoreName,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

var _ Repository = (*repository)(nil)
