package orders

import "time"

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusShipped OrderStatus = "shipped"
)

// Order is placed by a storefront customer. Orders are created by the
// external storefront and read-only here.
type Order struct {
	ID            string      `json:"id"`
	StoreID       string      `json:"store_id"`
	Status        OrderStatus `json:"status"`
	TotalAmount   float64     `json:"total_amount"`
	Currency      string      `json:"currency"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderWithStore decorates an order with its store name for table rendering.
type OrderWithStore struct {
	Order
	StoreName string `json:"store_name"`
}

// ListOrdersRequest carries repository-level list filters. OwnerID nil means
// unrestricted; non-nil restricts to orders of stores owned by that
// identity, via the store join.
type ListOrdersRequest struct {
	OwnerID *string
	Status  *OrderStatus
	Limit   int
	Offset  int
}
