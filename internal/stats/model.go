package stats

import "time"

// Bucket is one day of accumulated store activity.
type Bucket struct {
	Bucket       time.Time `json:"bucket"`
	Revenue      float64   `json:"revenue"`
	OrdersCount  int64     `json:"orders_count"`
	ProductsSold int64     `json:"products_sold"`
}

// Summary aggregates the dashboard headline numbers for a scope.
type Summary struct {
	TotalRevenue float64  `json:"total_revenue"`
	TotalOrders  int64    `json:"total_orders"`
	TotalStores  int64    `json:"total_stores"`
	ProductsSold int64    `json:"products_sold"`
	Series       []Bucket `json:"series"`
}
