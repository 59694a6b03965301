package domain

import "time"

// OrderStatus is the fulfilment state of a customer order. Orders are created
// by the storefront; the back office only reads them for the dashboard.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderShipped   OrderStatus = "shipped"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is a single product line within an order.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unit_price" json:"unit_price"`
}

// Order is a storefront order, read-only from this service's point of view.
type Order struct {
	ID          string      `bson:"_id" json:"id"`
	Number      string      `bson:"number" json:"number"`
	CustomerID  string      `bson:"customer_id" json:"customer_id"`
	Status      OrderStatus `bson:"status" json:"status"`
	TotalAmount float64     `bson:"total_amount" json:"total_amount"`
	Items       []OrderItem `bson:"items" json:"items"`
	CreatedAt   time.Time   `bson:"created_at" json:"created_at"`
}

// Customer is a storefront customer, read-only here.
type Customer struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
