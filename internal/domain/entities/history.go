package entities

import "time"

// OrderStatusHistory is one row of the append-only status ledger. Rows are
// never updated or deleted (the admin hard-delete cascade is the single
// documented exception); they are ordered by CreatedAt with Seq breaking ties
// in insertion order.
//
// Storage model (DynamoDB):
//   - PK: order_id
//   - SK: seq
//
// Status is the status transitioned into. ChangedBy is empty for
// system-triggered transitions.
type OrderStatusHistory struct {
	OrderID   string      `json:"order_id"`
	Seq       int64       `json:"seq"`
	Status    OrderStatus `json:"status"`
	Notes     string      `json:"notes,omitempty"`
	ChangedBy string      `json:"changed_by,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
