package entities

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OrderStatus represents the fulfillment lifecycle of a sourcing order.
//
// Domain notes:
//   - Orders normally start in request_created. Deployments with moderation
//     enabled start them in admin_review instead.
//   - delivered and canceled are terminal: no outgoing transitions.
//   - in_customs exists in the enum and storage but no current transition
//     produces it; it is reserved for a future leg of the transit flow.

type OrderStatus string

const (
	StatusAdminReview       OrderStatus = "admin_review"
	StatusRequestCreated    OrderStatus = "request_created"
	StatusPriceQuoted       OrderStatus = "price_quoted"
	StatusPaymentConfirmed  OrderStatus = "payment_confirmed"
	StatusProductionStarted OrderStatus = "production_started"
	StatusInTransit         OrderStatus = "in_transit"
	StatusInCustoms         OrderStatus = "in_customs"
	StatusDelivered         OrderStatus = "delivered"
	StatusCanceled          OrderStatus = "canceled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCanceled
}

// IsValid reports whether s is one of the known lifecycle statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := statusMeta[s]
	return ok
}

// StatusMeta carries the display attributes for a status. The per-view
// label/color maps of the legacy dashboards are collapsed into this single
// canonical table.
type StatusMeta struct {
	Label          string `json:"label"`
	Color          string `json:"color"`
	ContainerColor string `json:"container_color"`
}

var statusMeta = map[OrderStatus]StatusMeta{
	StatusAdminReview:       {Label: "Admin Review", Color: "text-purple-600 bg-purple-100", ContainerColor: "bg-purple-50 border-purple-200"},
	StatusRequestCreated:    {Label: "Request Created", Color: "text-blue-600 bg-blue-100", ContainerColor: "bg-blue-50 border-blue-200"},
	StatusPriceQuoted:       {Label: "Price Quoted", Color: "text-yellow-600 bg-yellow-100", ContainerColor: "bg-yellow-50 border-yellow-200"},
	StatusPaymentConfirmed:  {Label: "Payment Confirmed", Color: "text-green-600 bg-green-100", ContainerColor: "bg-green-50 border-green-200"},
	StatusProductionStarted: {Label: "Production Started", Color: "text-orange-600 bg-orange-100", ContainerColor: "bg-orange-50 border-orange-200"},
	StatusInTransit:         {Label: "In Transit", Color: "text-indigo-600 bg-indigo-100", ContainerColor: "bg-indigo-50 border-indigo-200"},
	StatusInCustoms:         {Label: "In Customs", Color: "text-cyan-600 bg-cyan-100", ContainerColor: "bg-cyan-50 border-cyan-200"},
	StatusDelivered:         {Label: "Delivered", Color: "text-emerald-600 bg-emerald-100", ContainerColor: "bg-emerald-50 border-emerald-200"},
	StatusCanceled:          {Label: "Canceled", Color: "text-red-600 bg-red-100", ContainerColor: "bg-red-50 border-red-200"},
}

// Meta returns the display metadata for s. Unknown statuses get a zero value.
func (s OrderStatus) Meta() StatusMeta {
	return statusMeta[s]
}

// UploadedFile is the stored reference to a blob-store object attached to an
// order. The service only keeps the metadata; bytes live in the blob store.
type UploadedFile struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Order is a customer's sourcing request moving through the fulfillment
// lifecycle.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (customer_id-index): customer_id
//   - GSI2 (assigned_supplier_id-index): assigned_supplier_id
//   - GSI3 (status-index): status
//   - GSI4 (payment_reference-index): payment_reference
//
// Pricing fields:
//   - SupplierPrice is the price offered by the assigned supplier.
//   - FinalPrice is the price charged to the customer.
//   - AdminMargin stores the absolute profit when pricing came from a supplier
//     quote (fixed 20%) and a percentage when set by the admin override. The
//     dual meaning is preserved for compatibility with existing callers.
//
// Version increments on every write and guards conditional updates.
type Order struct {
	ID          string `json:"id"`
	OrderNumber int64  `json:"order_number"`
	CustomerID  string `json:"customer_id"`

	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Quantity        int            `json:"quantity"`
	ProductLink     string         `json:"product_link,omitempty"`
	DeliveryAddress string         `json:"delivery_address,omitempty"`
	PhoneNumber     string         `json:"phone_number,omitempty"`
	UploadedFiles   []UploadedFile `json:"uploaded_files,omitempty"`
	FilesUploadedAt *time.Time     `json:"files_uploaded_at,omitempty"`

	Status        OrderStatus `json:"status"`
	SupplierPrice *float64    `json:"supplier_price,omitempty"`
	AdminMargin   *float64    `json:"admin_margin,omitempty"`
	FinalPrice    *float64    `json:"final_price,omitempty"`

	AssignedSupplierID  string     `json:"assigned_supplier_id,omitempty"`
	SupplierImageURL    string     `json:"supplier_image_url,omitempty"`
	SupplierCompletedAt *time.Time `json:"supplier_completed_at,omitempty"`
	PaymentReference    string     `json:"payment_reference,omitempty"`
	PaymentConfirmedAt  *time.Time `json:"payment_confirmed_at,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Quotes  []SupplierQuote      `json:"supplier_quotes,omitempty"`
	History []OrderStatusHistory `json:"order_status_history,omitempty"`
}

// DisplayNumber renders the order number the way it appears to users,
// zero-padded with a "#" prefix.
func (o Order) DisplayNumber() string {
	return fmt.Sprintf("#%06d", o.OrderNumber)
}

// MatchesNumber reports whether a search query refers to this order's number.
// The query may carry the "#" prefix and leading zeros or omit them.
func (o Order) MatchesNumber(query string) bool {
	q := strings.TrimPrefix(strings.TrimSpace(query), "#")
	if q == "" {
		return false
	}
	n, err := strconv.ParseInt(q, 10, 64)
	if err != nil {
		return false
	}
	return n == o.OrderNumber
}

// Editable reports whether the owning customer may still change order content.
func (o Order) Editable() bool {
	return o.Status == StatusRequestCreated || o.Status == StatusPriceQuoted
}

// CancelableBy reports whether the given role may cancel the order in its
// current status. Customers may cancel only before payment; admins from any
// non-terminal status.
func (o Order) CancelableBy(role Role) bool {
	switch role {
	case RoleCustomer:
		return o.Status == StatusRequestCreated || o.Status == StatusPriceQuoted
	case RoleAdmin:
		return !o.Status.IsTerminal()
	default:
		return false
	}
}
