package response

import (
	"time"

	"orderhub/internal/domain/entities"
)

type UploadedFileResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type OrderResponse struct {
	ID            string `json:"id"`
	OrderNumber   int64  `json:"order_number"`
	DisplayNumber string `json:"display_number"`
	CustomerID    string `json:"customer_id"`

	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Quantity        int                    `json:"quantity"`
	ProductLink     string                 `json:"product_link,omitempty"`
	DeliveryAddress string                 `json:"delivery_address,omitempty"`
	PhoneNumber     string                 `json:"phone_number,omitempty"`
	UploadedFiles   []UploadedFileResponse `json:"uploaded_files,omitempty"`
	FilesUploadedAt *time.Time             `json:"files_uploaded_at,omitempty"`

	Status     string              `json:"status"`
	StatusMeta entities.StatusMeta `json:"status_meta"`

	SupplierPrice *float64 `json:"supplier_price,omitempty"`
	AdminMargin   *float64 `json:"admin_margin,omitempty"`
	FinalPrice    *float64 `json:"final_price,omitempty"`

	AssignedSupplierID  string     `json:"assigned_supplier_id,omitempty"`
	SupplierImageURL    string     `json:"supplier_image_url,omitempty"`
	SupplierCompletedAt *time.Time `json:"supplier_completed_at,omitempty"`
	PaymentReference    string     `json:"payment_reference,omitempty"`
	PaymentConfirmedAt  *time.Time `json:"payment_confirmed_at,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Quotes  []QuoteResponse   `json:"supplier_quotes,omitempty"`
	History []HistoryResponse `json:"status_history,omitempty"`
}

func FromOrder(o entities.Order) OrderResponse {
	resp := OrderResponse{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		DisplayNumber:       o.DisplayNumber(),
		CustomerID:          o.CustomerID,
		Title:               o.Title,
		Description:         o.Description,
		Quantity:            o.Quantity,
		ProductLink:         o.ProductLink,
		DeliveryAddress:     o.DeliveryAddress,
		PhoneNumber:         o.PhoneNumber,
		FilesUploadedAt:     o.FilesUploadedAt,
		Status:              string(o.Status),
		StatusMeta:          o.Status.Meta(),
		SupplierPrice:       o.SupplierPrice,
		AdminMargin:         o.AdminMargin,
		FinalPrice:          o.FinalPrice,
		AssignedSupplierID:  o.AssignedSupplierID,
		SupplierImageURL:    o.SupplierImageURL,
		SupplierCompletedAt: o.SupplierCompletedAt,
		PaymentReference:    o.PaymentReference,
		PaymentConfirmedAt:  o.PaymentConfirmedAt,
		Version:             o.Version,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
	for _, f := range o.UploadedFiles {
		resp.UploadedFiles = append(resp.UploadedFiles, UploadedFileResponse(f))
	}
	for _, q := range o.Quotes {
		resp.Quotes = append(resp.Quotes, FromQuote(q))
	}
	for _, h := range o.History {
		resp.History = append(resp.History, FromHistory(h))
	}
	return resp
}

func FromOrders(orders []entities.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromOrder(o))
	}
	return out
}
