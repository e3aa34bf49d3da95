package request

import (
	"strings"
	"time"

	"orderhub/internal/domain/entities"
	"orderhub/internal/usecase"

	"github.com/google/uuid"
)

// UploadedFileRequest is attachment metadata sent by clients that uploaded
// through the file endpoint (or reference an external URL).
type UploadedFileRequest struct {
	Name string `json:"name" binding:"required"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	URL  string `json:"url" binding:"required"`
}

// OrderContentRequest carries the customer-editable order fields. It is the
// payload of both order creation and full content updates.
type OrderContentRequest struct {
	Title           string                `json:"title" binding:"required"`
	Description     string                `json:"description" binding:"required"`
	Quantity        int                   `json:"quantity" binding:"required,min=1"`
	ProductLink     string                `json:"product_link"`
	DeliveryAddress string                `json:"delivery_address"`
	PhoneNumber     string                `json:"phone_number"`
	UploadedFiles   []UploadedFileRequest `json:"uploaded_files"`
}

// ToInput converts the payload into the use-case input. File entries get
// server-side ids and upload timestamps; client-supplied ids are ignored.
func (r OrderContentRequest) ToInput() usecase.OrderContentInput {
	now := time.Now().UTC()
	files := make([]entities.UploadedFile, 0, len(r.UploadedFiles))
	for _, f := range r.UploadedFiles {
		files = append(files, entities.UploadedFile{
			ID:         uuid.NewString(),
			Name:       strings.TrimSpace(f.Name),
			Size:       f.Size,
			Type:       f.Type,
			URL:        f.URL,
			UploadedAt: now,
		})
	}
	if len(files) == 0 {
		files = nil
	}
	return usecase.OrderContentInput{
		Title:           r.Title,
		Description:     r.Description,
		Quantity:        r.Quantity,
		ProductLink:     strings.TrimSpace(r.ProductLink),
		DeliveryAddress: strings.TrimSpace(r.DeliveryAddress),
		PhoneNumber:     strings.TrimSpace(r.PhoneNumber),
		Files:           files,
	}
}

type CancelOrderRequest struct {
	Notes string `json:"notes"`
}

type DeliveredRequest struct {
	Notes string `json:"notes"`
}

// FinalPriceRequest sets the customer price from the lowest quote plus an
// admin margin. The pointer keeps an explicit zero margin distinguishable
// from a missing field.
type FinalPriceRequest struct {
	MarginPercent *float64 `json:"margin_percent" binding:"required"`
}

type QuoteRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
	Notes string  `json:"notes"`
}

// CompleteProductionRequest carries the completion proof. Production only
// starts once the supplier has uploaded an image of the finished goods.
type CompleteProductionRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
}
