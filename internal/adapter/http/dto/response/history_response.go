package response

import (
	"time"

	"orderhub/internal/domain/entities"
)

type HistoryResponse struct {
	OrderID    string              `json:"order_id"`
	Seq        int64               `json:"seq"`
	Status     string              `json:"status"`
	StatusMeta entities.StatusMeta `json:"status_meta"`
	Notes      string              `json:"notes,omitempty"`
	ChangedBy  string              `json:"changed_by,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

func FromHistory(h entities.OrderStatusHistory) HistoryResponse {
	return HistoryResponse{
		OrderID:    h.OrderID,
		Seq:        h.Seq,
		Status:     string(h.Status),
		StatusMeta: h.Status.Meta(),
		Notes:      h.Notes,
		ChangedBy:  h.ChangedBy,
		CreatedAt:  h.CreatedAt,
	}
}

func FromHistoryList(rows []entities.OrderStatusHistory) []HistoryResponse {
	out := make([]HistoryResponse, 0, len(rows))
	for _, h := range rows {
		out = append(out, FromHistory(h))
	}
	return out
}
