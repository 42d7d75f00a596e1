package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

type ReceiptHandler struct {
	svc ports.ReceiptService
}

func NewReceiptHandler(svc ports.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{svc: svc}
}

type receiptItemResponse struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

type receiptResponse struct {
	ID          string                `json:"id"`
	SaleID      int64                 `json:"saleId"`
	GameID      int64                 `json:"gameId"`
	Items       []receiptItemResponse `json:"items"`
	Total       string                `json:"total"`
	SubmittedAt time.Time             `json:"submittedAt"`
}

func toReceiptResponse(r *domain.Receipt) receiptResponse {
	items := make([]receiptItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, receiptItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
		})
	}
	return receiptResponse{
		ID:          r.ID,
		SaleID:      r.SaleID,
		GameID:      r.GameID,
		Items:       items,
		Total:       r.Total.StringFixed(2),
		SubmittedAt: r.SubmittedAt,
	}
}

// List returns the seller's own receipts recorded by this gateway.
//
// @Summary      My receipts
// @Tags         receipts
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max receipts, up to 200"
// @Success      200    {array}   receiptResponse
// @Router       /v1/receipts [get]
func (h *ReceiptHandler) List(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	receipts, err := h.svc.List(c.Request().Context(), s, limit)
	if err != nil {
		return err
	}
	out := make([]receiptResponse, 0, len(receipts))
	for _, r := range receipts {
		out = append(out, toReceiptResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}
