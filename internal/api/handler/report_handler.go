package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

type ReportHandler struct {
	svc ports.ReportService
}

func NewReportHandler(svc ports.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

type salesHistoryResponse struct {
	Items      []domain.Sale `json:"items"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	Revenue    string        `json:"revenue"`
	Units      int           `json:"units"`
}

// SalesHistory lists recorded sales with their aggregate revenue.
//
// @Summary      Sales history
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        gameId  query     int     false  "Only sales of this game"
// @Param        q       query     string  false  "Game name or sale id"
// @Param        page    query     int     false  "Page, 1-based"
// @Param        limit   query     int     false  "Page size"
// @Success      200     {object}  salesHistoryResponse
// @Router       /v1/sales/history [get]
func (h *ReportHandler) SalesHistory(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	gameID, err := queryInt(c, "gameId")
	if err != nil {
		return err
	}
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	res, err := h.svc.SalesHistory(c.Request().Context(), s, ports.SalesHistoryInput{
		Filter: domain.SaleFilter{GameID: int64(gameID), Search: c.QueryParam("q")},
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}
	items := res.Items
	if items == nil {
		items = []domain.Sale{}
	}
	return c.JSON(http.StatusOK, salesHistoryResponse{
		Items: items, Total: res.Total, Page: res.Page, Limit: res.Limit,
		TotalPages: res.TotalPages, Revenue: res.Revenue, Units: res.Units,
	})
}

// Dashboard relays one dashboard widget.
//
// @Summary      Dashboard widget
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        widget  path      string  true  "overview, top-products, sales-by-seller, revenue-by-game or stock-status"
// @Success      200     {object}  map[string]any
// @Failure      404     {object}  errorResponse
// @Router       /v1/dashboard/{widget} [get]
func (h *ReportHandler) Dashboard(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	out, err := h.svc.Dashboard(c.Request().Context(), s, c.Param("widget"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// BudgetSummary returns the club's income, expense and balance.
//
// @Summary      Budget summary
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.LedgerSummary
// @Router       /v1/budgets/summary [get]
func (h *ReportHandler) BudgetSummary(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	sum, err := h.svc.BudgetSummary(c.Request().Context(), s)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

// BudgetExport streams the budget spreadsheet.
//
// @Summary      Export the budget
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200
// @Router       /v1/budgets/export [get]
func (h *ReportHandler) BudgetExport(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	d, err := h.svc.BudgetExport(c.Request().Context(), s)
	if err != nil {
		return err
	}
	defer d.Body.Close()

	disposition := d.Disposition
	if disposition == "" {
		disposition = `attachment; filename="orcamento.xlsx"`
	}
	contentType := d.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, disposition)
	return c.Stream(http.StatusOK, contentType, d.Body)
}

// TripBudget returns a trip's budget lines and their balance.
//
// @Summary      Trip budget
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Trip id"
// @Success      200  {object}  ports.TripBudget
// @Router       /v1/trips/{id}/budget [get]
func (h *ReportHandler) TripBudget(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tb, err := h.svc.TripBudget(c.Request().Context(), s, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tb)
}

// LatestNews is public; it backs the club's landing page.
//
// @Summary      Latest news
// @Tags         reports
// @Produce      json
// @Success      200  {array}  map[string]any
// @Router       /v1/news/latest [get]
func (h *ReportHandler) LatestNews(c echo.Context) error {
	news, err := h.svc.LatestNews(c.Request().Context())
	if err != nil {
		return err
	}
	if news == nil {
		news = []domain.Record{}
	}
	return c.JSON(http.StatusOK, news)
}
