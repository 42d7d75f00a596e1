package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

type errorResponse struct {
	Error string `json:"error"`
}

type listResponse struct {
	Items      []domain.Record `json:"items"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
}

func toListResponse(r *ports.ListResult) *listResponse {
	if r == nil {
		return nil
	}
	items := r.Items
	if items == nil {
		items = []domain.Record{}
	}
	return &listResponse{Items: items, Total: r.Total, Page: r.Page, Limit: r.Limit, TotalPages: r.TotalPages}
}

// mutationResponse carries the record the backend echoed and the refetched
// first page. List is null when the refetch failed.
type mutationResponse struct {
	Record domain.Record `json:"record,omitempty"`
	List   *listResponse `json:"list"`
}

// pathID parses a numeric :name path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// queryInt reads an optional integer query parameter.
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return n, nil
}
