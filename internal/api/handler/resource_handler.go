package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

// ResourceHandler serves the list and edit forms of every screen. Handlers are
// built per screen; gating happens in the router.
type ResourceHandler struct {
	svc ports.ResourceService
}

func NewResourceHandler(svc ports.ResourceService) *ResourceHandler {
	return &ResourceHandler{svc: svc}
}

// List handles GET /v1/{screen}.
//
// @Summary      List a screen's records
// @Tags         screens
// @Produce      json
// @Security     BearerAuth
// @Param        screen  path      string  true   "Screen name"
// @Param        q       query     string  false  "Search term"
// @Param        page    query     int     false  "Page, 1-based"
// @Param        limit   query     int     false  "Page size, max 100"
// @Success      200     {object}  listResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Failure      502     {object}  errorResponse
// @Router       /v1/{screen} [get]
func (h *ResourceHandler) List(screen domain.Screen) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := ctxSession(c)
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

		in := ports.ListInput{Search: c.QueryParam("q"), Page: page, Limit: limit}
		for _, f := range screen.FilterFields {
			if v := c.QueryParam(f); v != "" {
				if in.Filters == nil {
					in.Filters = make(map[string]string, len(screen.FilterFields))
				}
				in.Filters[f] = v
			}
		}

		res, err := h.svc.List(c.Request().Context(), s, screen, in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toListResponse(res))
	}
}

// Get handles GET /v1/{screen}/{id}.
//
// @Summary      Fetch one record
// @Tags         screens
// @Produce      json
// @Security     BearerAuth
// @Param        screen  path      string  true  "Screen name"
// @Param        id      path      int     true  "Record id"
// @Success      200     {object}  map[string]any
// @Failure      404     {object}  errorResponse
// @Router       /v1/{screen}/{id} [get]
func (h *ResourceHandler) Get(screen domain.Screen) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := ctxSession(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		rec, err := h.svc.Get(c.Request().Context(), s, screen, strconv.FormatInt(id, 10))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rec)
	}
}

// Create handles POST /v1/{screen}.
//
// @Summary      Create a record
// @Description  The body is validated against the screen's form before it is forwarded.
// @Tags         screens
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        screen  path      string  true  "Screen name"
// @Success      201     {object}  mutationResponse
// @Failure      400     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /v1/{screen} [post]
func (h *ResourceHandler) Create(screen domain.Screen) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := ctxSession(c)
		if err != nil {
			return err
		}
		cmd, err := bindCommand(c, screen, true)
		if err != nil {
			return err
		}

		res, err := h.svc.Create(c.Request().Context(), s, screen, cmd)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, mutationResponse{Record: res.Record, List: toListResponse(res.List)})
	}
}

// Update handles PUT /v1/{screen}/{id}.
//
// @Summary      Replace a record
// @Tags         screens
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        screen  path      string  true  "Screen name"
// @Param        id      path      int     true  "Record id"
// @Success      200     {object}  mutationResponse
// @Failure      422     {object}  errorResponse
// @Router       /v1/{screen}/{id} [put]
func (h *ResourceHandler) Update(screen domain.Screen) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := ctxSession(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}
		cmd, err := bindCommand(c, screen, false)
		if err != nil {
			return err
		}

		res, err := h.svc.Update(c.Request().Context(), s, screen, strconv.FormatInt(id, 10), cmd)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, mutationResponse{Record: res.Record, List: toListResponse(res.List)})
	}
}

// Delete handles DELETE /v1/{screen}/{id}.
//
// @Summary      Delete a record
// @Tags         screens
// @Produce      json
// @Security     BearerAuth
// @Param        screen  path      string  true  "Screen name"
// @Param        id      path      int     true  "Record id"
// @Success      200     {object}  mutationResponse
// @Router       /v1/{screen}/{id} [delete]
func (h *ResourceHandler) Delete(screen domain.Screen) echo.HandlerFunc {
	return func(c echo.Context) error {
		s, err := ctxSession(c)
		if err != nil {
			return err
		}
		id, err := pathID(c, "id")
		if err != nil {
			return err
		}

		res, err := h.svc.Delete(c.Request().Context(), s, screen, strconv.FormatInt(id, 10))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, mutationResponse{List: toListResponse(res.List)})
	}
}

func bindCommand(c echo.Context, screen domain.Screen, create bool) (any, error) {
	factory, ok := screenCommands[screen.Name]
	if !ok {
		return nil, domain.ErrReadOnlyScreen
	}
	cmd := factory.update()
	if create {
		cmd = factory.create()
	}
	if err := c.Bind(cmd); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(cmd); err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	normalize(cmd)
	return cmd, nil
}
