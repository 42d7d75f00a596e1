package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
)

// CartHandler serves the sales screen of the signed-in seller.
type CartHandler struct {
	svc ports.CartService
}

func NewCartHandler(svc ports.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

type openCartRequest struct {
	GameID int64 `json:"gameId" validate:"gte=0"`
}

type selectGameRequest struct {
	GameID int64 `json:"gameId" validate:"required,gt=0"`
}

type addItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// advisoryResponse is a stock-ceiling notice. The cart is returned unchanged.
type advisoryResponse struct {
	Error    string              `json:"error"`
	Advisory bool                `json:"advisory"`
	Cart     domain.CartSnapshot `json:"cart"`
}

type submitResponse struct {
	Sale         *domain.Sale        `json:"sale"`
	Cart         domain.CartSnapshot `json:"cart"`
	CatalogStale bool                `json:"catalogStale"`
}

// respond writes the snapshot, or the advisory notice when err is a
// stock-ceiling signal.
func respond(c echo.Context, code int, snap domain.CartSnapshot, err error) error {
	if err != nil {
		if domain.IsAdvisory(err) {
			return c.JSON(http.StatusConflict, advisoryResponse{Error: err.Error(), Advisory: true, Cart: snap})
		}
		return err
	}
	return c.JSON(code, snap)
}

// Open starts a new cart with a fresh catalog, replacing any previous one.
//
// @Summary      Open the sales cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      openCartRequest  false  "Game to pin the cart to"
// @Success      201   {object}  domain.CartSnapshot
// @Failure      404   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/cart [post]
func (h *CartHandler) Open(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req openCartRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	snap, err := h.svc.Open(c.Request().Context(), s, ports.OpenCartInput{GameID: req.GameID})
	return respond(c, http.StatusCreated, snap, err)
}

// View returns the cart.
//
// @Summary      Current cart
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CartSnapshot
// @Failure      404  {object}  errorResponse
// @Router       /v1/cart [get]
func (h *CartHandler) View(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	snap, err := h.svc.View(s)
	return respond(c, http.StatusOK, snap, err)
}

// Discard drops the cart.
//
// @Summary      Discard the cart
// @Tags         cart
// @Security     BearerAuth
// @Success      204
// @Router       /v1/cart [delete]
func (h *CartHandler) Discard(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	h.svc.Discard(s)
	return c.NoContent(http.StatusNoContent)
}

// Products lists the products that can still be added.
//
// @Summary      Available products
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Name filter"
// @Success      200  {array}   domain.Product
// @Router       /v1/cart/products [get]
func (h *CartHandler) Products(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	products, err := h.svc.Products(s, c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Games lists the games that accept sales.
//
// @Summary      Sellable games
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Game
// @Router       /v1/cart/games [get]
func (h *CartHandler) Games(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	games, err := h.svc.Games(s)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, games)
}

// SelectGame sets the game the sale is recorded against.
//
// @Summary      Select the game
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      selectGameRequest  true  "Game"
// @Success      200   {object}  domain.CartSnapshot
// @Failure      422   {object}  errorResponse
// @Router       /v1/cart/game [put]
func (h *CartHandler) SelectGame(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req selectGameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	snap, err := h.svc.SelectGame(s, req.GameID)
	return respond(c, http.StatusOK, snap, err)
}

// AddItem adds one unit of a product.
//
// @Summary      Add a product
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addItemRequest  true  "Product"
// @Success      200   {object}  domain.CartSnapshot
// @Failure      409   {object}  advisoryResponse
// @Router       /v1/cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	snap, err := h.svc.Add(s, req.ProductID)
	return respond(c, http.StatusOK, snap, err)
}

// SetQuantity sets a line's quantity. Zero or less removes the line.
//
// @Summary      Set a quantity
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      int                 true  "Product id"
// @Param        body       body      setQuantityRequest  true  "Quantity"
// @Success      200        {object}  domain.CartSnapshot
// @Failure      409        {object}  advisoryResponse
// @Router       /v1/cart/items/{productId} [put]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "productId")
	if err != nil {
		return err
	}
	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	snap, err := h.svc.SetQuantity(s, id, *req.Quantity)
	return respond(c, http.StatusOK, snap, err)
}

// RemoveItem drops a line. Removing an absent product is a no-op.
//
// @Summary      Remove a product
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      int  true  "Product id"
// @Success      200        {object}  domain.CartSnapshot
// @Router       /v1/cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "productId")
	if err != nil {
		return err
	}
	snap, err := h.svc.Remove(s, id)
	return respond(c, http.StatusOK, snap, err)
}

// Reload refetches the catalog without touching the cart lines.
//
// @Summary      Reload the catalog
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CartSnapshot
// @Router       /v1/cart/reload [post]
func (h *CartHandler) Reload(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	snap, err := h.svc.Reload(c.Request().Context(), s)
	return respond(c, http.StatusOK, snap, err)
}

// Submit records the sale on the backend.
//
// @Summary      Submit the sale
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  submitResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/cart/submit [post]
func (h *CartHandler) Submit(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	res, err := h.svc.Submit(c.Request().Context(), s)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, submitResponse{Sale: res.Sale, Cart: res.Cart, CatalogStale: res.CatalogStale})
}
