package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/soldiers/admin-gateway/internal/api/handler"
	"github.com/soldiers/admin-gateway/internal/api/middleware"
	"github.com/soldiers/admin-gateway/internal/core/access"
	"github.com/soldiers/admin-gateway/internal/core/domain"
	"github.com/soldiers/admin-gateway/internal/core/ports"
	infrahttp "github.com/soldiers/admin-gateway/internal/infrastructure/http"
	"github.com/soldiers/admin-gateway/internal/infrastructure/http/handlers"
)

// Deps is everything the router needs to serve the dashboard.
type Deps struct {
	Auth      ports.AuthService
	Carts     ports.CartService
	Resources ports.ResourceService
	Reports   ports.ReportService
	Receipts  ports.ReceiptService
	Access    *access.Evaluator

	LoginLimiter *middleware.RateLimiter
	CORSOrigins  []string
	Probes       map[string]handlers.Pinger
	Logger       zerolog.Logger
	// Registerer receives the HTTP request metrics. Nil means the default
	// registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.CORS(d.CORSOrigins))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "soldiers_gateway",
		Registerer: d.Registerer,
	}))
	e.Use(middleware.RequestLogger(d.Logger))

	infrahttp.RegisterOps(e, d.Probes)

	authHandler := handler.NewAuthHandler(d.Auth, d.Carts, d.Access, d.Logger)
	cartHandler := handler.NewCartHandler(d.Carts)
	resourceHandler := handler.NewResourceHandler(d.Resources)
	reportHandler := handler.NewReportHandler(d.Reports)
	receiptHandler := handler.NewReceiptHandler(d.Receipts)

	gate := func(r domain.Resource, a domain.Action, admin bool) echo.MiddlewareFunc {
		return middleware.Gate(d.Access, access.Gate{Resource: r, Action: a, RequireAdmin: admin})
	}

	// --- Public routes ---
	v1 := e.Group("/v1")
	v1.POST("/auth/login", authHandler.Login, d.LoginLimiter.Middleware())
	v1.GET("/news/latest", reportHandler.LatestNews)

	// --- Session routes ---
	priv := v1.Group("", middleware.Session(d.Auth, d.Carts, d.Logger))
	priv.POST("/auth/logout", authHandler.Logout)
	priv.GET("/me", authHandler.Me)
	priv.GET("/me/navigation", authHandler.Navigation)
	priv.GET("/dashboard/:widget", reportHandler.Dashboard, gate("", "", false))

	salesView := gate(domain.ResourceSales, domain.ActionView, false)
	salesEdit := gate(domain.ResourceSales, domain.ActionEdit, false)

	cart := priv.Group("/cart")
	cart.GET("", cartHandler.View, salesView)
	cart.POST("", cartHandler.Open, salesEdit)
	cart.DELETE("", cartHandler.Discard, salesEdit)
	cart.GET("/products", cartHandler.Products, salesView)
	cart.GET("/games", cartHandler.Games, salesView)
	cart.POST("/reload", cartHandler.Reload, salesView)
	cart.PUT("/game", cartHandler.SelectGame, salesEdit)
	cart.POST("/items", cartHandler.AddItem, salesEdit)
	cart.PUT("/items/:productId", cartHandler.SetQuantity, salesEdit)
	cart.DELETE("/items/:productId", cartHandler.RemoveItem, salesEdit)
	cart.POST("/submit", cartHandler.Submit, salesEdit)

	priv.GET("/sales/history", reportHandler.SalesHistory, salesView)
	priv.GET("/receipts", receiptHandler.List, salesView)
	priv.GET("/budgets/summary", reportHandler.BudgetSummary, gate(domain.ResourceBudget, domain.ActionView, false))
	priv.GET("/budgets/export", reportHandler.BudgetExport, gate(domain.ResourceBudget, domain.ActionView, false))
	priv.GET("/trips/:id/budget", reportHandler.TripBudget, gate(domain.ResourceTrips, domain.ActionView, false))

	// --- Screen forms ---
	for _, sc := range domain.Screens {
		read := gate(sc.Resource, domain.ActionView, sc.RequireAdmin)
		write := gate(sc.Resource, domain.ActionEdit, sc.RequireAdmin)

		g := priv.Group("/" + sc.Name)
		g.GET("", resourceHandler.List(sc), read)
		g.GET("/:id", resourceHandler.Get(sc), read)
		if sc.ReadOnly {
			continue
		}
		g.POST("", resourceHandler.Create(sc), write)
		g.PUT("/:id", resourceHandler.Update(sc), write)
		g.DELETE("/:id", resourceHandler.Delete(sc), write)
	}

	return e
}
