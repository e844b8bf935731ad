package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/medistock/pkg/middleware/auth"
	"github.com/Skotchmaster/medistock/pkg/tokens"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	StoreHandler    *StoreHTTP
	MedicineHandler *MedicineHTTP
	OrderHandler    *OrderHTTP
	VaultHandler    *VaultHTTP
	BillHandler     *BillHTTP
	ReviewHandler   *ReviewHTTP
	JWTSecret       []byte
	// AuthClient may be nil; expired cookies are then rejected instead of refreshed.
	AuthClient middleware.Refresher
	DB         Pinger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.DB == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.DB.Ping(ctx); err != nil {
			return c.NoContent(http.StatusServiceUnavailable)
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewAutoRefreshMiddleware(d.JWTSecret, d.AuthClient)
	userOnly := authMW.RequireRole(tokens.RoleUser)
	storeOnly := authMW.RequireRole(tokens.RoleStore)

	api := e.Group("/api/v1")

	stores := api.Group("/stores")
	stores.GET("/nearby", d.StoreHandler.Nearby)
	stores.GET("/search", d.StoreHandler.SearchByMedicine)
	stores.POST("", d.StoreHandler.Register, storeOnly)
	stores.GET("/me", d.StoreHandler.Mine, storeOnly)
	stores.PATCH("/me", d.StoreHandler.UpdateProfile, storeOnly)
	stores.PATCH("/me/status", d.StoreHandler.SetStatus, storeOnly)
	stores.PATCH("/me/location", d.StoreHandler.UpdateLocation, storeOnly)
	stores.GET("/:id", d.StoreHandler.GetStore)
	stores.GET("/:id/reviews", d.ReviewHandler.List)
	stores.POST("/:id/reviews", d.ReviewHandler.Submit, userOnly)

	medicines := api.Group("/medicines")
	medicines.GET("/search", d.MedicineHandler.Search)
	medicines.GET("/my", d.MedicineHandler.ListMine, storeOnly)
	medicines.POST("", d.MedicineHandler.Create, storeOnly)
	medicines.POST("/bulk", d.MedicineHandler.BulkImport, storeOnly)
	medicines.PATCH("/:id", d.MedicineHandler.Patch, storeOnly)
	medicines.DELETE("/:id", d.MedicineHandler.Delete, storeOnly)

	orders := api.Group("/orders")
	orders.POST("/request", d.OrderHandler.Request, userOnly)
	orders.GET("/my", d.OrderHandler.ListMine, userOnly)
	orders.GET("/my/:id", d.OrderHandler.GetMine, userOnly)
	orders.GET("/store", d.OrderHandler.ListStore, storeOnly)
	orders.POST("/:id/approve", d.OrderHandler.Approve, storeOnly)
	orders.POST("/:id/confirm", d.OrderHandler.Confirm, storeOnly)
	orders.POST("/:id/cancel", d.OrderHandler.Cancel, storeOnly)
	orders.PATCH("/:id/status", d.OrderHandler.UpdateStatus, storeOnly)
	orders.DELETE("/:id", d.OrderHandler.Delete, storeOnly)

	vault := api.Group("/vault", userOnly)
	vault.POST("/add", d.VaultHandler.Add)
	vault.GET("/my-vault", d.VaultHandler.List)
	vault.PATCH("/update/:id", d.VaultHandler.Update)
	vault.DELETE("/delete/:id", d.VaultHandler.Delete)
	vault.GET("/interactions", d.VaultHandler.Interactions)

	bills := api.Group("/bills", storeOnly)
	bills.POST("", d.BillHandler.Create)
	bills.GET("", d.BillHandler.List)
	bills.GET("/:id", d.BillHandler.Get)
}
