package routes

import (
	"net/http"

	"servicedesk/internal/adapter/http/handlers"
	"servicedesk/internal/adapter/http/middleware"
	"servicedesk/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	PathOrders     = "/orders"
	PathQuotations = "/quotations"
	PathInventory  = "/inventory"
	PathPayments   = "/payments"
	PathCustomers  = "/customers"
	PathDevices    = "/devices"
)

// Handlers groups the HTTP handlers mounted under /v1.
type Handlers struct {
	Orders     *handlers.ServiceOrderHandler
	Quotations *handlers.QuotationHandler
	Inventory  *handlers.InventoryHandler
	Payments   *handlers.BillingPaymentHandler
	Registry   *handlers.RegistryHandler
}

// NewRouter mounts every route. /v1/ping, /metrics and /swagger are public;
// everything else under /v1 requires a bearer token.
func NewRouter(h Handlers, identity interfaces.IIdentityProvider, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	private := v1.Group("")
	private.Use(middleware.Auth(identity))
	addOrderRoutes(private, h.Orders, h.Quotations)
	addQuotationRoutes(private, h.Quotations)
	addInventoryRoutes(private, h.Inventory)
	addBillingRoutes(private, h.Payments)
	addRegistryRoutes(private, h.Registry)

	return router
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func setMiddlewares(router *gin.Engine) {
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
}
