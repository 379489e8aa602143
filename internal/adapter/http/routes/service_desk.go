package routes

import (
	"servicedesk/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addOrderRoutes(rg *gin.RouterGroup, orderHandler *handlers.ServiceOrderHandler, quotationHandler *handlers.QuotationHandler) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.Create)
		orders.GET("", orderHandler.List)
		orders.GET("/available", orderHandler.Available)
		orders.GET("/mine", orderHandler.Mine)
		orders.GET("/:id", orderHandler.Get)
		orders.PATCH("/:id", orderHandler.Edit)
		orders.DELETE("/:id", orderHandler.Delete)
		orders.POST("/:id/claim", orderHandler.Claim)
		orders.POST("/:id/start", orderHandler.Start)
		orders.POST("/:id/finalize", orderHandler.Finalize)
		orders.POST("/:id/payment", orderHandler.RecordPayment)
		orders.POST("/:id/deliver", orderHandler.Deliver)
		orders.GET("/:id/report", orderHandler.Report)

		orders.GET("/:id/quotations", quotationHandler.ListByServiceOrder)
		orders.POST("/:id/quotations", quotationHandler.Submit)
	}
}

func addQuotationRoutes(rg *gin.RouterGroup, quotationHandler *handlers.QuotationHandler) {
	quotations := rg.Group(PathQuotations)
	{
		quotations.GET("", quotationHandler.ListByState)
		quotations.GET("/:id", quotationHandler.Get)
		quotations.POST("/:id/approve", quotationHandler.Approve)
		quotations.POST("/:id/reject", quotationHandler.Reject)
		quotations.POST("/:id/cancel", quotationHandler.Cancel)
		quotations.POST("/:id/revise", quotationHandler.Revise)
	}
}

func addInventoryRoutes(rg *gin.RouterGroup, inventoryHandler *handlers.InventoryHandler) {
	inventory := rg.Group(PathInventory)
	{
		inventory.GET("", inventoryHandler.List)
		inventory.GET("/low-stock", inventoryHandler.LowStock)
		inventory.GET("/:id", inventoryHandler.Get)
		inventory.POST("", inventoryHandler.Create)
		inventory.PATCH("/:id", inventoryHandler.Update)
		inventory.DELETE("/:id", inventoryHandler.Deactivate)
		inventory.POST("/:id/restock", inventoryHandler.Restock)
		inventory.POST("/:id/withdraw", inventoryHandler.Withdraw)
	}
}

func addRegistryRoutes(rg *gin.RouterGroup, registryHandler *handlers.RegistryHandler) {
	customers := rg.Group(PathCustomers)
	{
		customers.POST("", registryHandler.CreateCustomer)
		customers.GET("", registryHandler.ListCustomers)
		customers.GET("/:id", registryHandler.GetCustomer)
		customers.PATCH("/:id", registryHandler.EditCustomer)
		customers.DELETE("/:id", registryHandler.DeactivateCustomer)
		customers.GET("/:id/devices", registryHandler.ListCustomerDevices)
	}

	devices := rg.Group(PathDevices)
	{
		devices.POST("", registryHandler.RegisterDevice)
		devices.GET("", registryHandler.ListDevices)
		devices.GET("/:id", registryHandler.GetDevice)
		devices.PATCH("/:id", registryHandler.EditDevice)
		devices.DELETE("/:id", registryHandler.DeactivateDevice)
		devices.POST("/:id/photos/remove", registryHandler.RemovePhoto)
	}
}
