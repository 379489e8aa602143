package routes

import (
	"servicedesk/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addBillingRoutes(rg *gin.RouterGroup, paymentHandler *handlers.BillingPaymentHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/:order_id", paymentHandler.ChargeOutstanding)
		payments.GET("/:order_id", paymentHandler.ListByServiceOrder)
		payments.GET("/:order_id/:payment_id", paymentHandler.GetPayment)
	}
}
