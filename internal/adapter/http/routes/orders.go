package routes

import (
	"orderhub/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

func addOrderRoutes(rg *gin.RouterGroup, orders *handlers.OrderHandler, quotes *handlers.QuoteHandler, payments *handlers.PaymentHandler, uploads *handlers.UploadHandler) {
	group := rg.Group("/orders")

	group.POST("", orders.CreateOrder)
	group.GET("", orders.ListOrders)
	group.GET("/:order_id", orders.GetOrder)
	group.PUT("/:order_id", orders.UpdateOrder)
	group.DELETE("/:order_id", orders.DeleteOrder)

	group.POST("/:order_id/cancel", orders.CancelOrder)
	group.POST("/:order_id/approve", orders.ApproveOrder)
	group.POST("/:order_id/reject", orders.RejectOrder)
	group.POST("/:order_id/price", orders.SetFinalPrice)
	group.POST("/:order_id/production/complete", orders.CompleteProduction)
	group.POST("/:order_id/transit", orders.StartTransit)
	group.POST("/:order_id/transit/revert", orders.RevertToProduction)
	group.POST("/:order_id/deliver", orders.MarkDelivered)

	group.POST("/:order_id/files", uploads.UploadFiles)

	group.POST("/:order_id/quotes", quotes.SubmitQuote)
	group.PUT("/:order_id/quotes", quotes.UpdateQuote)
	group.GET("/:order_id/quotes", quotes.ListQuotes)

	group.POST("/:order_id/payment/reference", payments.GeneratePaymentReference)
	group.GET("/:order_id/payment", payments.GetPaymentStatus)
}

func addPaymentWebhookRoutes(rg *gin.RouterGroup, payments *handlers.PaymentHandler) {
	rg.POST("/payments/confirm", payments.ConfirmPayment)
}
