package routes

import (
	controller "go-order-panel/controllers"

	"github.com/gin-gonic/gin"
)

// OrderRoutes registers the staff order management routes behind staffOnly.
func OrderRoutes(incomingRoutes *gin.Engine, pc *controller.PanelController, staffOnly gin.HandlerFunc) {
	orders := incomingRoutes.Group("/orders", staffOnly)
	orders.GET("/open", pc.GetOpenOrders())
	orders.GET("/completed", pc.GetCompletedOrders())
	orders.POST("/completed/page", pc.ChangeCompletedPage())
	orders.GET("/today", pc.GetTodaysOrders())
	orders.GET("/detail", pc.GetOrderDetail())
	orders.DELETE("/detail", pc.CloseOrderDetail())
	orders.POST("/:order_id/detail", pc.OpenOrderDetail())
	orders.PATCH("/:order_id/status", pc.UpdateOrderStatus())
	orders.POST("/:order_id/complete", pc.CompleteOrder())
}
