package routes

import (
	controller "go-order-panel/controllers"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(incomingRoutes *gin.Engine, pc *controller.PanelController, staffOnly gin.HandlerFunc) {
	dashboard := incomingRoutes.Group("/dashboard", staffOnly)
	dashboard.GET("", pc.GetDashboard())
	dashboard.POST("/refresh", pc.RefreshDashboard())

	treasury := incomingRoutes.Group("/treasury", staffOnly)
	treasury.GET("/quick-amounts", pc.GetQuickAmounts())
	treasury.POST("/open", pc.OpenWithdraw())
	treasury.POST("/close", pc.CloseWithdraw())
	treasury.POST("/withdraw", pc.Withdraw())
}
