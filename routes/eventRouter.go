package routes

import (
	controller "go-order-panel/controllers"

	"github.com/gin-gonic/gin"
)

func EventRoutes(incomingRoutes *gin.Engine, pc *controller.PanelController, hub *controller.Hub, hostOnly gin.HandlerFunc) {
	incomingRoutes.GET("/notification", pc.GetNotification())
	incomingRoutes.DELETE("/notification", pc.DismissNotification())
	incomingRoutes.POST("/host/events", hostOnly, pc.PostHostEvent())
	incomingRoutes.GET("/ws", hub.HandleWebSocket())
}
