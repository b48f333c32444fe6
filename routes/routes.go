package routes

import (
	controller "go-order-panel/controllers"
	"go-order-panel/middleware"
	"go-order-panel/panel"

	"github.com/gin-gonic/gin"
)

// Register mounts every panel route on router. Management routes are limited to staff panels;
// host pushes over HTTP must carry hostToken.
func Register(router *gin.Engine, session *panel.Session, pc *controller.PanelController, hub *controller.Hub, hostToken string) {
	staffOnly := middleware.StaffOnly(session)
	hostOnly := middleware.HostOnly(hostToken)

	PanelRoutes(router, pc)
	OrderRoutes(router, pc, staffOnly)
	DashboardRoutes(router, pc, staffOnly)
	EventRoutes(router, pc, hub, hostOnly)
}
