package routes

import (
	controller "go-order-panel/controllers"

	"github.com/gin-gonic/gin"
)

func PanelRoutes(incomingRoutes *gin.Engine, pc *controller.PanelController) {
	incomingRoutes.GET("/panel", pc.GetPanel())
	incomingRoutes.GET("/catalog", pc.GetCatalog())
	incomingRoutes.PUT("/catalog/filter", pc.SetFilter())

	incomingRoutes.GET("/cart", pc.GetCart())
	incomingRoutes.POST("/cart/items", pc.AddCartItem())
	incomingRoutes.PATCH("/cart/items/:index", pc.UpdateCartItem())
	incomingRoutes.DELETE("/cart/items/:index", pc.RemoveCartItem())

	incomingRoutes.PUT("/checkout/name", pc.SetOrderName())
	incomingRoutes.POST("/checkout/open", pc.OpenCheckout())
	incomingRoutes.POST("/checkout/close", pc.CloseCheckout())
	incomingRoutes.POST("/checkout/submit", pc.SubmitOrder())
}
