package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-order-panel/models"
)

func (pc *PanelController) checkoutBody() gin.H {
	return gin.H{
		"orderName":    pc.session.OrderName(),
		"checkoutOpen": pc.session.CheckoutOpen(),
		"total":        pc.session.CartTotal(),
	}
}

func (pc *PanelController) SetOrderName() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.OrderNameRequest
		if !bind(c, &req) {
			return
		}
		pc.session.SetOrderName(req.Name)
		c.JSON(http.StatusOK, pc.checkoutBody())
	}
}

func (pc *PanelController) OpenCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pc.session.OpenCheckout(); err != nil {
			pc.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pc.checkoutBody())
	}
}

func (pc *PanelController) CloseCheckout() gin.HandlerFunc {
	return func(c *gin.Context) {
		pc.session.CloseCheckout()
		c.JSON(http.StatusOK, pc.checkoutBody())
	}
}

func (pc *PanelController) SubmitOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := pc.hostContext()
		defer cancel()

		order, err := pc.session.Submit(ctx)
		if err != nil {
			pc.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
