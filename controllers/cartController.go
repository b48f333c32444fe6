package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-order-panel/models"
)

func (pc *PanelController) cartBody() gin.H {
	return gin.H{"items": pc.session.Cart(), "total": pc.session.CartTotal()}
}

func (pc *PanelController) GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, pc.cartBody())
	}
}

func (pc *PanelController) AddCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AddCartItemRequest
		if !bind(c, &req) {
			return
		}
		if err := pc.session.AddToCart(req.Index, req.Quantity); err != nil {
			pc.respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, pc.cartBody())
	}
}

// UpdateCartItem sets a line's quantity. Zero or less removes the line.
func (pc *PanelController) UpdateCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CartQuantityRequest
		if !bind(c, &req) {
			return
		}
		pc.session.SetLineQuantity(c.Param("index"), *req.Quantity)
		c.JSON(http.StatusOK, pc.cartBody())
	}
}

func (pc *PanelController) RemoveCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		pc.session.RemoveLine(c.Param("index"))
		c.JSON(http.StatusOK, pc.cartBody())
	}
}
