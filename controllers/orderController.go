package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-order-panel/models"
)

func (pc *PanelController) GetOpenOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, pc.session.OpenOrders())
	}
}

func (pc *PanelController) completedPage() gin.H {
	return gin.H{
		"orders":     pc.session.CurrentPageOrders(),
		"page":       pc.session.CurrentPage(),
		"totalPages": pc.session.TotalPages(),
	}
}

// GetCompletedOrders returns the current page of completed orders; ?page=n moves there first.
func (pc *PanelController) GetCompletedOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, ok := c.GetQuery("page"); ok {
			page, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a number"})
				return
			}
			pc.session.GoToPage(page)
		}
		c.JSON(http.StatusOK, pc.completedPage())
	}
}

func (pc *PanelController) ChangeCompletedPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PageRequest
		if !bind(c, &req) {
			return
		}
		switch req.Action {
		case "next":
			pc.session.NextPage()
		case "prev":
			pc.session.PrevPage()
		case "goto":
			pc.session.GoToPage(req.Page)
		}
		c.JSON(http.StatusOK, pc.completedPage())
	}
}

func (pc *PanelController) GetTodaysOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		orders := pc.session.TodaysCompletedOrders()
		c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
	}
}

func (pc *PanelController) OpenOrderDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := pc.session.OpenDetail(c.Param("order_id")); err != nil {
			pc.respondError(c, err)
			return
		}
		detail, _ := pc.session.Detail()
		c.JSON(http.StatusOK, detail)
	}
}

func (pc *PanelController) GetOrderDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		detail, ok := pc.session.Detail()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "no order is open"})
			return
		}
		c.JSON(http.StatusOK, detail)
	}
}

func (pc *PanelController) CloseOrderDetail() gin.HandlerFunc {
	return func(c *gin.Context) {
		pc.session.CloseDetail()
		c.Status(http.StatusNoContent)
	}
}

func (pc *PanelController) UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.StatusChangeRequest
		if !bind(c, &req) {
			return
		}
		ctx, cancel := pc.hostContext()
		defer cancel()

		orderId := c.Param("order_id")
		if err := pc.session.ChangeStatus(ctx, orderId, req.Status); err != nil {
			pc.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orderId": orderId, "status": models.NormalizeStatus(string(req.Status))})
	}
}

func (pc *PanelController) CompleteOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := pc.hostContext()
		defer cancel()

		orderId := c.Param("order_id")
		if err := pc.session.CompleteOrder(ctx, orderId); err != nil {
			pc.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orderId": orderId, "status": models.StatusCompleted})
	}
}
