package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-order-panel/models"
	"go-order-panel/panel"
)

// PostHostEvent accepts a pushed message over HTTP, for hosts that cannot hold a websocket.
func (pc *PanelController) PostHostEvent() gin.HandlerFunc {
	return func(c *gin.Context) {
		var msg models.Message
		if err := c.ShouldBindJSON(&msg); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if msg.Event == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event is required"})
			return
		}
		if err := pc.dispatcher.Dispatch(msg); err != nil {
			if errors.Is(err, panel.ErrUnknownEvent) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusAccepted)
	}
}
