package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (pc *PanelController) GetNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		n, ok := pc.session.Notification()
		if !ok {
			c.JSON(http.StatusOK, gin.H{"notification": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notification": n})
	}
}

func (pc *PanelController) DismissNotification() gin.HandlerFunc {
	return func(c *gin.Context) {
		pc.session.DismissNotification()
		c.Status(http.StatusNoContent)
	}
}
