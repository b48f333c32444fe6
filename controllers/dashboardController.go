package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-order-panel/models"
	"go-order-panel/panel"
)

// partialDashboard is the dashboard with the error of the half that could not be refreshed.
type partialDashboard struct {
	panel.DashboardView
	Error string `json:"error"`
}

// RefreshDashboard loads stats and balance from the host, as the management tab does on open.
// When only one of them fails the refreshed half is still returned, with 207.
func (pc *PanelController) RefreshDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := pc.hostContext()
		defer cancel()

		if err := pc.session.RefreshDashboard(ctx); err != nil {
			var refreshErr *panel.DashboardRefreshError
			if errors.As(err, &refreshErr) && refreshErr.Partial() {
				pc.logger.Warn("dashboard partially refreshed", zap.Error(err))
				c.JSON(http.StatusMultiStatus, partialDashboard{
					DashboardView: pc.session.DashboardView(),
					Error:         err.Error(),
				})
				return
			}
			pc.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, pc.session.DashboardView())
	}
}

func (pc *PanelController) GetDashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, pc.session.DashboardView())
	}
}

func (pc *PanelController) GetQuickAmounts() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"balance": pc.session.Balance(),
			"amounts": pc.session.QuickAmounts(),
		})
	}
}

func (pc *PanelController) OpenWithdraw() gin.HandlerFunc {
	return func(c *gin.Context) {
		pc.session.OpenWithdraw()
		c.JSON(http.StatusOK, gin.H{"withdrawOpen": true})
	}
}

func (pc *PanelController) CloseWithdraw() gin.HandlerFunc {
	return func(c *gin.Context) {
		pc.session.CloseWithdraw()
		c.JSON(http.StatusOK, gin.H{"withdrawOpen": false})
	}
}

func (pc *PanelController) Withdraw() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.WithdrawAmountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		amount, err := panel.ParseAmount(string(req.Amount))
		if err != nil {
			pc.respondError(c, err)
			return
		}

		ctx, cancel := pc.hostContext()
		defer cancel()

		if err := pc.session.Withdraw(ctx, amount); err != nil {
			pc.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"balance": pc.session.Balance()})
	}
}
