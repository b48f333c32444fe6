package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-order-panel/models"
	"go-order-panel/panel"
)

// PanelController exposes the session to the panel UI.
type PanelController struct {
	session     *panel.Session
	dispatcher  *panel.Dispatcher
	hub         *Hub
	logger      *zap.Logger
	hostTimeout time.Duration
}

func NewPanelController(session *panel.Session, dispatcher *panel.Dispatcher, hub *Hub, logger *zap.Logger, hostTimeout time.Duration) *PanelController {
	if logger == nil {
		logger = zap.NewNop()
	}
	pc := &PanelController{
		session:     session,
		dispatcher:  dispatcher,
		hub:         hub,
		logger:      logger,
		hostTimeout: hostTimeout,
	}
	if hub != nil {
		session.Subscribe(pc.broadcast)
	}
	return pc
}

// hostContext bounds a host call. It is not tied to the HTTP request: once sent, a request
// runs to completion even if the UI goes away.
func (pc *PanelController) hostContext() (context.Context, context.CancelFunc) {
	if pc.hostTimeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), pc.hostTimeout)
}

// respondError maps engine errors onto status codes.
func (pc *PanelController) respondError(c *gin.Context, err error) {
	var (
		validationErr *panel.ValidationError
		hostErr       *panel.HostError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErr.Message, "reason": validationErr.Reason})
	case errors.As(err, &hostErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": hostErr.Message, "op": hostErr.Op})
	case panel.IsTransport(err):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
	default:
		pc.logger.Error("unexpected error", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// bind decodes and validates the JSON body into req, answering 400 on failure.
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	if err := models.Validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (pc *PanelController) GetPanel() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, pc.session.PanelView())
	}
}

func (pc *PanelController) GetCatalog() gin.HandlerFunc {
	return func(c *gin.Context) {
		filters, active := pc.session.Filters()
		c.JSON(http.StatusOK, gin.H{
			"items":   pc.session.FilteredCatalog(),
			"filters": filters,
			"filter":  active,
		})
	}
}

func (pc *PanelController) SetFilter() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.FilterRequest
		if !bind(c, &req) {
			return
		}
		if err := pc.session.SetFilter(req.Filter); err != nil {
			pc.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": pc.session.FilteredCatalog(), "filter": req.Filter})
	}
}
