package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/dto"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/api/middleware"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/internal/domain/notification"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/logger"
	"github.com/Navodhya-Fernando/dreamshift-ems-sub000/pkg/security/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	service   notification.Service
	logger    *logger.Logger
	jwtSecret string
	upgrader  websocket.Upgrader
}

func NewNotificationHandler(service notification.Service, jwtSecret string, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		service:   service,
		logger:    log,
		jwtSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ListNotifications returns the user's inbox with the unread counter
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	var (
		notifications []*notification.Notification
		err           error
	)
	if c.Query("unread") == "true" {
		notifications, err = h.service.ListUnread(c.Request.Context(), email, limit, offset)
	} else {
		notifications, err = h.service.List(c.Request.Context(), email, limit, offset)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	unread, err := h.service.CountUnread(c.Request.Context(), email)
	if err != nil {
		h.logger.Error("Failed to count unread notifications", zap.Error(err))
		unread = 0
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, NotificationToResponse(n))
	}
	c.JSON(http.StatusOK, gin.H{"data": dto.NotificationListResponse{
		Notifications: out,
		UnreadCount:   unread,
	}})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification ID"})
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, email); err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, notification.ErrNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, notification.ErrForbidden):
			statusCode = http.StatusForbidden
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"read": true}})
}

// MarkAllRead marks every unread notification as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"read": true}})
}

// StreamNotifications upgrades to a WebSocket and pushes the user's
// notifications as they are created. Browsers cannot set an Authorization
// header on WebSocket upgrades, so a token query parameter is accepted too.
func (h *NotificationHandler) StreamNotifications(c *gin.Context) {
	email, exists := middleware.GetUserEmail(c)
	if !exists {
		tokenParam := c.Query("token")
		if tokenParam == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := auth.ValidateToken(tokenParam, h.jwtSecret)
		if err != nil {
			h.logger.Error("WebSocket token validation failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		email = claims.Email
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade to WebSocket",
			zap.Error(err),
			zap.String("user", email),
			zap.String("remote_addr", c.Request.RemoteAddr))
		return
	}
	defer ws.Close()

	ws.SetReadLimit(1024 * 10)
	ws.SetReadDeadline(time.Now().Add(60 * time.Second))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	notifChan, cancel, err := h.service.Subscribe(email)
	if err != nil {
		h.logger.Error("Failed to subscribe to notifications",
			zap.Error(err),
			zap.String("user", email))
		ws.WriteJSON(gin.H{"error": "failed to subscribe to notifications"})
		return
	}
	defer cancel()

	if unread, err := h.service.CountUnread(c.Request.Context(), email); err == nil {
		if writeErr := ws.WriteJSON(gin.H{"type": "count", "count": unread}); writeErr != nil {
			return
		}
	}

	// Drain the read side so close frames and pongs are processed
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure,
					websocket.CloseAbnormalClosure) {
					h.logger.Error("WebSocket read error",
						zap.Error(err),
						zap.String("user", email))
				}
				return
			}
		}
	}()

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	for {
		select {
		case n, ok := <-notifChan:
			if !ok {
				return
			}
			ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := ws.WriteJSON(gin.H{
				"type":         "notification",
				"notification": NotificationToResponse(n),
			}); err != nil {
				return
			}
		case <-pingTicker.C:
			ws.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
