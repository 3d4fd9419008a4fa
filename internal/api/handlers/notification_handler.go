package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/club-portal/internal/models"
	"github.com/Marga-Ghale/club-portal/internal/service"
)

// ============================================
// Notification Handler
// ============================================

type NotificationHandler struct {
	notificationService service.NotificationService
}

func (h *NotificationHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.List(c.Request.Context(), unreadOnly)
	if err != nil {
		respondError(c, err, "Failed to fetch notifications")
		return
	}

	response := make([]models.NotificationResponse, len(notifications))
	for i, n := range notifications {
		response[i] = toNotificationResponse(n)
	}
	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) Count(c *gin.Context) {
	total, unread, err := h.notificationService.Count(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to count notifications")
		return
	}

	c.JSON(http.StatusOK, models.NotificationCountResponse{
		Total:  total,
		Unread: unread,
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.notificationService.MarkAsRead(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to mark notification as read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	updated, err := h.notificationService.MarkAllAsRead(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to mark notifications as read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updated": updated})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.notificationService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully."})
}
