package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/models"
	"github.com/Marga-Ghale/club-portal/internal/notification"
	"github.com/Marga-Ghale/club-portal/pkg/logger"
)

const maxDispatchBody = 1 << 20

// ============================================
// Notification Dispatch Handler
// ============================================

type DispatchHandler struct {
	dispatcher *notification.Dispatcher
}

// SendNotifications sends one email per address and answers 200 whenever the
// batch was submitted, even if some recipients failed.
func (h *DispatchHandler) SendNotifications(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxDispatchBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, notification.TooLargeError(err))
			return
		}
		h.fail(c, &notification.Error{Code: notification.CodeInternal, Message: "Internal server error", Err: err})
		return
	}

	req, err := notification.DecodeRequest(body)
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *DispatchHandler) fail(c *gin.Context, err error) {
	var derr *notification.Error
	if !errors.As(err, &derr) {
		derr = &notification.Error{Code: notification.CodeInternal, Message: "Internal server error", Err: err}
	}

	resp := models.DispatchFailure{Error: derr.Message}
	if derr.Code == notification.CodeInternal && derr.Err != nil {
		resp.Message = derr.Err.Error()
		logger.FromContext(c.Request.Context()).Error("notification dispatch failed", zap.Error(derr.Err))
	}

	c.JSON(derr.HTTPStatus(), resp)
}
