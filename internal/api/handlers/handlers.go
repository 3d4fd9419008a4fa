package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/models"
	"github.com/Marga-Ghale/club-portal/internal/notification"
	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/internal/service"
	"github.com/Marga-Ghale/club-portal/internal/session"
	"github.com/Marga-Ghale/club-portal/pkg/logger"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth         *AuthHandler
	Dispatch     *DispatchHandler
	Member       *MemberHandler
	Event        *EventHandler
	Meeting      *EventHandler
	Expense      *ExpenseHandler
	Gallery      *GalleryHandler
	Notification *NotificationHandler
}

func NewHandlers(services *service.Services, gate *session.Gate, dispatcher *notification.Dispatcher) *Handlers {
	return &Handlers{
		Auth:         &AuthHandler{gate: gate},
		Dispatch:     &DispatchHandler{dispatcher: dispatcher},
		Member:       &MemberHandler{memberService: services.Member},
		Event:        &EventHandler{eventService: services.Event, noun: "event"},
		Meeting:      &EventHandler{eventService: services.Meeting, noun: "meeting"},
		Expense:      &ExpenseHandler{expenseService: services.Expense},
		Gallery:      &GalleryHandler{galleryService: services.Gallery},
		Notification: &NotificationHandler{notificationService: services.Notification},
	}
}

// respondError maps service errors onto status codes. fallback is the
// message used for unexpected failures, which are logged.
func respondError(c *gin.Context, err error, fallback string) {
	var inputErr *service.InputError
	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: inputErr.Message})
	case errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
	default:
		logger.FromContext(c.Request.Context()).Error(fallback, zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: fallback})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request", Message: err.Error()})
}

// ============================================
// Response Mappers
// ============================================

func toMemberResponse(m *repository.Member) models.MemberResponse {
	return models.MemberResponse{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PhoneNumber:  m.PhoneNumber,
		AcademicYear: m.AcademicYear,
		Department:   m.Department,
		Role:         m.Role,
		Status:       m.Status,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toEventResponse(e *repository.Event) models.EventResponse {
	return models.EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Time:        e.Time,
		Location:    e.Location,
		CreatedAt:   e.CreatedAt,
	}
}

func toExpenseResponse(e *repository.Expense) models.ExpenseResponse {
	return models.ExpenseResponse{
		ID:        e.ID,
		Item:      e.Item,
		Amount:    e.Amount,
		Category:  e.Category,
		Date:      e.Date,
		CreatedAt: e.CreatedAt,
	}
}

func toGalleryItemResponse(g *repository.GalleryItem) models.GalleryItemResponse {
	return models.GalleryItemResponse{
		ID:        g.ID,
		Title:     g.Title,
		ImageURL:  g.ImageURL,
		CreatedAt: g.CreatedAt,
	}
}

func toNotificationResponse(n *repository.Notification) models.NotificationResponse {
	return models.NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
