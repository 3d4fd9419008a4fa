package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/club-portal/internal/models"
	"github.com/Marga-Ghale/club-portal/internal/service"
)

// ============================================
// Event / Meeting Handler
// ============================================

// EventHandler serves either events or meetings; noun names which.
type EventHandler struct {
	eventService service.EventService
	noun         string
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventService.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to fetch "+h.noun+"s")
		return
	}

	response := make([]models.EventResponse, len(events))
	for i, e := range events {
		response[i] = toEventResponse(e)
	}
	c.JSON(http.StatusOK, response)
}

// Create stores the row and then notifies active members. The response is
// 201 whenever the row was stored, whatever happened to the emails.
func (h *EventHandler) Create(c *gin.Context) {
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	created, err := h.eventService.Create(c.Request.Context(), service.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		respondError(c, err, "Failed to create "+h.noun)
		return
	}

	c.JSON(http.StatusCreated, models.EventCreatedResponse{
		Data:          toEventResponse(created.Event),
		Notifications: created.Notifications,
		Message:       created.Message,
	})
}

func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.eventService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch "+h.noun)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.eventService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete "+h.noun)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": strings.ToUpper(h.noun[:1]) + h.noun[1:] + " deleted successfully!"})
}
