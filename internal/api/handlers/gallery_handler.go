package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/club-portal/internal/models"
	"github.com/Marga-Ghale/club-portal/internal/service"
)

// ============================================
// Gallery Handler
// ============================================

type GalleryHandler struct {
	galleryService service.GalleryService
}

func (h *GalleryHandler) List(c *gin.Context) {
	items, err := h.galleryService.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to fetch gallery")
		return
	}

	response := make([]models.GalleryItemResponse, len(items))
	for i, item := range items {
		response[i] = toGalleryItemResponse(item)
	}
	c.JSON(http.StatusOK, response)
}

func (h *GalleryHandler) Create(c *gin.Context) {
	var req models.CreateGalleryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	item, err := h.galleryService.Create(c.Request.Context(), service.CreateGalleryInput{
		Title:    req.Title,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondError(c, err, "Failed to add image")
		return
	}

	c.JSON(http.StatusCreated, toGalleryItemResponse(item))
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	if err := h.galleryService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete image")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully!"})
}
