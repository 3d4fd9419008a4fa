package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/club-portal/internal/models"
	"github.com/Marga-Ghale/club-portal/internal/service"
)

// ============================================
// Member Handler
// ============================================

type MemberHandler struct {
	memberService service.MemberService
}

func (h *MemberHandler) List(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to fetch members")
		return
	}

	response := make([]models.MemberResponse, len(members))
	for i, m := range members {
		response[i] = toMemberResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.memberService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to fetch member")
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

func (h *MemberHandler) Create(c *gin.Context) {
	var req models.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	member, err := h.memberService.Create(c.Request.Context(), service.CreateMemberInput{
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		AcademicYear: req.AcademicYear,
		Department:   req.Department,
		Role:         req.Role,
		Status:       req.Status,
	})
	if err != nil {
		respondError(c, err, "Failed to add member")
		return
	}

	c.JSON(http.StatusCreated, toMemberResponse(member))
}

func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete member")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member deleted successfully."})
}
