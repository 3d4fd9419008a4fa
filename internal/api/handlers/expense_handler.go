package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/club-portal/internal/models"
	"github.com/Marga-Ghale/club-portal/internal/service"
)

// ============================================
// Expense Handler
// ============================================

type ExpenseHandler struct {
	expenseService service.ExpenseService
}

func expenseFilter(c *gin.Context) service.ExpenseFilter {
	category := c.Query("category")
	if category == "all" {
		category = ""
	}
	return service.ExpenseFilter{Query: c.Query("q"), Category: category}
}

func (h *ExpenseHandler) List(c *gin.Context) {
	expenses, err := h.expenseService.List(c.Request.Context(), expenseFilter(c))
	if err != nil {
		respondError(c, err, "Failed to fetch expenses")
		return
	}

	response := make([]models.ExpenseResponse, len(expenses))
	for i, e := range expenses {
		response[i] = toExpenseResponse(e)
	}
	c.JSON(http.StatusOK, response)
}

func (h *ExpenseHandler) Summary(c *gin.Context) {
	summary, err := h.expenseService.Summary(c.Request.Context(), expenseFilter(c))
	if err != nil {
		respondError(c, err, "Failed to summarize expenses")
		return
	}

	c.JSON(http.StatusOK, models.ExpenseSummaryResponse{
		Total:      summary.Total,
		Count:      summary.Count,
		ByCategory: summary.ByCategory,
	})
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), service.CreateExpenseInput{
		Item:     req.Item,
		Amount:   req.Amount.String(),
		Category: req.Category,
		Date:     req.Date,
	})
	if err != nil {
		respondError(c, err, "Failed to add expense")
		return
	}

	c.JSON(http.StatusCreated, toExpenseResponse(expense))
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	if err := h.expenseService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete expense")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully."})
}
