package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Marga-Ghale/club-portal/internal/notification"
)

// Field names follow the portal's table columns so existing clients keep working.

// ============================================
// Auth DTOs
// ============================================

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ============================================
// Member DTOs
// ============================================

type CreateMemberRequest struct {
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	PhoneNumber  *string `json:"phone_number"`
	AcademicYear *string `json:"academic_year"`
	Department   *string `json:"department"`
	Role         *string `json:"role"`
	Status       string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

type MemberResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  *string   `json:"phone_number"`
	AcademicYear *string   `json:"academic_year"`
	Department   *string   `json:"department"`
	Role         *string   `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ============================================
// Event / Meeting DTOs
// ============================================

type CreateEventRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Date        string  `json:"date" binding:"required"`
	Time        *string `json:"time"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	Time        *string   `json:"time"`
	Location    *string   `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
}

type EventCreatedResponse struct {
	Data          EventResponse        `json:"data"`
	Notifications notification.Outcome `json:"notifications"`
	Message       string               `json:"message"`
}

// ============================================
// Expense DTOs
// ============================================

type CreateExpenseRequest struct {
	Item     string          `json:"item" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category" binding:"required"`
	Date     string          `json:"date" binding:"required"`
}

type ExpenseResponse struct {
	ID        string          `json:"id"`
	Item      string          `json:"item"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

type ExpenseSummaryResponse struct {
	Total      decimal.Decimal            `json:"total"`
	Count      int                        `json:"count"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
}

// ============================================
// Gallery DTOs
// ============================================

type CreateGalleryRequest struct {
	Title    *string `json:"title"`
	ImageURL string  `json:"image_url" binding:"required"`
}

type GalleryItemResponse struct {
	ID        string    `json:"id"`
	Title     *string   `json:"title"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

// ============================================
// Notification DTOs
// ============================================

type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationCountResponse struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DispatchFailure is returned by the send-notifications endpoint when the
// whole batch is rejected.
type DispatchFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
