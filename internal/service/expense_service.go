package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/internal/types"
	"github.com/Marga-Ghale/club-portal/pkg/logger"
)

type ExpenseService interface {
	List(ctx context.Context, filter ExpenseFilter) ([]*repository.Expense, error)
	Create(ctx context.Context, input CreateExpenseInput) (*repository.Expense, error)
	Delete(ctx context.Context, id string) error
	Summary(ctx context.Context, filter ExpenseFilter) (*ExpenseSummary, error)
}

// ExpenseFilter narrows a listing. An empty Category means all categories.
type ExpenseFilter struct {
	Query    string
	Category string
}

type CreateExpenseInput struct {
	Item     string `validate:"required"`
	Amount   string `validate:"required"`
	Category string `validate:"required,expense_category"`
	Date     string `validate:"required"`
}

type ExpenseSummary struct {
	Total      decimal.Decimal            `json:"total"`
	Count      int                        `json:"count"`
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	announcer   Announcer
	validate    *validator.Validate
}

func NewExpenseService(expenseRepo repository.ExpenseRepository, announcer Announcer, v *validator.Validate) ExpenseService {
	return &expenseService{expenseRepo: expenseRepo, announcer: announcer, validate: v}
}

func (s *expenseService) List(ctx context.Context, filter ExpenseFilter) ([]*repository.Expense, error) {
	var opts repository.ListOptions
	if filter.Category != "" {
		opts.Filters = []repository.Filter{{Column: "category", Value: filter.Category}}
	}

	expenses, err := s.expenseRepo.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	out := make([]*repository.Expense, 0, len(expenses))
	for _, e := range expenses {
		if matches(filter.Query, &e.Item, &e.Category) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *expenseService) Create(ctx context.Context, input CreateExpenseInput) (*repository.Expense, error) {
	input.Item = strings.TrimSpace(input.Item)
	if err := s.validate.Struct(input); err != nil {
		return nil, invalid("Item, amount, a known category and date are required")
	}

	// Stored with cents precision, so positivity is checked after rounding.
	amount, err := decimal.NewFromString(strings.TrimSpace(input.Amount))
	if err == nil {
		amount = amount.Round(2)
	}
	if err != nil || !amount.IsPositive() {
		return nil, invalid("Amount must be a number greater than zero")
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, invalid("Date must be in YYYY-MM-DD format")
	}

	expense := &repository.Expense{
		Item:     input.Item,
		Amount:   amount,
		Category: input.Category,
		Date:     date,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	if _, err := s.announcer.Record(ctx, types.CategoryExpense,
		"New Expense: "+expense.Item,
		fmt.Sprintf("%s recorded under %s", expense.Amount.StringFixed(2), expense.Category),
	); err != nil {
		logger.FromContext(ctx).Warn("expense stored without in-app notification", zap.String("id", expense.ID))
	}

	return expense, nil
}

func (s *expenseService) Delete(ctx context.Context, id string) error {
	return mapRepoError(s.expenseRepo.Delete(ctx, id))
}

func (s *expenseService) Summary(ctx context.Context, filter ExpenseFilter) (*ExpenseSummary, error) {
	expenses, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &ExpenseSummary{
		Total:      decimal.Zero,
		ByCategory: make(map[string]decimal.Decimal),
	}
	for _, e := range expenses {
		summary.Total = summary.Total.Add(e.Amount)
		summary.ByCategory[e.Category] = summary.ByCategory[e.Category].Add(e.Amount)
		summary.Count++
	}
	return summary, nil
}
