package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// amount is read back as text so it round-trips through decimal exactly.
var expenseColumns = []string{
	"id", "item", "amount::text", "category", "date", "created_at",
}

type pgExpenseRepository struct {
	pool *pgxpool.Pool
}

func NewExpenseRepository(pool *pgxpool.Pool) ExpenseRepository {
	return &pgExpenseRepository{pool: pool}
}

func (r *pgExpenseRepository) Create(ctx context.Context, expense *Expense) error {
	query := `
		INSERT INTO expenses (item, amount, category, date)
		VALUES ($1, $2::numeric, $3, $4)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		expense.Item, expense.Amount.String(), expense.Category, expense.Date,
	).Scan(&expense.ID, &expense.CreatedAt)
	return mapPgError(err, "insert expense")
}

func (r *pgExpenseRepository) List(ctx context.Context, opts ListOptions) ([]*Expense, error) {
	sql, args, err := buildSelect(ctx, TableExpenses, expenseColumns, opts.orDefault("date", true))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err, "list expenses")
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, mapPgError(err, "scan expense")
		}
		expenses = append(expenses, e)
	}
	return expenses, mapPgError(rows.Err(), "list expenses")
}

func (r *pgExpenseRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err, "delete expense")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (*Expense, error) {
	e := &Expense{}
	var amount string
	if err := row.Scan(&e.ID, &e.Item, &amount, &e.Category, &e.Date, &e.CreatedAt); err != nil {
		return nil, err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, err
	}
	e.Amount = d
	return e, nil
}
