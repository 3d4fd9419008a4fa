package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marga-Ghale/club-portal/internal/types"
)

var memberColumns = []string{
	"id", "name", "email", "phone_number", "academic_year",
	"department", "role", "status", "created_at", "updated_at",
}

type pgMemberRepository struct {
	pool *pgxpool.Pool
}

func NewMemberRepository(pool *pgxpool.Pool) MemberRepository {
	return &pgMemberRepository{pool: pool}
}

func (r *pgMemberRepository) Create(ctx context.Context, member *Member) error {
	if member.Status == "" {
		member.Status = types.MemberActive
	}
	query := `
		INSERT INTO members (name, email, phone_number, academic_year, department, role, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		member.Name, member.Email, member.PhoneNumber, member.AcademicYear,
		member.Department, member.Role, member.Status,
	).Scan(&member.ID, &member.CreatedAt, &member.UpdatedAt)
	return mapPgError(err, "insert member")
}

func (r *pgMemberRepository) FindByID(ctx context.Context, id string) (*Member, error) {
	sql, args, err := buildSelect(ctx, TableMembers, memberColumns, ListOptions{
		Filters: []Filter{{Column: "id", Value: id}},
	})
	if err != nil {
		return nil, err
	}
	m, err := scanMember(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, mapPgError(err, "find member")
	}
	return m, nil
}

func (r *pgMemberRepository) List(ctx context.Context, opts ListOptions) ([]*Member, error) {
	sql, args, err := buildSelect(ctx, TableMembers, memberColumns, opts.orDefault("created_at", true))
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapPgError(err, "list members")
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, mapPgError(err, "scan member")
		}
		members = append(members, m)
	}
	return members, mapPgError(rows.Err(), "list members")
}

func (r *pgMemberRepository) FindActive(ctx context.Context) ([]*Member, error) {
	return r.List(ctx, ListOptions{
		Filters: []Filter{{Column: "status", Value: types.MemberActive}},
		OrderBy: "created_at",
	})
}

func (r *pgMemberRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err, "delete member")
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanMember(row pgx.Row) (*Member, error) {
	m := &Member{}
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.PhoneNumber, &m.AcademicYear,
		&m.Department, &m.Role, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}
