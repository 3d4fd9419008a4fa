package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/Marga-Ghale/club-portal/internal/repository"
	"github.com/Marga-Ghale/club-portal/internal/types"
)

type MemberService interface {
	List(ctx context.Context, query string) ([]*repository.Member, error)
	Get(ctx context.Context, id string) (*repository.Member, error)
	Create(ctx context.Context, input CreateMemberInput) (*repository.Member, error)
	Delete(ctx context.Context, id string) error
}

type CreateMemberInput struct {
	Name         string `validate:"required"`
	Email        string `validate:"required,email"`
	PhoneNumber  *string
	AcademicYear *string
	Department   *string
	Role         *string
	Status       string `validate:"omitempty,oneof=active inactive"`
}

type memberService struct {
	memberRepo repository.MemberRepository
	validate   *validator.Validate
}

func NewMemberService(memberRepo repository.MemberRepository, v *validator.Validate) MemberService {
	return &memberService{memberRepo: memberRepo, validate: v}
}

func (s *memberService) List(ctx context.Context, query string) ([]*repository.Member, error) {
	members, err := s.memberRepo.List(ctx, repository.ListOptions{})
	if err != nil {
		return nil, err
	}

	out := make([]*repository.Member, 0, len(members))
	for _, m := range members {
		if matches(query, &m.Name, &m.Email, m.Role, m.PhoneNumber, m.AcademicYear, m.Department) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *memberService) Get(ctx context.Context, id string) (*repository.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	return member, mapRepoError(err)
}

func (s *memberService) Create(ctx context.Context, input CreateMemberInput) (*repository.Member, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	if err := s.validate.Struct(input); err != nil {
		return nil, invalid("Name and a valid email are required")
	}

	member := &repository.Member{
		Name:         input.Name,
		Email:        input.Email,
		PhoneNumber:  optional(input.PhoneNumber),
		AcademicYear: optional(input.AcademicYear),
		Department:   optional(input.Department),
		Role:         optional(input.Role),
		Status:       input.Status,
	}
	if member.Status == "" {
		member.Status = types.MemberActive
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, id string) error {
	return mapRepoError(s.memberRepo.Delete(ctx, id))
}
