package user

import (
	"context"
	"fmt"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository"
	"github.com/medhq/hms-api/pkg/auth"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type Service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

// EnsureUser resolves the authenticated subject to a local user row,
// provisioning it from the identity-provider claims on first sight.
// Role is taken from the claims only at provisioning time; afterwards
// the local row is authoritative.
func (s *Service) EnsureUser(ctx context.Context, claims *auth.Claims) (*model.User, error) {
	user, err := s.repo.Get(ctx, claims.Subject)
	if err == nil {
		return user, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	user = &model.User{
		ID:        claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      roleFromClaim(claims.Role),
	}
	if err := s.repo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}
	return user, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.ListDoctors(ctx)
}

func roleFromClaim(role string) model.UserRole {
	switch model.UserRole(role) {
	case model.UserRoleAdmin, model.UserRoleDoctor,
		model.UserRoleReceptionist, model.UserRoleInventoryManager:
		return model.UserRole(role)
	default:
		return model.UserRoleReceptionist
	}
}
