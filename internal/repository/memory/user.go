package memory

import (
	"context"
	"time"

	"github.com/medhq/hms-api/internal/model"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Get(_ context.Context, id string) (*model.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NotFound("user")
}

func (r *UserRepository) Upsert(_ context.Context, user *model.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	now := time.Now()
	for i, u := range r.store.users {
		if u.ID == user.ID {
			copied := *user
			copied.CreatedAt = u.CreatedAt
			copied.UpdatedAt = now
			r.store.users[i] = &copied
			return nil
		}
	}
	copied := *user
	copied.CreatedAt = now
	copied.UpdatedAt = now
	r.store.users = append(r.store.users, &copied)
	return nil
}

func (r *UserRepository) ListDoctors(_ context.Context) ([]*model.Doctor, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	doctors := []*model.Doctor{}
	for _, u := range r.store.users {
		if u.Role == model.UserRoleDoctor {
			doctors = append(doctors, &model.Doctor{
				ID:        u.ID,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Email:     u.Email,
			})
		}
	}
	return doctors, nil
}
