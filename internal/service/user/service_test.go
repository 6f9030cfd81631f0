package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository/memory"
	"github.com/medhq/hms-api/pkg/auth"
)

func TestEnsureUserProvisionsOnFirstSight(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store.Users())
	ctx := context.Background()

	claims := &auth.Claims{
		Subject:   "auth0|doc1",
		Email:     "doc@example.com",
		FirstName: "Leela",
		LastName:  "Iyer",
		Role:      "DOCTOR",
	}

	u, err := service.EnsureUser(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, "auth0|doc1", u.ID)
	assert.Equal(t, model.UserRoleDoctor, u.Role)

	doctors, err := service.ListDoctors(ctx)
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "doc@example.com", doctors[0].Email)
}

func TestEnsureUserDefaultsUnknownRole(t *testing.T) {
	service := NewService(memory.NewStore().Users())

	u, err := service.EnsureUser(context.Background(), &auth.Claims{
		Subject: "auth0|new",
		Role:    "SUPERUSER",
	})
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleReceptionist, u.Role)
}

func TestEnsureUserKeepsLocalRole(t *testing.T) {
	store := memory.NewStore()
	service := NewService(store.Users())
	ctx := context.Background()

	require.NoError(t, store.Users().Upsert(ctx, &model.User{
		ID:   "auth0|admin",
		Role: model.UserRoleAdmin,
	}))

	// Claims no longer carry the role; the local row wins.
	u, err := service.EnsureUser(ctx, &auth.Claims{Subject: "auth0|admin", Role: "RECEPTIONIST"})
	require.NoError(t, err)
	assert.Equal(t, model.UserRoleAdmin, u.Role)
}
