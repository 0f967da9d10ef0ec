package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/craftmyfolio/cmf_backend/internal/apperrors"
	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
	"github.com/craftmyfolio/cmf_backend/internal/core/services"
)

func TestGetUserByEmailNormalizesLookup(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)
	ctx := context.Background()

	repo.On("FindUserByEmail", ctx, "ann@x.com").
		Return(&domain.User{UserID: "user-1", Email: "ann@x.com"}, nil)

	user, err := svc.GetUserByEmail(ctx, "  Ann@X.com ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
}

func TestGetUserByIDPassesThroughNotFound(t *testing.T) {
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)
	ctx := context.Background()

	repo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetUserByID(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
