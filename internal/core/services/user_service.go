package services

import (
	"context"

	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
	portsrepo "github.com/craftmyfolio/cmf_backend/internal/core/ports/repositories"
	portssvc "github.com/craftmyfolio/cmf_backend/internal/core/ports/services"
)

type userService struct {
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// GetUserByEmail retrieves a user by normalized email.
func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, NormalizeEmail(email))
}
