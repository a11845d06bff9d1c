package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rackit-dev/birdie/models"
	"github.com/rackit-dev/birdie/repository"
)

// UserListResponse is a paginated user listing.
type UserListResponse struct {
	TotalCount int64         `json:"total_count"`
	Users      []models.User `json:"users"`
}

// UserService handles account CRUD. Login and token issuance live outside
// this service.
type UserService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger}
}

// CreateUser registers an account with a bcrypt-hashed password.
func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, *ServiceError) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create user"}
	}

	hashed := string(hash)
	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: &hashed,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicate(err) {
			return nil, &ServiceError{StatusCode: 409, Message: "Email already registered"}
		}
		s.logger.Error("Failed to create user", zap.String("email", req.Email), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to create user"}
	}

	s.logger.Info("User created", zap.String("user_id", user.ID.String()))
	return user, nil
}

// GetUser returns one account.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("Failed to fetch user", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch user"}
	}
	return user, nil
}

// ListUsers returns a page of accounts, newest first.
func (s *UserService) ListUsers(ctx context.Context, page, itemsPerPage int) (*UserListResponse, *ServiceError) {
	users, total, err := s.userRepo.FindAll(ctx, page, itemsPerPage)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch users"}
	}
	return &UserListResponse{TotalCount: total, Users: users}, nil
}

// UpdateUser changes name and/or password.
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req *models.UpdateUserRequest) (*models.User, *ServiceError) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("Failed to fetch user", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch user"}
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("Failed to hash password", zap.Error(err))
			return nil, &ServiceError{StatusCode: 500, Message: "Failed to update user"}
		}
		hashed := string(hash)
		user.Password = &hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to update user"}
	}
	return user, nil
}

// DeleteUser removes an account.
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) *ServiceError {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if isNotFound(err) {
			return &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("Failed to delete user", zap.String("user_id", userID.String()), zap.Error(err))
		return &ServiceError{StatusCode: 500, Message: "Failed to delete user"}
	}
	return nil
}
