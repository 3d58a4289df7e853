package services

import (
	"context"
	"errors"
	"log"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/models"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/repositories"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/domain"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/loankey"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/password"
)

// User service errors
var (
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
	ErrCannotDisableSelf   = errors.New("cannot disable your own account")
	ErrWeakPassword        = errors.New("password must be at least 8 characters")
	ErrInvalidRole         = errors.New("invalid role")
)

// UserService handles user management business logic
type UserService struct {
	userRepo repositories.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents admin user creation input
type CreateUserInput struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	FullName    string   `json:"full_name"`
	Role        string   `json:"role"`
	LoanNumbers []string `json:"loan_numbers"`
}

// ListUsersOutput represents list users output
type ListUsersOutput struct {
	Users []*models.UserResponse `json:"users"`
	Total int64                  `json:"total"`
}

// UpdateUserInput represents admin user update input
type UpdateUserInput struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// CreateUser creates a new user (admin operation)
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*models.UserResponse, error) {
	if !password.ValidatePassword(input.Password) {
		return nil, ErrWeakPassword
	}

	role := input.Role
	if role == "" {
		role = "USER"
	}
	if role != "USER" && role != "ADMIN" {
		return nil, ErrInvalidRole
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// Loan numbers are stored normalized so access checks and document
	// lookups agree on one canonical form
	loans := make([]string, 0, len(input.LoanNumbers))
	for _, l := range input.LoanNumbers {
		if n := loankey.Normalize(l); n != "" {
			loans = append(loans, n)
		}
	}

	user := &models.User{
		Username:    input.Username,
		Password:    hashedPassword,
		FullName:    input.FullName,
		Role:        role,
		IsActive:    true,
		LoanNumbers: loans,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User created: %s (role: %s)", user.Username, user.Role)

	return user.ToResponse(), nil
}

// ListUsers lists all users with pagination
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) (*ListUsersOutput, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	userResponses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = user.ToResponse()
	}

	return &ListUsersOutput{
		Users: userResponses,
		Total: total,
	}, nil
}

// GetUserByID gets a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// UpdateUser updates a user (admin operation). Users are never hard
// deleted: disabling the active flag is the retirement path.
func (s *UserService) UpdateUser(ctx context.Context, id, adminID string, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Prevent admin from changing own role or disabling self
	if id == adminID && input.Role != nil && *input.Role != user.Role {
		return nil, ErrCannotChangeOwnRole
	}
	if id == adminID && input.IsActive != nil && !*input.IsActive {
		return nil, ErrCannotDisableSelf
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Role != nil {
		if *input.Role != "USER" && *input.Role != "ADMIN" {
			return nil, ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(), nil
}

// GrantLoanAccess grants a user access to a loan (idempotent)
func (s *UserService) GrantLoanAccess(ctx context.Context, userID, key string) (*models.UserResponse, error) {
	normalized := loankey.Normalize(key)
	if normalized == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := s.userRepo.AddLoanAccess(ctx, userID, normalized); err != nil {
		return nil, err
	}

	log.Printf("✅ Loan access granted: loan %s -> user %s", normalized, userID)

	return s.GetUserByID(ctx, userID)
}

// RevokeLoanAccess revokes a user's access to a loan (idempotent)
func (s *UserService) RevokeLoanAccess(ctx context.Context, userID, key string) (*models.UserResponse, error) {
	normalized := loankey.Normalize(key)
	if normalized == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := s.userRepo.RemoveLoanAccess(ctx, userID, normalized); err != nil {
		return nil, err
	}

	log.Printf("✅ Loan access revoked: loan %s -> user %s", normalized, userID)

	return s.GetUserByID(ctx, userID)
}
