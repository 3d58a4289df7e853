package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/http/middleware"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/domain"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/services"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/pagination"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/response"
)

// AdminHandler handles administrative endpoints
type AdminHandler struct {
	userService *services.UserService
	docService  *services.DocumentService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userService *services.UserService, docService *services.DocumentService) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		docService:  docService,
	}
}

// CreateUserRequest represents user creation request body
type CreateUserRequest struct {
	Username    string   `json:"username"`
	Password    string   `json:"password"`
	FullName    string   `json:"full_name"`
	Role        string   `json:"role"`
	LoanNumbers []string `json:"loan_numbers"`
}

// UpdateUserRequest represents user update request body
type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// LoanAccessRequest represents loan access grant/revoke request body
type LoanAccessRequest struct {
	UserID  string `json:"user_id"`
	LoanKey string `json:"loan_key"`
	Action  string `json:"action"` // grant | revoke
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	result, err := h.userService.ListUsers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list users")
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": result.Users,
		"meta":  pagination.GetMeta(params, result.Total),
	})
}

// CreateUser handles POST /admin/users
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if strings.TrimSpace(req.Username) == "" {
		return response.BadRequest(c, "Username is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.CreateUserInput{
		Username:    strings.TrimSpace(req.Username),
		Password:    req.Password,
		FullName:    strings.TrimSpace(req.FullName),
		Role:        strings.ToUpper(strings.TrimSpace(req.Role)),
		LoanNumbers: req.LoanNumbers,
	}

	user, err := h.userService.CreateUser(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			return response.Conflict(c, response.CodeUserExists, "Username already exists")
		case errors.Is(err, services.ErrWeakPassword):
			return response.BadRequest(c, "Password must be at least 8 characters")
		case errors.Is(err, services.ErrInvalidRole):
			return response.BadRequest(c, "Role must be USER or ADMIN")
		default:
			return response.InternalServerError(c, "Failed to create user")
		}
	}

	return response.Created(c, "User created successfully", fiber.Map{
		"user": user,
	})
}

// UpdateUser handles PATCH /admin/users/:id
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, response.CodeTokenMissing, "Unauthorized")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.UpdateUserInput{
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: req.IsActive,
	}

	user, err := h.userService.UpdateUser(c.Context(), c.Params("id"), claims.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, response.CodeUserNotFound, "User not found")
		case errors.Is(err, services.ErrCannotChangeOwnRole):
			return response.BadRequest(c, "Cannot change your own role")
		case errors.Is(err, services.ErrCannotDisableSelf):
			return response.BadRequest(c, "Cannot disable your own account")
		case errors.Is(err, services.ErrInvalidRole):
			return response.BadRequest(c, "Role must be USER or ADMIN")
		default:
			return response.InternalServerError(c, "Failed to update user")
		}
	}

	return response.Success(c, "User updated successfully", fiber.Map{
		"user": user,
	})
}

// LoanAccess handles POST /admin/loan-access
func (h *AdminHandler) LoanAccess(c *fiber.Ctx) error {
	var req LoanAccessRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.UserID == "" {
		return response.BadRequest(c, "user_id is required")
	}
	if strings.TrimSpace(req.LoanKey) == "" {
		return response.BadRequest(c, "loan_key is required")
	}

	var (
		user interface{}
		err  error
	)
	switch req.Action {
	case "grant":
		user, err = h.userService.GrantLoanAccess(c.Context(), req.UserID, req.LoanKey)
	case "revoke":
		user, err = h.userService.RevokeLoanAccess(c.Context(), req.UserID, req.LoanKey)
	default:
		return response.BadRequest(c, "action must be 'grant' or 'revoke'")
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, response.CodeUserNotFound, "User not found")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid loan key")
		default:
			return response.InternalServerError(c, "Failed to update loan access")
		}
	}

	return response.Success(c, "Loan access updated successfully", fiber.Map{
		"user": user,
	})
}

// ListDocuments handles GET /admin/documents
func (h *AdminHandler) ListDocuments(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	docs, total, err := h.docService.ListAll(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list documents")
	}

	return response.Success(c, "Documents retrieved successfully", fiber.Map{
		"documents": docs,
		"meta":      pagination.GetMeta(params, total),
	})
}
