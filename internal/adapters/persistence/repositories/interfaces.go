package repositories

import (
	"context"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context, offset, limit int) ([]*models.User, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	AddLoanAccess(ctx context.Context, userID, loanKey string) error
	RemoveLoanAccess(ctx context.Context, userID, loanKey string) error
	CountByRole(ctx context.Context, role string) (int64, error)
}

// DocumentRepository defines document repository interface.
// Documents are written by an external ingestion path; this layer only
// reads them.
type DocumentRepository interface {
	FindByLoanKey(ctx context.Context, loanKey string) ([]*models.Document, error)
	GetByID(ctx context.Context, id string) (*models.Document, error)
	List(ctx context.Context, offset, limit int) ([]*models.Document, int64, error)
	CountUnresolvable(ctx context.Context) (int64, error)
}
