package services

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/models"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/repositories"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/storage"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/domain"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/policy"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/jwt"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/loankey"
)

// DocumentService handles document resolution and access grants
type DocumentService struct {
	docRepo      repositories.DocumentRepository
	store        storage.ObjectStore
	signedURLTTL time.Duration
}

// NewDocumentService creates a new document service
func NewDocumentService(docRepo repositories.DocumentRepository, store storage.ObjectStore, signedURLTTL time.Duration) *DocumentService {
	if signedURLTTL <= 0 {
		signedURLTTL = time.Hour
	}
	return &DocumentService{
		docRepo:      docRepo,
		store:        store,
		signedURLTTL: signedURLTTL,
	}
}

// FetchByLoan authorizes the caller for the loan and returns its
// documents, newest upload first.
func (s *DocumentService) FetchByLoan(ctx context.Context, claims *jwt.Claims, loanKey string) ([]*models.DocumentResponse, error) {
	if decision := policy.AuthorizeLoan(claims, loanKey); !decision.Allowed {
		return nil, domain.ErrNotAuthorizedForLoan
	}

	docs, err := s.resolveByLoan(ctx, loanKey)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = doc.ToResponse()
	}
	return responses, nil
}

// resolveByLoan queries by the key as supplied; when that yields
// nothing and the key carries a display prefix ("BIZLN-1234"), the
// stripped numeric suffix is tried as a fallback. First non-empty
// result wins.
func (s *DocumentService) resolveByLoan(ctx context.Context, loanKey string) ([]*models.Document, error) {
	docs, err := s.docRepo.FindByLoanKey(ctx, loanKey)
	if err != nil {
		return nil, err
	}
	if len(docs) > 0 {
		return docs, nil
	}

	normalized := loankey.Normalize(loanKey)
	if normalized == loanKey {
		return docs, nil
	}

	return s.docRepo.FindByLoanKey(ctx, normalized)
}

// IssueGrant produces a short-lived signed URL for a document the
// caller is already authorized to access. ErrUnresolvableLocator means
// the record itself lacks a usable locator; ErrObjectNotFound and
// ErrStorageUnreachable come from the object store.
func (s *DocumentService) IssueGrant(ctx context.Context, doc *models.Document) (*models.AccessGrant, error) {
	locator, err := doc.ResolveLocator()
	if err != nil {
		return nil, err
	}

	if err := s.store.Head(ctx, locator); err != nil {
		return nil, err
	}

	url, err := s.store.SignedURL(ctx, locator, s.signedURLTTL)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &models.AccessGrant{
		Locator:   locator,
		URL:       url,
		IssuedAt:  now,
		TTL:       s.signedURLTTL,
		ExpiresAt: now.Add(s.signedURLTTL),
	}, nil
}

// GetAuthorized fetches a document by id and checks the caller's
// access against the loan the record maps to. A record that maps to no
// loan is denied for non-admins: fail closed, never fail open.
func (s *DocumentService) GetAuthorized(ctx context.Context, claims *jwt.Claims, docID string) (*models.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	decision := policy.AuthorizeDocument(claims, doc.LoanKey())
	if !decision.Allowed {
		if decision.Reason == policy.ReasonUnresolvableOwnership {
			log.Printf("⚠️ Document %s has no loan key, denying access", docID)
			return nil, domain.ErrUnresolvableOwnership
		}
		return nil, domain.ErrNotAuthorizedForLoan
	}

	return doc, nil
}

// Open streams the underlying object for a document the caller is
// already authorized to access.
func (s *DocumentService) Open(ctx context.Context, doc *models.Document) (io.ReadCloser, string, error) {
	locator, err := doc.ResolveLocator()
	if err != nil {
		return nil, "", err
	}
	return s.store.Get(ctx, locator)
}

// ListAll lists all stored documents with pagination (admin browse),
// newest upload first, each annotated with resolvability.
func (s *DocumentService) ListAll(ctx context.Context, offset, limit int) ([]*models.DocumentResponse, int64, error) {
	docs, total, err := s.docRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.DocumentResponse, len(docs))
	for i, doc := range docs {
		responses[i] = doc.ToResponse()
	}
	return responses, total, nil
}
