package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/models"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/repositories"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/domain"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/jwt"
)

// -------- test fakes --------

type fakeDocRepo struct {
	repositories.DocumentRepository
	byKey map[string][]*models.Document
	byID  map[string]*models.Document
}

func (f *fakeDocRepo) FindByLoanKey(ctx context.Context, loanKey string) ([]*models.Document, error) {
	return f.byKey[loanKey], nil
}

func (f *fakeDocRepo) GetByID(ctx context.Context, id string) (*models.Document, error) {
	doc, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

type fakeStore struct {
	objects map[string]string // locator -> content
	downErr error
}

func (f *fakeStore) Head(ctx context.Context, key string) error {
	if f.downErr != nil {
		return f.downErr
	}
	if _, ok := f.objects[key]; !ok {
		return domain.ErrObjectNotFound
	}
	return nil
}

func (f *fakeStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if f.downErr != nil {
		return "", f.downErr
	}
	return "https://storage.test/" + key + "?signed=1", nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	if f.downErr != nil {
		return nil, "", f.downErr
	}
	content, ok := f.objects[key]
	if !ok {
		return nil, "", domain.ErrObjectNotFound
	}
	return io.NopCloser(strings.NewReader(content)), "application/pdf", nil
}

func userClaims(loans ...string) *jwt.Claims {
	return &jwt.Claims{UserID: "u1", Username: "jdoe", Role: "USER", LoanNumbers: loans}
}

func adminClaims() *jwt.Claims {
	return &jwt.Claims{UserID: "a1", Username: "root", Role: "ADMIN"}
}

// -------- tests --------

func TestFetchByLoanAuthorized(t *testing.T) {
	repo := &fakeDocRepo{byKey: map[string][]*models.Document{
		"1234": {
			{LoanNumber: "1234", FileName: "new.pdf", S3Key: "k/new.pdf", UploadedAt: time.Now()},
			{LoanNumber: "1234", FileName: "old.pdf", S3Key: "k/old.pdf", UploadedAt: time.Now().Add(-time.Hour)},
		},
	}}
	svc := NewDocumentService(repo, &fakeStore{}, time.Hour)

	docs, err := svc.FetchByLoan(context.Background(), userClaims("1234"), "1234")
	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Repository order (newest first) is preserved untouched
	assert.Equal(t, "new.pdf", docs[0].FileName)
	assert.Equal(t, "old.pdf", docs[1].FileName)
}

func TestFetchByLoanDenied(t *testing.T) {
	svc := NewDocumentService(&fakeDocRepo{byKey: map[string][]*models.Document{}}, &fakeStore{}, time.Hour)

	_, err := svc.FetchByLoan(context.Background(), userClaims("1234"), "9999")
	assert.ErrorIs(t, err, domain.ErrNotAuthorizedForLoan)
}

func TestFetchByLoanAdminAnyLoan(t *testing.T) {
	repo := &fakeDocRepo{byKey: map[string][]*models.Document{
		"7777": {{LoanNumber: "7777", FileName: "a.pdf", S3Key: "k"}},
	}}
	svc := NewDocumentService(repo, &fakeStore{}, time.Hour)

	docs, err := svc.FetchByLoan(context.Background(), adminClaims(), "7777")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestFetchByLoanDisplayFormFallback(t *testing.T) {
	// Records are keyed by the bare suffix; the display form must
	// converge to the same result set.
	records := []*models.Document{{LoanNumber: "1234", FileName: "a.pdf", S3Key: "k"}}
	repo := &fakeDocRepo{byKey: map[string][]*models.Document{"1234": records}}
	svc := NewDocumentService(repo, &fakeStore{}, time.Hour)

	direct, err := svc.FetchByLoan(context.Background(), userClaims("1234"), "1234")
	require.NoError(t, err)

	viaDisplay, err := svc.FetchByLoan(context.Background(), userClaims("1234"), "BIZLN-1234")
	require.NoError(t, err)

	assert.Equal(t, direct, viaDisplay)
}

func TestFetchByLoanDirectMatchWins(t *testing.T) {
	// When the display form itself matches records, no fallback happens
	repo := &fakeDocRepo{byKey: map[string][]*models.Document{
		"BIZLN-1234": {{LoanNumber: "BIZLN-1234", FileName: "display.pdf", S3Key: "k1"}},
		"1234":       {{LoanNumber: "1234", FileName: "suffix.pdf", S3Key: "k2"}},
	}}
	svc := NewDocumentService(repo, &fakeStore{}, time.Hour)

	docs, err := svc.FetchByLoan(context.Background(), userClaims("BIZLN-1234"), "BIZLN-1234")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "display.pdf", docs[0].FileName)
}

func TestGetAuthorized(t *testing.T) {
	doc := &models.Document{LoanNumber: "1234", FileName: "a.pdf", S3Key: "k"}
	repo := &fakeDocRepo{byID: map[string]*models.Document{"d1": doc}}
	svc := NewDocumentService(repo, &fakeStore{}, time.Hour)

	got, err := svc.GetAuthorized(context.Background(), userClaims("1234"), "d1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)

	_, err = svc.GetAuthorized(context.Background(), userClaims("9999"), "d1")
	assert.ErrorIs(t, err, domain.ErrNotAuthorizedForLoan)

	_, err = svc.GetAuthorized(context.Background(), userClaims("1234"), "missing")
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestGetAuthorizedUnresolvableOwnership(t *testing.T) {
	orphan := &models.Document{FileName: "orphan.pdf", S3Key: "k"}
	repo := &fakeDocRepo{byID: map[string]*models.Document{"d1": orphan}}
	svc := NewDocumentService(repo, &fakeStore{}, time.Hour)

	// Non-admin: fail closed
	_, err := svc.GetAuthorized(context.Background(), userClaims("1234"), "d1")
	assert.ErrorIs(t, err, domain.ErrUnresolvableOwnership)

	// Admin bypasses ownership mapping
	got, err := svc.GetAuthorized(context.Background(), adminClaims(), "d1")
	require.NoError(t, err)
	assert.Equal(t, orphan, got)
}

func TestIssueGrantFromS3KeyOnlyRecord(t *testing.T) {
	// Legacy record: loanNumber set but no loanId, s3Key set but no path
	doc := &models.Document{LoanNumber: "1234", S3Key: "legacy/a.pdf"}
	store := &fakeStore{objects: map[string]string{"legacy/a.pdf": "content"}}
	svc := NewDocumentService(&fakeDocRepo{}, store, 30*time.Minute)

	grant, err := svc.IssueGrant(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, "legacy/a.pdf", grant.Locator)
	assert.Contains(t, grant.URL, "legacy/a.pdf")
	assert.Equal(t, 30*time.Minute, grant.TTL)
	assert.WithinDuration(t, grant.IssuedAt.Add(30*time.Minute), grant.ExpiresAt, time.Second)
}

func TestIssueGrantUnresolvableLocator(t *testing.T) {
	doc := &models.Document{LoanNumber: "1234"}
	svc := NewDocumentService(&fakeDocRepo{}, &fakeStore{}, time.Hour)

	_, err := svc.IssueGrant(context.Background(), doc)
	assert.ErrorIs(t, err, domain.ErrUnresolvableLocator)
}

func TestIssueGrantObjectMissing(t *testing.T) {
	doc := &models.Document{LoanNumber: "1234", S3Key: "gone.pdf"}
	svc := NewDocumentService(&fakeDocRepo{}, &fakeStore{objects: map[string]string{}}, time.Hour)

	_, err := svc.IssueGrant(context.Background(), doc)
	assert.ErrorIs(t, err, domain.ErrObjectNotFound)
}

func TestIssueGrantStorageUnreachable(t *testing.T) {
	doc := &models.Document{LoanNumber: "1234", S3Key: "a.pdf"}
	svc := NewDocumentService(&fakeDocRepo{}, &fakeStore{downErr: domain.ErrStorageUnreachable}, time.Hour)

	_, err := svc.IssueGrant(context.Background(), doc)
	assert.ErrorIs(t, err, domain.ErrStorageUnreachable)
}

func TestOpenStreamsObject(t *testing.T) {
	doc := &models.Document{LoanNumber: "1234", S3Key: "a.pdf"}
	store := &fakeStore{objects: map[string]string{"a.pdf": "pdf-bytes"}}
	svc := NewDocumentService(&fakeDocRepo{}, store, time.Hour)

	body, contentType, err := svc.Open(context.Background(), doc)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(data))
	assert.Equal(t, "application/pdf", contentType)
}
