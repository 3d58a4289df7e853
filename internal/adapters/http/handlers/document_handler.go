package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/http/middleware"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/adapters/persistence/models"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/domain"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/services"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/response"
)

// DocumentHandler handles document endpoints
type DocumentHandler struct {
	docService *services.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// List handles GET /documents?loanKey=K
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, response.CodeTokenMissing, "Unauthorized")
	}

	loanKey := strings.TrimSpace(c.Query("loanKey"))
	if loanKey == "" {
		return response.BadRequest(c, "loanKey query parameter is required")
	}

	docs, err := h.docService.FetchByLoan(c.Context(), claims, loanKey)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotAuthorizedForLoan):
			return response.Forbidden(c, response.CodeNotAuthorizedForLoan, "You don't have access to this loan")
		default:
			return response.InternalServerError(c, "Failed to fetch documents")
		}
	}

	return response.Success(c, "Documents retrieved successfully", fiber.Map{
		"loan_key":  loanKey,
		"documents": docs,
	})
}

// Download handles GET /documents/:id/download.
// Default is a 302 redirect to a short-lived signed URL; ?mode=stream
// proxies the bytes instead for clients that cannot follow
// cross-origin redirects.
func (h *DocumentHandler) Download(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, response.CodeTokenMissing, "Unauthorized")
	}

	docID := c.Params("id")

	doc, err := h.docService.GetAuthorized(c.Context(), claims, docID)
	if err != nil {
		switch {
		// A document the caller may not see is reported exactly like a
		// document that does not exist
		case errors.Is(err, domain.ErrDocumentNotFound),
			errors.Is(err, domain.ErrNotAuthorizedForLoan),
			errors.Is(err, domain.ErrUnresolvableOwnership):
			return response.NotFound(c, response.CodeDocumentNotFound, "Document not found")
		default:
			return response.InternalServerError(c, "Failed to fetch document")
		}
	}

	if c.Query("mode") == "stream" {
		return h.stream(c, doc)
	}

	grant, err := h.docService.IssueGrant(c.Context(), doc)
	if err != nil {
		return h.grantError(c, err)
	}

	return c.Redirect(grant.URL, fiber.StatusFound)
}

// stream proxies the object bytes through the API
func (h *DocumentHandler) stream(c *fiber.Ctx, doc *models.Document) error {
	body, contentType, err := h.docService.Open(c.Context(), doc)
	if err != nil {
		return h.grantError(c, err)
	}

	if doc.ContentType != "" {
		contentType = doc.ContentType
	}

	filename := doc.OriginalName
	if filename == "" {
		filename = doc.FileName
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.SendStream(body)
}

// grantError maps grant issuance failures onto the response taxonomy
func (h *DocumentHandler) grantError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnresolvableLocator):
		return response.UnprocessableEntity(c, response.CodeUnresolvableDocument, "Document record has no usable storage reference")
	case errors.Is(err, domain.ErrObjectNotFound):
		return response.NotFound(c, response.CodeObjectNotFound, "Document file is missing from storage")
	case errors.Is(err, domain.ErrStorageUnreachable):
		return response.BadGateway(c, response.CodeStorageUnreachable, "Document storage is unreachable")
	default:
		return response.InternalServerError(c, "Failed to issue download link")
	}
}
