package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/domain"
)

// ============================================================
// Users collection
// ============================================================

// User represents the users collection
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username    string             `bson:"username" json:"username"`
	Password    string             `bson:"password" json:"-"`
	FullName    string             `bson:"fullName" json:"full_name"`
	Role        string             `bson:"role" json:"role"`
	IsActive    bool               `bson:"isActive" json:"is_active"`
	LoanNumbers []string           `bson:"loanNumbers" json:"loan_numbers"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == "ADMIN"
}

// UserResponse DTO
type UserResponse struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
	LoanNumbers []string  `json:"loan_numbers"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	loans := u.LoanNumbers
	if loans == nil {
		loans = []string{}
	}
	return &UserResponse{
		ID:          u.ID.Hex(),
		Username:    u.Username,
		FullName:    u.FullName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LoanNumbers: loans,
		CreatedAt:   u.CreatedAt,
	}
}

// ============================================================
// Documents collection (legacy records, read only!)
// ============================================================

// Document represents the documents collection. Years of inconsistent
// ingestion left the loan key and the storage locator under varying
// attribute names; every alias is mapped here and resolved through one
// shared priority table, never per endpoint.
type Document struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LoanID       string             `bson:"loanId,omitempty" json:"loan_id,omitempty"`
	LoanNumber   string             `bson:"loanNumber,omitempty" json:"loan_number,omitempty"`
	FileName     string             `bson:"fileName" json:"file_name"`
	OriginalName string             `bson:"originalName,omitempty" json:"original_name,omitempty"`
	ContentType  string             `bson:"contentType,omitempty" json:"content_type,omitempty"`
	Size         int64              `bson:"size,omitempty" json:"size,omitempty"`
	Path         string             `bson:"path,omitempty" json:"-"`
	S3Key        string             `bson:"s3Key,omitempty" json:"-"`
	BucketKey    string             `bson:"bucketKey,omitempty" json:"-"`
	FileKey      string             `bson:"fileKey,omitempty" json:"-"`
	UploadedAt   time.Time          `bson:"uploadedAt" json:"uploaded_at"`
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`
}

// LoanKeyAliases lists the legacy attribute names a loan key may appear
// under, in match order.
var LoanKeyAliases = []string{"loanId", "loanNumber"}

// locatorAliases returns the storage locator candidates in fixed
// priority order: full path first, then the key variants.
func (d *Document) locatorAliases() []string {
	return []string{d.Path, d.S3Key, d.BucketKey, d.FileKey}
}

// LoanKey returns the first non-empty loan key alias, or "" when the
// record cannot be mapped to any loan.
func (d *Document) LoanKey() string {
	if d.LoanID != "" {
		return d.LoanID
	}
	return d.LoanNumber
}

// ResolveLocator returns the first non-empty storage locator alias.
// A record with no usable alias yields ErrUnresolvableLocator, never an
// empty string.
func (d *Document) ResolveLocator() (string, error) {
	for _, loc := range d.locatorAliases() {
		if loc != "" {
			return loc, nil
		}
	}
	return "", domain.ErrUnresolvableLocator
}

// IsResolvable reports whether the record satisfies the invariant of
// carrying at least one loan key alias and one locator alias.
func (d *Document) IsResolvable() bool {
	if d.LoanKey() == "" {
		return false
	}
	_, err := d.ResolveLocator()
	return err == nil
}

// DocumentResponse DTO
type DocumentResponse struct {
	ID           string    `json:"id"`
	LoanKey      string    `json:"loan_key"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name,omitempty"`
	ContentType  string    `json:"content_type,omitempty"`
	Size         int64     `json:"size,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at"`
	Status       string    `json:"status,omitempty"`
	Resolvable   bool      `json:"resolvable"`
}

func (d *Document) ToResponse() *DocumentResponse {
	return &DocumentResponse{
		ID:           d.ID.Hex(),
		LoanKey:      d.LoanKey(),
		FileName:     d.FileName,
		OriginalName: d.OriginalName,
		ContentType:  d.ContentType,
		Size:         d.Size,
		UploadedAt:   d.UploadedAt,
		Status:       d.Status,
		Resolvable:   d.IsResolvable(),
	}
}

// ============================================================
// Transient access grant (never persisted)
// ============================================================

// AccessGrant is a time-limited grant to fetch one stored object
type AccessGrant struct {
	Locator   string        `json:"-"`
	URL       string        `json:"url"`
	IssuedAt  time.Time     `json:"issued_at"`
	TTL       time.Duration `json:"-"`
	ExpiresAt time.Time     `json:"expires_at"`
}
