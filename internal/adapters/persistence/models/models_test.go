package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/core/domain"
)

func TestResolveLocatorPriority(t *testing.T) {
	// Full path wins over every key variant
	doc := &Document{Path: "/files/a.pdf", S3Key: "keys/a.pdf", BucketKey: "bucket/a.pdf", FileKey: "file/a.pdf"}
	loc, err := doc.ResolveLocator()
	require.NoError(t, err)
	assert.Equal(t, "/files/a.pdf", loc)

	// s3Key wins when path is empty
	doc = &Document{S3Key: "keys/a.pdf", BucketKey: "bucket/a.pdf"}
	loc, err = doc.ResolveLocator()
	require.NoError(t, err)
	assert.Equal(t, "keys/a.pdf", loc)

	// bucketKey before fileKey
	doc = &Document{BucketKey: "bucket/a.pdf", FileKey: "file/a.pdf"}
	loc, err = doc.ResolveLocator()
	require.NoError(t, err)
	assert.Equal(t, "bucket/a.pdf", loc)
}

func TestResolveLocatorSingleAlias(t *testing.T) {
	for name, doc := range map[string]*Document{
		"path only":      {Path: "x"},
		"s3Key only":     {S3Key: "x"},
		"bucketKey only": {BucketKey: "x"},
		"fileKey only":   {FileKey: "x"},
	} {
		t.Run(name, func(t *testing.T) {
			loc, err := doc.ResolveLocator()
			require.NoError(t, err)
			assert.Equal(t, "x", loc)
		})
	}
}

func TestResolveLocatorUnresolvable(t *testing.T) {
	doc := &Document{LoanNumber: "1234", FileName: "a.pdf"}
	loc, err := doc.ResolveLocator()
	assert.ErrorIs(t, err, domain.ErrUnresolvableLocator)
	// Never an empty string pretending to be valid
	assert.Equal(t, "", loc)
}

func TestLoanKeyAliasSelection(t *testing.T) {
	assert.Equal(t, "1234", (&Document{LoanID: "1234"}).LoanKey())
	assert.Equal(t, "1234", (&Document{LoanNumber: "1234"}).LoanKey())
	// loanId takes precedence when both are set
	assert.Equal(t, "1111", (&Document{LoanID: "1111", LoanNumber: "2222"}).LoanKey())
	assert.Equal(t, "", (&Document{}).LoanKey())
}

func TestIsResolvable(t *testing.T) {
	assert.True(t, (&Document{LoanNumber: "1234", S3Key: "k"}).IsResolvable())
	assert.False(t, (&Document{LoanNumber: "1234"}).IsResolvable())
	assert.False(t, (&Document{S3Key: "k"}).IsResolvable())
	assert.False(t, (&Document{}).IsResolvable())
}

func TestDocumentToResponse(t *testing.T) {
	doc := &Document{LoanNumber: "1234", FileName: "a.pdf", S3Key: "k"}
	resp := doc.ToResponse()
	assert.Equal(t, "1234", resp.LoanKey)
	assert.True(t, resp.Resolvable)
}

func TestUserToResponseNeverNilLoans(t *testing.T) {
	resp := (&User{Username: "jdoe"}).ToResponse()
	assert.NotNil(t, resp.LoanNumbers)
	assert.Empty(t, resp.LoanNumbers)
}
