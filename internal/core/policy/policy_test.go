package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/jwt"
)

func userClaims(loans ...string) *jwt.Claims {
	return &jwt.Claims{
		UserID:      "user-1",
		Username:    "jdoe",
		Role:        "USER",
		LoanNumbers: loans,
	}
}

func adminClaims() *jwt.Claims {
	return &jwt.Claims{
		UserID:   "admin-1",
		Username: "root",
		Role:     "ADMIN",
	}
}

func TestAuthorizeLoanMembership(t *testing.T) {
	claims := userClaims("1234", "5678")

	assert.True(t, AuthorizeLoan(claims, "1234").Allowed)
	assert.True(t, AuthorizeLoan(claims, "5678").Allowed)

	decision := AuthorizeLoan(claims, "9999")
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNotAuthorizedForLoan, decision.Reason)
}

func TestAuthorizeLoanDisplayFormEquivalence(t *testing.T) {
	// Holding "1234" also grants the prefixed display form, and vice versa
	assert.True(t, AuthorizeLoan(userClaims("1234"), "BIZLN-1234").Allowed)
	assert.True(t, AuthorizeLoan(userClaims("BIZLN-1234"), "1234").Allowed)
	assert.False(t, AuthorizeLoan(userClaims("1234"), "BIZLN-9999").Allowed)
}

func TestAuthorizeLoanAdminBypass(t *testing.T) {
	assert.True(t, AuthorizeLoan(adminClaims(), "1234").Allowed)
	assert.True(t, AuthorizeLoan(adminClaims(), "anything-at-all").Allowed)
}

func TestAuthorizeLoanEmptyList(t *testing.T) {
	assert.False(t, AuthorizeLoan(userClaims(), "1234").Allowed)
	assert.False(t, AuthorizeLoan(nil, "1234").Allowed)
}

func TestAuthorizeDocument(t *testing.T) {
	claims := userClaims("1234")

	assert.True(t, AuthorizeDocument(claims, "1234").Allowed)

	decision := AuthorizeDocument(claims, "9999")
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonNotAuthorizedForLoan, decision.Reason)
}

func TestAuthorizeDocumentUnresolvableOwnershipFailsClosed(t *testing.T) {
	decision := AuthorizeDocument(userClaims("1234"), "")
	assert.False(t, decision.Allowed)
	assert.Equal(t, ReasonUnresolvableOwnership, decision.Reason)
}

func TestAuthorizeDocumentAdminBypassesOwnership(t *testing.T) {
	// Admins may access documents that map to no loan at all
	assert.True(t, AuthorizeDocument(adminClaims(), "").Allowed)
	assert.True(t, AuthorizeDocument(adminClaims(), "1234").Allowed)
}
