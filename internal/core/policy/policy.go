// Package policy decides whether a verified claim set may access a
// loan-scoped or document-scoped resource. Decisions are pure functions
// over their inputs: no I/O, no clock, no side effects.
package policy

import (
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/jwt"
	"github.com/techbizloanindia/Dms-Bizloan-Pvt-Ltd-sub001/internal/pkg/loankey"
)

// Reason identifies why a request was denied
type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonNotAuthorizedForLoan  Reason = "NOT_AUTHORIZED_FOR_LOAN"
	ReasonUnresolvableOwnership Reason = "UNRESOLVABLE_OWNERSHIP"
)

// Decision is the outcome of an authorization check
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow is the positive decision
var Allow = Decision{Allowed: true}

// Deny builds a negative decision with a reason
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// AuthorizeLoan decides whether the caller may access resources scoped
// to the given loan key. Admins are allowed unconditionally; everyone
// else must hold the loan in their authorized list. Keys are compared in
// both raw and normalized display forms so "BIZLN-1234" and "1234" refer
// to the same loan.
func AuthorizeLoan(claims *jwt.Claims, loanKey string) Decision {
	if claims == nil {
		return Deny(ReasonNotAuthorizedForLoan)
	}
	if claims.IsAdmin() {
		return Allow
	}

	for _, authorized := range claims.LoanNumbers {
		if loankey.Equivalent(authorized, loanKey) {
			return Allow
		}
	}
	return Deny(ReasonNotAuthorizedForLoan)
}

// AuthorizeDocument decides whether the caller may access a document
// whose owning loan key has already been resolved by the caller.
// Admins bypass ownership entirely. For everyone else an empty key
// means the record could not be mapped to any loan: deny, never fail
// open.
func AuthorizeDocument(claims *jwt.Claims, docLoanKey string) Decision {
	if claims != nil && claims.IsAdmin() {
		return Allow
	}
	if docLoanKey == "" {
		return Deny(ReasonUnresolvableOwnership)
	}
	return AuthorizeLoan(claims, docLoanKey)
}
