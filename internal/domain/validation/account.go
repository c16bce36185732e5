// Package validation contains pure payload validators. They perform no I/O
// and are safe for concurrent use; the service layer decides what to do with
// the violations they report.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Violation messages are part of the service contract: each structural defect
// of a payload produces one distinct, human-readable entry, in a fixed order.
const (
	MsgEmailRequired     = "email is required"
	MsgEmailMalformed    = "email is not a valid address"
	MsgLastNameRequired  = "last name is required"
	MsgFirstNameRequired = "first name is required"
)

var validate = validator.New()

// AccountPayload is the structural shape checked by ValidateAccount. It
// mirrors the save input of the account service without depending on it.
type AccountPayload struct {
	Email     string
	LastName  string
	FirstName string
}

// ValidateAccount checks the structural correctness of an account payload and
// returns the ordered list of violations. An empty slice means the payload is
// valid. Uniqueness and credential rules are the service's concern, not this
// function's.
func ValidateAccount(payload AccountPayload) []string {
	var violations []string

	if strings.TrimSpace(payload.Email) == "" {
		violations = append(violations, MsgEmailRequired)
	} else if err := validate.Var(payload.Email, "email"); err != nil {
		violations = append(violations, MsgEmailMalformed)
	}

	if strings.TrimSpace(payload.LastName) == "" {
		violations = append(violations, MsgLastNameRequired)
	}

	if strings.TrimSpace(payload.FirstName) == "" {
		violations = append(violations, MsgFirstNameRequired)
	}

	return violations
}
