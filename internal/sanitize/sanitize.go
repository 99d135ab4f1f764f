package sanitize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation marks input rejected at the boundary. Handlers map it to a
// client error without leaking internals.
var ErrValidation = errors.New("validation failed")

var validate = validator.New()

var markupRe = regexp.MustCompile(`<[^>]*>`)

// Clean strips markup tags and surrounding whitespace from an untrusted
// field. It must run before schema validation and before any uniqueness or
// ownership lookup, since those operate on the cleaned value.
func Clean(s string) string {
	return strings.TrimSpace(markupRe.ReplaceAllString(s, ""))
}

// JoinRequest is the cleaned body of a join call.
type JoinRequest struct {
	Name string `validate:"required"`
}

// MessageRequest is the cleaned body of a send or edit call. Clients cannot
// author status messages, hence the closed oneof.
type MessageRequest struct {
	To   string `validate:"required"`
	Text string `validate:"required"`
	Type string `validate:"required,oneof=message private_message"`
}

func ValidateJoin(req JoinRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return nil
}

func ValidateMessage(req MessageRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}
	return nil
}
