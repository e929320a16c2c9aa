package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dukerupert/outreach/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json field names rather than Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeJSON reads the request body into v and validates its struct tags.
func decodeJSON(r *http.Request, op string, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.WrapError(err, domain.EINVALID, op, "Invalid request body")
	}
	if err := validate.Struct(v); err != nil {
		return validationError(op, err)
	}
	return nil
}

// validationError converts the first failed rule into an EINVALID error.
func validationError(op string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.WrapError(err, domain.EINVALID, op, "Invalid request body")
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", fe.Field())
	case "email":
		msg = fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "datetime":
		msg = fmt.Sprintf("%s must be an RFC 3339 timestamp", fe.Field())
	default:
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return domain.Invalid(op, msg)
}

// pathID parses the {id} path value.
func pathID(r *http.Request, op string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, domain.Invalid(op, "Invalid id")
	}
	return id, nil
}

// requiredQuery returns a trimmed query parameter or an EINVALID error.
func requiredQuery(r *http.Request, op, name string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", domain.Errorf(domain.EINVALID, op, "%s query parameter is required", name)
	}
	return v, nil
}
