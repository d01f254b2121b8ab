package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/go-playground/validator/v10"
)

// emailShape is deliberately loose: something@something.tld with no spaces.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validate is safe for concurrent use and caches struct metadata, so one
// instance serves the whole package.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report json names so ValidationError.Field matches the request body.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation("emailshape", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})

	// bcrypt limits input bytes, not runes, so the builtin max won't do.
	_ = v.RegisterValidation("pwbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= cryptox.MaxPasswordBytes
	})

	return v
}

type credentialsInput struct {
	Email    string `json:"email" validate:"required,emailshape"`
	Password string `json:"password" validate:"required,pwbytes"`
}

type passwordChangeInput struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,pwbytes"`
}

type newEmailInput struct {
	Email string `json:"email" validate:"required,emailshape"`
}

// validateStruct runs the struct rules and reports one ValidationError.
// Missing fields win over malformed ones so callers always learn about
// absent input first.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	pick := verrs[0]
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			pick = fe
			break
		}
	}

	return &ValidationError{Field: pick.Field(), Reason: reasonFor(pick.Tag())}
}

func reasonFor(tag string) string {
	switch tag {
	case "required":
		return ReasonRequired
	case "emailshape":
		return ReasonEmail
	case "pwbytes":
		return ReasonTooLong
	default:
		return "is invalid"
	}
}

// normalizeEmail trims surrounding whitespace. Case is preserved, emails are
// matched exactly as stored.
func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}
