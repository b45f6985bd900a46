package landing

import (
	"errors"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// HTMLEmailTag validates the way a browser checks an input of type email,
// which is looser than RFC 5322 in the local part and stricter in the domain.
const HTMLEmailTag = "html_email"

var htmlEmailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+" +
		"@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
		"(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$",
)

var (
	registerOnce sync.Once
	registerErr  error
)

func IsHTMLEmail(value string) bool {
	return htmlEmailPattern.MatchString(value)
}

func validateHTMLEmail(fl validator.FieldLevel) bool {
	return IsHTMLEmail(fl.Field().String())
}

// RegisterValidations adds the form tags used by SignInRequest to gin's
// validator engine. Safe to call more than once.
func RegisterValidations() error {
	registerOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("landing: binding validator is not go-playground/validator")
			return
		}
		registerErr = engine.RegisterValidation(HTMLEmailTag, validateHTMLEmail)
	})
	return registerErr
}

func validateSignIn(req *SignInRequest) error {
	if err := RegisterValidations(); err != nil {
		return err
	}
	return binding.Validator.ValidateStruct(req)
}
