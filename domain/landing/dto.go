package landing

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const maxEchoedEmailLength = 254

var echoPolicy = bluemonday.StrictPolicy()

// SignInRequest carries the posted form. Constraints mirror the markup:
// both inputs are required and email must pass the browser's email check.
type SignInRequest struct {
	Email    string `form:"email" binding:"required,html_email"`
	Password string `form:"password" binding:"required"`
}

// Normalize applies the value sanitization browsers perform on email inputs.
func (r *SignInRequest) Normalize() {
	r.Email = strings.TrimSpace(strings.NewReplacer("\r", "", "\n", "").Replace(r.Email))
}

// EchoEmail is the email value safe to put back into the form. Markup is
// stripped and the result is left unescaped for the template to escape.
func (r *SignInRequest) EchoEmail() string {
	cleaned := html.UnescapeString(echoPolicy.Sanitize(r.Email))
	cleaned = strings.TrimSpace(cleaned)

	if runes := []rune(cleaned); len(runes) > maxEchoedEmailLength {
		cleaned = string(runes[:maxEchoedEmailLength])
	}
	return cleaned
}

// EmailDomain is the only part of an address that is ever logged.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

// FormState is what a submission carries back into the page.
type FormState struct {
	Values map[string]string
	Errors map[string]string
	Notice string
}

type FieldView struct {
	FieldContent
	Value string
	Error string
}

type PageView struct {
	Title   string
	Content *PageContent
	Fields  []FieldView
	Notice  string
}

type SignInResult struct {
	Notice string
}
