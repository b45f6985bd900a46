package landing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignInRequest_Normalize(t *testing.T) {
	req := &SignInRequest{Email: "  ada@example.com\r\n", Password: "  keep spaces  "}

	req.Normalize()

	assert.Equal(t, "ada@example.com", req.Email)
	assert.Equal(t, "  keep spaces  ", req.Password)
}

func TestSignInRequest_EchoEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{name: "plain", email: "ada@example.com", want: "ada@example.com"},
		{name: "markup stripped", email: `<script>alert(1)</script>ada@example.com`, want: "ada@example.com"},
		{name: "tag with attributes", email: `"><img src=x onerror=alert(1)>`, want: `">`},
		{name: "ampersand kept literal", email: "a&b@example.com", want: "a&b@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &SignInRequest{Email: tt.email}
			assert.Equal(t, tt.want, req.EchoEmail())
		})
	}
}

func TestSignInRequest_EchoEmailTruncates(t *testing.T) {
	req := &SignInRequest{Email: strings.Repeat("a", 400) + "@example.com"}

	assert.Len(t, []rune(req.EchoEmail()), maxEchoedEmailLength)
}

func TestEmailDomain(t *testing.T) {
	assert.Equal(t, "example.com", EmailDomain("ada@Example.COM"))
	assert.Equal(t, "b.io", EmailDomain("weird@name@b.io"))
	assert.Equal(t, "", EmailDomain("no-at-sign"))
	assert.Equal(t, "", EmailDomain("trailing@"))
}
