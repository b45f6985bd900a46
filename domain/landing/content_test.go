package landing

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultContent(t *testing.T) {
	content, err := DefaultContent()
	require.NoError(t, err)

	want := &PageContent{
		Title:    "Betrayal",
		Heading:  "Welcome to Betrayal",
		Subtitle: "Sign in to access your account",
		Action:   "/",
		Fields: []FieldContent{
			{ID: "email", Name: "email", Type: "email", Label: "Email", Placeholder: "Your Email", Required: true},
			{ID: "password", Name: "password", Type: "password", Label: "Password", Placeholder: "Your Password", Required: true},
		},
		SubmitLabel:       "Sign In",
		SignupPrompt:      "Don't have an account? ",
		SignupLinkText:    "Sign up here",
		SignupHref:        "/signup",
		UnavailableNotice: "Sign-in is not available yet.",
	}

	if diff := cmp.Diff(want, content); diff != "" {
		t.Fatalf("default content mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadContent_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown key",
			doc:  "heading: Hi\nbanner: nope\n",
			want: "banner",
		},
		{
			name: "email not typed as email",
			doc: `heading: Hi
submit_label: Go
signup_href: /signup
signup_link_text: Sign up
fields:
  - {id: email, name: email, type: text, required: true}
  - {id: password, name: password, type: password, required: true}
`,
			want: `field "email" must be a required email input`,
		},
		{
			name: "password optional",
			doc: `heading: Hi
submit_label: Go
signup_href: /signup
signup_link_text: Sign up
fields:
  - {id: email, name: email, type: email, required: true}
  - {id: password, name: password, type: password}
`,
			want: `field "password" must be a required password input`,
		},
		{
			name: "missing password",
			doc: `heading: Hi
submit_label: Go
signup_href: /signup
signup_link_text: Sign up
fields:
  - {id: email, name: email, type: email, required: true}
`,
			want: `missing field "password"`,
		},
		{
			name: "duplicate field",
			doc: `heading: Hi
submit_label: Go
signup_href: /signup
signup_link_text: Sign up
fields:
  - {id: email, name: email, type: email, required: true}
  - {id: email2, name: email, type: email, required: true}
`,
			want: `duplicate field "email"`,
		},
		{
			name: "no signup link",
			doc:  "heading: Hi\nsubmit_label: Go\n",
			want: "signup link is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := LoadContent([]byte(tt.doc))

			assert.Nil(t, content)
			require.ErrorIs(t, err, ErrInvalidContent)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadContent_DefaultsAction(t *testing.T) {
	doc := strings.Replace(string(defaultContent), "action: /\n", "", 1)

	content, err := LoadContent([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "/", content.Action)
}

func TestPageContent_Field(t *testing.T) {
	content, err := DefaultContent()
	require.NoError(t, err)

	field, ok := content.Field("password")
	require.True(t, ok)
	assert.Equal(t, "Your Password", field.Placeholder)

	_, ok = content.Field("username")
	assert.False(t, ok)
}
