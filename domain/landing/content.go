package landing

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content/landing.yaml
var defaultContent []byte

type FieldContent struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder"`
	Required    bool   `yaml:"required"`
}

type PageContent struct {
	Title             string         `yaml:"title"`
	Heading           string         `yaml:"heading"`
	Subtitle          string         `yaml:"subtitle"`
	Action            string         `yaml:"action"`
	Fields            []FieldContent `yaml:"fields"`
	SubmitLabel       string         `yaml:"submit_label"`
	SignupPrompt      string         `yaml:"signup_prompt"`
	SignupLinkText    string         `yaml:"signup_link_text"`
	SignupHref        string         `yaml:"signup_href"`
	UnavailableNotice string         `yaml:"unavailable_notice"`
}

// requiredFields pins the input contract of the form: name to input type.
var requiredFields = map[string]string{
	"email":    "email",
	"password": "password",
}

func DefaultContent() (*PageContent, error) {
	return LoadContent(defaultContent)
}

// LoadContent decodes a content document and rejects documents that break
// the form's input contract. Unknown keys are errors.
func LoadContent(data []byte) (*PageContent, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var content PageContent
	if err := decoder.Decode(&content); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	if err := content.validate(); err != nil {
		return nil, err
	}

	return &content, nil
}

func (c *PageContent) validate() error {
	if c.Heading == "" || c.SubmitLabel == "" {
		return fmt.Errorf("%w: heading and submit label are required", ErrInvalidContent)
	}
	if c.SignupHref == "" || c.SignupLinkText == "" {
		return fmt.Errorf("%w: signup link is required", ErrInvalidContent)
	}
	if c.Action == "" {
		c.Action = "/"
	}

	seen := make(map[string]bool, len(c.Fields))
	for _, field := range c.Fields {
		if field.Name == "" || field.ID == "" {
			return fmt.Errorf("%w: every field needs an id and a name", ErrInvalidContent)
		}
		if seen[field.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidContent, field.Name)
		}
		seen[field.Name] = true

		if wantType, pinned := requiredFields[field.Name]; pinned {
			if field.Type != wantType || !field.Required {
				return fmt.Errorf("%w: field %q must be a required %s input", ErrInvalidContent, field.Name, wantType)
			}
		}
	}

	for name := range requiredFields {
		if !seen[name] {
			return fmt.Errorf("%w: missing field %q", ErrInvalidContent, name)
		}
	}

	return nil
}

func (c *PageContent) Field(name string) (FieldContent, bool) {
	for _, field := range c.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldContent{}, false
}
