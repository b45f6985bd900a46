package landing

import (
	"context"

	"github.com/akeren/betrayal-web/internal/log"
	apperrors "github.com/akeren/betrayal-web/pkg/errors"
)

const TemplateName = "landing"

type LandingService interface {
	// Render builds the page. A nil state yields the initial, stateless page.
	Render(ctx context.Context, state *FormState) (*PageView, error)
	// SignIn handles a submission that already satisfies the form's
	// constraints.
	SignIn(ctx context.Context, req *SignInRequest) (*SignInResult, error)
}

type landingService struct {
	logger  *log.Logger
	content *PageContent
}

func NewLandingService(logger *log.Logger, content *PageContent) LandingService {
	return &landingService{logger: logger, content: content}
}

func (s *landingService) Render(ctx context.Context, state *FormState) (*PageView, error) {
	if s.content == nil {
		log.GetLoggerInstanceFromContext(ctx, s.logger).Error("Landing page requested without content")
		return nil, apperrors.NewInternalServerError("The page is not available", ErrContentUnavailable)
	}

	view := &PageView{
		Title:   s.content.Title,
		Content: s.content,
		Fields:  make([]FieldView, len(s.content.Fields)),
	}

	for i, field := range s.content.Fields {
		view.Fields[i] = FieldView{FieldContent: field}
	}

	if state == nil {
		return view, nil
	}

	view.Notice = state.Notice
	for i := range view.Fields {
		field := &view.Fields[i]
		field.Error = state.Errors[field.Name]

		// Secrets never travel back to the client.
		if field.Type != "password" {
			field.Value = state.Values[field.Name]
		}
	}

	return view, nil
}

func (s *landingService) SignIn(ctx context.Context, req *SignInRequest) (*SignInResult, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("SignIn received nil request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	logger.Info("Sign-in attempted", "email_domain", EmailDomain(req.Email))

	notice := "Sign-in is not available yet."
	if s.content != nil && s.content.UnavailableNotice != "" {
		notice = s.content.UnavailableNotice
	}

	return nil, apperrors.NewNotImplementedError(notice, ErrSignInUnavailable)
}
