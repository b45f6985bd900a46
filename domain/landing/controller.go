package landing

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/akeren/betrayal-web/config/router"
	apperrors "github.com/akeren/betrayal-web/pkg/errors"
	"github.com/akeren/betrayal-web/pkg/ratelimit"
	"github.com/gin-gonic/gin/binding"
)

// SignInLimits bounds form submissions per client.
type SignInLimits struct {
	Requests int
	Window   time.Duration
}

func NewLandingController(service LandingService, assets fs.FS, limits SignInLimits) *router.RESTController {
	return router.NewRESTController(
		"LandingController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			signInLimiter := createSignInRateLimiter(rs, limits)

			rs.AddPageHandler(c, nil, http.MethodGet, "", showLandingPageHandler(service))
			rs.AddPageHandler(c, signInLimiter, http.MethodPost, "", submitSignInHandler(service))

			if assets != nil {
				rs.AddAssetHandler(c, nil, "static", assets)
			}
		},
	)
}

func createSignInRateLimiter(routerService *router.RouterService, limits SignInLimits) ratelimit.RateLimiter {
	if limits.Requests <= 0 {
		return nil
	}

	window := limits.Window
	if window <= 0 {
		_, window = routerService.GetDefaultRateLimitConfig()
	}

	return routerService.RateLimiters().CreateScopedRateLimiter("signin", limits.Requests, window)
}

func showLandingPageHandler(service LandingService) router.PageHandlerFunction {
	return func(ctx *router.RequestContext) *router.PageResult {
		view, err := service.Render(ctx.Request.Context(), nil)
		if err != nil {
			return router.PageFailure(router.ErrorResultFromError(err))
		}

		return router.PageOK(TemplateName, view)
	}
}

func submitSignInHandler(service LandingService) router.PageHandlerFunction {
	return func(ctx *router.RequestContext) *router.PageResult {
		logger := router.GetLogger(ctx)

		if err := ctx.Request.ParseForm(); err != nil {
			logger.Warn("Failed to parse sign-in form", "error", err)
			return router.PageFailure(router.BadRequestResult("Invalid form submission", nil))
		}

		var req SignInRequest
		if err := binding.MapFormWithTag(&req, ctx.Request.PostForm, "form"); err != nil {
			logger.Warn("Failed to bind sign-in form", "error", err)
			return router.PageFailure(router.BadRequestResult("Invalid form submission", nil))
		}
		req.Normalize()

		if err := validateSignIn(&req); err != nil {
			violations := apperrors.FormatValidationErrors(err, &req)
			if len(violations) == 0 {
				logger.Error("Sign-in form validation failed unexpectedly", "error", err)
				return router.PageFailure(router.BadRequestResult("Invalid form submission", nil))
			}

			fields := make([]string, 0, len(violations))
			for _, violation := range violations {
				fields = append(fields, violation.Field)
			}
			logger.Info("Sign-in submission rejected", "fields", fields)

			return renderWithState(ctx, service, http.StatusUnprocessableEntity, &FormState{
				Values: map[string]string{"email": req.EchoEmail()},
				Errors: apperrors.FieldMessages(violations),
			})
		}

		result, err := service.SignIn(ctx.Request.Context(), &req)
		if err != nil {
			if !apperrors.IsType(err, apperrors.ErrorTypeNotImplemented) {
				return router.PageFailure(router.ErrorResultFromError(err))
			}

			return renderWithState(ctx, service, http.StatusNotImplemented, &FormState{
				Values: map[string]string{"email": req.EchoEmail()},
				Notice: apperrors.GetHumanReadableMessage(err),
			})
		}

		state := &FormState{}
		if result != nil {
			state.Notice = result.Notice
		}
		return renderWithState(ctx, service, http.StatusOK, state)
	}
}

func renderWithState(ctx *router.RequestContext, service LandingService, status int, state *FormState) *router.PageResult {
	view, err := service.Render(ctx.Request.Context(), state)
	if err != nil {
		return router.PageFailure(router.ErrorResultFromError(err))
	}

	return router.PageWithStatus(status, TemplateName, view)
}
