package api

import (
	"errors"
	"io"

	"github.com/akeren/betrayal-web/config/router"
)

const Greeting = "Hello, World!"

func NewAPIController() *router.RESTController {
	return router.NewRESTController(
		"APIController",
		"/api",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddGetHandler(c, nil, "", helloHandler())
			rs.AddPostHandler(c, nil, "echo", echoHandler())
		},
	)
}

func helloHandler() router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		return router.OKResult(Greeting, "Greeting successful")
	}
}

// echoHandler returns the posted JSON object unchanged.
func echoHandler() router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var body map[string]any
		if err := ctx.ShouldBindJSON(&body); err != nil {
			if errors.Is(err, io.EOF) {
				return router.BadRequestResult("Request body is required", nil)
			}
			logger.Warn("Failed to bind echo payload", "error", err)
			return router.BadRequestResult("Request body must be a JSON object", nil)
		}

		return router.OKResult(body, "Echo successful")
	}
}
