package router

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/akeren/betrayal-web/pkg/constants"
	apperrors "github.com/akeren/betrayal-web/pkg/errors"
	"github.com/akeren/betrayal-web/pkg/ratelimit"
)

func normalizePath(controller *RESTController, relativePath string) string {
	var path string = controller.mountPoint

	if relativePath != "" {
		path = path + "/" + relativePath
	}

	if path[0] != '/' {
		path = "/" + path
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	return strings.ReplaceAll(path, "//", "/")
}

func (routerService *RouterService) keyForPathAndMethod(path, method string) string {
	return fmt.Sprintf("%s-%s", method, path)
}

func (controller *RESTController) bindHandlerToController(routerService *RouterService, path, method string) {
	key := routerService.keyForPathAndMethod(path, method)
	otherController, foundPrevious := routerService.handlerToControllerMap[key]

	if foundPrevious {
		panic(fmt.Sprintf("A handler is already registered for path '%s' by a different controller '%s'", path, otherController.name))
	}

	routerService.handlerToControllerMap[key] = controller
}

func (routerService *RouterService) bindOverrideRateLimiter(path string, limiter ratelimit.RateLimiter) {
	if limiter == nil {
		return
	}

	_, foundPrevious := routerService.rateLimitOverrides[path]
	if foundPrevious {
		panic(fmt.Sprintf("A rate limiter is already registered for path '%s'", path))
	}

	routerService.rateLimitOverrides[path] = limiter
}

func (routerService *RouterService) bindHandlerRateLimiter(path, method string, limiter ratelimit.RateLimiter) {
	key := routerService.keyForPathAndMethod(path, method)
	routerService.bindOverrideRateLimiter(key, limiter)
}

func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)

		if result == nil {
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("A handler returned an undefined result. This typically indicates a bug in a handler's implementation.").ToJSON())
			return
		}

		c.JSON(result.StatusCode, result.ToJSON())
	}
}

// createPageHandler renders into a buffer first so a failing template never
// produces a partial document.
func (routerService *RouterService) createPageHandler(handler PageHandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)

		if result == nil {
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("A page handler returned an undefined result. This typically indicates a bug in a handler's implementation.").ToJSON())
			return
		}

		if result.Failure != nil {
			c.JSON(result.Failure.StatusCode, result.Failure.ToJSON())
			return
		}

		if routerService.views == nil {
			GetLogger(c).Error("Page requested without a configured renderer", "template", result.Template)
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("The page could not be rendered").ToJSON())
			return
		}

		var buf bytes.Buffer
		if err := routerService.views.Render(c.Request.Context(), &buf, result.Template, result.Data); err != nil {
			GetLogger(c).Error("Failed to render page", "template", result.Template, "error_type", apperrors.GetErrorType(err), "error", err)
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("The page could not be rendered").ToJSON())
			return
		}

		status := result.StatusCode
		if status == 0 {
			status = http.StatusOK
		}

		c.Data(status, constants.HTMLContentType, buf.Bytes())
	}
}

func createAssetHandler(files fs.FS) MiddlewareFunc {
	fileSystem := http.FS(files)

	return func(c *RequestContext) {
		name := strings.TrimPrefix(c.Param("filepath"), "/")
		if name == "" || strings.HasSuffix(name, "/") {
			c.JSON(http.StatusNotFound, NotFoundResult("Asset not found").ToJSON())
			return
		}

		if _, err := fs.Stat(files, name); err != nil {
			c.JSON(http.StatusNotFound, NotFoundResult("Asset not found").ToJSON())
			return
		}

		c.FileFromFS(name, fileSystem)
	}
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	mountPoint = strings.ReplaceAll("/"+mountPoint, "//", "/")

	return &RESTController{
		name:       name,
		mountPoint: mountPoint,
		version:    "",
		prepare:    prepare,
	}
}

func NewVersionedRESTController(name, version, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	// Prefixing the version to the mount point at controller creation clarifies routing and leaves no room for ambiguity.
	finalPath := strings.ReplaceAll("/"+version+"/"+mountPoint, "//", "/")

	return &RESTController{
		name:       name,
		mountPoint: finalPath,
		version:    version,
		prepare:    prepare,
	}
}

func (controller *RESTController) RateLimitWith(routerService *RouterService, limiter ratelimit.RateLimiter) *RESTController {
	routerService.bindOverrideRateLimiter(controller.mountPoint, limiter)
	return controller
}

func (routerService *RouterService) addHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	method string,
	path string,
	handler MiddlewareFunc,
	middlewares ...MiddlewareFunc,
) {
	controller.handlerCount++
	mountPoint := normalizePath(controller, path)
	controller.bindHandlerToController(routerService, mountPoint, method)
	routerService.bindHandlerRateLimiter(mountPoint, method, limiter)
	routerService.engine.Handle(method, mountPoint, append(middlewares, handler)...)
	routerService.logger.Debug("Handler registered", "method", method, "path", mountPoint)
}

func (routerService *RouterService) AddPostHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(controller, limiter, http.MethodPost, path, createHandler(handler), middlewares...)
}

func (routerService *RouterService) AddGetHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(controller, limiter, http.MethodGet, path, createHandler(handler), middlewares...)
}

// AddPageHandler registers a handler whose result is rendered through the
// configured PageRenderer.
func (routerService *RouterService) AddPageHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	method string,
	path string,
	handler PageHandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(controller, limiter, method, path, routerService.createPageHandler(handler), middlewares...)
}

// AddAssetHandler serves files under path/*filepath. Directory listings are
// never produced.
func (routerService *RouterService) AddAssetHandler(
	controller *RESTController,
	limiter ratelimit.RateLimiter,
	path string,
	files fs.FS,
	middlewares ...MiddlewareFunc,
) {
	route := strings.TrimSuffix(path, "/") + "/*filepath"
	routerService.addHandler(controller, limiter, http.MethodGet, route, createAssetHandler(files), middlewares...)
}
