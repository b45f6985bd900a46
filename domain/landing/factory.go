package landing

import (
	"fmt"
	"io/fs"

	"github.com/akeren/betrayal-web/config/router"
	"github.com/akeren/betrayal-web/internal/log"
)

type LandingServiceFactory interface {
	CreateService() LandingService
	CreateController() *router.RESTController
}

type DefaultLandingServiceFactory struct {
	logger  *log.Logger
	content *PageContent
	assets  fs.FS
	limits  SignInLimits
}

// NewLandingServiceFactory loads the embedded page copy up front so a broken
// document fails startup instead of the first request.
func NewLandingServiceFactory(logger *log.Logger, assets fs.FS, limits SignInLimits) (LandingServiceFactory, error) {
	if err := RegisterValidations(); err != nil {
		return nil, fmt.Errorf("register landing validations: %w", err)
	}

	content, err := DefaultContent()
	if err != nil {
		return nil, fmt.Errorf("load landing content: %w", err)
	}

	return &DefaultLandingServiceFactory{
		logger:  logger,
		content: content,
		assets:  assets,
		limits:  limits,
	}, nil
}

func (f *DefaultLandingServiceFactory) CreateService() LandingService {
	return NewLandingService(f.logger, f.content)
}

func (f *DefaultLandingServiceFactory) CreateController() *router.RESTController {
	return NewLandingController(f.CreateService(), f.assets, f.limits)
}
