package landing

import "errors"

// Sentinel errors for the landing domain.
var (
	ErrInvalidContent     = errors.New("invalid landing page content")
	ErrContentUnavailable = errors.New("landing page content is not loaded")
	ErrSignInUnavailable  = errors.New("sign-in is not implemented")
)
