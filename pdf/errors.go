package pdf

import "errors"

var (
	// ErrInvalidProfile is returned by ParseProfile for names outside Profiles.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrConversionFailed means the external tool could not be started or exited non-zero.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrConversionTimeout means the external tool was killed after exceeding its timeout.
	ErrConversionTimeout = errors.New("conversion timed out")

	// ErrConversionCanceled means the caller went away while the tool was running.
	ErrConversionCanceled = errors.New("conversion canceled")
)

func isKilled(err error) bool {
	return errors.Is(err, ErrConversionTimeout) || errors.Is(err, ErrConversionCanceled)
}
