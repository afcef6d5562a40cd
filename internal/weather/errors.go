package weather

import "errors"

// Error taxonomy for provider calls. Callers branch on these with errors.Is;
// the concrete wrapped text is informational only.
var (
	// ErrEmptyCity is returned when a city name is blank after trimming.
	// It is a caller-side validation failure and never reaches the network.
	ErrEmptyCity = errors.New("city name must not be empty")

	// ErrInvalidCoordinates is returned for out-of-range latitude/longitude.
	ErrInvalidCoordinates = errors.New("coordinates out of range")

	// ErrNotFound is returned when the provider does not know the location.
	ErrNotFound = errors.New("location not found")

	// ErrUnauthorized is returned when the provider rejects the API key.
	ErrUnauthorized = errors.New("provider rejected credentials")

	// ErrTransient covers timeouts, connection failures, rate limiting and
	// 5xx responses. Eligible for caller-level retry; never retried here.
	ErrTransient = errors.New("transient provider failure")

	// ErrParse is returned when the provider payload cannot be decoded.
	ErrParse = errors.New("malformed provider response")

	// ErrEmptyWatchlist is returned by a batch fetch over zero cities so the
	// caller can distinguish "nothing to fetch" from an empty success.
	ErrEmptyWatchlist = errors.New("watchlist is empty")
)
