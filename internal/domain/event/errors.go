package event

import (
	crerr "github.com/cockroachdb/errors"
)

const (
	// InvalidStatusMessage is shown to callers when an event has no usable play-by-play yet.
	InvalidStatusMessage = "Match has either not begun or has been postponed / cancelled"
	// NoDataMessage is shown to callers when the provider returned nothing to extract.
	NoDataMessage = "No response received, check event id"
)

var (
	ErrNoData           = crerr.New("no data received from provider")
	ErrMissingField     = crerr.New("missing vendor field")
	ErrMalformedPayload = crerr.New("malformed vendor payload")
	ErrInvalidStatus    = crerr.New("invalid event status")
	ErrTransport        = crerr.New("provider transport failure")
	ErrUnsupportedSport = crerr.New("unsupported sport")
)

// MissingField reports an absent vendor key at path.
func MissingField(path string) error {
	return crerr.Wrapf(ErrMissingField, "%s", path)
}

// InvalidStatus reports an event status code that is neither in progress nor post game.
func InvalidStatus(code int) error {
	err := crerr.Wrapf(ErrInvalidStatus, "status code %d", code)
	return crerr.WithHint(err, InvalidStatusMessage)
}

// MalformedPayload reports a vendor body that does not decode into the expected shape.
func MalformedPayload(what string, cause error) error {
	return crerr.Wrapf(ErrMalformedPayload, "%s: %v", what, cause)
}
