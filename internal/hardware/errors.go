package hardware

import (
	"codeberg.org/mutker/hwmon/internal/errors"
)

const (
	ErrSensorUnavailable = errors.ErrSensorUnavailable
	ErrAccessDenied      = errors.ErrAccessDenied
	ErrTransientIO       = errors.ErrTransientIO
	ErrInvalidData       = errors.ErrInvalidData
	ErrNotImplemented    = errors.ErrNotImplemented

	ErrProbeFailed = errors.ErrorCode("hardware_probe_failed")
)

// SensorUnavailable builds the recoverable "no such sensor on this machine"
// error. Callers treat it as missing data, not a fault.
func SensorUnavailable(resource, reason string) error {
	return errors.New().WithData(ErrSensorUnavailable, struct {
		Resource string
		Reason   string
	}{Resource: resource, Reason: reason})
}

// NotImplemented builds the explicit placeholder error for a capability
// with no backing query. It is always surfaced, never silently defaulted.
func NotImplemented(feature string) error {
	return errors.New().WithData(ErrNotImplemented, feature)
}

// IsSensorUnavailable reports whether err means the sensor does not exist
// on this machine, as opposed to a hardware fault.
func IsSensorUnavailable(err error) bool {
	return errors.HasCode(err, ErrSensorUnavailable)
}

// IsAccessDenied reports whether err is an entitlement failure.
func IsAccessDenied(err error) bool {
	return errors.HasCode(err, ErrAccessDenied)
}

// IsTransient reports whether err is safe to retry with backoff at the
// collector level.
func IsTransient(err error) bool {
	return errors.HasCode(err, ErrTransientIO)
}

// IsNotImplemented reports whether err marks an unbacked capability.
func IsNotImplemented(err error) bool {
	return errors.HasCode(err, ErrNotImplemented)
}
