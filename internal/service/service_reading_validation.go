package service

import (
	"math"
	"unicode/utf8"

	"github.com/greenhouse-iot/telemetry-api/models"
)

// Validation bounds for reading fields and list pagination.
const (
	maxDeviceIDLength = 64
	maxSensorLength   = 64
	maxUnitLength     = 16

	minListLimit = 1
	maxListLimit = 2000
)

// validateCreateReadingRequest checks every field of a candidate reading and
// collects all failures into one *ValidationError so the caller sees the
// full list at once.
func validateCreateReadingRequest(req models.CreateReadingRequest) error {
	verr := &ValidationError{}

	if req.DeviceID == "" {
		verr.add("body", "device_id", "field is required")
	} else if utf8.RuneCountInString(req.DeviceID) > maxDeviceIDLength {
		verr.add("body", "device_id", "must be at most 64 characters")
	}

	if req.Sensor == "" {
		verr.add("body", "sensor", "field is required")
	} else if utf8.RuneCountInString(req.Sensor) > maxSensorLength {
		verr.add("body", "sensor", "must be at most 64 characters")
	}

	if req.Value == nil {
		verr.add("body", "value", "field is required")
	} else if math.IsNaN(*req.Value) || math.IsInf(*req.Value, 0) {
		verr.add("body", "value", "must be a finite number")
	}

	if utf8.RuneCountInString(req.Unit) > maxUnitLength {
		verr.add("body", "unit", "must be at most 16 characters")
	}

	return verr.orNil()
}

// validateReadingFilter checks the pagination bounds of a list query.
// Filters themselves are free-form equality matches and need no validation.
func validateReadingFilter(filter models.ReadingFilter) error {
	verr := &ValidationError{}

	if filter.Limit < minListLimit || filter.Limit > maxListLimit {
		verr.add("query", "limit", "must be between 1 and 2000")
	}

	if filter.Offset < 0 {
		verr.add("query", "offset", "must be greater than or equal to 0")
	}

	return verr.orNil()
}
