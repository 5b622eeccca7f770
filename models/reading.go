// Package models defines the data structures shared between the HTTP layer,
// the service layer, and the persistence layer of the telemetry API.
package models

import "time"

// Reading is one timestamped scalar measurement reported by a device/sensor
// pair. It is the only entity persisted by this service.
//
// ID is assigned by the database at insertion time and never changes.
// Unit is never null: an empty string means the caller did not supply one.
type Reading struct {
	ID         int64     `json:"id"`
	DeviceID   string    `json:"device_id"`
	Sensor     string    `json:"sensor"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
}

// CreateReadingRequest is the JSON body of POST /api/v1/readings.
//
// Unit and RecordedAt are optional: a missing unit becomes the empty string
// and a missing timestamp is replaced with the server's current UTC time
// before the reading is stored.
type CreateReadingRequest struct {
	DeviceID   string     `json:"device_id"`
	Sensor     string     `json:"sensor"`
	Value      *float64   `json:"value"`
	Unit       string     `json:"unit"`
	RecordedAt *time.Time `json:"recorded_at"`
}

// ReadingFilter describes the parameters of a list query. Empty DeviceID or
// Sensor means "no filter on that column".
type ReadingFilter struct {
	DeviceID string
	Sensor   string
	Limit    int
	Offset   int
}
