package telemetry

import (
	"context"
	"time"
)

// Collector defines the core domain interface
type Collector interface {
	Record(ctx context.Context, observation *Observation) error
	Close() error
}

// Repository defines the interface for observation storage
type Repository interface {
	Record(observation *Observation) error
	Close() error
}

// Observation is one recorded monitor reading.
type Observation struct {
	Timestamp    time.Time
	Monitor      string
	HardwareType string
	DeviceID     string
	Metric       string
	Value        float64
}
