package monitor

import (
	"context"
	"time"

	"codeberg.org/mutker/hwmon/internal/metric"
)

// identity carries the immutable (name, hardware type, device id) triple
// every concrete monitor embeds.
type identity struct {
	name         string
	hardwareType string
	deviceID     string
}

func (id identity) Name() string {
	return id.name
}

func (id identity) HardwareType() string {
	return id.hardwareType
}

func (id identity) DeviceID() string {
	return id.deviceID
}

// Observation is one type-erased reading, produced by pollers so a single
// scheduler can handle heterogeneous monitors uniformly.
type Observation struct {
	Name         string
	HardwareType string
	DeviceID     string
	MetricName   string
	Value        float64
	Timestamp    time.Time
}

// Poller is the type-erased face of a Producer, for collectors that poll
// many monitors of different metric types in one loop.
type Poller interface {
	Identity
	Collect(ctx context.Context) (Observation, error)
}

type poller[T any] struct {
	Producer[T]
	metricName string
	value      func(T) float64
}

// NewPoller adapts a typed Producer into a Poller using the given metric
// name and value conversion.
func NewPoller[T any](p Producer[T], metricName string, value func(T) float64) Poller {
	return &poller[T]{Producer: p, metricName: metricName, value: value}
}

func (p *poller[T]) Collect(ctx context.Context) (Observation, error) {
	sample, err := p.Metric(ctx)
	if err != nil {
		return Observation{}, err
	}

	return Observation{
		Name:         p.Name(),
		HardwareType: p.HardwareType(),
		DeviceID:     p.DeviceID(),
		MetricName:   p.metricName,
		Value:        p.value(sample.Value),
		Timestamp:    sample.Timestamp,
	}, nil
}

// record wraps the produce-convert-record path shared by every Metric
// implementation: the sample is pushed to history only on success.
func record[T any](history *metric.History[T], value T) metric.Sample[T] {
	sample := metric.NewSample(value)
	history.Push(sample)

	return sample
}
