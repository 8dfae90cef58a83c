package monitor

import (
	"context"
	"strconv"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/metric"
)

// Fan monitors one fan by index.
type Fan struct {
	identity
	access  hardware.Access
	index   int
	history *metric.History[metric.Percentage]
}

func NewFan(access hardware.Access, index, historySize int) *Fan {
	return &Fan{
		identity: identity{
			name:         "Fan " + strconv.Itoa(index),
			hardwareType: "fan",
			deviceID:     "fan_" + strconv.Itoa(index),
		},
		access:  access,
		index:   index,
		history: metric.NewHistory[metric.Percentage](historySize),
	}
}

// DiscoverFans builds one monitor per fan the hardware reports.
func DiscoverFans(ctx context.Context, access hardware.Access, historySize int) ([]*Fan, error) {
	readings, err := access.FanSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	fans := make([]*Fan, 0, len(readings))
	for _, reading := range readings {
		fans = append(fans, NewFan(access, reading.Index, historySize))
	}

	return fans, nil
}

func (m *Fan) reading(ctx context.Context) (hardware.FanReading, error) {
	readings, err := m.access.FanSnapshot(ctx)
	if err != nil {
		return hardware.FanReading{}, err
	}

	for _, reading := range readings {
		if reading.Index == m.index {
			return reading, nil
		}
	}

	return hardware.FanReading{}, hardware.SensorUnavailable(m.deviceID, "fan not reported")
}

func (m *Fan) SpeedRPM(ctx context.Context) (float64, error) {
	reading, err := m.reading(ctx)
	if err != nil {
		return 0, err
	}

	return reading.SpeedRPM, nil
}

func (m *Fan) MinSpeed(ctx context.Context) (float64, error) {
	reading, err := m.reading(ctx)
	if err != nil {
		return 0, err
	}

	return reading.MinSpeed, nil
}

func (m *Fan) MaxSpeed(ctx context.Context) (float64, error) {
	reading, err := m.reading(ctx)
	if err != nil {
		return 0, err
	}

	return reading.MaxSpeed, nil
}

// Percentage maps the current speed onto the [min, max] range. A sensor
// reporting min == max yields 0 rather than dividing by zero.
func (m *Fan) Percentage(ctx context.Context) (float64, error) {
	reading, err := m.reading(ctx)
	if err != nil {
		return 0, err
	}

	if reading.MaxSpeed == reading.MinSpeed {
		return 0, nil
	}

	pct := (reading.SpeedRPM - reading.MinSpeed) / (reading.MaxSpeed - reading.MinSpeed) * 100.0

	return metric.NewPercentage(pct).Value(), nil
}

func (m *Fan) Metric(ctx context.Context) (metric.Sample[metric.Percentage], error) {
	pct, err := m.Percentage(ctx)
	if err != nil {
		return metric.Sample[metric.Percentage]{}, err
	}

	return record(m.history, metric.NewPercentage(pct)), nil
}

func (m *Fan) History() *metric.History[metric.Percentage] {
	return m.history
}

var (
	_ FanMonitor                  = (*Fan)(nil)
	_ Producer[metric.Percentage] = (*Fan)(nil)
)
