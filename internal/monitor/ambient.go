package monitor

import (
	"context"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/metric"
	"codeberg.org/mutker/hwmon/internal/smc"
)

// AmbientTemperature reads the ambient air sensor directly by SMC key.
type AmbientTemperature struct {
	identity
	access  hardware.Access
	history *metric.History[metric.Temperature]
}

func NewAmbientTemperature(access hardware.Access, historySize int) *AmbientTemperature {
	return &AmbientTemperature{
		identity: identity{name: "Ambient Temperature", hardwareType: "ambient", deviceID: "ambient0"},
		access:   access,
		history:  metric.NewHistory[metric.Temperature](historySize),
	}
}

func (m *AmbientTemperature) Temperature(ctx context.Context) (float64, error) {
	return m.access.ReadSMCKey(ctx, smc.KeyAmbientTemp)
}

func (m *AmbientTemperature) IsCritical(ctx context.Context) (bool, error) {
	temp, err := m.Temperature(ctx)
	if err != nil {
		return false, err
	}

	return metric.Temperature(temp).IsCritical(m.CriticalThreshold()), nil
}

func (m *AmbientTemperature) CriticalThreshold() float64 {
	return metric.AmbientCriticalTemp
}

func (m *AmbientTemperature) Metric(ctx context.Context) (metric.Sample[metric.Temperature], error) {
	temp, err := m.Temperature(ctx)
	if err != nil {
		return metric.Sample[metric.Temperature]{}, err
	}

	return record(m.history, metric.Temperature(temp)), nil
}

func (m *AmbientTemperature) History() *metric.History[metric.Temperature] {
	return m.history
}

var (
	_ TemperatureMonitor           = (*AmbientTemperature)(nil)
	_ Producer[metric.Temperature] = (*AmbientTemperature)(nil)
)
