package monitor

import (
	"context"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/metric"
)

// CPUTemperature reads the CPU proximity sensor.
type CPUTemperature struct {
	identity
	access  hardware.Access
	history *metric.History[metric.Temperature]
}

func NewCPUTemperature(access hardware.Access, historySize int) *CPUTemperature {
	return &CPUTemperature{
		identity: identity{name: "CPU Temperature", hardwareType: "cpu", deviceID: "cpu0"},
		access:   access,
		history:  metric.NewHistory[metric.Temperature](historySize),
	}
}

func (m *CPUTemperature) Temperature(ctx context.Context) (float64, error) {
	thermal, err := m.access.ThermalSnapshot(ctx)
	if err != nil {
		return 0, err
	}

	return thermal.CPUTemp, nil
}

func (m *CPUTemperature) IsCritical(ctx context.Context) (bool, error) {
	temp, err := m.Temperature(ctx)
	if err != nil {
		return false, err
	}

	return metric.Temperature(temp).IsCritical(m.CriticalThreshold()), nil
}

func (m *CPUTemperature) CriticalThreshold() float64 {
	return metric.CPUCriticalTemp
}

func (m *CPUTemperature) Metric(ctx context.Context) (metric.Sample[metric.Temperature], error) {
	temp, err := m.Temperature(ctx)
	if err != nil {
		return metric.Sample[metric.Temperature]{}, err
	}

	return record(m.history, metric.Temperature(temp)), nil
}

func (m *CPUTemperature) History() *metric.History[metric.Temperature] {
	return m.history
}

// CPUUtilization reads the aggregate CPU load.
type CPUUtilization struct {
	identity
	access  hardware.Access
	history *metric.History[metric.Percentage]
}

func NewCPUUtilization(access hardware.Access, historySize int) *CPUUtilization {
	return &CPUUtilization{
		identity: identity{name: "CPU Utilization", hardwareType: "cpu", deviceID: "cpu0"},
		access:   access,
		history:  metric.NewHistory[metric.Percentage](historySize),
	}
}

func (m *CPUUtilization) Utilization(ctx context.Context) (float64, error) {
	cpu, err := m.access.CPUSnapshot(ctx)
	if err != nil {
		return 0, err
	}

	return metric.NewPercentage(cpu.TotalUsage).Value(), nil
}

// CoreUtilization returns per-core load percentages.
func (m *CPUUtilization) CoreUtilization(ctx context.Context) ([]float64, error) {
	cpu, err := m.access.CPUSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	usage := make([]float64, len(cpu.CoreUsage))
	for i, v := range cpu.CoreUsage {
		usage[i] = metric.NewPercentage(v).Value()
	}

	return usage, nil
}

func (m *CPUUtilization) Metric(ctx context.Context) (metric.Sample[metric.Percentage], error) {
	usage, err := m.Utilization(ctx)
	if err != nil {
		return metric.Sample[metric.Percentage]{}, err
	}

	return record(m.history, metric.NewPercentage(usage)), nil
}

func (m *CPUUtilization) History() *metric.History[metric.Percentage] {
	return m.history
}

var (
	_ TemperatureMonitor           = (*CPUTemperature)(nil)
	_ Producer[metric.Temperature] = (*CPUTemperature)(nil)
	_ UtilizationMonitor           = (*CPUUtilization)(nil)
	_ Producer[metric.Percentage]  = (*CPUUtilization)(nil)
)
