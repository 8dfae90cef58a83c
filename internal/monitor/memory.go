package monitor

import (
	"context"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/metric"
)

// MemoryUsage reports system memory capacity and usage.
type MemoryUsage struct {
	identity
	access  hardware.Access
	history *metric.History[metric.Percentage]
}

func NewMemoryUsage(access hardware.Access, historySize int) *MemoryUsage {
	return &MemoryUsage{
		identity: identity{name: "Memory Usage", hardwareType: "memory", deviceID: "memory0"},
		access:   access,
		history:  metric.NewHistory[metric.Percentage](historySize),
	}
}

func (m *MemoryUsage) TotalBytes(ctx context.Context) (uint64, error) {
	memory, err := m.access.MemorySnapshot(ctx)
	if err != nil {
		return 0, err
	}

	return memory.Total, nil
}

func (m *MemoryUsage) UsedBytes(ctx context.Context) (uint64, error) {
	memory, err := m.access.MemorySnapshot(ctx)
	if err != nil {
		return 0, err
	}

	return memory.Used, nil
}

func (m *MemoryUsage) FreeBytes(ctx context.Context) (uint64, error) {
	memory, err := m.access.MemorySnapshot(ctx)
	if err != nil {
		return 0, err
	}
	if memory.Used > memory.Total {
		return 0, hardware.SensorUnavailable("memory", "used exceeds total")
	}

	return memory.Total - memory.Used, nil
}

// Utilization is used memory over total as a percentage.
func (m *MemoryUsage) Utilization(ctx context.Context) (float64, error) {
	memory, err := m.access.MemorySnapshot(ctx)
	if err != nil {
		return 0, err
	}
	if memory.Total == 0 {
		return 0, hardware.SensorUnavailable("memory", "total not reported")
	}

	return metric.NewPercentage(float64(memory.Used) / float64(memory.Total) * 100.0).Value(), nil
}

func (m *MemoryUsage) Metric(ctx context.Context) (metric.Sample[metric.Percentage], error) {
	usage, err := m.Utilization(ctx)
	if err != nil {
		return metric.Sample[metric.Percentage]{}, err
	}

	return record(m.history, metric.NewPercentage(usage)), nil
}

func (m *MemoryUsage) History() *metric.History[metric.Percentage] {
	return m.history
}

// SwapUsage reports swap capacity.
type SwapUsage struct {
	identity
	access  hardware.Access
	history *metric.History[metric.ByteSize]
}

func NewSwapUsage(access hardware.Access, historySize int) *SwapUsage {
	return &SwapUsage{
		identity: identity{name: "Swap Usage", hardwareType: "memory", deviceID: "swap0"},
		access:   access,
		history:  metric.NewHistory[metric.ByteSize](historySize),
	}
}

func (m *SwapUsage) TotalBytes(ctx context.Context) (uint64, error) {
	memory, err := m.access.MemorySnapshot(ctx)
	if err != nil {
		return 0, err
	}

	return memory.SwapTotal, nil
}

func (m *SwapUsage) UsedBytes(ctx context.Context) (uint64, error) {
	memory, err := m.access.MemorySnapshot(ctx)
	if err != nil {
		return 0, err
	}

	return memory.SwapUsed, nil
}

func (m *SwapUsage) FreeBytes(ctx context.Context) (uint64, error) {
	memory, err := m.access.MemorySnapshot(ctx)
	if err != nil {
		return 0, err
	}
	if memory.SwapUsed > memory.SwapTotal {
		return 0, hardware.SensorUnavailable("swap", "used exceeds total")
	}

	return memory.SwapTotal - memory.SwapUsed, nil
}

func (m *SwapUsage) Metric(ctx context.Context) (metric.Sample[metric.ByteSize], error) {
	used, err := m.UsedBytes(ctx)
	if err != nil {
		return metric.Sample[metric.ByteSize]{}, err
	}

	return record(m.history, metric.ByteSize(used)), nil
}

func (m *SwapUsage) History() *metric.History[metric.ByteSize] {
	return m.history
}

// MemoryPressure reports the composite memory pressure percentage.
type MemoryPressure struct {
	identity
	access  hardware.Access
	history *metric.History[metric.Percentage]
}

func NewMemoryPressure(access hardware.Access, historySize int) *MemoryPressure {
	return &MemoryPressure{
		identity: identity{name: "Memory Pressure", hardwareType: "memory", deviceID: "memory0"},
		access:   access,
		history:  metric.NewHistory[metric.Percentage](historySize),
	}
}

func (m *MemoryPressure) Utilization(ctx context.Context) (float64, error) {
	memory, err := m.access.MemorySnapshot(ctx)
	if err != nil {
		return 0, err
	}

	return metric.NewPercentage(memory.Pressure).Value(), nil
}

// IsWarning reports pressure at or above the warning threshold.
func (m *MemoryPressure) IsWarning(ctx context.Context) (bool, error) {
	pressure, err := m.Utilization(ctx)
	if err != nil {
		return false, err
	}

	return pressure >= metric.MemoryWarningPercentage, nil
}

// IsCriticalPressure reports pressure at or above the critical threshold.
func (m *MemoryPressure) IsCriticalPressure(ctx context.Context) (bool, error) {
	pressure, err := m.Utilization(ctx)
	if err != nil {
		return false, err
	}

	return pressure >= metric.MemoryCriticalPercentage, nil
}

func (m *MemoryPressure) Metric(ctx context.Context) (metric.Sample[metric.Percentage], error) {
	pressure, err := m.Utilization(ctx)
	if err != nil {
		return metric.Sample[metric.Percentage]{}, err
	}

	return record(m.history, metric.NewPercentage(pressure)), nil
}

func (m *MemoryPressure) History() *metric.History[metric.Percentage] {
	return m.history
}

// MemoryTemperature is an explicit placeholder: no supported machine
// exposes a memory thermal sensor through the access layer, so every read
// fails with not_implemented rather than fabricating a value.
type MemoryTemperature struct {
	identity
	history *metric.History[metric.Temperature]
}

func NewMemoryTemperature(historySize int) *MemoryTemperature {
	return &MemoryTemperature{
		identity: identity{name: "Memory Temperature", hardwareType: "memory", deviceID: "memory0"},
		history:  metric.NewHistory[metric.Temperature](historySize),
	}
}

func (m *MemoryTemperature) Temperature(_ context.Context) (float64, error) {
	return 0, hardware.NotImplemented("memory temperature")
}

func (m *MemoryTemperature) IsCritical(_ context.Context) (bool, error) {
	return false, hardware.NotImplemented("memory temperature")
}

func (m *MemoryTemperature) CriticalThreshold() float64 {
	return metric.WarningTempThreshold
}

func (m *MemoryTemperature) Metric(_ context.Context) (metric.Sample[metric.Temperature], error) {
	return metric.Sample[metric.Temperature]{}, hardware.NotImplemented("memory temperature")
}

func (m *MemoryTemperature) History() *metric.History[metric.Temperature] {
	return m.history
}

var (
	_ ByteMetricsMonitor           = (*MemoryUsage)(nil)
	_ UtilizationMonitor           = (*MemoryUsage)(nil)
	_ Producer[metric.Percentage]  = (*MemoryUsage)(nil)
	_ ByteMetricsMonitor           = (*SwapUsage)(nil)
	_ Producer[metric.ByteSize]    = (*SwapUsage)(nil)
	_ UtilizationMonitor           = (*MemoryPressure)(nil)
	_ Producer[metric.Percentage]  = (*MemoryPressure)(nil)
	_ TemperatureMonitor           = (*MemoryTemperature)(nil)
	_ Producer[metric.Temperature] = (*MemoryTemperature)(nil)
)
