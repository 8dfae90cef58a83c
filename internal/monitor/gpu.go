package monitor

import (
	"context"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/metric"
)

// gpuCriticalThreshold returns the vendor-dependent critical temperature.
func gpuCriticalThreshold(class hardware.GPUClass) float64 {
	switch class {
	case hardware.GPUClassAppleSilicon:
		return metric.GPUAppleSiliconCritical
	case hardware.GPUClassIntegrated:
		return metric.GPUIntegratedCritical
	default:
		return metric.GPUDiscreteCriticalTemp
	}
}

// GPUTemperature reads the GPU thermal sensor. The critical threshold
// depends on the GPU class reported at construction.
type GPUTemperature struct {
	identity
	access    hardware.Access
	threshold float64
	history   *metric.History[metric.Temperature]
}

func NewGPUTemperature(access hardware.Access, class hardware.GPUClass, historySize int) *GPUTemperature {
	return &GPUTemperature{
		identity:  identity{name: "GPU Temperature", hardwareType: "gpu", deviceID: "gpu0"},
		access:    access,
		threshold: gpuCriticalThreshold(class),
		history:   metric.NewHistory[metric.Temperature](historySize),
	}
}

func (m *GPUTemperature) Temperature(ctx context.Context) (float64, error) {
	thermal, err := m.access.ThermalSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	if thermal.GPUTemp == nil {
		return 0, hardware.SensorUnavailable("gpu_temperature", "sensor absent")
	}

	return *thermal.GPUTemp, nil
}

func (m *GPUTemperature) IsCritical(ctx context.Context) (bool, error) {
	temp, err := m.Temperature(ctx)
	if err != nil {
		return false, err
	}

	return metric.Temperature(temp).IsCritical(m.threshold), nil
}

func (m *GPUTemperature) CriticalThreshold() float64 {
	return m.threshold
}

func (m *GPUTemperature) Metric(ctx context.Context) (metric.Sample[metric.Temperature], error) {
	temp, err := m.Temperature(ctx)
	if err != nil {
		return metric.Sample[metric.Temperature]{}, err
	}

	return record(m.history, metric.Temperature(temp)), nil
}

func (m *GPUTemperature) History() *metric.History[metric.Temperature] {
	return m.history
}

// GPUUtilization reads the GPU load.
type GPUUtilization struct {
	identity
	access  hardware.Access
	history *metric.History[metric.Percentage]
}

func NewGPUUtilization(access hardware.Access, historySize int) *GPUUtilization {
	return &GPUUtilization{
		identity: identity{name: "GPU Utilization", hardwareType: "gpu", deviceID: "gpu0"},
		access:   access,
		history:  metric.NewHistory[metric.Percentage](historySize),
	}
}

func (m *GPUUtilization) Utilization(ctx context.Context) (float64, error) {
	gpu, err := m.access.GPUSnapshot(ctx)
	if err != nil {
		return 0, err
	}

	return metric.NewPercentage(gpu.Utilization).Value(), nil
}

func (m *GPUUtilization) Metric(ctx context.Context) (metric.Sample[metric.Percentage], error) {
	usage, err := m.Utilization(ctx)
	if err != nil {
		return metric.Sample[metric.Percentage]{}, err
	}

	return record(m.history, metric.NewPercentage(usage)), nil
}

func (m *GPUUtilization) History() *metric.History[metric.Percentage] {
	return m.history
}

// GPUMemory reports GPU memory capacity. Free is derived as total minus
// used so the byte invariant holds for every snapshot.
type GPUMemory struct {
	identity
	access  hardware.Access
	history *metric.History[metric.ByteSize]
}

func NewGPUMemory(access hardware.Access, historySize int) *GPUMemory {
	return &GPUMemory{
		identity: identity{name: "GPU Memory", hardwareType: "gpu", deviceID: "gpu0"},
		access:   access,
		history:  metric.NewHistory[metric.ByteSize](historySize),
	}
}

func (m *GPUMemory) TotalBytes(ctx context.Context) (uint64, error) {
	gpu, err := m.access.GPUSnapshot(ctx)
	if err != nil {
		return 0, err
	}

	return gpu.MemoryTotal, nil
}

func (m *GPUMemory) UsedBytes(ctx context.Context) (uint64, error) {
	gpu, err := m.access.GPUSnapshot(ctx)
	if err != nil {
		return 0, err
	}

	return gpu.MemoryUsed, nil
}

func (m *GPUMemory) FreeBytes(ctx context.Context) (uint64, error) {
	gpu, err := m.access.GPUSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	if gpu.MemoryUsed > gpu.MemoryTotal {
		return 0, hardware.SensorUnavailable("gpu_memory", "used exceeds total")
	}

	return gpu.MemoryTotal - gpu.MemoryUsed, nil
}

func (m *GPUMemory) Metric(ctx context.Context) (metric.Sample[metric.ByteSize], error) {
	used, err := m.UsedBytes(ctx)
	if err != nil {
		return metric.Sample[metric.ByteSize]{}, err
	}

	return record(m.history, metric.ByteSize(used)), nil
}

func (m *GPUMemory) History() *metric.History[metric.ByteSize] {
	return m.history
}

var (
	_ TemperatureMonitor           = (*GPUTemperature)(nil)
	_ Producer[metric.Temperature] = (*GPUTemperature)(nil)
	_ UtilizationMonitor           = (*GPUUtilization)(nil)
	_ ByteMetricsMonitor           = (*GPUMemory)(nil)
	_ Producer[metric.ByteSize]    = (*GPUMemory)(nil)
)
