package monitor_test

import (
	"context"
	"testing"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/metric"
	"codeberg.org/mutker/hwmon/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUTemperatureAbsentSensor(t *testing.T) {
	mock := hardware.NewMock().WithThermal(hardware.ThermalSnapshot{CPUTemp: 45.0})
	m := monitor.NewGPUTemperature(mock, hardware.GPUClassDiscrete, 10)

	_, err := m.Temperature(context.Background())
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err), "Expected absent sensor, not access failure")
	assert.False(t, hardware.IsAccessDenied(err))

	_, err = m.Metric(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, m.History().Len())
}

func TestGPUTemperatureThresholdByClass(t *testing.T) {
	mock := hardware.NewMock()

	discrete := monitor.NewGPUTemperature(mock, hardware.GPUClassDiscrete, 10)
	integrated := monitor.NewGPUTemperature(mock, hardware.GPUClassIntegrated, 10)
	appleSilicon := monitor.NewGPUTemperature(mock, hardware.GPUClassAppleSilicon, 10)

	assert.InDelta(t, metric.GPUDiscreteCriticalTemp, discrete.CriticalThreshold(), 0.001)
	assert.InDelta(t, metric.GPUIntegratedCritical, integrated.CriticalThreshold(), 0.001)
	assert.InDelta(t, metric.GPUAppleSiliconCritical, appleSilicon.CriticalThreshold(), 0.001)
}

func TestGPUTemperatureCriticalDependsOnClass(t *testing.T) {
	temp := 92.0
	mock := hardware.NewMock().WithThermal(hardware.ThermalSnapshot{CPUTemp: 45.0, GPUTemp: &temp})
	ctx := context.Background()

	discrete := monitor.NewGPUTemperature(mock, hardware.GPUClassDiscrete, 10)
	critical, err := discrete.IsCritical(ctx)
	require.NoError(t, err)
	assert.True(t, critical, "Expected 92C to be critical for a discrete GPU")

	appleSilicon := monitor.NewGPUTemperature(mock, hardware.GPUClassAppleSilicon, 10)
	critical, err = appleSilicon.IsCritical(ctx)
	require.NoError(t, err)
	assert.False(t, critical, "Expected 92C to be fine for Apple Silicon")
}

func TestGPUUtilization(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewGPUUtilization(mock, 10)

	usage, err := m.Utilization(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 20.0, usage, 0.001)
}

func TestGPUMemoryByteInvariant(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewGPUMemory(mock, 10)
	ctx := context.Background()

	total, err := m.TotalBytes(ctx)
	require.NoError(t, err)
	used, err := m.UsedBytes(ctx)
	require.NoError(t, err)
	free, err := m.FreeBytes(ctx)
	require.NoError(t, err)

	assert.Equal(t, total, used+free, "Expected used + free to equal total")
	assert.Equal(t, uint64(8<<30), total)
	assert.Equal(t, uint64(2<<30), used)
}

func TestGPUMemoryUsedAboveTotal(t *testing.T) {
	mock := hardware.NewMock().WithGPU(hardware.GPUSnapshot{
		Name:        "Mock GPU",
		Class:       hardware.GPUClassDiscrete,
		MemoryUsed:  10 << 30,
		MemoryTotal: 8 << 30,
	})
	m := monitor.NewGPUMemory(mock, 10)

	_, err := m.FreeBytes(context.Background())
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err), "Expected inconsistent counters to be rejected")
}
