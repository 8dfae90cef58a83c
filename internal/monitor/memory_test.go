package monitor_test

import (
	"context"
	"testing"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUsage(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewMemoryUsage(mock, 10)
	ctx := context.Background()

	total, err := m.TotalBytes(ctx)
	require.NoError(t, err)
	used, err := m.UsedBytes(ctx)
	require.NoError(t, err)
	free, err := m.FreeBytes(ctx)
	require.NoError(t, err)

	assert.Equal(t, total, used+free, "Expected used + free to equal total")

	usage, err := m.Utilization(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, usage, 0.001)
}

func TestMemoryUsageZeroTotal(t *testing.T) {
	mock := hardware.NewMock().WithMemory(hardware.MemorySnapshot{})
	m := monitor.NewMemoryUsage(mock, 10)

	_, err := m.Utilization(context.Background())
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err))
}

func TestSwapUsage(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewSwapUsage(mock, 10)
	ctx := context.Background()

	total, err := m.TotalBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2<<30), total)

	used, err := m.UsedBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<30), used)

	free, err := m.FreeBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, total, used+free)
}

func TestMemoryPressure(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewMemoryPressure(mock, 10)
	ctx := context.Background()

	pressure, err := m.Utilization(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, pressure, 0.001)

	warning, err := m.IsWarning(ctx)
	require.NoError(t, err)
	assert.False(t, warning)

	critical, err := m.IsCriticalPressure(ctx)
	require.NoError(t, err)
	assert.False(t, critical)
}

func TestMemoryPressureThresholds(t *testing.T) {
	mock := hardware.NewMock().WithMemory(hardware.MemorySnapshot{
		Total:    16 << 30,
		Used:     15 << 30,
		Pressure: 92.0,
	})
	m := monitor.NewMemoryPressure(mock, 10)
	ctx := context.Background()

	warning, err := m.IsWarning(ctx)
	require.NoError(t, err)
	assert.True(t, warning, "Expected 92%% pressure to warn")

	critical, err := m.IsCriticalPressure(ctx)
	require.NoError(t, err)
	assert.False(t, critical, "Expected 92%% pressure to stay below critical")

	mock.WithMemory(hardware.MemorySnapshot{Total: 16 << 30, Used: 15 << 30, Pressure: 96.0})
	critical, err = m.IsCriticalPressure(ctx)
	require.NoError(t, err)
	assert.True(t, critical)
}

func TestMemoryTemperatureNotImplemented(t *testing.T) {
	m := monitor.NewMemoryTemperature(10)
	ctx := context.Background()

	_, err := m.Temperature(ctx)
	require.Error(t, err)
	assert.True(t, hardware.IsNotImplemented(err), "Expected an explicit not_implemented, never a fabricated value")

	_, err = m.Metric(ctx)
	require.Error(t, err)
	assert.Equal(t, 0, m.History().Len(), "Expected the history to stay empty")
}
