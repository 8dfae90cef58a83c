package monitor_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatteryCapacity(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewBatteryCapacity(mock, 10)
	ctx := context.Background()

	charge, err := m.ChargePercentage(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, charge, 0.001)

	cycles, err := m.CycleCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(120), cycles)
}

func TestBatteryAbsent(t *testing.T) {
	mock := hardware.NewMock().WithBattery(hardware.BatterySnapshot{Present: false})
	ctx := context.Background()

	capacity := monitor.NewBatteryCapacity(mock, 10)
	_, err := capacity.ChargePercentage(ctx)
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err), "Expected absent battery to report sensor_unavailable")

	power := monitor.NewBatteryPower(mock, 10)
	_, err = power.PowerDraw(ctx)
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err))

	health := monitor.NewBatteryHealth(mock, 10)
	_, err = health.HealthPercentage(ctx)
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err))
}

func TestBatteryTemperatureAbsentSensor(t *testing.T) {
	mock := hardware.NewMock().WithThermal(hardware.ThermalSnapshot{CPUTemp: 45.0})
	m := monitor.NewBatteryTemperature(mock, 10)

	_, err := m.Temperature(context.Background())
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err))
}

func TestBatteryPower(t *testing.T) {
	mock := hardware.NewMock().WithBattery(hardware.BatterySnapshot{
		Present:         true,
		Percentage:      55.0,
		IsCharging:      true,
		IsExternalPower: true,
		PowerDrawWatts:  30.0,
		TimeRemaining:   90 * time.Minute,
	})
	m := monitor.NewBatteryPower(mock, 10)
	ctx := context.Background()

	watts, err := m.PowerDraw(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, watts, 0.001)

	source, err := m.PowerSource(ctx)
	require.NoError(t, err)
	assert.Equal(t, monitor.PowerSourceAC, source)

	charging, err := m.IsCharging(ctx)
	require.NoError(t, err)
	assert.True(t, charging)

	remaining, err := m.TimeRemaining(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, remaining)
}

func TestBatteryPowerSourceOnBattery(t *testing.T) {
	mock := hardware.NewMock().WithBattery(hardware.BatterySnapshot{
		Present:         true,
		IsExternalPower: false,
	})
	m := monitor.NewBatteryPower(mock, 10)

	source, err := m.PowerSource(context.Background())
	require.NoError(t, err)
	assert.Equal(t, monitor.PowerSourceBattery, source)
}

func TestBatteryHealth(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewBatteryHealth(mock, 10)
	ctx := context.Background()

	// 54000 / 58200 of design capacity
	health, err := m.HealthPercentage(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 92.78, health, 0.01)

	critical, err := m.IsHealthCritical(ctx)
	require.NoError(t, err)
	assert.False(t, critical)

	cycleCritical, err := m.IsCycleCountCritical(ctx)
	require.NoError(t, err)
	assert.False(t, cycleCritical)
}

func TestBatteryHealthDegraded(t *testing.T) {
	mock := hardware.NewMock().WithBattery(hardware.BatterySnapshot{
		Present:         true,
		CycleCount:      1200,
		DesignCapacity:  58200,
		CurrentCapacity: 40000,
	})
	m := monitor.NewBatteryHealth(mock, 10)
	ctx := context.Background()

	critical, err := m.IsHealthCritical(ctx)
	require.NoError(t, err)
	assert.True(t, critical, "Expected under 80%% of design capacity to be critical")

	cycleCritical, err := m.IsCycleCountCritical(ctx)
	require.NoError(t, err)
	assert.True(t, cycleCritical, "Expected 1200 cycles to exceed the limit")
}

func TestBatteryHealthNoDesignCapacity(t *testing.T) {
	mock := hardware.NewMock().WithBattery(hardware.BatterySnapshot{
		Present:         true,
		CurrentCapacity: 40000,
	})
	m := monitor.NewBatteryHealth(mock, 10)

	_, err := m.HealthPercentage(context.Background())
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err))
}
