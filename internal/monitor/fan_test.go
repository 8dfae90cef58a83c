package monitor_test

import (
	"context"
	"testing"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanReadings(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewFan(mock, 0, 10)
	ctx := context.Background()

	speed, err := m.SpeedRPM(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 2000.0, speed, 0.001)

	minSpeed, err := m.MinSpeed(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1200.0, minSpeed, 0.001)

	maxSpeed, err := m.MaxSpeed(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 5400.0, maxSpeed, 0.001)

	// (2000 - 1200) / (5400 - 1200) * 100
	pct, err := m.Percentage(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 19.0476, pct, 0.001)
}

func TestFanPercentageDegenerateRange(t *testing.T) {
	mock := hardware.NewMock().WithFans(hardware.FanReading{
		Index: 0, SpeedRPM: 3000, MinSpeed: 3000, MaxSpeed: 3000,
	})
	m := monitor.NewFan(mock, 0, 10)

	pct, err := m.Percentage(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 0.0, pct, 0.001, "Expected min == max to yield 0, not a division by zero")
}

func TestFanPercentageClamps(t *testing.T) {
	mock := hardware.NewMock().WithFans(hardware.FanReading{
		Index: 0, SpeedRPM: 6000, MinSpeed: 1200, MaxSpeed: 5400,
	})
	m := monitor.NewFan(mock, 0, 10)

	pct, err := m.Percentage(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 100.0, pct, 0.001, "Expected speed above max to clamp to 100")
}

func TestFanNotReported(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewFan(mock, 5, 10)

	_, err := m.SpeedRPM(context.Background())
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err))
}

func TestDiscoverFans(t *testing.T) {
	mock := hardware.NewMock().WithFans(
		hardware.FanReading{Index: 0, SpeedRPM: 2000, MinSpeed: 1200, MaxSpeed: 5400},
		hardware.FanReading{Index: 1, SpeedRPM: 2100, MinSpeed: 1200, MaxSpeed: 5400},
	)

	fans, err := monitor.DiscoverFans(context.Background(), mock, 10)
	require.NoError(t, err)
	require.Len(t, fans, 2)
	assert.Equal(t, "fan_0", fans[0].DeviceID())
	assert.Equal(t, "fan_1", fans[1].DeviceID())
	assert.Equal(t, "Fan 1", fans[1].Name())
}

func TestDiscoverFansUnavailable(t *testing.T) {
	mock := hardware.NewMock().Fail("fans", hardware.SensorUnavailable("fans", "no platform fan interface"))

	_, err := monitor.DiscoverFans(context.Background(), mock, 10)
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err))
}
