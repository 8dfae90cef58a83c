package hardware_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"codeberg.org/mutker/hwmon/internal/errors"
	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/smc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockReadsAreDeterministic(t *testing.T) {
	mock := hardware.NewMock()
	ctx := context.Background()

	first, err := mock.ReadSMCKey(ctx, smc.KeyCPUTemp)
	require.NoError(t, err)
	second, err := mock.ReadSMCKey(ctx, smc.KeyCPUTemp)
	require.NoError(t, err)

	assert.InDelta(t, first, second, 0.001, "Expected identical values on repeated reads")
	assert.InDelta(t, 42.5, first, 0.001)
}

func TestMockUnknownSMCKey(t *testing.T) {
	mock := hardware.NewMock().WithoutSMCKey(smc.KeyAmbientTemp)

	_, err := mock.ReadSMCKey(context.Background(), smc.KeyAmbientTemp)
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err), "Expected sensor_unavailable for unprogrammed key")
}

func TestMockOverrides(t *testing.T) {
	mock := hardware.NewMock().
		WithSMCValue(smc.KeyCPUTemp, 99.0).
		WithThermal(hardware.ThermalSnapshot{CPUTemp: 99.0})

	value, err := mock.ReadSMCKey(context.Background(), smc.KeyCPUTemp)
	require.NoError(t, err)
	assert.InDelta(t, 99.0, value, 0.001)

	thermal, err := mock.ThermalSnapshot(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 99.0, thermal.CPUTemp, 0.001)
	assert.Nil(t, thermal.GPUTemp, "Expected replacement snapshot to drop optional sensors")
}

func TestMockRawSMCReadings(t *testing.T) {
	mock := hardware.NewMock().
		WithSMCRaw(smc.KeyAmbientTemp, smc.TypeSP78, []byte{0x2A, 0x80}).
		WithSMCRaw(smc.KeyCPUTemp, smc.TypeFloat, []byte{0x42, 0x28, 0x00, 0x00}).
		WithSMCRaw(smc.KeyFan0Speed, smc.TypeFPE2, []byte{0x1F})

	value, err := mock.ReadSMCKey(context.Background(), smc.KeyAmbientTemp)
	require.NoError(t, err)
	assert.InDelta(t, 42.5, value, 0.001, "Expected sp78 payload to decode through the wire codec")

	value, err = mock.ReadSMCKey(context.Background(), smc.KeyCPUTemp)
	require.NoError(t, err)
	assert.InDelta(t, 42.0, value, 0.001)

	_, err = mock.ReadSMCKey(context.Background(), smc.KeyFan0Speed)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidData), "Expected truncated payload to fail decoding")
}

func TestMockErrorInjection(t *testing.T) {
	injected := hardware.SensorUnavailable("battery", "no battery installed")
	mock := hardware.NewMock().Fail("battery", injected)

	_, err := mock.BatterySnapshot(context.Background())
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err))

	// Other methods are unaffected
	_, err = mock.CPUSnapshot(context.Background())
	assert.NoError(t, err)
}

func TestMockUnknownDisk(t *testing.T) {
	mock := hardware.NewMock()

	_, err := mock.DiskSnapshot(context.Background(), "disk9")
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err))

	devices, err := mock.ListDisks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"disk0"}, devices)
}

func TestSensorUnavailableCarriesContext(t *testing.T) {
	err := hardware.SensorUnavailable("gpu_temperature", "sensor absent")

	assert.True(t, hardware.IsSensorUnavailable(err))
	assert.False(t, hardware.IsAccessDenied(err), "Expected unavailable and denied to stay distinct")
	assert.Equal(t, errors.ErrSensorUnavailable, errors.CodeOf(err))
}

func TestNotImplementedIsDistinct(t *testing.T) {
	err := hardware.NotImplemented("memory temperature")

	assert.True(t, hardware.IsNotImplemented(err))
	assert.False(t, hardware.IsSensorUnavailable(err))
	assert.False(t, hardware.IsTransient(err))
}

func TestMockConcurrentReadsAndMutation(t *testing.T) {
	mock := hardware.NewMock()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			mock.WithSMCValue(smc.KeyCPUTemp, float64(40+i%10))
			mock.WithThermal(hardware.ThermalSnapshot{CPUTemp: float64(40 + i%10)})
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := mock.ReadSMCKey(ctx, smc.KeyCPUTemp)
			assert.NoError(t, err)
			_, err = mock.ThermalSnapshot(ctx)
			assert.NoError(t, err)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := mock.BatterySnapshot(ctx)
			assert.NoError(t, err)
			_, err = mock.ListDisks(ctx)
			assert.NoError(t, err)
		}
	}()

	wg.Wait()
}

func TestProbeFailedWrapsCause(t *testing.T) {
	cause := fmt.Errorf("nvml: driver not loaded")
	err := errors.New().Wrap(hardware.ErrProbeFailed, cause)

	assert.True(t, errors.HasCode(err, hardware.ErrProbeFailed))
	assert.ErrorIs(t, err, cause)
}
