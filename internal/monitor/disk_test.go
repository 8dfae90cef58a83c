package monitor_test

import (
	"context"
	"testing"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorage(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewDiskStorage(mock, "disk0", 10)
	ctx := context.Background()

	total, err := m.TotalBytes(ctx)
	require.NoError(t, err)
	used, err := m.UsedBytes(ctx)
	require.NoError(t, err)
	free, err := m.FreeBytes(ctx)
	require.NoError(t, err)

	assert.Equal(t, total, used+free, "Expected used + free to equal total")
	assert.Equal(t, uint64(500<<30), total)

	usage, err := m.Utilization(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, usage, 0.001)

	nearlyFull, err := m.IsNearlyFull(ctx)
	require.NoError(t, err)
	assert.False(t, nearlyFull)
}

func TestDiskStorageNearlyFull(t *testing.T) {
	mock := hardware.NewMock().WithDisk(hardware.DiskSnapshot{
		Device:     "disk1",
		TotalBytes: 100 << 30,
		FreeBytes:  5 << 30,
		Mounted:    true,
	})
	m := monitor.NewDiskStorage(mock, "disk1", 10)

	nearlyFull, err := m.IsNearlyFull(context.Background())
	require.NoError(t, err)
	assert.True(t, nearlyFull, "Expected 95%% usage to count as nearly full")
}

func TestDiskStorageUnknownDevice(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewDiskStorage(mock, "disk9", 10)

	_, err := m.TotalBytes(context.Background())
	require.Error(t, err)
	assert.True(t, hardware.IsSensorUnavailable(err))
}

func TestDiskDeviceIDs(t *testing.T) {
	mock := hardware.NewMock()

	assert.Equal(t, "disk_disk0", monitor.NewDiskStorage(mock, "disk0", 10).DeviceID())
	assert.Equal(t, "disk_sda", monitor.NewDiskStorage(mock, "/dev/sda", 10).DeviceID())
	assert.Equal(t, "disk_io_sda", monitor.NewDiskIO(mock, "/dev/sda", 10).DeviceID())
}

func TestDiskMount(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewDiskMount(mock, "disk0")
	ctx := context.Background()

	mountPoint, err := m.MountPoint(ctx)
	require.NoError(t, err)
	assert.Equal(t, "/", mountPoint)

	fsType, err := m.FilesystemType(ctx)
	require.NoError(t, err)
	assert.Equal(t, "apfs", fsType)

	boot, err := m.IsBootVolume(ctx)
	require.NoError(t, err)
	assert.True(t, boot)

	mounted, err := m.IsMounted(ctx)
	require.NoError(t, err)
	assert.True(t, mounted)

	readonly, err := m.IsReadOnly(ctx)
	require.NoError(t, err)
	assert.False(t, readonly)

	options, err := m.MountOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"rw", "journaled"}, options)
}

func TestDiskMountOptionsAreCopied(t *testing.T) {
	mock := hardware.NewMock()
	m := monitor.NewDiskMount(mock, "disk0")
	ctx := context.Background()

	options, err := m.MountOptions(ctx)
	require.NoError(t, err)
	options[0] = "mutated"

	again, err := m.MountOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rw", again[0], "Expected callers to get an independent copy")
}

func TestDiskIO(t *testing.T) {
	mock := hardware.NewMock().WithDisk(hardware.DiskSnapshot{
		Device:     "disk2",
		TotalBytes: 100 << 30,
		FreeBytes:  50 << 30,
		Mounted:    true,
		ReadBytes:  4096,
		WriteBytes: 8192,
		ReadOps:    4,
		WriteOps:   8,
	})
	m := monitor.NewDiskIO(mock, "disk2", 10)
	ctx := context.Background()

	readBytes, err := m.ReadBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4096), readBytes)

	writeBytes, err := m.WriteBytes(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(8192), writeBytes)

	readOps, err := m.ReadOps(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), readOps)

	writeOps, err := m.WriteOps(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(8), writeOps)

	sample, err := m.Metric(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(12288), sample.Value.Bytes(), "Expected the metric to combine read and write bytes")
}
