package monitor

import (
	"context"
	"strings"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/metric"
)

func diskDeviceID(prefix, device string) string {
	name := strings.TrimPrefix(device, "/dev/")
	name = strings.ReplaceAll(name, "/", "_")

	return prefix + "_" + name
}

// DiskStorage reports capacity for one disk device.
type DiskStorage struct {
	identity
	access  hardware.Access
	device  string
	history *metric.History[metric.Percentage]
}

func NewDiskStorage(access hardware.Access, device string, historySize int) *DiskStorage {
	return &DiskStorage{
		identity: identity{name: "Disk Storage", hardwareType: "disk", deviceID: diskDeviceID("disk", device)},
		access:   access,
		device:   device,
		history:  metric.NewHistory[metric.Percentage](historySize),
	}
}

func (m *DiskStorage) TotalBytes(ctx context.Context) (uint64, error) {
	disk, err := m.access.DiskSnapshot(ctx, m.device)
	if err != nil {
		return 0, err
	}

	return disk.TotalBytes, nil
}

func (m *DiskStorage) UsedBytes(ctx context.Context) (uint64, error) {
	disk, err := m.access.DiskSnapshot(ctx, m.device)
	if err != nil {
		return 0, err
	}
	if disk.FreeBytes > disk.TotalBytes {
		return 0, hardware.SensorUnavailable(m.device, "free exceeds total")
	}

	return disk.TotalBytes - disk.FreeBytes, nil
}

func (m *DiskStorage) FreeBytes(ctx context.Context) (uint64, error) {
	disk, err := m.access.DiskSnapshot(ctx, m.device)
	if err != nil {
		return 0, err
	}

	return disk.FreeBytes, nil
}

// Utilization is used space over total as a percentage.
func (m *DiskStorage) Utilization(ctx context.Context) (float64, error) {
	disk, err := m.access.DiskSnapshot(ctx, m.device)
	if err != nil {
		return 0, err
	}
	if disk.TotalBytes == 0 {
		return 0, hardware.SensorUnavailable(m.device, "capacity not reported")
	}
	used := disk.TotalBytes - disk.FreeBytes

	return metric.NewPercentage(float64(used) / float64(disk.TotalBytes) * 100.0).Value(), nil
}

// IsNearlyFull reports usage above 90%.
func (m *DiskStorage) IsNearlyFull(ctx context.Context) (bool, error) {
	usage, err := m.Utilization(ctx)
	if err != nil {
		return false, err
	}

	return usage > nearlyFullPercentage, nil
}

const nearlyFullPercentage = 90.0

func (m *DiskStorage) Metric(ctx context.Context) (metric.Sample[metric.Percentage], error) {
	usage, err := m.Utilization(ctx)
	if err != nil {
		return metric.Sample[metric.Percentage]{}, err
	}

	return record(m.history, metric.NewPercentage(usage)), nil
}

func (m *DiskStorage) History() *metric.History[metric.Percentage] {
	return m.history
}

// DiskMount reports mount state for one disk device.
type DiskMount struct {
	identity
	access hardware.Access
	device string
}

func NewDiskMount(access hardware.Access, device string) *DiskMount {
	return &DiskMount{
		identity: identity{name: "Disk Mount", hardwareType: "disk", deviceID: diskDeviceID("mount", device)},
		access:   access,
		device:   device,
	}
}

func (m *DiskMount) snapshot(ctx context.Context) (hardware.DiskSnapshot, error) {
	return m.access.DiskSnapshot(ctx, m.device)
}

func (m *DiskMount) MountPoint(ctx context.Context) (string, error) {
	disk, err := m.snapshot(ctx)
	if err != nil {
		return "", err
	}

	return disk.MountPoint, nil
}

func (m *DiskMount) FilesystemType(ctx context.Context) (string, error) {
	disk, err := m.snapshot(ctx)
	if err != nil {
		return "", err
	}

	return disk.FilesystemType, nil
}

func (m *DiskMount) IsBootVolume(ctx context.Context) (bool, error) {
	disk, err := m.snapshot(ctx)
	if err != nil {
		return false, err
	}

	return disk.BootVolume, nil
}

func (m *DiskMount) IsReadOnly(ctx context.Context) (bool, error) {
	disk, err := m.snapshot(ctx)
	if err != nil {
		return false, err
	}

	return disk.ReadOnly, nil
}

func (m *DiskMount) IsRemovable(ctx context.Context) (bool, error) {
	disk, err := m.snapshot(ctx)
	if err != nil {
		return false, err
	}

	return disk.Removable, nil
}

func (m *DiskMount) IsNetwork(ctx context.Context) (bool, error) {
	disk, err := m.snapshot(ctx)
	if err != nil {
		return false, err
	}

	return disk.NetworkVolume, nil
}

func (m *DiskMount) IsMounted(ctx context.Context) (bool, error) {
	disk, err := m.snapshot(ctx)
	if err != nil {
		return false, err
	}

	return disk.Mounted, nil
}

func (m *DiskMount) MountOptions(ctx context.Context) ([]string, error) {
	disk, err := m.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]string, len(disk.MountOptions))
	copy(options, disk.MountOptions)

	return options, nil
}

// DiskIO reports cumulative transfer volume for one disk device. The
// produced metric is total bytes moved (reads plus writes); rates are the
// collector's derivative to take.
type DiskIO struct {
	identity
	access  hardware.Access
	device  string
	history *metric.History[metric.ByteSize]
}

func NewDiskIO(access hardware.Access, device string, historySize int) *DiskIO {
	return &DiskIO{
		identity: identity{name: "Disk I/O", hardwareType: "disk", deviceID: diskDeviceID("disk_io", device)},
		access:   access,
		device:   device,
		history:  metric.NewHistory[metric.ByteSize](historySize),
	}
}

func (m *DiskIO) ReadBytes(ctx context.Context) (uint64, error) {
	disk, err := m.access.DiskSnapshot(ctx, m.device)
	if err != nil {
		return 0, err
	}

	return disk.ReadBytes, nil
}

func (m *DiskIO) WriteBytes(ctx context.Context) (uint64, error) {
	disk, err := m.access.DiskSnapshot(ctx, m.device)
	if err != nil {
		return 0, err
	}

	return disk.WriteBytes, nil
}

func (m *DiskIO) ReadOps(ctx context.Context) (uint64, error) {
	disk, err := m.access.DiskSnapshot(ctx, m.device)
	if err != nil {
		return 0, err
	}

	return disk.ReadOps, nil
}

func (m *DiskIO) WriteOps(ctx context.Context) (uint64, error) {
	disk, err := m.access.DiskSnapshot(ctx, m.device)
	if err != nil {
		return 0, err
	}

	return disk.WriteOps, nil
}

func (m *DiskIO) Metric(ctx context.Context) (metric.Sample[metric.ByteSize], error) {
	disk, err := m.access.DiskSnapshot(ctx, m.device)
	if err != nil {
		return metric.Sample[metric.ByteSize]{}, err
	}

	return record(m.history, metric.ByteSize(disk.ReadBytes+disk.WriteBytes)), nil
}

func (m *DiskIO) History() *metric.History[metric.ByteSize] {
	return m.history
}

var (
	_ ByteMetricsMonitor          = (*DiskStorage)(nil)
	_ UtilizationMonitor          = (*DiskStorage)(nil)
	_ Producer[metric.Percentage] = (*DiskStorage)(nil)
	_ MountMonitor                = (*DiskMount)(nil)
	_ Producer[metric.ByteSize]   = (*DiskIO)(nil)
)
