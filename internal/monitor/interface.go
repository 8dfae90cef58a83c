// Package monitor defines the capability interfaces hardware monitors
// implement selectively, and the concrete per-domain monitors that compose
// them. A concrete monitor implements Identity, the capabilities its
// hardware domain supports, and Producer[T] for uniform polling; nothing
// else. Collectors are written against the narrowest interface they need.
package monitor

import (
	"context"
	"time"

	"codeberg.org/mutker/hwmon/internal/metric"
)

// Identity names a monitor instance. All three values are fixed at
// construction; the methods never perform I/O.
type Identity interface {
	Name() string
	HardwareType() string
	// DeviceID distinguishes multiple instances of the same hardware type
	// (fan_0, fan_1, disk_io_sda).
	DeviceID() string
}

// TemperatureMonitor is the capability for thermal sensors.
type TemperatureMonitor interface {
	Identity
	// Temperature returns the current reading in Celsius.
	Temperature(ctx context.Context) (float64, error)
	// IsCritical compares the current reading against the domain threshold.
	IsCritical(ctx context.Context) (bool, error)
	CriticalThreshold() float64
}

// UtilizationMonitor is the capability for load sensors. Readings are in
// [0, 100].
type UtilizationMonitor interface {
	Identity
	Utilization(ctx context.Context) (float64, error)
}

// ByteMetricsMonitor is the capability for capacity sensors. Whenever all
// three values are available, used + free == total.
type ByteMetricsMonitor interface {
	Identity
	TotalBytes(ctx context.Context) (uint64, error)
	UsedBytes(ctx context.Context) (uint64, error)
	FreeBytes(ctx context.Context) (uint64, error)
}

// FanMonitor is the capability for fan sensors.
type FanMonitor interface {
	Identity
	SpeedRPM(ctx context.Context) (float64, error)
	MinSpeed(ctx context.Context) (float64, error)
	MaxSpeed(ctx context.Context) (float64, error)
	// Percentage is (speed-min)/(max-min)*100 clamped to [0, 100], and 0
	// for a degenerate sensor reporting min == max.
	Percentage(ctx context.Context) (float64, error)
}

// MountMonitor is the capability for volume mount state.
type MountMonitor interface {
	Identity
	MountPoint(ctx context.Context) (string, error)
	FilesystemType(ctx context.Context) (string, error)
	IsBootVolume(ctx context.Context) (bool, error)
	IsReadOnly(ctx context.Context) (bool, error)
	IsRemovable(ctx context.Context) (bool, error)
	IsNetwork(ctx context.Context) (bool, error)
	IsMounted(ctx context.Context) (bool, error)
	MountOptions(ctx context.Context) ([]string, error)
}

// PowerSource identifies what is powering the machine.
type PowerSource int

const (
	PowerSourceUnknown PowerSource = iota
	PowerSourceBattery
	PowerSourceAC
)

func (s PowerSource) String() string {
	switch s {
	case PowerSourceBattery:
		return "battery"
	case PowerSourceAC:
		return "ac"
	default:
		return "unknown"
	}
}

// PowerMonitor is the capability for power state and draw.
type PowerMonitor interface {
	Identity
	PowerDraw(ctx context.Context) (float64, error)
	PowerSource(ctx context.Context) (PowerSource, error)
	IsCharging(ctx context.Context) (bool, error)
	TimeRemaining(ctx context.Context) (time.Duration, error)
}

// Producer is the uniform entry point generic collectors poll through. A
// Metric call performs one capability read, converts the result to the
// typed metric, records it into the monitor's own history, and returns it.
// Failed reads are never recorded.
type Producer[T any] interface {
	Identity
	Metric(ctx context.Context) (metric.Sample[T], error)
}
