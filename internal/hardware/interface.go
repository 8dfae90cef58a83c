// Package hardware abstracts the physical sensor query surface behind the
// Access capability interface. Monitors depend only on Access; the real
// implementation talks to platform libraries, the mock returns canned data.
package hardware

import (
	"context"
	"time"

	"codeberg.org/mutker/hwmon/internal/smc"
)

// Access is the point-query surface monitors read through. Every call is an
// independent, idempotent read with no caching; callers needing history
// wrap results in a metric.History. Implementations must be safe for
// concurrent use by multiple monitors.
type Access interface {
	// ReadSMCKey reads a single named firmware sensor. Fails with
	// sensor_unavailable when the key is unknown to firmware, access_denied
	// when the process lacks entitlement, transient_io_error on a retryable
	// low-level failure.
	ReadSMCKey(ctx context.Context, key smc.Key) (float64, error)

	ThermalSnapshot(ctx context.Context) (ThermalSnapshot, error)
	FanSnapshot(ctx context.Context) ([]FanReading, error)
	BatterySnapshot(ctx context.Context) (BatterySnapshot, error)
	CPUSnapshot(ctx context.Context) (CPUSnapshot, error)
	GPUSnapshot(ctx context.Context) (GPUSnapshot, error)
	MemorySnapshot(ctx context.Context) (MemorySnapshot, error)

	// ListDisks enumerates the devices DiskSnapshot accepts.
	ListDisks(ctx context.Context) ([]string, error)
	DiskSnapshot(ctx context.Context, device string) (DiskSnapshot, error)
}

// ThermalSnapshot is a point-in-time read of the thermal sensors. Optional
// fields are nil when the sensor is absent on this machine, which is not an
// error.
type ThermalSnapshot struct {
	CPUTemp      float64
	GPUTemp      *float64
	BatteryTemp  *float64
	AmbientTemp  *float64
	HeatsinkTemp *float64
	Throttling   bool
}

// FanReading describes one fan at one instant. Speeds are RPM.
type FanReading struct {
	Index    int
	SpeedRPM float64
	MinSpeed float64
	MaxSpeed float64
}

// BatterySnapshot is a point-in-time read of the battery subsystem.
type BatterySnapshot struct {
	Present         bool
	Percentage      float64
	CycleCount      int64
	IsCharging      bool
	IsExternalPower bool
	Temperature     *float64
	PowerDrawWatts  float64
	// Capacities in mWh; zero when the platform does not report them.
	DesignCapacity  float64
	CurrentCapacity float64
	TimeRemaining   time.Duration
}

// CPUSnapshot is a point-in-time read of the CPU subsystem.
type CPUSnapshot struct {
	ModelName     string
	PhysicalCores int
	LogicalCores  int
	FrequencyMHz  float64
	TotalUsage    float64
	CoreUsage     []float64
}

// GPUClass determines which critical temperature threshold applies.
type GPUClass int

const (
	GPUClassDiscrete GPUClass = iota
	GPUClassIntegrated
	GPUClassAppleSilicon
)

// GPUSnapshot is a point-in-time read of the GPU subsystem.
type GPUSnapshot struct {
	Name        string
	Class       GPUClass
	Utilization float64
	MemoryUsed  uint64
	MemoryTotal uint64
	Temperature *float64
}

// MemorySnapshot is a point-in-time read of system memory.
type MemorySnapshot struct {
	Total     uint64
	Used      uint64
	Free      uint64
	SwapTotal uint64
	SwapUsed  uint64
	// Pressure is the composite memory pressure percentage [0, 100].
	Pressure float64
}

// DiskSnapshot is a point-in-time read of one disk device.
type DiskSnapshot struct {
	Device         string
	MountPoint     string
	FilesystemType string
	TotalBytes     uint64
	FreeBytes      uint64
	Mounted        bool
	BootVolume     bool
	ReadOnly       bool
	Removable      bool
	NetworkVolume  bool
	MountOptions   []string
	ReadBytes      uint64
	WriteBytes     uint64
	ReadOps        uint64
	WriteOps       uint64
}
