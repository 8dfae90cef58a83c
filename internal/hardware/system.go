package hardware

import (
	"context"
	"strings"
	"time"

	"codeberg.org/mutker/hwmon/internal/errors"
	"codeberg.org/mutker/hwmon/internal/logger"
	"codeberg.org/mutker/hwmon/internal/metric"
	"codeberg.org/mutker/hwmon/internal/smc"
	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"
)

// System is the real Access implementation. It resolves snapshot requests
// to platform sensor queries and is constructed once per process, then
// shared read-only across all monitors.
type System struct {
	gpu    gpuBackend
	logger logger.Logger
}

// NewSystem probes the hardware and returns the shared access handle.
// Probe failures for optional subsystems (GPU) are logged and degrade to
// sensor_unavailable at read time instead of failing construction.
func NewSystem(log logger.Logger) *System {
	s := &System{logger: log}

	gpu, err := newNVMLBackend()
	if err != nil {
		log.Debug().Err(errors.New().Wrap(ErrProbeFailed, err)).Msg("GPU backend unavailable")
	} else {
		s.gpu = gpu
	}

	return s
}

// Close releases backend handles.
func (s *System) Close() error {
	if s.gpu != nil {
		return s.gpu.Shutdown()
	}

	return nil
}

// smcKeyPatterns maps firmware key names onto substrings matched against
// the platform sensor labels.
var smcKeyPatterns = map[smc.Key][]string{
	smc.KeyCPUTemp:      {"coretemp", "cpu", "k10temp", "zenpower"},
	smc.KeyGPUTemp:      {"gpu", "amdgpu", "nouveau"},
	smc.KeyBatteryTemp:  {"bat", "battery"},
	smc.KeyAmbientTemp:  {"ambient", "acpi"},
	smc.KeyHeatsinkTemp: {"heatsink", "pch"},
}

func (s *System) ReadSMCKey(ctx context.Context, key smc.Key) (float64, error) {
	patterns, ok := smcKeyPatterns[key]
	if !ok {
		return 0, SensorUnavailable(key.String(), "key unknown to firmware")
	}

	stats, err := sensors.TemperaturesWithContext(ctx)
	if err != nil {
		return 0, wrapSensorErr(key.String(), err)
	}

	for _, stat := range stats {
		label := strings.ToLower(stat.SensorKey)
		for _, pattern := range patterns {
			if strings.Contains(label, pattern) {
				return stat.Temperature, nil
			}
		}
	}

	return 0, SensorUnavailable(key.String(), "no matching platform sensor")
}

func (s *System) ThermalSnapshot(ctx context.Context) (ThermalSnapshot, error) {
	cpuTemp, err := s.ReadSMCKey(ctx, smc.KeyCPUTemp)
	if err != nil {
		return ThermalSnapshot{}, err
	}

	snapshot := ThermalSnapshot{CPUTemp: cpuTemp}

	if temp, err := s.ReadSMCKey(ctx, smc.KeyGPUTemp); err == nil {
		snapshot.GPUTemp = &temp
	} else if s.gpu != nil {
		if gpu, err := s.gpu.Snapshot(); err == nil && gpu.Temperature != nil {
			snapshot.GPUTemp = gpu.Temperature
		}
	}
	if temp, err := s.ReadSMCKey(ctx, smc.KeyBatteryTemp); err == nil {
		snapshot.BatteryTemp = &temp
	}
	if temp, err := s.ReadSMCKey(ctx, smc.KeyAmbientTemp); err == nil {
		snapshot.AmbientTemp = &temp
	}
	if temp, err := s.ReadSMCKey(ctx, smc.KeyHeatsinkTemp); err == nil {
		snapshot.HeatsinkTemp = &temp
	}

	snapshot.Throttling = cpuTemp >= metric.ThrottlingThreshold

	return snapshot, nil
}

func (s *System) FanSnapshot(_ context.Context) ([]FanReading, error) {
	// No portable fan query surface; firmware fan keys need an SMC
	// connection this build does not open.
	return nil, SensorUnavailable("fans", "no platform fan interface")
}

func (s *System) BatterySnapshot(_ context.Context) (BatterySnapshot, error) {
	batteries, err := battery.GetAll()
	if err != nil {
		return BatterySnapshot{}, wrapSensorErr("battery", err)
	}
	if len(batteries) == 0 {
		return BatterySnapshot{Present: false}, nil
	}

	b := batteries[0]
	state := strings.ToLower(b.State.String())

	snapshot := BatterySnapshot{
		Present:         true,
		IsCharging:      state == "charging",
		IsExternalPower: state == "charging" || state == "full",
		DesignCapacity:  b.Design,
		CurrentCapacity: b.Full,
		PowerDrawWatts:  b.ChargeRate,
	}

	if b.Full > 0 {
		snapshot.Percentage = b.Current / b.Full * 100.0
	}
	if b.ChargeRate > 0 && state == "discharging" {
		hours := b.Current / b.ChargeRate
		snapshot.TimeRemaining = time.Duration(hours * float64(time.Hour))
	}

	return snapshot, nil
}

func (s *System) CPUSnapshot(ctx context.Context) (CPUSnapshot, error) {
	snapshot := CPUSnapshot{}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		snapshot.ModelName = infos[0].ModelName
		snapshot.FrequencyMHz = infos[0].Mhz
	}

	physical, err := cpu.CountsWithContext(ctx, false)
	if err != nil {
		return CPUSnapshot{}, wrapSensorErr("cpu", err)
	}
	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return CPUSnapshot{}, wrapSensorErr("cpu", err)
	}
	snapshot.PhysicalCores = physical
	snapshot.LogicalCores = logical

	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return CPUSnapshot{}, wrapSensorErr("cpu", err)
	}
	snapshot.CoreUsage = perCore

	total, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return CPUSnapshot{}, wrapSensorErr("cpu", err)
	}
	if len(total) > 0 {
		snapshot.TotalUsage = total[0]
	}

	return snapshot, nil
}

func (s *System) GPUSnapshot(_ context.Context) (GPUSnapshot, error) {
	if s.gpu == nil {
		return GPUSnapshot{}, SensorUnavailable("gpu", "no GPU backend")
	}

	return s.gpu.Snapshot()
}

func (s *System) MemorySnapshot(ctx context.Context) (MemorySnapshot, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemorySnapshot{}, wrapSensorErr("memory", err)
	}

	snapshot := MemorySnapshot{
		Total:    vm.Total,
		Used:     vm.Used,
		Free:     vm.Total - vm.Used,
		Pressure: vm.UsedPercent,
	}

	if swap, err := mem.SwapMemoryWithContext(ctx); err == nil {
		snapshot.SwapTotal = swap.Total
		snapshot.SwapUsed = swap.Used
	}

	return snapshot, nil
}

func (s *System) ListDisks(ctx context.Context) ([]string, error) {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, wrapSensorErr("disks", err)
	}

	devices := make([]string, 0, len(partitions))
	for _, p := range partitions {
		devices = append(devices, p.Device)
	}

	return devices, nil
}

var networkFilesystems = map[string]bool{
	"nfs":    true,
	"nfs4":   true,
	"smbfs":  true,
	"cifs":   true,
	"afpfs":  true,
	"webdav": true,
}

func (s *System) DiskSnapshot(ctx context.Context, device string) (DiskSnapshot, error) {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return DiskSnapshot{}, wrapSensorErr(device, err)
	}

	for _, p := range partitions {
		if p.Device != device {
			continue
		}

		snapshot := DiskSnapshot{
			Device:         device,
			MountPoint:     p.Mountpoint,
			FilesystemType: p.Fstype,
			Mounted:        true,
			BootVolume:     p.Mountpoint == "/",
			NetworkVolume:  networkFilesystems[strings.ToLower(p.Fstype)],
			MountOptions:   p.Opts,
		}
		for _, opt := range p.Opts {
			if opt == "ro" {
				snapshot.ReadOnly = true
			}
		}
		snapshot.Removable = strings.HasPrefix(p.Mountpoint, "/Volumes/") ||
			strings.HasPrefix(p.Mountpoint, "/media/") ||
			strings.HasPrefix(p.Mountpoint, "/run/media/")

		if usage, err := disk.UsageWithContext(ctx, p.Mountpoint); err == nil {
			snapshot.TotalBytes = usage.Total
			snapshot.FreeBytes = usage.Free
		}

		name := strings.TrimPrefix(device, "/dev/")
		if counters, err := disk.IOCountersWithContext(ctx, name); err == nil {
			if stat, ok := counters[name]; ok {
				snapshot.ReadBytes = stat.ReadBytes
				snapshot.WriteBytes = stat.WriteBytes
				snapshot.ReadOps = stat.ReadCount
				snapshot.WriteOps = stat.WriteCount
			}
		}

		return snapshot, nil
	}

	return DiskSnapshot{}, SensorUnavailable(device, "no such device")
}

// wrapSensorErr classifies a platform query failure: permission problems
// surface as access_denied, everything else as a retryable transient error.
func wrapSensorErr(resource string, err error) error {
	errFactory := errors.New()

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "permission denied") || strings.Contains(msg, "operation not permitted") {
		return errFactory.Wrap(ErrAccessDenied, err).WithData(resource)
	}

	return errFactory.Wrap(ErrTransientIO, err).WithData(resource)
}

var _ Access = (*System)(nil)
