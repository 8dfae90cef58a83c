package hardware

import (
	"context"
	"sync"

	"codeberg.org/mutker/hwmon/internal/smc"
)

// Mock is a programmable Access implementation for tests. Each method
// returns either the canned value set by the corresponding With* call or
// the injected error set by Fail*. Safe for concurrent reads.
type Mock struct {
	mu sync.RWMutex

	smcValues map[smc.Key]float64
	smcRaw    map[smc.Key]rawSMCReading
	thermal   ThermalSnapshot
	fans      []FanReading
	battery   BatterySnapshot
	cpu       CPUSnapshot
	gpu       GPUSnapshot
	memory    MemorySnapshot
	disks     map[string]DiskSnapshot
	diskOrder []string

	errs map[string]error
}

// NewMock returns a mock preloaded with a plausible healthy machine so
// tests only override what they care about.
func NewMock() *Mock {
	gpuTemp := 52.0
	batteryTemp := 30.5

	return &Mock{
		smcValues: map[smc.Key]float64{
			smc.KeyCPUTemp:     42.5,
			smc.KeyGPUTemp:     42.5,
			smc.KeyAmbientTemp: 26.0,
			smc.KeyBatteryTemp: 35.0,
			smc.KeyFanCount:    2.0,
			smc.KeyFan0Speed:   2000.0,
		},
		thermal: ThermalSnapshot{
			CPUTemp:     45.0,
			GPUTemp:     &gpuTemp,
			BatteryTemp: &batteryTemp,
		},
		fans: []FanReading{
			{Index: 0, SpeedRPM: 2000, MinSpeed: 1200, MaxSpeed: 5400},
		},
		battery: BatterySnapshot{
			Present:         true,
			Percentage:      80.0,
			CycleCount:      120,
			DesignCapacity:  58200,
			CurrentCapacity: 54000,
		},
		cpu: CPUSnapshot{
			ModelName:     "Mock CPU",
			PhysicalCores: 4,
			LogicalCores:  8,
			TotalUsage:    12.5,
			CoreUsage:     []float64{10, 15, 12, 13},
		},
		gpu: GPUSnapshot{
			Name:        "Mock GPU",
			Class:       GPUClassDiscrete,
			Utilization: 20.0,
			MemoryUsed:  2 << 30,
			MemoryTotal: 8 << 30,
		},
		memory: MemorySnapshot{
			Total:     16 << 30,
			Used:      8 << 30,
			Free:      8 << 30,
			SwapTotal: 2 << 30,
			SwapUsed:  1 << 30,
			Pressure:  50.0,
		},
		disks: map[string]DiskSnapshot{
			"disk0": {
				Device:         "disk0",
				MountPoint:     "/",
				FilesystemType: "apfs",
				TotalBytes:     500 << 30,
				FreeBytes:      200 << 30,
				Mounted:        true,
				BootVolume:     true,
				MountOptions:   []string{"rw", "journaled"},
			},
		},
		diskOrder: []string{"disk0"},
		smcRaw:    make(map[smc.Key]rawSMCReading),
		errs:      make(map[string]error),
	}
}

// rawSMCReading is an undecoded firmware payload programmed onto a key.
type rawSMCReading struct {
	dataType smc.DataType
	data     []byte
}

func (m *Mock) WithSMCValue(key smc.Key, value float64) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.smcValues[key] = value

	return m
}

// WithSMCRaw programs a key with undecoded firmware bytes. Reads of the
// key go through the wire codec, so malformed payloads surface as
// invalid_data just like a real sensor would.
func (m *Mock) WithSMCRaw(key smc.Key, dataType smc.DataType, data []byte) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload := make([]byte, len(data))
	copy(payload, data)
	m.smcRaw[key] = rawSMCReading{dataType: dataType, data: payload}

	return m
}

// WithoutSMCKey removes a key so reads of it fail with sensor_unavailable.
func (m *Mock) WithoutSMCKey(key smc.Key) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.smcValues, key)
	delete(m.smcRaw, key)

	return m
}

func (m *Mock) WithThermal(snapshot ThermalSnapshot) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.thermal = snapshot

	return m
}

func (m *Mock) WithFans(fans ...FanReading) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fans = fans

	return m
}

func (m *Mock) WithBattery(snapshot BatterySnapshot) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.battery = snapshot

	return m
}

func (m *Mock) WithCPU(snapshot CPUSnapshot) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cpu = snapshot

	return m
}

func (m *Mock) WithGPU(snapshot GPUSnapshot) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gpu = snapshot

	return m
}

func (m *Mock) WithMemory(snapshot MemorySnapshot) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.memory = snapshot

	return m
}

func (m *Mock) WithDisk(snapshot DiskSnapshot) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.disks[snapshot.Device]; !ok {
		m.diskOrder = append(m.diskOrder, snapshot.Device)
	}
	m.disks[snapshot.Device] = snapshot

	return m
}

// Fail makes the named method ("thermal", "fans", "battery", "cpu", "gpu",
// "memory", "disks", "smc") return err instead of its canned value.
func (m *Mock) Fail(method string, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[method] = err

	return m
}

func (m *Mock) failure(method string) error {
	return m.errs[method]
}

func (m *Mock) ReadSMCKey(_ context.Context, key smc.Key) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("smc"); err != nil {
		return 0, err
	}

	if raw, ok := m.smcRaw[key]; ok {
		return smc.ParseData(raw.dataType, raw.data)
	}

	value, ok := m.smcValues[key]
	if !ok {
		return 0, SensorUnavailable(key.String(), "key not programmed")
	}

	return value, nil
}

func (m *Mock) ThermalSnapshot(_ context.Context) (ThermalSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("thermal"); err != nil {
		return ThermalSnapshot{}, err
	}

	return m.thermal, nil
}

func (m *Mock) FanSnapshot(_ context.Context) ([]FanReading, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("fans"); err != nil {
		return nil, err
	}

	fans := make([]FanReading, len(m.fans))
	copy(fans, m.fans)

	return fans, nil
}

func (m *Mock) BatterySnapshot(_ context.Context) (BatterySnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("battery"); err != nil {
		return BatterySnapshot{}, err
	}

	return m.battery, nil
}

func (m *Mock) CPUSnapshot(_ context.Context) (CPUSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("cpu"); err != nil {
		return CPUSnapshot{}, err
	}

	return m.cpu, nil
}

func (m *Mock) GPUSnapshot(_ context.Context) (GPUSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("gpu"); err != nil {
		return GPUSnapshot{}, err
	}

	return m.gpu, nil
}

func (m *Mock) MemorySnapshot(_ context.Context) (MemorySnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("memory"); err != nil {
		return MemorySnapshot{}, err
	}

	return m.memory, nil
}

func (m *Mock) ListDisks(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("disks"); err != nil {
		return nil, err
	}

	devices := make([]string, len(m.diskOrder))
	copy(devices, m.diskOrder)

	return devices, nil
}

func (m *Mock) DiskSnapshot(_ context.Context, device string) (DiskSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.failure("disks"); err != nil {
		return DiskSnapshot{}, err
	}

	snapshot, ok := m.disks[device]
	if !ok {
		return DiskSnapshot{}, SensorUnavailable(device, "no such disk")
	}

	return snapshot, nil
}

var _ Access = (*Mock)(nil)
