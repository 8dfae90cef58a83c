package monitor

import (
	"context"
	"time"

	"codeberg.org/mutker/hwmon/internal/hardware"
	"codeberg.org/mutker/hwmon/internal/metric"
)

// BatteryTemperature reads the battery thermal sensor.
type BatteryTemperature struct {
	identity
	access  hardware.Access
	history *metric.History[metric.Temperature]
}

func NewBatteryTemperature(access hardware.Access, historySize int) *BatteryTemperature {
	return &BatteryTemperature{
		identity: identity{name: "Battery Temperature", hardwareType: "battery", deviceID: "battery0"},
		access:   access,
		history:  metric.NewHistory[metric.Temperature](historySize),
	}
}

func (m *BatteryTemperature) Temperature(ctx context.Context) (float64, error) {
	thermal, err := m.access.ThermalSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	if thermal.BatteryTemp == nil {
		return 0, hardware.SensorUnavailable("battery_temperature", "sensor absent")
	}

	return *thermal.BatteryTemp, nil
}

func (m *BatteryTemperature) IsCritical(ctx context.Context) (bool, error) {
	temp, err := m.Temperature(ctx)
	if err != nil {
		return false, err
	}

	return metric.Temperature(temp).IsCritical(m.CriticalThreshold()), nil
}

func (m *BatteryTemperature) CriticalThreshold() float64 {
	return metric.BatteryCriticalTemp
}

func (m *BatteryTemperature) Metric(ctx context.Context) (metric.Sample[metric.Temperature], error) {
	temp, err := m.Temperature(ctx)
	if err != nil {
		return metric.Sample[metric.Temperature]{}, err
	}

	return record(m.history, metric.Temperature(temp)), nil
}

func (m *BatteryTemperature) History() *metric.History[metric.Temperature] {
	return m.history
}

// BatteryCapacity reports the state of charge and capacity figures.
type BatteryCapacity struct {
	identity
	access  hardware.Access
	history *metric.History[metric.Percentage]
}

func NewBatteryCapacity(access hardware.Access, historySize int) *BatteryCapacity {
	return &BatteryCapacity{
		identity: identity{name: "Battery Capacity", hardwareType: "battery", deviceID: "battery0"},
		access:   access,
		history:  metric.NewHistory[metric.Percentage](historySize),
	}
}

func (m *BatteryCapacity) snapshot(ctx context.Context) (hardware.BatterySnapshot, error) {
	battery, err := m.access.BatterySnapshot(ctx)
	if err != nil {
		return hardware.BatterySnapshot{}, err
	}
	if !battery.Present {
		return hardware.BatterySnapshot{}, hardware.SensorUnavailable("battery", "no battery installed")
	}

	return battery, nil
}

// ChargePercentage returns the current state of charge in [0, 100].
func (m *BatteryCapacity) ChargePercentage(ctx context.Context) (float64, error) {
	battery, err := m.snapshot(ctx)
	if err != nil {
		return 0, err
	}

	return metric.NewPercentage(battery.Percentage).Value(), nil
}

// CurrentCapacity returns the present full-charge capacity in mWh.
func (m *BatteryCapacity) CurrentCapacity(ctx context.Context) (float64, error) {
	battery, err := m.snapshot(ctx)
	if err != nil {
		return 0, err
	}

	return battery.CurrentCapacity, nil
}

// DesignCapacity returns the factory capacity in mWh.
func (m *BatteryCapacity) DesignCapacity(ctx context.Context) (float64, error) {
	battery, err := m.snapshot(ctx)
	if err != nil {
		return 0, err
	}

	return battery.DesignCapacity, nil
}

func (m *BatteryCapacity) CycleCount(ctx context.Context) (int64, error) {
	battery, err := m.snapshot(ctx)
	if err != nil {
		return 0, err
	}

	return battery.CycleCount, nil
}

func (m *BatteryCapacity) Metric(ctx context.Context) (metric.Sample[metric.Percentage], error) {
	charge, err := m.ChargePercentage(ctx)
	if err != nil {
		return metric.Sample[metric.Percentage]{}, err
	}

	return record(m.history, metric.NewPercentage(charge)), nil
}

func (m *BatteryCapacity) History() *metric.History[metric.Percentage] {
	return m.history
}

// BatteryPower reports power draw and charge state.
type BatteryPower struct {
	identity
	access  hardware.Access
	history *metric.History[float64]
}

func NewBatteryPower(access hardware.Access, historySize int) *BatteryPower {
	return &BatteryPower{
		identity: identity{name: "Battery Power", hardwareType: "battery", deviceID: "battery0"},
		access:   access,
		history:  metric.NewHistory[float64](historySize),
	}
}

func (m *BatteryPower) snapshot(ctx context.Context) (hardware.BatterySnapshot, error) {
	battery, err := m.access.BatterySnapshot(ctx)
	if err != nil {
		return hardware.BatterySnapshot{}, err
	}
	if !battery.Present {
		return hardware.BatterySnapshot{}, hardware.SensorUnavailable("battery", "no battery installed")
	}

	return battery, nil
}

// PowerDraw returns the battery charge or discharge rate in watts.
func (m *BatteryPower) PowerDraw(ctx context.Context) (float64, error) {
	battery, err := m.snapshot(ctx)
	if err != nil {
		return 0, err
	}

	return battery.PowerDrawWatts, nil
}

func (m *BatteryPower) PowerSource(ctx context.Context) (PowerSource, error) {
	battery, err := m.snapshot(ctx)
	if err != nil {
		return PowerSourceUnknown, err
	}
	if battery.IsExternalPower {
		return PowerSourceAC, nil
	}

	return PowerSourceBattery, nil
}

func (m *BatteryPower) IsCharging(ctx context.Context) (bool, error) {
	battery, err := m.snapshot(ctx)
	if err != nil {
		return false, err
	}

	return battery.IsCharging, nil
}

func (m *BatteryPower) TimeRemaining(ctx context.Context) (time.Duration, error) {
	battery, err := m.snapshot(ctx)
	if err != nil {
		return 0, err
	}

	return battery.TimeRemaining, nil
}

func (m *BatteryPower) Metric(ctx context.Context) (metric.Sample[float64], error) {
	watts, err := m.PowerDraw(ctx)
	if err != nil {
		return metric.Sample[float64]{}, err
	}

	return record(m.history, watts), nil
}

func (m *BatteryPower) History() *metric.History[float64] {
	return m.history
}

// Battery health limits: below 80% of design capacity or past 1000 charge
// cycles the battery counts as degraded.
const (
	healthCriticalPercentage = 80.0
	cycleCountCriticalLimit  = 1000
)

// BatteryHealth derives battery wear figures from the capacity readings.
type BatteryHealth struct {
	identity
	access  hardware.Access
	history *metric.History[metric.Percentage]
}

func NewBatteryHealth(access hardware.Access, historySize int) *BatteryHealth {
	return &BatteryHealth{
		identity: identity{name: "Battery Health", hardwareType: "battery", deviceID: "battery0"},
		access:   access,
		history:  metric.NewHistory[metric.Percentage](historySize),
	}
}

// HealthPercentage is current full-charge capacity over design capacity.
func (m *BatteryHealth) HealthPercentage(ctx context.Context) (float64, error) {
	battery, err := m.access.BatterySnapshot(ctx)
	if err != nil {
		return 0, err
	}
	if !battery.Present {
		return 0, hardware.SensorUnavailable("battery", "no battery installed")
	}
	if battery.DesignCapacity <= 0 {
		return 0, hardware.SensorUnavailable("battery_health", "design capacity not reported")
	}

	return metric.NewPercentage(battery.CurrentCapacity / battery.DesignCapacity * 100.0).Value(), nil
}

func (m *BatteryHealth) IsHealthCritical(ctx context.Context) (bool, error) {
	health, err := m.HealthPercentage(ctx)
	if err != nil {
		return false, err
	}

	return health < healthCriticalPercentage, nil
}

func (m *BatteryHealth) IsCycleCountCritical(ctx context.Context) (bool, error) {
	battery, err := m.access.BatterySnapshot(ctx)
	if err != nil {
		return false, err
	}

	return battery.CycleCount > cycleCountCriticalLimit, nil
}

func (m *BatteryHealth) Metric(ctx context.Context) (metric.Sample[metric.Percentage], error) {
	health, err := m.HealthPercentage(ctx)
	if err != nil {
		return metric.Sample[metric.Percentage]{}, err
	}

	return record(m.history, metric.NewPercentage(health)), nil
}

func (m *BatteryHealth) History() *metric.History[metric.Percentage] {
	return m.history
}

var (
	_ TemperatureMonitor           = (*BatteryTemperature)(nil)
	_ Producer[metric.Temperature] = (*BatteryTemperature)(nil)
	_ Producer[metric.Percentage]  = (*BatteryCapacity)(nil)
	_ PowerMonitor                 = (*BatteryPower)(nil)
	_ Producer[float64]            = (*BatteryPower)(nil)
	_ Producer[metric.Percentage]  = (*BatteryHealth)(nil)
)
