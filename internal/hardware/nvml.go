package hardware

import (
	"codeberg.org/mutker/hwmon/internal/errors"
	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// gpuBackend abstracts the NVML queries behind an interface so System can
// run without a discrete GPU and tests never touch the driver.
type gpuBackend interface {
	Snapshot() (GPUSnapshot, error)
	Shutdown() error
}

type nvmlBackend struct {
	device      nvml.Device
	name        string
	initialized bool
}

// nvmlError represents an NVML-specific error
type nvmlError struct {
	ret nvml.Return
}

func (e *nvmlError) Error() string {
	return nvml.ErrorString(e.ret)
}

func newNVMLError(ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}
	return &nvmlError{ret: ret}
}

func isNVMLSuccess(ret nvml.Return) bool {
	return ret == nvml.SUCCESS
}

// newNVMLBackend initializes NVML and binds to the first device. A machine
// without an NVIDIA GPU fails with sensor_unavailable, which callers treat
// as "no GPU telemetry", not a fault.
func newNVMLBackend() (gpuBackend, error) {
	errFactory := errors.New()

	if ret := nvml.Init(); !isNVMLSuccess(ret) {
		return nil, SensorUnavailable("gpu", nvml.ErrorString(ret))
	}

	device, ret := nvml.DeviceGetHandleByIndex(0)
	if !isNVMLSuccess(ret) {
		if shutdownRet := nvml.Shutdown(); !isNVMLSuccess(shutdownRet) {
			return nil, errFactory.Wrap(errors.ErrShutdownFailed, newNVMLError(shutdownRet))
		}
		return nil, SensorUnavailable("gpu", nvml.ErrorString(ret))
	}

	b := &nvmlBackend{device: device, initialized: true}
	if name, ret := device.GetName(); isNVMLSuccess(ret) {
		b.name = name
	}

	return b, nil
}

func (b *nvmlBackend) Snapshot() (GPUSnapshot, error) {
	errFactory := errors.New()

	util, ret := b.device.GetUtilizationRates()
	if !isNVMLSuccess(ret) {
		return GPUSnapshot{}, errFactory.Wrap(ErrTransientIO, newNVMLError(ret))
	}

	memory, ret := b.device.GetMemoryInfo()
	if !isNVMLSuccess(ret) {
		return GPUSnapshot{}, errFactory.Wrap(ErrTransientIO, newNVMLError(ret))
	}

	snapshot := GPUSnapshot{
		Name:        b.name,
		Class:       GPUClassDiscrete,
		Utilization: float64(util.Gpu),
		MemoryUsed:  memory.Used,
		MemoryTotal: memory.Total,
	}

	if temp, ret := b.device.GetTemperature(nvml.TEMPERATURE_GPU); isNVMLSuccess(ret) {
		celsius := float64(temp)
		snapshot.Temperature = &celsius
	}

	return snapshot, nil
}

func (b *nvmlBackend) Shutdown() error {
	errFactory := errors.New()

	if !b.initialized {
		return nil
	}

	if ret := nvml.Shutdown(); !isNVMLSuccess(ret) {
		return errFactory.Wrap(errors.ErrShutdownFailed, newNVMLError(ret))
	}
	b.initialized = false

	return nil
}
