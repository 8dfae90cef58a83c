package metric

// Percentage is a value clamped to [0, 100] at construction. Out-of-range
// input is silently clamped, never rejected.
type Percentage float64

// NewPercentage clamps value into [0, 100].
func NewPercentage(value float64) Percentage {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}

	return Percentage(value)
}

func (p Percentage) Value() float64 {
	return float64(p)
}

const bytesPerUnit = 1024.0

// ByteSize is a non-negative byte count with derived unit conversions.
// Conversions above bytes are floating point and therefore lossy.
type ByteSize uint64

func (b ByteSize) Bytes() uint64 {
	return uint64(b)
}

func (b ByteSize) Kilobytes() float64 {
	return float64(b) / bytesPerUnit
}

func (b ByteSize) Megabytes() float64 {
	return b.Kilobytes() / bytesPerUnit
}

func (b ByteSize) Gigabytes() float64 {
	return b.Megabytes() / bytesPerUnit
}

// Temperature is a Celsius reading.
type Temperature float64

func (t Temperature) Celsius() float64 {
	return float64(t)
}

func (t Temperature) Fahrenheit() float64 {
	return float64(t)*9.0/5.0 + 32.0
}

// IsCritical reports whether the reading is at or above the given
// domain-specific threshold.
func (t Temperature) IsCritical(threshold float64) bool {
	return float64(t) >= threshold
}

// Critical temperature thresholds in Celsius, per hardware domain.
const (
	CPUCriticalTemp          = 95.0
	GPUDiscreteCriticalTemp  = 90.0
	GPUIntegratedCritical    = 95.0
	GPUAppleSiliconCritical  = 100.0
	BatteryCriticalTemp      = 65.0
	SSDCriticalTemp          = 70.0
	AmbientCriticalTemp      = 45.0
	ThrottlingThreshold      = 80.0
	WarningTempThreshold     = 85.0
	MinValidTemperature      = -20.0
	MaxValidTemperature      = 120.0
	MemoryWarningPercentage  = 90.0
	MemoryCriticalPercentage = 95.0
)
