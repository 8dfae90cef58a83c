package smc

import (
	"encoding/binary"
	"math"

	"codeberg.org/mutker/hwmon/internal/errors"
)

// DataType is the 4-character type code the firmware reports alongside a
// key's raw bytes.
type DataType string

// Data type codes observed on SMC sensors. The trailing spaces are part of
// the codes.
const (
	TypeFloat  DataType = "flt "
	TypeUint8  DataType = "ui8 "
	TypeUint16 DataType = "ui16"
	TypeUint32 DataType = "ui32"
	TypeSP78   DataType = "sp78" // signed fixed point 7.8, used by temperature sensors
	TypeFPE2   DataType = "fpe2" // unsigned fixed point 14.2, used by fan speeds
)

// ParseData decodes the raw bytes of an SMC reading into a float64
// according to the reported data type. Payloads shorter than the type
// requires fail with invalid_data.
func ParseData(dataType DataType, data []byte) (float64, error) {
	errFactory := errors.New()

	switch dataType {
	case TypeFloat:
		if len(data) < 4 {
			return 0, errFactory.WithData(errors.ErrInvalidData, "flt payload too short")
		}
		return float64(math.Float32frombits(binary.BigEndian.Uint32(data))), nil
	case TypeUint8:
		if len(data) < 1 {
			return 0, errFactory.WithData(errors.ErrInvalidData, "ui8 payload too short")
		}
		return float64(data[0]), nil
	case TypeUint16:
		if len(data) < 2 {
			return 0, errFactory.WithData(errors.ErrInvalidData, "ui16 payload too short")
		}
		return float64(binary.BigEndian.Uint16(data)), nil
	case TypeUint32:
		if len(data) < 4 {
			return 0, errFactory.WithData(errors.ErrInvalidData, "ui32 payload too short")
		}
		return float64(binary.BigEndian.Uint32(data)), nil
	case TypeSP78:
		if len(data) < 2 {
			return 0, errFactory.WithData(errors.ErrInvalidData, "sp78 payload too short")
		}
		raw := int16(binary.BigEndian.Uint16(data))
		return float64(raw) / 256.0, nil
	case TypeFPE2:
		if len(data) < 2 {
			return 0, errFactory.WithData(errors.ErrInvalidData, "fpe2 payload too short")
		}
		raw := binary.BigEndian.Uint16(data)
		return float64(raw) / 4.0, nil
	default:
		return 0, errFactory.WithData(errors.ErrInvalidData, "unknown data type: "+string(dataType))
	}
}
