package smc_test

import (
	"encoding/binary"
	"math"
	"testing"

	"codeberg.org/mutker/hwmon/internal/errors"
	"codeberg.org/mutker/hwmon/internal/smc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataFloat(t *testing.T) {
	// 42.0 as IEEE-754 single precision in wire order. The firmware sends
	// the most significant byte first, same as the integer types.
	value, err := smc.ParseData(smc.TypeFloat, []byte{0x42, 0x28, 0x00, 0x00})
	require.NoError(t, err)
	assert.InDelta(t, 42.0, value, 0.001)

	data := make([]byte, 4)
	binary.BigEndian.PutUint32(data, math.Float32bits(42.5))

	value, err = smc.ParseData(smc.TypeFloat, data)
	require.NoError(t, err)
	assert.InDelta(t, 42.5, value, 0.001)
}

func TestParseDataUnsigned(t *testing.T) {
	value, err := smc.ParseData(smc.TypeUint8, []byte{200})
	require.NoError(t, err)
	assert.InDelta(t, 200.0, value, 0.001)

	value, err = smc.ParseData(smc.TypeUint16, []byte{0x12, 0x34})
	require.NoError(t, err)
	assert.InDelta(t, float64(0x1234), value, 0.001)

	value, err = smc.ParseData(smc.TypeUint32, []byte{0x00, 0x01, 0x00, 0x00})
	require.NoError(t, err)
	assert.InDelta(t, 65536.0, value, 0.001)
}

func TestParseDataSP78(t *testing.T) {
	// 42.5C encoded as signed 7.8 fixed point: 42.5 * 256 = 10880
	value, err := smc.ParseData(smc.TypeSP78, []byte{0x2A, 0x80})
	require.NoError(t, err)
	assert.InDelta(t, 42.5, value, 0.001)

	// Negative reading: -1.0 * 256 = -256 = 0xFF00
	value, err = smc.ParseData(smc.TypeSP78, []byte{0xFF, 0x00})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, value, 0.001)
}

func TestParseDataFPE2(t *testing.T) {
	// 2000 RPM encoded as unsigned 14.2 fixed point: 2000 * 4 = 8000
	value, err := smc.ParseData(smc.TypeFPE2, []byte{0x1F, 0x40})
	require.NoError(t, err)
	assert.InDelta(t, 2000.0, value, 0.001)
}

func TestParseDataShortPayload(t *testing.T) {
	cases := map[smc.DataType][]byte{
		smc.TypeFloat:  {0x00, 0x00},
		smc.TypeUint8:  {},
		smc.TypeUint16: {0x01},
		smc.TypeUint32: {0x01, 0x02},
		smc.TypeSP78:   {0x2A},
		smc.TypeFPE2:   {0x1F},
	}

	for dataType, data := range cases {
		_, err := smc.ParseData(dataType, data)
		require.Error(t, err, "Expected error for short %s payload", dataType)
		assert.True(t, errors.HasCode(err, errors.ErrInvalidData))
	}
}

func TestParseDataUnknownType(t *testing.T) {
	_, err := smc.ParseData(smc.DataType("zzzz"), []byte{0x00, 0x00, 0x00, 0x00})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrInvalidData))
}
