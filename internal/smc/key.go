// Package smc implements the System Management Controller key codec: the
// 4-character ASCII sensor identifiers used to address firmware sensors,
// packed into 32-bit integers, plus the decoding of the raw data formats
// the firmware answers with.
package smc

import (
	"codeberg.org/mutker/hwmon/internal/errors"
)

// Key is a packed SMC sensor identifier. Byte i of the 4-character name
// (0-indexed, most significant first) holds the ASCII code of character i,
// so "TC0P" packs to 0x54433050.
type Key uint32

const keyLength = 4

// KeyFromChars packs four bytes into a Key. The function is total: bytes
// outside the ASCII range are packed verbatim, not rejected. Validation of
// textual key names belongs in ParseKey.
func KeyFromChars(chars [keyLength]byte) Key {
	var k Key
	for _, c := range chars {
		k = k<<8 | Key(c)
	}

	return k
}

// ParseKey converts a textual key name such as "TC0P" into a Key. The name
// must be exactly 4 ASCII characters.
func ParseKey(s string) (Key, error) {
	errFactory := errors.New()

	if len(s) != keyLength {
		return 0, errFactory.WithData(errors.ErrInvalidEncoding, "key must be exactly 4 characters: "+s)
	}

	var chars [keyLength]byte
	for i := 0; i < keyLength; i++ {
		if s[i] > 0x7F {
			return 0, errFactory.WithData(errors.ErrInvalidEncoding, "key contains non-ASCII character: "+s)
		}
		chars[i] = s[i]
	}

	return KeyFromChars(chars), nil
}

// MustParseKey is ParseKey for compile-time key literals; it panics on
// invalid input.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}

	return k
}

// Chars unpacks the key into its four bytes. Total inverse of KeyFromChars:
// any 32-bit value maps to four bytes, which may be non-printable when the
// key did not originate from KeyFromChars.
func (k Key) Chars() [keyLength]byte {
	var chars [keyLength]byte
	for i := keyLength - 1; i >= 0; i-- {
		chars[i] = byte(k)
		k >>= 8
	}

	return chars
}

// String renders the decoded bytes for logging and display. For keys built
// from printable ASCII this round-trips through ParseKey bit-for-bit.
func (k Key) String() string {
	chars := k.Chars()
	return string(chars[:])
}

// Well-known sensor keys. The exact 4-character spellings are part of the
// firmware addressing scheme and must not change.
var (
	KeyCPUTemp      = MustParseKey("TC0P") // CPU proximity temperature
	KeyGPUTemp      = MustParseKey("TG0P") // GPU proximity temperature
	KeyBatteryTemp  = MustParseKey("TB0T") // Battery temperature
	KeyAmbientTemp  = MustParseKey("TA0P") // Ambient temperature
	KeyHeatsinkTemp = MustParseKey("Th0H") // Heatsink temperature
	KeyFanCount     = MustParseKey("FNum") // Number of fans
	KeyFan0Speed    = MustParseKey("F0Ac") // Fan 0 actual speed
	KeyFan1Speed    = MustParseKey("F1Ac") // Fan 1 actual speed
	KeyFan0Min      = MustParseKey("F0Mn") // Fan 0 minimum speed
	KeyFan0Max      = MustParseKey("F0Mx") // Fan 0 maximum speed
	KeyCPUPower     = MustParseKey("PCPC") // CPU package power
	KeyCPUThrottle  = MustParseKey("PCTC") // CPU thermal throttling
)
