package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCRCCCITTEmptyIsZero(t *testing.T) {
	assert.Equal(t, uint16(0), CRCCCITT(nil))
}

func TestCRCCCITTIsDeterministic(t *testing.T) {
	data := []byte{0x11, 0x01, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x50}
	first := CRCCCITT(data)
	second := CRCCCITT(data)
	assert.Equal(t, first, second)
	assert.NotEqual(t, uint16(0), first)
}

func TestCRC32EDCEmptyIsZero(t *testing.T) {
	assert.Equal(t, uint32(0), CRC32EDC(nil))
}

func TestCRC32EDCChangesWithData(t *testing.T) {
	a := CRC32EDC(make([]byte, 2064))
	b := make([]byte, 2064)
	b[0] = 1
	bCRC := CRC32EDC(b)
	assert.NotEqual(t, a, bCRC)
}
