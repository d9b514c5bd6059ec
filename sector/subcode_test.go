package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectQModeDefaultsToTrackPosition(t *testing.T) {
	assert.Equal(t, QModeTrackPosition, SelectQMode(0, "", ""))
	assert.Equal(t, QModeTrackPosition, SelectQMode(5, "mcn", "isrc"))
}

func TestSelectQModeRotatesEvery10th(t *testing.T) {
	assert.Equal(t, QModeISRC, SelectQMode(9, "mcn", "isrc"))
	assert.Equal(t, QModeMCN, SelectQMode(9, "mcn", ""))
	assert.Equal(t, QModeTrackPosition, SelectQMode(9, "", ""))
}

func TestSubcodeUserWritesCRC(t *testing.T) {
	out := SubcodeUser(1, 1, 0, 0, QModeTrackPosition)
	assert.Len(t, out, subchannelSize)
	assert.NotEqual(t, byte(0), out[22]|out[23])
}

func TestSubcodeLeadoutUsesLeadoutPoint(t *testing.T) {
	out := SubcodeLeadout(1000)
	assert.Equal(t, byte(0xA2), out[13])
}

func TestToBCD(t *testing.T) {
	assert.Equal(t, byte(0x42), toBCD(42))
	assert.Equal(t, byte(0x00), toBCD(0))
}

func TestPutMSFRejectsNegative(t *testing.T) {
	dst := make([]byte, 3)
	putMSF(dst, -5)
	assert.Equal(t, []byte{0, 0, 0}, dst)
}
