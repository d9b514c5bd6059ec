package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	data []byte
	pos  int
}

func (s *fakeSource) Read(buf []byte) (int, bool) {
	n := copy(buf, s.data[s.pos:])
	s.pos += n
	return n, s.pos >= len(s.data)
}

func TestFillPayloadReadsFullSector(t *testing.T) {
	src := &fakeSource{data: make([]byte, 2048)}
	for i := range src.data {
		src.data[i] = byte(i)
	}
	track := &Track{Source: src, Mode: ModeOne}

	dst := make([]byte, 2048)
	require.NoError(t, track.FillPayload(dst))
	assert.Equal(t, src.data, dst)
	assert.Equal(t, int64(2048), track.SourceCount)
}

func TestFillPayloadZeroPadsOffset(t *testing.T) {
	src := &fakeSource{data: []byte{1, 2, 3, 4}}
	track := &Track{Source: src, Mode: ModeOne, Offset: 4}

	dst := make([]byte, 2048)
	require.NoError(t, track.FillPayload(dst))
	assert.Equal(t, []byte{0, 0, 0, 0}, dst[:4])
	assert.Equal(t, int64(4), track.OffsetCount)
}

func TestFillPayloadPadsOnShortReadWhenNotFailPolicy(t *testing.T) {
	src := &fakeSource{data: []byte{1, 2, 3}}
	track := &Track{Source: src, Mode: ModeOne}

	dst := make([]byte, 2048)
	require.NoError(t, track.FillPayload(dst))
	assert.Equal(t, byte(1), dst[0])
	assert.Equal(t, byte(0), dst[2047])
	assert.True(t, track.TrackDataDone)
	assert.True(t, track.Eos)
}

func TestFillPayloadFailsOnPrematureEOIWhenPolicySet(t *testing.T) {
	src := &fakeSource{data: []byte{1, 2, 3}}
	track := &Track{Source: src, Mode: ModeOne, EndOnPrematureEOI: PrematureEOIFail}

	dst := make([]byte, 2048)
	err := track.FillPayload(dst)
	assert.Error(t, err)
	assert.Equal(t, PrematureEOIFailed, track.EndOnPrematureEOI)
}

func TestFillPayloadRejectsUndersizedDestination(t *testing.T) {
	track := &Track{Source: &fakeSource{}, Mode: ModeOne}
	err := track.FillPayload(make([]byte, 10))
	assert.Error(t, err)
}

func TestFillPayloadTailPaddingAfterTrackDataDone(t *testing.T) {
	track := &Track{Source: &fakeSource{}, Mode: ModeOne, TrackDataDone: true}
	dst := make([]byte, 2048)
	for i := range dst {
		dst[i] = 0xFF
	}
	require.NoError(t, track.FillPayload(dst))
	for _, b := range dst {
		assert.Equal(t, byte(0), b)
	}
	assert.Equal(t, int64(2048), track.TailCount)
}

func TestSwapBytePairs(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	swapBytePairs(b)
	assert.Equal(t, []byte{2, 1, 4, 3}, b)
}
