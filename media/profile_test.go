package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupProfileKnownCode(t *testing.T) {
	p := LookupProfile(ProfileCDR)
	assert.Equal(t, "CD-R", p.Name)
	assert.True(t, p.IsCD)
	assert.True(t, p.IsSupported)
}

func TestLookupProfileUnknownCode(t *testing.T) {
	p := LookupProfile(0x9999)
	assert.Equal(t, "unknown", p.Name)
	assert.False(t, p.IsSupported)
}

func TestIsOverwriteable(t *testing.T) {
	assert.True(t, IsOverwriteable(ProfileDVDRAM))
	assert.False(t, IsOverwriteable(ProfileCDR))
}

func TestForcesBlankStatus(t *testing.T) {
	assert.True(t, ForcesBlankStatus(ProfileBDRE))
	assert.False(t, ForcesBlankStatus(ProfileCDR))
}

func TestIsCDLike(t *testing.T) {
	assert.True(t, IsCDLike(ProfileCDROM))
	assert.False(t, IsCDLike(ProfileDVDROM))
}

func TestIsWritableBDR(t *testing.T) {
	assert.True(t, IsWritableBDR(ProfileBDRSeq))
	assert.False(t, IsWritableBDR(ProfileBDRRandom))
}
