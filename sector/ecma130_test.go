package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteParityIsNoOp(t *testing.T) {
	before := make([]byte, 2352)
	for i := range before {
		before[i] = byte(i)
	}
	after := make([]byte, len(before))
	copy(after, before)

	WriteParity(after)
	assert.Equal(t, before, after)
}

func TestScrambleIsNoOp(t *testing.T) {
	before := []byte{1, 2, 3, 4}
	after := make([]byte, len(before))
	copy(after, before)

	Scramble(after)
	assert.Equal(t, before, after)
}
