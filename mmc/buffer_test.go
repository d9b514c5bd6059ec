package mmc

import (
	"testing"

	"github.com/burnshell/burn/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBufferCapacityParsesReply(t *testing.T) {
	issuer := newFakeIssuer()
	reply := make([]byte, 12)
	reply[4], reply[5], reply[6], reply[7] = 0, 0x01, 0, 0
	reply[8], reply[9], reply[10], reply[11] = 0, 0, 0x20, 0
	issuer.replies[opReadBufferCapacity] = reply
	d := newFakeDrive(issuer)

	capacity, available, err := ReadBufferCapacity(d)
	require.NoError(t, err)
	assert.Equal(t, int64(0x010000), capacity)
	assert.Equal(t, int64(0x2000), available)
}

func TestReadBufferCapacityRejectsNonMMCRole(t *testing.T) {
	d := newFakeDrive(newFakeIssuer())
	d.Role = transport.RoleStdioReadOnly

	_, _, err := ReadBufferCapacity(d)
	assert.Error(t, err)
}
