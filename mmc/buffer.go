package mmc

import (
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/pacing"
	"github.com/burnshell/burn/transport"
)

const opReadBufferCapacity = 0x5C

func init() {
	pacing.ReadBufferCapacity = ReadBufferCapacity
}

// ReadBufferCapacity issues READ BUFFER CAPACITY (0x5C), returning
// {capacity, available} to feed the pacer (§4.3, §4.5).
func ReadBufferCapacity(d *media.Drive) (int64, int64, burnerrors.DriverError) {
	if d.Role != transport.RoleMMCOptical {
		return 0, 0, burnerrors.ErrUnsupportedRole
	}
	cdb := transport.NewCDB(10, opReadBufferCapacity)
	cdb.PutUint16(7, 12)
	buf := transport.NewBufferSize(12, 2048)
	cmd := transport.NewCommandDescriptor(cdb, transport.FromDrive, buf, transport.DiscoveryTimeoutMS)
	if err := issue(d, cmd); err != nil {
		return 0, 0, err
	}
	b := buf.Used()
	if len(b) < 12 {
		return 0, 0, burnerrors.ErrBufferTooSmall
	}
	capacity := int64(transport.Uint32(b, 4))
	available := int64(transport.Uint32(b, 8))
	return capacity, available, nil
}
