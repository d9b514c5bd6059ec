package mmc

import (
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

const opReadDiscStructure = 0xAD

// Disc structure format codes used by READ DISC STRUCTURE (§4.3); only the
// subset needed to resolve media capacity and copyright flags for DVD/BD
// family media is named here.
const (
	DiscStructPhysical     = 0x00
	DiscStructCopyright    = 0x01
	DiscStructDiscManuf    = 0x02
	DiscStructSpareAreaInf = 0x05
)

// ReadDiscStructure issues READ DISC STRUCTURE (0xAD) for the given format
// code and layer, returning the whole reply, its 4-byte header included, for
// the caller to decode per-format.
func ReadDiscStructure(d *media.Drive, format byte, layer byte) ([]byte, burnerrors.DriverError) {
	if d.Role != transport.RoleMMCOptical {
		return nil, burnerrors.ErrUnsupportedRole
	}
	buf, err := ProbeAndFetch(d, 2048, transport.DiscoveryTimeoutMS,
		func(allocLen int) transport.CDB {
			cdb := transport.NewCDB(12, opReadDiscStructure)
			cdb[6] = layer
			cdb[7] = format
			cdb.PutUint16(8, uint16(allocLen))
			return cdb
		},
		func(header []byte) int {
			if len(header) < 2 {
				return 0
			}
			return int(transport.Uint16(header, 0)) + 2
		},
	)
	if err != nil {
		return nil, err
	}
	return buf.Used(), nil
}
