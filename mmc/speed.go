package mmc

import (
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

const (
	opSetCDSpeed   = 0xBB
	opSetStreaming = 0xB6
)

// SetCDSpeed issues SET CD SPEED (0xBB). Speeds of 0 mean "as fast as
// possible" per §4.3; both fields are in KB/s.
func SetCDSpeed(d *media.Drive, readSpeedKBps, writeSpeedKBps uint16) burnerrors.DriverError {
	if d.Role != transport.RoleMMCOptical {
		return burnerrors.ErrUnsupportedRole
	}
	cdb := transport.NewCDB(12, opSetCDSpeed)
	cdb.PutUint16(2, readSpeedKBps)
	cdb.PutUint16(4, writeSpeedKBps)
	cmd := transport.NewCommandDescriptor(cdb, transport.None, nil, transport.DiscoveryTimeoutMS)
	if err := issue(d, cmd); err != nil {
		return err
	}
	d.Pacing.NominalWriteSpeedKBps = int64(writeSpeedKBps)
	return nil
}

// SetStreamingOptions configures the SET STREAMING parameter list (§4.3).
type SetStreamingOptions struct {
	WRC           byte // wrc exact/rounding behavior, bits 5-6 of byte 1
	ReadSize      uint32
	ReadTimeMS    uint16
	WriteSize     uint32
	WriteTimeMS   uint16
}

// SetStreaming issues SET STREAMING (0xB6) to configure read/write
// performance descriptors for streaming recording (§4.3).
func SetStreaming(d *media.Drive, opts SetStreamingOptions) burnerrors.DriverError {
	if d.Role != transport.RoleMMCOptical {
		return burnerrors.ErrUnsupportedRole
	}
	param := make([]byte, 28)
	param[1] = opts.WRC << 5
	param[8] = byte(opts.ReadSize >> 24)
	param[9] = byte(opts.ReadSize >> 16)
	param[10] = byte(opts.ReadSize >> 8)
	param[11] = byte(opts.ReadSize)
	param[12] = byte(opts.ReadTimeMS >> 8)
	param[13] = byte(opts.ReadTimeMS)
	param[16] = byte(opts.WriteSize >> 24)
	param[17] = byte(opts.WriteSize >> 16)
	param[18] = byte(opts.WriteSize >> 8)
	param[19] = byte(opts.WriteSize)
	param[20] = byte(opts.WriteTimeMS >> 8)
	param[21] = byte(opts.WriteTimeMS)

	buf := transport.NewBufferSize(len(param), 2048)
	copy(buf.Bytes(), param)
	if err := buf.SetUsed(len(param)); err != nil {
		return err
	}

	cdb := transport.NewCDB(10, opSetStreaming)
	cdb.PutUint16(8, uint16(len(param)))
	cmd := transport.NewCommandDescriptor(cdb, transport.ToDrive, buf, transport.DiscoveryTimeoutMS)
	return issue(d, cmd)
}
