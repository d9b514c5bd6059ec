// Package mmc implements the MMC-5 command set described in §4.3: every
// operation that talks to an optical drive through the transport layer,
// plus the drive acquisition sequence from §4.2 (which, since it works by
// issuing several of these commands in turn, lives here rather than in
// package media to avoid an import cycle).
package mmc

import (
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

// probeAllocLen is how many bytes are requested on the first pass of a
// ProbeAndFetch: just enough to read the announced-length header most MMC
// replies start with.
const probeAllocLen = 8

// ProbeAndFetch implements the universal two-pass contract from §4.3: issue
// cdbBuilder with a small allocation length, read the announced reply
// length via lengthOf, then reissue with a buffer sized to fit the whole
// reply. cdbBuilder must set the allocation-length field in the CDB it
// returns to allocLen. lengthOf extracts the total reply length (header
// included) from the first few bytes of a response.
func ProbeAndFetch(
	d *media.Drive,
	sectorLen int,
	timeoutMS int,
	cdbBuilder func(allocLen int) transport.CDB,
	lengthOf func(header []byte) int,
) (*transport.Buffer, burnerrors.DriverError) {
	if d.Role != transport.RoleMMCOptical {
		return nil, burnerrors.ErrUnsupportedRole
	}

	probeBuf := transport.NewBufferSize(probeAllocLen, sectorLen)
	probeCmd := transport.NewCommandDescriptor(
		cdbBuilder(probeAllocLen), transport.FromDrive, probeBuf, timeoutMS)
	if err := issue(d, probeCmd); err != nil {
		return nil, err
	}

	total := lengthOf(probeBuf.Used())
	if total <= probeAllocLen {
		return probeBuf, nil
	}

	fullBuf := transport.NewBufferSize(total, sectorLen)
	fullCmd := transport.NewCommandDescriptor(
		cdbBuilder(total), transport.FromDrive, fullBuf, timeoutMS)
	if err := issue(d, fullCmd); err != nil {
		return nil, err
	}
	return fullBuf, nil
}

// issue runs cmd through the drive's Issuer and translates a SCSI failure
// into a DriverError, decoding sense data along the way.
func issue(d *media.Drive, cmd *transport.CommandDescriptor) burnerrors.DriverError {
	err := d.Issuer.IssueCommand(cmd)
	if err != nil {
		return burnerrors.ErrSCSIFailed.Wrap(err)
	}
	if cmd.ErrorFlag {
		se := transport.DecodeSense(cmd.Sense)
		return burnerrors.ErrSCSIFailed.Wrap(se)
	}
	return nil
}
