package mmc

import (
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

const opBlank = 0xA1

// BlankMode is the BLANK command's mode field, bits 0..3 (§4.3).
type BlankMode byte

const (
	BlankAll              BlankMode = 0
	BlankFast             BlankMode = 1
	BlankDeformat         BlankMode = 2
	BlankDeformatQuickest BlankMode = 3
)

// Blank issues BLANK (0xA1) with IMMED always set, per §4.3.
func Blank(d *media.Drive, mode BlankMode) burnerrors.DriverError {
	if d.Role != transport.RoleMMCOptical {
		return burnerrors.ErrUnsupportedRole
	}
	cdb := transport.NewCDB(12, opBlank)
	cdb[1] = 0x10 | (byte(mode) & 0x0F) // IMMED bit + mode
	cmd := transport.NewCommandDescriptor(cdb, transport.None, nil, transport.BlankTimeoutMS)
	return issue(d, cmd)
}
