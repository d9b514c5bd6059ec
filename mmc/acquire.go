package mmc

import (
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

// AcquireFlags controls optional behavior during Acquire, such as whether
// to treat a failed TOC read as fatal.
type AcquireFlags struct {
	// TolerateTOCFailure lets Acquire succeed even if TOC discovery fails
	// (useful for freshly blanked or completely unrecognized media).
	TolerateTOCFailure bool
}

// Acquire opens drive d: GET CONFIGURATION, then READ DISC INFO, then
// (depending on profile) READ TOC or a fabricated TOC, then caches speed
// descriptors and computes the normalized status, per §4.2.
func Acquire(d *media.Drive, flags AcquireFlags) burnerrors.DriverError {
	if d.Role == transport.RoleNull {
		return burnerrors.ErrUnsupportedRole.WithMessage("cannot acquire a null drive")
	}
	if d.Role.IsStdio() {
		// Stdio roles bypass the SCSI discovery sequence entirely; there is
		// no profile, TOC, or disc status to learn from a plain file.
		d.Status = media.StatusAppendable
		return nil
	}

	if err := GetConfiguration(d); err != nil {
		se, ok := asSense(err)
		if !ok || !se.IsInvalidOpcode() {
			return err
		}
		if err := resolveGuessedProfile(d); err != nil {
			return err
		}
	}
	d.ProfileName = media.LookupProfile(d.ProfileCode).Name
	d.ProfileGuess = d.Features.ProfileGuessed

	di, err := ReadDiscInfo(d)
	if err != nil {
		se, ok := asSense(err)
		if !ok || !se.IsInvalidOpcode() {
			return err
		}
		entries, ferr := ReadTOCFormat0(d)
		if ferr != nil && !flags.TolerateTOCFailure {
			return ferr
		}
		d.TOC = entries
		d.Status = media.StatusAppendable
		return nil
	}

	d.CompleteSessions = di.CompleteSessions
	d.IncompleteSessions = di.IncompleteSessions
	d.DiscID = di.DiscID
	status, erasable := ResolveStatus(d.ProfileCode, di, 0)
	d.Status = status
	d.Erasable = erasable
	d.DiscInfoValid = di.Valid

	if d.LastTrackNo == 0 {
		d.LastTrackNo = di.LastTrackNo
	}

	entries, terr := BuildTOC(d)
	if terr != nil {
		if !flags.TolerateTOCFailure {
			return terr
		}
	} else {
		d.TOC = entries
	}

	if IsBlankBDRSeq(d.ProfileCode, di, d.ReadCapacity, d.StateOfLastSess) {
		d.Status = media.StatusBlank
	}

	return nil
}

// resolveGuessedProfile implements §4.2's MMC-1 fallback: guess CD-R,
// CD-RW, or CD-ROM from (status, erasable) when feature 46h isn't
// available.
func resolveGuessedProfile(d *media.Drive) burnerrors.DriverError {
	di, err := ReadDiscInfo(d)
	if err != nil {
		return err
	}
	d.Features.ProfileGuessed = true
	switch {
	case di.Erasable:
		d.ProfileCode = media.ProfileCDRW
	case di.DiscStatusRaw == 0:
		d.ProfileCode = media.ProfileCDR
	default:
		d.ProfileCode = media.ProfileCDROM
	}
	return nil
}

// Release drops the drive handle. If eject is requested, the caller should
// issue the eject/media-removal command first; this only clears local
// state (§4.2).
func Release(d *media.Drive, eject bool) {
	d.Release(eject)
}

func asSense(err burnerrors.DriverError) (*transport.SenseError, bool) {
	se, ok := unwrapSense(err)
	return se, ok
}

func unwrapSense(err error) (*transport.SenseError, bool) {
	for err != nil {
		if se, ok := err.(*transport.SenseError); ok {
			return se, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
