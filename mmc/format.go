package mmc

import (
	"time"

	burn "github.com/burnshell/burn"
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

// formatUnitReadyPollInterval is the cadence FormatUnit polls TEST UNIT
// READY at when it isn't told to return immediately (§5).
const formatUnitReadyPollInterval = 50 * time.Millisecond

const opFormatUnit = 0x04

// FormatMode selects the "no defect management" / "largest" / "by size"
// variants §4.3 describes for DVD-RAM and BD-R.
type FormatMode int

const (
	FormatModeDefault FormatMode = iota
	FormatModeNoDefectMgmt
	FormatModeBySize
)

// FormatOptions configures FormatUnit (§4.3).
type FormatOptions struct {
	Mode              FormatMode
	RequestedSize     uint32
	Force             bool
	ExplicitDescIndex int // used when >= 0 and ExplicitDesc is true
	ExplicitDesc      bool
	ReturnImmediately bool
}

// formatPlan is the resolved (type, subtype, block descriptor) chosen by
// planFormat for a given profile.
type formatPlan struct {
	formatType byte
	subType    byte
	sizeBytes  uint32
	param      uint32
	skip       bool
	skipNote   string
}

// planFormat implements the profile-dependent branch table from §4.3
// FORMAT UNIT.
func planFormat(d *media.Drive, opts FormatOptions, bgFormatStatus int) (formatPlan, burnerrors.DriverError) {
	if opts.ExplicitDesc {
		if opts.ExplicitDescIndex < 0 || opts.ExplicitDescIndex >= len(d.FormatDescriptors) {
			return formatPlan{}, burnerrors.ErrInvalidArgument.WithMessage("format descriptor index out of range")
		}
		fd := d.FormatDescriptors[opts.ExplicitDescIndex]
		return formatPlan{formatType: fd.Type, sizeBytes: fd.SizeBytes, param: fd.Param}, nil
	}

	switch d.ProfileCode {
	case media.ProfileDVDPlusRW:
		if bgFormatStatus == 2 || (bgFormatStatus == 3 && !opts.Force) {
			return formatPlan{skip: true, skipNote: "DVD+RW already formatted"}, nil
		}
		plan := formatPlan{formatType: 0x26, sizeBytes: 0x0800}
		return plan, nil

	case media.ProfileDVDRWRO:
		for i, fd := range d.FormatDescriptors {
			if fd.Type == 2 {
				return formatPlan{skip: true, skipNote: "DVD-RW RO already formatted"}, nil
			}
			if fd.Type == 3 {
				d.NeedsCloseSession = true
				return formatPlan{formatType: 0x13, sizeBytes: 32 * 1024, param: uint32(i)}, nil
			}
		}
		return formatPlan{formatType: 0x13, sizeBytes: 32 * 1024}, nil

	case media.ProfileDVDRWSeq:
		if opts.Force {
			return formatPlan{formatType: 0x00}, nil
		}
		return formatPlan{formatType: 0x15}, nil

	case media.ProfileDVDRAM:
		return planDVDRAM(d, opts)

	case media.ProfileBDRSeq:
		if opts.Mode == FormatModeNoDefectMgmt {
			return formatPlan{}, burnerrors.ErrUnsupportedProfile.WithMessage(
				"BD-R SRM requires defect management (spare areas)")
		}
		subType := byte(0) // SRM+POW
		if opts.Mode == FormatModeBySize {
			subType = 1 // SRM
			return pickLargestDescriptor(d, 0x32, subType)
		}
		return formatPlan{formatType: 0x00, subType: subType}, nil

	case media.ProfileBDRE:
		formatType := byte(0x30)
		if d.Features.BDFormatCaps&0x01 != 0 {
			formatType = 0x31
		}
		return formatPlan{formatType: formatType}, nil

	default:
		return formatPlan{formatType: 0x00}, nil
	}
}

func planDVDRAM(d *media.Drive, opts FormatOptions) (formatPlan, burnerrors.DriverError) {
	if opts.Mode == FormatModeNoDefectMgmt {
		return pickLargestDescriptor(d, 0x00, 0)
	}
	// Pick the smallest descriptor >= requested size.
	best := -1
	for i, fd := range d.FormatDescriptors {
		if fd.Type != 0x00 && fd.Type != 0x01 {
			continue
		}
		if fd.SizeBytes < opts.RequestedSize {
			continue
		}
		if best == -1 || fd.SizeBytes < d.FormatDescriptors[best].SizeBytes {
			best = i
		}
	}
	if best == -1 {
		return formatPlan{}, burnerrors.ErrInvalidArgument.WithMessage(
			"no format descriptor large enough for requested size")
	}
	fd := d.FormatDescriptors[best]
	return formatPlan{formatType: fd.Type, sizeBytes: fd.SizeBytes}, nil
}

func pickLargestDescriptor(d *media.Drive, wantType, subType byte) (formatPlan, burnerrors.DriverError) {
	best := -1
	for i, fd := range d.FormatDescriptors {
		if fd.Type != wantType {
			continue
		}
		if best == -1 || fd.SizeBytes > d.FormatDescriptors[best].SizeBytes {
			best = i
		}
	}
	if best == -1 {
		return formatPlan{formatType: wantType, subType: subType}, nil
	}
	fd := d.FormatDescriptors[best]
	return formatPlan{formatType: wantType, subType: subType, sizeBytes: fd.SizeBytes}, nil
}

// blockDescriptorParam builds the FORMAT UNIT parameter list's type-dependent
// block length/ECC block field: 0x0800 for type 0x00/0x01/0x31, 16 for
// types 0x10-0x15 (§4.3).
func blockDescriptorParam(formatType byte) uint32 {
	switch formatType {
	case 0x00, 0x01, 0x31:
		return 0x0800
	}
	if formatType >= 0x10 && formatType <= 0x15 {
		return 16
	}
	return 0
}

func buildFormatUnitCDB(immed bool) transport.CDB {
	cdb := transport.NewCDB(6, opFormatUnit)
	cdb[1] = 0x11 // FMTDATA=1, CMPLIST=0, DEFECT LIST FORMAT=1
	if immed {
		// IMMED lives in the parameter list header, not the CDB, for
		// FORMAT UNIT; tracked separately by the caller.
	}
	return cdb
}

// FormatUnit issues FORMAT UNIT with the profile-dependent plan from §4.3.
// If opts.ReturnImmediately is false, it polls TEST UNIT READY at 50ms
// until the drive reports ready and then issues SYNCHRONIZE CACHE itself,
// rather than handing that back to the caller.
func FormatUnit(d *media.Drive, opts FormatOptions, bgFormatStatus int, tracker *burn.ProblemTracker) burnerrors.DriverError {
	plan, err := planFormat(d, opts, bgFormatStatus)
	if err != nil {
		return err
	}
	if plan.skip {
		if tracker != nil {
			tracker.Raise(burn.Event{Severity: burn.NOTE, Code: "FORMAT", Message: plan.skipNote})
		}
		return nil
	}

	paramList := make([]byte, 12)
	paramList[1] = 0x02 // FOV=1
	if opts.ReturnImmediately {
		paramList[1] |= 0x01 // IMMED
	}
	paramList[3] = 0x08
	paramList[4] = plan.formatType
	if formatTypeIsVendor(plan.formatType) {
		paramList[5] = 0x40 // vendor-specific format
	}
	blockLen := blockDescriptorParam(plan.formatType)
	paramList[8] = byte(blockLen >> 24)
	paramList[9] = byte(blockLen >> 16)
	paramList[10] = byte(blockLen >> 8)
	paramList[11] = byte(blockLen)

	buf := transport.NewBufferSize(len(paramList), 2048)
	copy(buf.Bytes(), paramList)
	if err := buf.SetUsed(len(paramList)); err != nil {
		return err
	}

	cmd := transport.NewCommandDescriptor(buildFormatUnitCDB(opts.ReturnImmediately), transport.ToDrive, buf, transport.FormatTimeoutMS)
	if err := issue(d, cmd); err != nil {
		return err
	}

	if !opts.ReturnImmediately {
		if err := waitForUnitAttentionClear(d, formatUnitReadyPollInterval, unitAttentionMaxWaitSec); err != nil {
			return err
		}
		if err := SynchronizeCache(d); err != nil {
			return err
		}
	}

	if d.ProfileCode == media.ProfileDVDRWRO && plan.param != 0 {
		d.NeedsCloseSession = true
	}
	return nil
}

func formatTypeIsVendor(t byte) bool {
	return t == 0x26 || t == 0x13 || t == 0x15
}
