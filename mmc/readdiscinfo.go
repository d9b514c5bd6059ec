package mmc

import (
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

const opReadDiscInformation = 0x51

func buildReadDiscInfoCDB(allocLen int) transport.CDB {
	cdb := transport.NewCDB(10, opReadDiscInformation)
	cdb.PutUint16(7, uint16(allocLen))
	return cdb
}

func discInfoReplyLength(header []byte) int {
	if len(header) < 2 {
		return 0
	}
	return int(transport.Uint16(header, 0)) + 2
}

// DiscInfo carries the fields of READ DISC INFORMATION §4.3 populates into
// the drive's media status and identity.
type DiscInfo struct {
	DiscStatusRaw      byte // 0=blank 1=appendable 2=full 3=others
	Erasable           bool
	CompleteSessions   int
	IncompleteSessions int
	LastTrackNo        int
	DiscID             string
	BarCode            string
	AppCode            string
	Valid              uint32
}

const (
	discInfoValidDiscID  = 1 << 0
	discInfoValidBarCode = 1 << 1
	discInfoValidAppCode = 1 << 2
	discInfoValidURU     = 1 << 3
)

// ReadDiscInfo issues READ DISC INFORMATION. On an (5,20,00) invalid-opcode
// sense the caller should fall back to ReadTOCFormat0 (§4.3).
func ReadDiscInfo(d *media.Drive) (*DiscInfo, burnerrors.DriverError) {
	buf, err := ProbeAndFetch(
		d, 2048, transport.DiscoveryTimeoutMS, buildReadDiscInfoCDB, discInfoReplyLength)
	if err != nil {
		return nil, err
	}
	return decodeDiscInfo(buf.Used()), nil
}

func decodeDiscInfo(b []byte) *DiscInfo {
	di := &DiscInfo{}
	if len(b) < 4 {
		return di
	}
	di.DiscStatusRaw = b[2] & 0x03
	di.Erasable = b[2]&0x10 != 0
	di.CompleteSessions = int(b[3])
	if len(b) > 9 {
		di.IncompleteSessions = int(b[4])
		di.LastTrackNo = int(b[6])
	}
	if len(b) >= 7 && b[7]&0x80 != 0 {
		di.Valid |= discInfoValidURU
	}
	if len(b) >= 7 && b[7]&0x40 != 0 {
		di.Valid |= discInfoValidBarCode
	}
	if len(b) >= 7 && b[7]&0x10 != 0 {
		di.Valid |= discInfoValidAppCode
	}
	if len(b) >= 36 {
		di.DiscID = string(b[28:32])
		di.Valid |= discInfoValidDiscID
	}
	return di
}

// ResolveStatus maps a raw DiscInfo status field to media.Status following
// §4.2: 0 blank, 1 appendable, 2 full, 3 others (DVD-RAM-like); ROM profiles
// always force Full+non-erasable, and the profiles in ForcesBlankStatus
// report Blank regardless of background-format status.
func ResolveStatus(profileCode uint16, di *DiscInfo, bgFormatStatus int) (media.Status, bool) {
	if profileCode == media.ProfileDVDROM || profileCode == media.ProfileBDROM {
		return media.StatusFull, false
	}

	if media.ForcesBlankStatus(profileCode) {
		return media.StatusBlank, true
	}

	switch di.DiscStatusRaw {
	case 0:
		return media.StatusBlank, true
	case 1:
		return media.StatusAppendable, di.Erasable
	case 2:
		return media.StatusFull, di.Erasable
	default:
		return media.StatusFull, di.Erasable
	}
}

// IsBlankBDRSeq implements the extra BD-R SRM "regard as Blank" rule from
// §4.2: appendable + read_capacity==0 + state_of_last_session==0 +
// sessions==1.
func IsBlankBDRSeq(profileCode uint16, di *DiscInfo, readCapacity int64, stateOfLastSession int) bool {
	if profileCode != media.ProfileBDRSeq {
		return false
	}
	return di.DiscStatusRaw == 1 && readCapacity == 0 &&
		stateOfLastSession == 0 && di.CompleteSessions+di.IncompleteSessions == 1
}
