package mmc

import (
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

// TrackInfo is the decoded reply of READ TRACK INFORMATION (0x52), trimmed
// to the fields §4.3 cares about.
type TrackInfo struct {
	TrackNo   int
	SessionNo int
	StartLBA  int64
	SizeLBA   int64
	Damaged   bool
	NWAValid  bool
	NWA       int64
	Blank     bool
}

const opReadTrackInformation = 0x52

func buildReadTrackInfoCDB(trackNo int, allocLen int) transport.CDB {
	cdb := transport.NewCDB(10, opReadTrackInformation)
	cdb[1] = 0x01 // address type: track number
	cdb.PutUint32(2, uint32(trackNo))
	cdb.PutUint16(7, uint16(allocLen))
	return cdb
}

func trackInfoReplyLength(header []byte) int {
	if len(header) < 2 {
		return 0
	}
	return int(transport.Uint16(header, 0)) + 2
}

// selectUpcomingTrack implements §4.3's "for queries on the upcoming track,
// select track number from profile" rule.
func selectUpcomingTrack(d *media.Drive) int {
	switch {
	case media.IsCDLike(d.ProfileCode), d.ProfileCode == media.ProfileDVDPlusR:
		return 0xFF
	case media.IsOverwriteable(d.ProfileCode):
		return 1
	default:
		// ROM and DVD-R/RW sequential and BD-R sequential.
		return d.LastTrackNo
	}
}

// ReadTrackInfo issues READ TRACK INFORMATION for a specific track number.
// Pass 0xFF for "the upcoming track" per §4.3's upcoming-track rule, or use
// ReadUpcomingTrackInfo to have the track number selected automatically.
func ReadTrackInfo(d *media.Drive, trackNo int) (*TrackInfo, burnerrors.DriverError) {
	buf, err := ProbeAndFetch(
		d, 2048, transport.DiscoveryTimeoutMS,
		func(allocLen int) transport.CDB { return buildReadTrackInfoCDB(trackNo, allocLen) },
		trackInfoReplyLength,
	)
	if err != nil {
		return nil, err
	}
	return decodeTrackInfo(buf.Used()), nil
}

// ReadUpcomingTrackInfo reads track info for "the next writable track" using
// the profile-dependent track-number selection rule from §4.3.
func ReadUpcomingTrackInfo(d *media.Drive) (*TrackInfo, burnerrors.DriverError) {
	return ReadTrackInfo(d, selectUpcomingTrack(d))
}

func decodeTrackInfo(b []byte) *TrackInfo {
	ti := &TrackInfo{}
	if len(b) < 8 {
		return ti
	}
	ti.TrackNo = int(b[2])
	ti.SessionNo = int(b[3])
	ti.Damaged = b[5]&0x20 != 0
	ti.Blank = b[5]&0x40 != 0
	ti.NWAValid = b[6]&0x01 != 0
	if len(b) >= 12 {
		ti.StartLBA = int64(transport.Uint32(b, 8))
	}
	if len(b) >= 20 {
		ti.NWA = int64(transport.Uint32(b, 12))
	}
	if len(b) >= 24 {
		ti.SizeLBA = int64(transport.Uint32(b, 20))
	}
	return ti
}

// ApplyDamageBits folds the damage/NWA-valid bits from a TrackInfo reply
// into the drive's next_track_damaged state (§3.3, §9 Open Question 2).
func ApplyDamageBits(d *media.Drive, ti *TrackInfo) {
	d.NextTrackDamage.Damaged = ti.Damaged
	d.NextTrackDamage.NWAValid = ti.NWAValid
}
