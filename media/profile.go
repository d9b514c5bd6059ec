// Package media owns the per-drive state model and MMC profile table (§3.3,
// §4.2). The profile table itself is data-driven, following the teacher's
// disks/disks.go pattern of embedding a CSV and unmarshaling it with gocsv
// instead of a hand-written switch.
package media

import (
	_ "embed"
	"strings"

	"github.com/gocarina/gocsv"
)

// Profile is one row of the MMC profile table: a profile code, its name,
// and the four booleans the design needs everywhere it branches on media
// type (§3.3).
type Profile struct {
	Code        uint16 `csv:"code"`
	Name        string `csv:"name"`
	IsCD        bool   `csv:"is_cd"`
	IsSupported bool   `csv:"is_supported"`
	IsErasable  bool   `csv:"is_erasable"`
	Overwrite   bool   `csv:"is_overwriteable"`
}

// Profile codes named by §3.3, exported so callers don't have to thread
// magic numbers through.
const (
	ProfileCDROM       = 0x08
	ProfileCDR         = 0x09
	ProfileCDRW        = 0x0A
	ProfileDVDROM      = 0x10
	ProfileDVDR        = 0x11
	ProfileDVDRAM      = 0x12
	ProfileDVDRWRO     = 0x13
	ProfileDVDRWSeq    = 0x14
	ProfileDVDRDL      = 0x15
	ProfileDVDPlusRW   = 0x1A
	ProfileDVDPlusR    = 0x1B
	ProfileDVDPlusRDL  = 0x2B
	ProfileBDROM       = 0x40
	ProfileBDRSeq      = 0x41
	ProfileBDRRandom   = 0x42
	ProfileBDRE        = 0x43
	ProfileUnknown     = 0x0000
	ProfileNone        = 0xFFFF
)

//go:embed profiles.csv
var profilesRawCSV string

var profileTable map[uint16]Profile

func init() {
	profileTable = make(map[uint16]Profile)
	reader := strings.NewReader(profilesRawCSV)
	err := gocsv.UnmarshalToCallback(reader, func(row Profile) error {
		profileTable[row.Code] = row
		return nil
	})
	if err != nil {
		panic(err)
	}
}

// LookupProfile returns the table entry for code, or a synthetic "unknown"
// entry (not supported, not CD, not erasable) if the code isn't in the
// table.
func LookupProfile(code uint16) Profile {
	p, ok := profileTable[code]
	if ok {
		return p
	}
	return Profile{Code: code, Name: "unknown"}
}

// overwriteableProfiles is the set from §4.3 READ TRACK INFORMATION: drives
// with these profiles report on track 1 ("the upcoming track") rather than
// 0xFF or last_track_no.
var overwriteableProfiles = map[uint16]bool{
	ProfileDVDPlusRW: true,
	ProfileDVDRWRO:   true,
	ProfileDVDRAM:    true,
	ProfileBDRRandom: true,
	ProfileBDRE:      true,
}

// IsOverwriteable reports whether a profile is in the overwriteable set used
// by §4.3's upcoming-track selection and by blanking policy.
func IsOverwriteable(code uint16) bool {
	return overwriteableProfiles[code]
}

// blankAsFullStatusProfiles is the set from §3.3's invariant: freshly
// recognized media on these profiles is reported Blank regardless of
// bg_format_status.
var blankAsFullStatusProfiles = map[uint16]bool{
	ProfileDVDRAM:    true,
	ProfileDVDRWRO:   true,
	ProfileDVDPlusRW: true,
	ProfileBDRE:      true,
}

// ForcesBlankStatus reports whether profile forces a freshly recognized
// medium to read as Blank regardless of the drive's reported
// background-format status.
func ForcesBlankStatus(code uint16) bool {
	return blankAsFullStatusProfiles[code]
}

// IsCDLike reports whether a profile uses the CD TOC/session model (Format
// 2 READ TOC) rather than the DVD/BD per-track fabrication path (§4.3).
func IsCDLike(code uint16) bool {
	return LookupProfile(code).IsCD
}

// IsWritableBDR resolves Open Question 1 (§9): 0x41 (SRM/POW) is writable,
// 0x42 (Random-writable / "BD-R RRM") is treated read-only by this
// implementation.
func IsWritableBDR(code uint16) bool {
	return code == ProfileBDRSeq
}
