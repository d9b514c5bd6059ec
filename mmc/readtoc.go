package mmc

import (
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

const opReadTOC = 0x43
const tocPointLeadout = 0xA2

func buildReadTOCCDB(format byte, allocLen int) transport.CDB {
	cdb := transport.NewCDB(10, opReadTOC)
	cdb[2] = format & 0x0F
	cdb.PutUint16(7, uint16(allocLen))
	return cdb
}

func tocReplyLength(header []byte) int {
	if len(header) < 2 {
		return 0
	}
	return int(transport.Uint16(header, 0)) + 2
}

// ReadTOCFormat2 reads the real multi-session TOC for CD-like media (§4.3).
func ReadTOCFormat2(d *media.Drive) ([]media.TOCEntry, burnerrors.DriverError) {
	buf, err := ProbeAndFetch(
		d, 2048, transport.DiscoveryTimeoutMS,
		func(allocLen int) transport.CDB { return buildReadTOCCDB(2, allocLen) },
		tocReplyLength,
	)
	if err != nil {
		return nil, err
	}
	return decodeTOCFormat2(buf.Used()), nil
}

// ReadTOCFormat0 reads the basic single-session TOC, used as a fallback
// when READ DISC INFORMATION returns an invalid-opcode sense, and for
// DVD-ROM discs with only one track (§4.3).
func ReadTOCFormat0(d *media.Drive) ([]media.TOCEntry, burnerrors.DriverError) {
	buf, err := ProbeAndFetch(
		d, 2048, transport.DiscoveryTimeoutMS,
		func(allocLen int) transport.CDB { return buildReadTOCCDB(0, allocLen) },
		tocReplyLength,
	)
	if err != nil {
		return nil, err
	}
	return decodeTOCFormat0(buf.Used()), nil
}

func decodeTOCFormat2(b []byte) []media.TOCEntry {
	var entries []media.TOCEntry
	for off := 4; off+11 <= len(b); off += 11 {
		point := b[off+1]
		session := int(b[off])
		entry := media.TOCEntry{
			Session: session,
			Point:   point,
		}
		if point >= 1 && point <= 99 {
			entry.Track = int(point)
		}
		entry.StartLBA = int64(transport.Uint24(b, off+8))
		entries = append(entries, entry)
	}
	return entries
}

func decodeTOCFormat0(b []byte) []media.TOCEntry {
	var entries []media.TOCEntry
	for off := 4; off+7 <= len(b); off += 8 {
		point := b[off+1]
		entry := media.TOCEntry{
			Track: int(point),
			Point: point,
		}
		entry.StartLBA = int64(transport.Uint32(b, off+4))
		entries = append(entries, entry)
	}
	return entries
}

// FabricateTOC builds a TOC by iterating READ TRACK INFORMATION for tracks
// 1..lastTrackNo, grouping by session and synthesizing a leadout entry for
// every session that doesn't already end in one, per §4.3 and scenario S2.
//
// For a DVD-ROM with only one track, callers should prefer ReadTOCFormat0
// instead of calling this (§4.3).
func FabricateTOC(d *media.Drive, lastTrackNo int) ([]media.TOCEntry, burnerrors.DriverError) {
	var entries []media.TOCEntry
	var bySession = map[int][]media.TOCEntry{}
	var sessionOrder []int

	for track := 1; track <= lastTrackNo; track++ {
		ti, err := ReadTrackInfo(d, track)
		if err != nil {
			return nil, err
		}
		e := media.TOCEntry{
			Session:  ti.SessionNo,
			Track:    track,
			StartLBA: ti.StartLBA,
			SizeLBA:  ti.SizeLBA,
		}
		if _, seen := bySession[e.Session]; !seen {
			sessionOrder = append(sessionOrder, e.Session)
		}
		bySession[e.Session] = append(bySession[e.Session], e)
	}

	for _, session := range sessionOrder {
		tracks := bySession[session]
		entries = append(entries, tracks...)

		hasLeadout := false
		for _, e := range tracks {
			if e.Point == tocPointLeadout {
				hasLeadout = true
				break
			}
		}
		if !hasLeadout && len(tracks) > 0 {
			last := tracks[len(tracks)-1]
			entries = append(entries, media.TOCEntry{
				Session:  session,
				Point:    tocPointLeadout,
				StartLBA: last.StartLBA + last.SizeLBA,
				SizeLBA:  0,
			})
		}
	}

	return entries, nil
}

// BuildTOC picks the right strategy per §4.3: real TOC for CD-like
// profiles, DVD-ROM single-track fallback to Format 0, and fabrication from
// per-track info for everything else.
func BuildTOC(d *media.Drive) ([]media.TOCEntry, burnerrors.DriverError) {
	switch {
	case media.IsCDLike(d.ProfileCode):
		return ReadTOCFormat2(d)
	case d.ProfileCode == media.ProfileDVDROM && d.LastTrackNo <= 1:
		return ReadTOCFormat0(d)
	default:
		return FabricateTOC(d, d.LastTrackNo)
	}
}
