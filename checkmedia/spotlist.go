// Package checkmedia implements C6: the sector bitmap, the SpotList
// read-quality report, and the check-media engine that walks a drive's LBA
// range classifying each range's readability (§3.4-3.6, §4.6).
package checkmedia

// Quality is the SpotListItem classification from §3.4.
type Quality int

const (
	Untested Quality = iota
	TaoEnd
	OffTrack
	Good
	Md5Match
	Slow
	Partial
	Valid
	Invalid
	Md5Mismatch
	Unreadable
)

var qualityNames = [...]string{
	Untested: "Untested", TaoEnd: "TaoEnd", OffTrack: "OffTrack", Good: "Good",
	Md5Match: "Md5Match", Slow: "Slow", Partial: "Partial", Valid: "Valid",
	Invalid: "Invalid", Md5Mismatch: "Md5Mismatch", Unreadable: "Unreadable",
}

func (q Quality) String() string {
	if int(q) >= 0 && int(q) < len(qualityNames) {
		return qualityNames[q]
	}
	return "Unknown"
}

// Severity ranks how bad a quality is for reporting purposes: higher is
// worse, used to pick "the most severe quality per range" (§3.4, scenario
// S5's nested-Unreadable-inside-Partial rule).
func (q Quality) Severity() int {
	switch q {
	case Untested:
		return 0
	case Good, Md5Match, Valid:
		return 1
	case Slow:
		return 2
	case Partial:
		return 3
	case OffTrack, TaoEnd:
		return 4
	case Invalid:
		return 5
	case Md5Mismatch:
		return 6
	case Unreadable:
		return 7
	default:
		return 0
	}
}

// IsBad reports whether q ranks at or beyond the caller's configured
// bad_limit threshold by Severity(), separating "+" from "-" qualities for
// reporting (§3.4).
func (q Quality) IsBad(badLimit Quality) bool {
	return q.Severity() >= badLimit.Severity()
}

// SpotListItem is one contiguous run of a single quality.
type SpotListItem struct {
	StartLBA   int64
	BlockCount int64
	Quality    Quality
}

// SpotList is an append-only sequence of SpotListItems built during a check
// run (§3.4).
type SpotList struct {
	Items []SpotListItem
}

// Append adds a run, merging into the previous item if it's contiguous and
// shares the same quality.
func (s *SpotList) Append(startLBA, blockCount int64, quality Quality) {
	if blockCount <= 0 {
		return
	}
	if n := len(s.Items); n > 0 {
		last := &s.Items[n-1]
		if last.Quality == quality && last.StartLBA+last.BlockCount == startLBA {
			last.BlockCount += blockCount
			return
		}
	}
	s.Items = append(s.Items, SpotListItem{StartLBA: startLBA, BlockCount: blockCount, Quality: quality})
}

// MarkRange records a sub-range with a single quality by appending it as a
// new run, merged only the way Append merges. Items that overlap the range
// are neither split nor changed, so a bisected Unreadable range ends up
// nested after its enclosing Partial range (scenario S5) rather than
// replacing part of it.
func (s *SpotList) MarkRange(startLBA, blockCount int64, quality Quality) {
	s.Append(startLBA, blockCount, quality)
}

// ToBitmap projects the SpotList onto a SectorBitmap: every LBA whose
// quality is at or above goodEnough is marked readable.
func (s *SpotList) ToBitmap(sectorSize int, goodEnough Quality) *SectorBitmap {
	var total int64
	for _, it := range s.Items {
		if end := it.StartLBA + it.BlockCount; end > total {
			total = end
		}
	}
	bm := NewSectorBitmap(total, sectorSize)
	for _, it := range s.Items {
		if it.Quality.Severity() <= goodEnough.Severity() {
			bm.SetRange(it.StartLBA, it.BlockCount)
		}
	}
	return bm
}

// FromBitmap projects a bitmap back onto a SpotList by run-length encoding
// contiguous readable/unreadable spans (§4.6 "the opposite direction").
func FromBitmap(bm *SectorBitmap) *SpotList {
	sl := &SpotList{}
	var runStart int64 = -1
	var runGood bool
	for i := int64(0); i < bm.Sectors; i++ {
		good := bm.Test(i)
		if runStart == -1 {
			runStart, runGood = i, good
			continue
		}
		if good != runGood {
			sl.Append(runStart, i-runStart, qualityFor(runGood))
			runStart, runGood = i, good
		}
	}
	if runStart != -1 {
		sl.Append(runStart, bm.Sectors-runStart, qualityFor(runGood))
	}
	return sl
}

func qualityFor(good bool) Quality {
	if good {
		return Valid
	}
	return Unreadable
}
