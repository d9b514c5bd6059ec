package checkmedia

import (
	"os"
	"time"

	burnerrors "github.com/burnshell/burn/errors"
)

// RetryPolicy selects whether failed chunks are bisected down to single
// blocks (§4.6).
type RetryPolicy int

const (
	RetryOff RetryPolicy = iota
	RetryOn
)

// ReportMode selects how results are surfaced (§4.6).
type ReportMode int

const (
	ReportBlocks ReportMode = iota
	ReportFiles
	ReportBlocksFiles
)

// Reader abstracts the one operation the check-media engine needs from a
// drive or image file: read count sectors starting at lba, returning the
// bytes read or an error. Implementations wrap mmc.ReadCD for optical
// drives and a plain file for image checking.
type Reader interface {
	ReadSectors(lba int64, count int) ([]byte, error)
}

// CheckMediaJob configures one check-media run (§3.6).
type CheckMediaJob struct {
	Reader Reader

	MinLBA, MaxLBA int64
	MinBlockSize   int64
	SectorSize     int

	Retry          RetryPolicy
	AbortFilePath  string
	TimeLimit      time.Duration
	ItemLimit      int64
	SlowLimit      time.Duration
	UntestedValid  bool
	BadLimit       Quality
	ReportMode     ReportMode
	SectorMap      *SectorBitmap
	MapWithVolID   string

	DataTo       *os.File
	DataToOffset int64
	DataToLimit  int64

	PatchLBA0    bool
	PatchSrcLBA  int64

	now func() time.Time
}

// Result is what a completed run reports.
type Result struct {
	List      SpotList
	Aborted   bool
	SawBad    bool
}

// Run executes the engine described in §4.6: iterate [MinLBA, MaxLBA] in
// MinBlockSize chunks, classify each chunk, bisect on failure when retry is
// on, and build a SpotList of contiguous same-quality ranges.
func (j *CheckMediaJob) Run() (*Result, burnerrors.DriverError) {
	if j.MinBlockSize <= 0 {
		j.MinBlockSize = 1
	}
	now := j.now
	if now == nil {
		now = time.Now
	}

	result := &Result{}
	start := now()
	var itemsDone int64

	if j.SectorMap != nil {
		result.List = *FromBitmap(j.SectorMap)
	}

	for lba := j.MinLBA; lba <= j.MaxLBA; lba += j.MinBlockSize {
		if j.AbortFilePath != "" {
			if _, err := os.Stat(j.AbortFilePath); err == nil {
				result.Aborted = true
				j.markRemainingUntested(result, lba)
				break
			}
		}
		if j.TimeLimit > 0 && now().Sub(start) > j.TimeLimit {
			result.Aborted = true
			j.markRemainingUntested(result, lba)
			break
		}
		if j.ItemLimit > 0 && itemsDone >= j.ItemLimit {
			result.Aborted = true
			j.markRemainingUntested(result, lba)
			break
		}

		count := j.MinBlockSize
		if lba+count-1 > j.MaxLBA {
			count = j.MaxLBA - lba + 1
		}

		if j.SectorMap != nil && j.SectorMap.TestRange(lba, count) {
			// Already Valid in the merged map; skip retesting (§4.6).
			itemsDone++
			continue
		}

		readStart := now()
		data, err := j.Reader.ReadSectors(lba, int(count))
		elapsed := now().Sub(readStart)

		if err == nil {
			quality := Good
			if j.SlowLimit > 0 && elapsed > j.SlowLimit {
				quality = Slow
			}
			result.List.Append(lba, count, quality)
			j.writeRecovered(lba, data)
		} else if j.Retry == RetryOn && count > 1 {
			j.bisect(result, lba, count)
			result.SawBad = true
		} else {
			result.List.Append(lba, count, Unreadable)
			result.SawBad = true
		}
		itemsDone++
	}

	if j.PatchLBA0 && j.DataTo != nil {
		j.patchLBA0()
	}

	return result, nil
}

// bisect implements "bisect the chunk down to single blocks; blocks that
// fail -> Unreadable; blocks that succeed -> Partial for the enclosing
// chunk" (§4.6, scenario S5).
func (j *CheckMediaJob) bisect(result *Result, lba, count int64) {
	if count == 1 {
		if data, err := j.Reader.ReadSectors(lba, 1); err == nil {
			result.List.Append(lba, 1, Partial)
			j.writeRecovered(lba, data)
		} else {
			result.List.Append(lba, 1, Unreadable)
		}
		return
	}

	half := count / 2
	if _, err := j.Reader.ReadSectors(lba, int(half)); err == nil {
		result.List.Append(lba, half, Partial)
	} else {
		j.bisect(result, lba, half)
	}
	if _, err := j.Reader.ReadSectors(lba+half, int(count-half)); err == nil {
		result.List.Append(lba+half, count-half, Partial)
	} else {
		j.bisect(result, lba+half, count-half)
	}
}

func (j *CheckMediaJob) markRemainingUntested(result *Result, fromLBA int64) {
	if fromLBA > j.MaxLBA {
		return
	}
	quality := Untested
	if j.UntestedValid {
		quality = Valid
	}
	result.List.Append(fromLBA, j.MaxLBA-fromLBA+1, quality)
}

func (j *CheckMediaJob) writeRecovered(lba int64, data []byte) {
	if j.DataTo == nil {
		return
	}
	offset := j.DataToOffset + (lba-j.MinLBA)*int64(j.SectorSize)
	if j.DataToLimit > 0 && offset+int64(len(data)) > j.DataToOffset+j.DataToLimit {
		return
	}
	_, _ = j.DataTo.WriteAt(data, offset)
}

// patchLBA0 copies bytes 0..31 from PatchSrcLBA into the output file's
// offset 0..31 (§4.6).
func (j *CheckMediaJob) patchLBA0() {
	data, err := j.Reader.ReadSectors(j.PatchSrcLBA, 1)
	if err != nil || len(data) < 32 {
		return
	}
	_, _ = j.DataTo.WriteAt(data[:32], j.DataToOffset)
}
