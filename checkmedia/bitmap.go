package checkmedia

import (
	"bufio"
	"fmt"
	"io"

	"github.com/boljen/go-bitmap"

	burnerrors "github.com/burnshell/burn/errors"
)

// bitmapHeaderV2 is the on-disk SectorBitmap magic (§6.2); version 1 omits
// the info field entirely.
const (
	bitmapHeaderV2 = "xorriso sector bitmap v2 "
	bitmapHeaderV1 = "xorriso sector bitmap v1"
)

// SectorBitmap is a bit-per-sector readable/unreadable map (§3.5), backed
// by github.com/boljen/go-bitmap the same way the teacher's block cache
// tracks loaded blocks.
type SectorBitmap struct {
	Sectors    int64
	SectorSize int
	Info       string
	bits       bitmap.Bitmap
}

// NewSectorBitmap allocates a bitmap for the given sector count, all bits
// clear (unreadable) initially.
func NewSectorBitmap(sectors int64, sectorSize int) *SectorBitmap {
	return &SectorBitmap{
		Sectors:    sectors,
		SectorSize: sectorSize,
		bits:       bitmap.New(int(sectors)),
	}
}

// Set marks a single sector readable or not.
func (b *SectorBitmap) Set(i int64, readable bool) {
	if i < 0 || i >= b.Sectors {
		return
	}
	b.bits.Set(int(i), readable)
}

// SetRange marks [start, start+count) readable.
func (b *SectorBitmap) SetRange(start, count int64) {
	for i := start; i < start+count && i < b.Sectors; i++ {
		b.Set(i, true)
	}
}

// Test reports whether sector i is marked readable.
func (b *SectorBitmap) Test(i int64) bool {
	if i < 0 || i >= b.Sectors {
		return false
	}
	return b.bits.Get(int(i))
}

// TestRange reports whether every sector in [start, start+count) is
// readable.
func (b *SectorBitmap) TestRange(start, count int64) bool {
	for i := start; i < start+count; i++ {
		if !b.Test(i) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (b *SectorBitmap) Clone() *SectorBitmap {
	out := NewSectorBitmap(b.Sectors, b.SectorSize)
	out.Info = b.Info
	for i := int64(0); i < b.Sectors; i++ {
		out.Set(i, b.Test(i))
	}
	return out
}

// Rescale copies this bitmap's coverage into a bitmap addressed in
// different-sized sectors (§3.5 "copy-into-different-granularity"). A
// destination sector is set only if every source sector within its span is
// set (conservative in the shrink direction) or if any source sector
// within its span is set (conservative in the grow direction) — matching
// the "every destination sector set ⇒ at least one source sector in its
// span is set" property from §8.
func (b *SectorBitmap) Rescale(destSectorSize int) *SectorBitmap {
	if destSectorSize == b.SectorSize || destSectorSize <= 0 {
		return b.Clone()
	}
	destSectors := (b.Sectors*int64(b.SectorSize) + int64(destSectorSize) - 1) / int64(destSectorSize)
	out := NewSectorBitmap(destSectors, destSectorSize)
	out.Info = b.Info

	if destSectorSize > b.SectorSize {
		// Shrinking sector count: a destination sector is set only if every
		// overlapping source sector is set.
		ratio := destSectorSize / b.SectorSize
		for d := int64(0); d < destSectors; d++ {
			allSet := true
			srcStart := d * int64(ratio)
			for s := srcStart; s < srcStart+int64(ratio) && s < b.Sectors; s++ {
				if !b.Test(s) {
					allSet = false
					break
				}
			}
			out.Set(d, allSet)
		}
		return out
	}

	// Growing sector count: a destination sector is set if any overlapping
	// source sector is set.
	ratio := b.SectorSize / destSectorSize
	for s := int64(0); s < b.Sectors; s++ {
		if !b.Test(s) {
			continue
		}
		destStart := s * int64(ratio)
		for d := destStart; d < destStart+int64(ratio) && d < destSectors; d++ {
			out.Set(d, true)
		}
	}
	return out
}

// Save writes the SectorBitmap v2 on-disk format (§6.2): header, info
// length and bytes, {sectors, sector_size} as big-endian u32, then the raw
// map.
func (b *SectorBitmap) Save(w io.Writer) burnerrors.DriverError {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s%06d\n", bitmapHeaderV2, len(b.Info)); err != nil {
		return burnerrors.ErrShortWrite.Wrap(err)
	}
	if _, err := bw.WriteString(b.Info); err != nil {
		return burnerrors.ErrShortWrite.Wrap(err)
	}
	var header [8]byte
	putU32BE(header[0:4], uint32(b.Sectors))
	putU32BE(header[4:8], uint32(b.SectorSize))
	if _, err := bw.Write(header[:]); err != nil {
		return burnerrors.ErrShortWrite.Wrap(err)
	}
	if _, err := bw.Write(b.bits); err != nil {
		return burnerrors.ErrShortWrite.Wrap(err)
	}
	if err := bw.Flush(); err != nil {
		return burnerrors.ErrShortWrite.Wrap(err)
	}
	return nil
}

// LoadSectorBitmap reads either the v1 or v2 on-disk format (§6.2).
func LoadSectorBitmap(r io.Reader) (*SectorBitmap, burnerrors.DriverError) {
	br := bufio.NewReader(r)
	line, err := br.ReadString('\n')
	if err != nil {
		return nil, burnerrors.ErrUnexpectedEOF.Wrap(err)
	}

	var info string
	switch {
	case len(line) >= len(bitmapHeaderV2) && line[:len(bitmapHeaderV2)] == bitmapHeaderV2:
		var infoLen int
		if _, err := fmt.Sscanf(line[len(bitmapHeaderV2):], "%d", &infoLen); err != nil {
			return nil, burnerrors.ErrInvalidArgument.WithMessage("malformed sector bitmap info length")
		}
		infoBuf := make([]byte, infoLen)
		if _, err := io.ReadFull(br, infoBuf); err != nil {
			return nil, burnerrors.ErrUnexpectedEOF.Wrap(err)
		}
		info = string(infoBuf)
	case len(line) >= len(bitmapHeaderV1) && line[:len(bitmapHeaderV1)] == bitmapHeaderV1:
		// v1 has no info field.
	default:
		return nil, burnerrors.ErrInvalidArgument.WithMessage("not a sector bitmap file")
	}

	var header [8]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, burnerrors.ErrUnexpectedEOF.Wrap(err)
	}
	sectors := int64(u32BE(header[0:4]))
	sectorSize := int(u32BE(header[4:8]))

	mapSize := sectors/8 + 1
	mapBytes := make([]byte, mapSize)
	if _, err := io.ReadFull(br, mapBytes); err != nil {
		return nil, burnerrors.ErrUnexpectedEOF.Wrap(err)
	}

	return &SectorBitmap{
		Sectors:    sectors,
		SectorSize: sectorSize,
		Info:       info,
		bits:       bitmap.Bitmap(mapBytes),
	}, nil
}

func putU32BE(dst []byte, v uint32) {
	dst[0] = byte(v >> 24)
	dst[1] = byte(v >> 16)
	dst[2] = byte(v >> 8)
	dst[3] = byte(v)
}

func u32BE(src []byte) uint32 {
	return uint32(src[0])<<24 | uint32(src[1])<<16 | uint32(src[2])<<8 | uint32(src[3])
}
