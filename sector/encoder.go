package sector

import (
	"io"

	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/transport"
)

const fullSectorSize = 2352

// Encoder assembles raw sectors into an output transport.Buffer, filled
// through the buffer's own bytewriter-backed Writer(). FlushTrigger mirrors
// the "opts.obs trigger (e.g. 32 KiB for DVD flush)" from §4.4's
// get_sector: once crossed, FlushIfDue tells the caller to issue the
// accumulated sectors and reset.
type Encoder struct {
	Buf          *transport.Buffer
	FlushTrigger int
	LeadinBias   bool // MSF+mode byte gets the 0xA0 bias for lead-in sectors

	w io.Writer
}

// NewEncoder wires an Encoder to an output buffer sized in full
// (2352-byte) raw sectors. The buffer's writer is created once and reused
// across sectors so each ConvertData call appends rather than overwriting.
func NewEncoder(buf *transport.Buffer, flushTrigger int) *Encoder {
	return &Encoder{Buf: buf, FlushTrigger: flushTrigger, w: buf.Writer()}
}

// ConvertData copies one sector's payload from track at the right data
// offset for mode (§4.4 convert_data), applies the track's offset/tail/swap
// rules, then — for Mode-1 — writes the sync/header and EDC and runs the
// P+Q parity and scrambling stubs, which leave the sector unchanged (§4.4
// sector_headers), before handing the finished sector to the output
// buffer's writer (get_sector).
func (e *Encoder) ConvertData(track *Track, mode Mode, msf int64) burnerrors.DriverError {
	if e.Buf.Capacity()-transport.OverrunSlack-e.Buf.UsedBytes() < fullSectorSize {
		return burnerrors.ErrBufferTooSmall
	}

	slot := make([]byte, fullSectorSize)
	offset := mode.DataOffset()
	payloadLen := mode.Length()
	if offset+payloadLen > fullSectorSize {
		payloadLen = fullSectorSize - offset
	}
	if err := track.FillPayload(slot[offset : offset+payloadLen]); err != nil {
		return err
	}

	if mode == ModeOne {
		writeSectorHeader(slot, msf, e.LeadinBias)
		edc := CRC32EDC(slot[:2064])
		slot[2064] = byte(edc)
		slot[2065] = byte(edc >> 8)
		slot[2066] = byte(edc >> 16)
		slot[2067] = byte(edc >> 24)
		WriteParity(slot)
		Scramble(slot[12:])
	}

	n, err := e.w.Write(slot)
	if err != nil {
		return burnerrors.ErrShortWrite.Wrap(err)
	}
	if n != fullSectorSize {
		return burnerrors.ErrShortWrite
	}

	track.WriteCount++
	track.WrittenSectors++
	return nil
}

// writeSectorHeader writes the Mode-1 sync pattern and MSF+mode byte
// (biased 0xA0 for lead-in sectors), per §4.4 sector_headers.
func writeSectorHeader(slot []byte, lba int64, leadinBias bool) {
	slot[0] = 0x00
	for i := 1; i <= 10; i++ {
		slot[i] = 0xFF
	}
	slot[11] = 0x00

	msf := lba
	if leadinBias {
		msf += 0xA0 * 60 * 75 // bias into the lead-in MSF range
	}
	putMSF(slot[12:15], msf)
	slot[15] = 0x01 // mode 1
}

// FlushIfDue returns true once FlushTrigger bytes have accumulated in Buf,
// signaling the caller should issue the accumulated sectors and call Reset.
func (e *Encoder) FlushIfDue() bool {
	return e.FlushTrigger > 0 && e.Buf.UsedBytes() >= e.FlushTrigger
}

// Reset empties the output buffer and rearms its writer at offset 0, for
// use after the caller has issued the accumulated sectors.
func (e *Encoder) Reset() {
	e.Buf.Reset()
	e.w = e.Buf.Writer()
}
