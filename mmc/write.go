package mmc

import (
	"time"

	burn "github.com/burnshell/burn"
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/pacing"
	"github.com/burnshell/burn/transport"
)

// unitAttentionPollInterval is the §5 wait_unit_attention poll cadence.
const unitAttentionPollInterval = 200 * time.Millisecond

// unitAttentionMaxWaitSec bounds SYNCHRONIZE CACHE / CLOSE TRACK-SESSION
// completion polling to one hour (§4.3, §5).
const unitAttentionMaxWaitSec = 3600

const (
	opWrite10           = 0x2A
	opWrite12           = 0xAA
	opSynchronizeCache  = 0x35
	opCloseTrackSession = 0x5B
)

// Write issues WRITE(10) or WRITE(12) depending on d.DoStreamRecording and
// the start LBA relative to StreamRecordingStart, after consulting write
// pacing and the media_lba_limit guard. On success it updates the
// pessimistic buffer-free estimate (§4.3, §4.5, §8 properties 2/3).
func Write(d *media.Drive, tracker *burn.ProblemTracker, startLBA int64, buf *transport.Buffer) burnerrors.DriverError {
	if d.Role != transport.RoleMMCOptical {
		return burnerrors.ErrUnsupportedRole
	}
	if err := d.CheckWriteLBA(startLBA, tracker); err != nil {
		return err
	}

	if err := pacing.WaitForBufferFree(d, int64(buf.UsedBytes())); err != nil {
		return err
	}

	lengthInBlocks := uint32(buf.UsedSectors())
	var cdb transport.CDB
	streaming := d.DoStreamRecording && startLBA >= d.StreamRecordingStart
	if streaming {
		cdb = transport.NewCDB(12, opWrite12)
		cdb[1] = 0x80 // Streaming bit
		cdb.PutUint32(2, uint32(startLBA))
		cdb.PutUint32(6, lengthInBlocks)
	} else {
		cdb = transport.NewCDB(10, opWrite10)
		cdb.PutUint32(2, uint32(startLBA))
		cdb.PutUint16(7, uint16(lengthInBlocks))
	}

	cmd := transport.NewCommandDescriptor(cdb, transport.ToDrive, buf, writeTimeoutMS(d, buf))
	err := issue(d, cmd)
	if err != nil {
		d.Cancel = true
		if tracker != nil {
			tracker.Raise(burn.Event{
				Severity: burn.FATAL,
				Code:     "WRITE",
				Message:  errMessageWithLBA(startLBA, buf.UsedBytes(), err),
			})
		}
		return err
	}

	d.MarkWritten(int64(buf.UsedBytes()))
	return nil
}

func errMessageWithLBA(startLBA int64, length int, err error) string {
	return err.Error() + " at start=" + itoa(startLBA) + " length=" + itoa(int64(length))
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// writeTimeoutMS is the longer of (buffer / speed) and a minute, per §5.
func writeTimeoutMS(d *media.Drive, buf *transport.Buffer) int {
	const minute = 60_000
	if d.Pacing.NominalWriteSpeedKBps <= 0 {
		return minute
	}
	estMS := int(int64(buf.UsedBytes()) / d.Pacing.NominalWriteSpeedKBps)
	if estMS > minute {
		return estMS
	}
	return minute
}

// SynchronizeCache issues SYNCHRONIZE CACHE (0x35) with IMMED and waits for
// unit attention to clear, up to one hour (§4.3, §5).
func SynchronizeCache(d *media.Drive) burnerrors.DriverError {
	if d.Role != transport.RoleMMCOptical {
		return burnerrors.ErrUnsupportedRole
	}
	cdb := transport.NewCDB(10, opSynchronizeCache)
	cdb[1] = 0x02 // IMMED
	cmd := transport.NewCommandDescriptor(cdb, transport.None, nil, transport.SyncTimeoutMS)
	if err := issue(d, cmd); err != nil {
		return err
	}
	if err := waitForUnitAttentionClear(d, unitAttentionPollInterval, unitAttentionMaxWaitSec); err != nil {
		return err
	}
	d.NeedsSyncCache = false
	return nil
}

// CloseTrackSession issues CLOSE TRACK/SESSION (0x5B). closeSession selects
// whether to close the session (encoded in the high 2 bits of the
// close-function field) or just the track (low bit), per §4.3. It then
// waits for unit attention to clear for up to 3600s.
func CloseTrackSession(d *media.Drive, session int, track int, closeSession bool) burnerrors.DriverError {
	if d.Role != transport.RoleMMCOptical {
		return burnerrors.ErrUnsupportedRole
	}
	cdb := transport.NewCDB(10, opCloseTrackSession)
	cdb[1] = 0x02 // IMMED
	// Close-function: session number in the high 2 bits, close-track flag
	// in the low bit (§4.3).
	closeFunc := byte(session&0x03) << 1
	if !closeSession {
		closeFunc |= 0x01
	}
	cdb[2] = closeFunc
	cdb.PutUint16(4, uint16(track))
	cmd := transport.NewCommandDescriptor(cdb, transport.None, nil, transport.SyncTimeoutMS)
	if err := issue(d, cmd); err != nil {
		return err
	}
	if err := waitForUnitAttentionClear(d, unitAttentionPollInterval, unitAttentionMaxWaitSec); err != nil {
		return err
	}
	d.NeedsCloseSession = false
	return nil
}
