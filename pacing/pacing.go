// Package pacing implements write-buffer pacing (C5, §4.5): deciding
// whether to wait before issuing a WRITE so the drive's burn buffer doesn't
// run dry, using the pessimistic buffer-free estimate carried on
// media.Drive and refreshed via READ BUFFER CAPACITY.
package pacing

import (
	"time"

	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
)

// BufferCapacityReader abstracts the READ BUFFER CAPACITY command so this
// package doesn't import mmc (mmc already imports pacing for Write).
type BufferCapacityReader func(d *media.Drive) (capacity, available int64, err burnerrors.DriverError)

// ReadBufferCapacity is the hook WaitForBufferFree calls to refresh the
// pessimistic estimate; set by the mmc package at init time to break the
// import cycle between mmc (which calls pacing.WaitForBufferFree) and
// pacing (which needs to issue READ BUFFER CAPACITY).
var ReadBufferCapacity BufferCapacityReader

// OnLongWait is called once per WaitForBufferFree call that has been
// blocked for more than three seconds (§4.5: "emit DEBUG"). Nothing in this
// module sets it; nil, the default, disables the callback.
var OnLongWait func(d *media.Drive, elapsed time.Duration)

// Sleep is overridable for tests.
var Sleep = time.Sleep

// Now is overridable for tests.
var Now = time.Now

// WaitForBufferFree implements the algorithm from §4.5. It is a no-op
// unless d.WaitForBufferFree is set and the buffered-bytes threshold has
// been crossed.
func WaitForBufferFree(d *media.Drive, writeBytes int64) burnerrors.DriverError {
	if !d.WaitForBufferFree {
		return nil
	}

	capacity := d.Pacing.BufferCapacity
	if capacity <= 0 {
		return nil
	}

	buffered := capacity - d.Pacing.PessimisticBufferFree
	if float64(buffered+writeBytes) <= float64(capacity)*d.Pacing.MaxPercent {
		return nil
	}

	if d.Pacing.PessimisticBufferFree-writeBytes >= int64((1-d.Pacing.MaxPercent)*float64(capacity)) {
		d.Pacing.PessimisticWrites++
		return nil
	}

	start := Now()
	overallTimeout := time.Duration(d.Pacing.WFBTimeoutSec) * time.Second
	debugThreshold := 3 * time.Second
	longWaitReported := false

	for {
		if ReadBufferCapacity != nil {
			cap2, avail2, err := ReadBufferCapacity(d)
			if err == nil {
				d.RefreshBufferFree(cap2, avail2)
			}
		}

		if d.Pacing.PessimisticBufferFree-writeBytes >= int64((1-d.Pacing.MinPercent)*float64(capacity)) {
			d.Pacing.WaitedWrites++
			return nil
		}

		elapsed := Now().Sub(start)
		if d.Pacing.WFBTimeoutSec > 0 && elapsed > overallTimeout {
			d.WaitForBufferFree = false
			return nil
		}
		if elapsed > debugThreshold && OnLongWait != nil && !longWaitReported {
			OnLongWait(d, elapsed)
			longWaitReported = true
		}

		need := writeBytes - d.Pacing.PessimisticBufferFree
		usec := int64(0)
		if d.Pacing.NominalWriteSpeedKBps > 0 {
			usec = need / d.Pacing.NominalWriteSpeedKBps * 1000
		}
		usec = clamp(usec, d.Pacing.WFBMinUsec, d.Pacing.WFBMaxUsec)

		d.Pacing.WaitedTries++
		d.Pacing.WaitedUsec += usec
		Sleep(time.Duration(usec) * time.Microsecond)
	}
}

func clamp(v, lo, hi int64) int64 {
	if lo > 0 && v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}
