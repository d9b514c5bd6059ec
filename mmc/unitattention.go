package mmc

import (
	"errors"
	"time"

	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

const opTestUnitReady = 0x00

// Sleep and Now are overridable for tests, mirroring package pacing.
var Sleep = time.Sleep
var Now = time.Now

// waitForUnitAttentionClear implements wait_unit_attention (§5): poll TEST
// UNIT READY at interval until the drive answers ready, a non-unit-attention
// sense surfaces, or maxWaitSec elapses.
func waitForUnitAttentionClear(d *media.Drive, interval time.Duration, maxWaitSec int64) burnerrors.DriverError {
	deadline := Now().Add(time.Duration(maxWaitSec) * time.Second)
	for {
		cdb := transport.NewCDB(6, opTestUnitReady)
		cmd := transport.NewCommandDescriptor(cdb, transport.None, nil, transport.DiscoveryTimeoutMS)
		err := issue(d, cmd)
		if err == nil {
			return nil
		}

		var se *transport.SenseError
		if !errors.As(err, &se) || !se.IsUnitAttention() {
			return err
		}
		if Now().After(deadline) {
			return burnerrors.ErrDriveBusy.WithMessage("unit attention did not clear before timeout")
		}
		Sleep(interval)
	}
}
