package mmc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForUnitAttentionClearSucceedsImmediately(t *testing.T) {
	issuer := newFakeIssuer()
	d := newFakeDrive(issuer)

	err := waitForUnitAttentionClear(d, time.Millisecond, 1)
	require.NoError(t, err)
	assert.Contains(t, issuer.calls, byte(opTestUnitReady))
}

func TestWaitForUnitAttentionClearRetriesThenSucceeds(t *testing.T) {
	origSleep := Sleep
	defer func() { Sleep = origSleep }()

	issuer := newFakeIssuer()
	d := newFakeDrive(issuer)

	remaining := 2
	sleeps := 0
	Sleep = func(time.Duration) {
		sleeps++
		remaining--
		if remaining <= 0 {
			delete(issuer.unitAttention, opTestUnitReady)
		}
	}
	issuer.unitAttention[opTestUnitReady] = true

	err := waitForUnitAttentionClear(d, time.Millisecond, 3600)
	require.NoError(t, err)
	assert.Equal(t, 2, sleeps)
}

func TestWaitForUnitAttentionClearTimesOut(t *testing.T) {
	origSleep := Sleep
	origNow := Now
	defer func() { Sleep = origSleep; Now = origNow }()

	issuer := newFakeIssuer()
	issuer.unitAttention[opTestUnitReady] = true
	d := newFakeDrive(issuer)

	base := time.Unix(0, 0)
	tick := 0
	Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Hour)
	}
	Sleep = func(time.Duration) {}

	err := waitForUnitAttentionClear(d, time.Millisecond, 1)
	assert.Error(t, err)
}

func TestSynchronizeCachePollsUnitAttention(t *testing.T) {
	issuer := newFakeIssuer()
	d := newFakeDrive(issuer)
	d.NeedsSyncCache = true

	err := SynchronizeCache(d)
	require.NoError(t, err)
	assert.False(t, d.NeedsSyncCache)
	assert.Contains(t, issuer.calls, byte(opTestUnitReady))
}

func TestFormatUnitWaitsForReadyThenSyncsWhenNotImmediate(t *testing.T) {
	issuer := newFakeIssuer()
	d := newFakeDrive(issuer)

	err := FormatUnit(d, FormatOptions{}, 0, nil)
	require.NoError(t, err)
	assert.Contains(t, issuer.calls, byte(opTestUnitReady))
	assert.Contains(t, issuer.calls, byte(opSynchronizeCache))
}

func TestFormatUnitSkipsSyncWhenReturnImmediately(t *testing.T) {
	issuer := newFakeIssuer()
	d := newFakeDrive(issuer)

	err := FormatUnit(d, FormatOptions{ReturnImmediately: true}, 0, nil)
	require.NoError(t, err)
	assert.NotContains(t, issuer.calls, byte(opSynchronizeCache))
}
