package mmc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlankIssuesWithIMMEDAndMode(t *testing.T) {
	issuer := newFakeIssuer()
	d := newFakeDrive(issuer)

	err := Blank(d, BlankFast)
	require.NoError(t, err)
	assert.Contains(t, issuer.calls, byte(opBlank))
}

func TestBlankRejectsNonMMCRole(t *testing.T) {
	d := newFakeDrive(newFakeIssuer())
	d.Role = 0

	err := Blank(d, BlankAll)
	assert.Error(t, err)
}
