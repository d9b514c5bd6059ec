package mmc

import (
	"github.com/burnshell/burn/media"
	"github.com/burnshell/burn/transport"
)

// fakeIssuer answers every IssueCommand by handing a canned reply back to
// the caller, indexed by opcode; it exists purely to drive the mmc package's
// CDB-building and reply-parsing logic without a real drive, mirroring the
// teacher's own in-memory fake backends for its file-system tests.
type fakeIssuer struct {
	replies map[byte][]byte
	fail    map[byte]bool
	// unitAttention, when set for an opcode, makes IssueCommand report a
	// UNIT ATTENTION (sense key 0x06) failure instead of fail's invalid-
	// opcode (0x05) one.
	unitAttention map[byte]bool
	calls         []byte
}

func newFakeIssuer() *fakeIssuer {
	return &fakeIssuer{replies: map[byte][]byte{}, fail: map[byte]bool{}, unitAttention: map[byte]bool{}}
}

func (f *fakeIssuer) IssueCommand(cmd *transport.CommandDescriptor) error {
	op := cmd.CDB[0]
	f.calls = append(f.calls, op)
	if f.unitAttention[op] {
		cmd.ErrorFlag = true
		cmd.Sense[2] = 0x06
		cmd.Sense[12] = 0x28
		cmd.Sense[13] = 0x00
		return nil
	}
	if f.fail[op] {
		cmd.ErrorFlag = true
		cmd.Sense[2] = 0x05
		cmd.Sense[12] = 0x20
		cmd.Sense[13] = 0x00
		return nil
	}
	reply := f.replies[op]
	if cmd.Buf != nil {
		n := len(reply)
		if n > cmd.Buf.Capacity() {
			n = cmd.Buf.Capacity()
		}
		copy(cmd.Buf.Bytes(), reply[:n])
		cmd.Buf.SetUsed(n)
	}
	return nil
}

func newFakeDrive(issuer *fakeIssuer) *media.Drive {
	return media.NewMMCDrive("/dev/fake", issuer)
}
