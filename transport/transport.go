package transport

import (
	"io"

	burnerrors "github.com/burnshell/burn/errors"
)

// Role is the closed set of drive transports this layer knows how to talk
// to (§3.3, §9 "Dynamic dispatch via function-pointer tables"). The source
// carries function pointers per drive; here each role is a distinct,
// non-extensible variant instead, and every operation in mmc/media switches
// on it explicitly.
type Role int

const (
	RoleNull                     Role = 0
	RoleMMCOptical               Role = 1
	RoleStdioReadWrite           Role = 2
	RoleStdioWriteOnly           Role = 3
	RoleStdioReadOnly            Role = 4
	RoleStdioWriteOnlySequential Role = 5
)

func (r Role) String() string {
	switch r {
	case RoleNull:
		return "null"
	case RoleMMCOptical:
		return "mmc"
	case RoleStdioReadWrite:
		return "stdio-rw"
	case RoleStdioWriteOnly:
		return "stdio-wo"
	case RoleStdioReadOnly:
		return "stdio-ro"
	case RoleStdioWriteOnlySequential:
		return "stdio-wo-seq"
	default:
		return "unknown"
	}
}

// IsStdio reports whether the role talks to a plain file/stream instead of
// issuing SCSI commands.
func (r Role) IsStdio() bool {
	return r == RoleStdioReadWrite || r == RoleStdioWriteOnly ||
		r == RoleStdioReadOnly || r == RoleStdioWriteOnlySequential
}

// Issuer issues a single CDB and blocks until the drive replies or times
// out. Implementations must serialize calls themselves: only one CDB may be
// in flight on a given Issuer at a time (§5 Ordering, §8 invariant 1).
type Issuer interface {
	IssueCommand(cmd *CommandDescriptor) error
}

// NullIssuer is the transport for RoleNull drives: every command fails
// immediately without ever reaching a backend, matching the invariant that
// role 0 never issues a CDB.
type NullIssuer struct{}

func (NullIssuer) IssueCommand(cmd *CommandDescriptor) error {
	cmd.ErrorFlag = true
	return burnerrors.ErrUnsupportedRole.WithMessage("drive role is null")
}

// SerialIssuer wraps an Issuer with a mutex so at most one CDB is in flight
// at a time, per drive, regardless of how many goroutines call
// IssueCommand (§5 "Ordering").
type SerialIssuer struct {
	backend Issuer
	mu      chan struct{}
}

// NewSerialIssuer wraps backend with the one-CDB-in-flight mutex.
func NewSerialIssuer(backend Issuer) *SerialIssuer {
	return &SerialIssuer{backend: backend, mu: make(chan struct{}, 1)}
}

func (s *SerialIssuer) IssueCommand(cmd *CommandDescriptor) error {
	s.mu <- struct{}{}
	defer func() { <-s.mu }()
	return s.backend.IssueCommand(cmd)
}

// StdioStream is the transport for the four stdio roles: a plain
// io.ReadWriteSeeker addressed in fixed-size sectors, bypassing the SCSI
// command layer entirely. It is the sector-addressed analogue of the
// teacher's drivers/common/blockstream.go BlockStream, generalized from
// "blocks of a mounted disk image" to "sectors of an optical image written
// to or read from a file".
type StdioStream struct {
	Role         Role
	SectorLength int64
	stream       io.ReadWriteSeeker
	nextWriteLBA int64
}

// NewStdioStream wraps stream for the given role and sector length. role
// must be one of the four stdio roles.
func NewStdioStream(role Role, stream io.ReadWriteSeeker, sectorLength int64) *StdioStream {
	return &StdioStream{Role: role, SectorLength: sectorLength, stream: stream}
}

// ReadAt reads count sectors starting at lba into buf, which must be at
// least count*SectorLength bytes.
func (s *StdioStream) ReadAt(lba int64, buf []byte, count int) (int, error) {
	if s.Role == RoleStdioWriteOnly || s.Role == RoleStdioWriteOnlySequential {
		return 0, burnerrors.ErrUnsupportedRole.WithMessage("stdio role is write-only")
	}
	n := int64(count) * s.SectorLength
	if int64(len(buf)) < n {
		return 0, burnerrors.ErrBufferTooSmall
	}
	_, err := s.stream.Seek(lba*s.SectorLength, io.SeekStart)
	if err != nil {
		return 0, err
	}
	return io.ReadFull(s.stream, buf[:n])
}

// WriteAt writes data (a multiple of SectorLength) at lba. For the
// sequential write-only role, writes must arrive at non-decreasing LBAs
// (§5 Ordering); out-of-order writes are rejected rather than silently
// seeking backwards.
func (s *StdioStream) WriteAt(lba int64, data []byte) (int, error) {
	if s.Role == RoleStdioReadOnly {
		return 0, burnerrors.ErrUnsupportedRole.WithMessage("stdio role is read-only")
	}
	if s.Role == RoleStdioWriteOnlySequential && lba < s.nextWriteLBA {
		return 0, burnerrors.ErrInvalidArgument.WithMessage("sequential stdio write went backwards")
	}
	_, err := s.stream.Seek(lba*s.SectorLength, io.SeekStart)
	if err != nil {
		return 0, err
	}
	n, err := s.stream.Write(data)
	if err == nil {
		written := int64(n) / s.SectorLength
		if lba+written > s.nextWriteLBA {
			s.nextWriteLBA = lba + written
		}
	}
	return n, err
}
