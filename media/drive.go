package media

import (
	"sync"

	burn "github.com/burnshell/burn"
	burnerrors "github.com/burnshell/burn/errors"
	"github.com/burnshell/burn/transport"
)

// Status is the normalized media status derived from READ DISC INFORMATION
// (§3.3, §4.2).
type Status int

const (
	StatusUnready Status = iota
	StatusEmpty
	StatusBlank
	StatusAppendable
	StatusFull
	StatusUnsuitable
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "Empty"
	case StatusBlank:
		return "Blank"
	case StatusAppendable:
		return "Appendable"
	case StatusFull:
		return "Full"
	case StatusUnsuitable:
		return "Unsuitable"
	default:
		return "Unready"
	}
}

// TOCEntry is one row of a fabricated or real table of contents (§3.3).
type TOCEntry struct {
	Session   int
	Track     int
	Point     byte // 0xA2 marks a synthesized/real leadout entry
	StartLBA  int64
	SizeLBA   int64
}

// FormatDescriptor is one entry of the ≤32-entry format descriptor list
// returned by FORMAT UNIT's "read format capacities" probe (§3.3).
type FormatDescriptor struct {
	Type      byte
	SizeBytes uint32
	Param     uint32
}

// FeatureCache holds the GET CONFIGURATION (0x46) results that other
// commands consult instead of re-probing (§3.3, §4.3).
type FeatureCache struct {
	Has21h        bool // incremental streaming writable (link size feature)
	LinkSize      int
	Has23h        bool
	BDFormatCaps  byte
	Has2Fh        bool
	WriteCaps2F   byte
	BUFE          bool
	PhysIfStd     int
	PhysIfName    string
	AllProfiles   [256]bool
	ProfileGuessed bool
}

// WritePacing holds the buffer-accounting state C5 reads and mutates on
// every WRITE (§3.3, §4.5).
type WritePacing struct {
	PessimisticBufferFree int64
	PBFAltered            bool
	BufferCapacity        int64
	BufferAvailable       int64
	NominalWriteSpeedKBps int64

	WaitForBufferFree bool
	MinPercent        float64
	MaxPercent        float64
	WFBMinUsec        int64
	WFBMaxUsec        int64
	WFBTimeoutSec     int64

	PessimisticWrites int64
	WaitedWrites      int64
	WaitedTries       int64
	WaitedUsec        int64
}

// NextTrackDamage carries the two informal bits from §3.3/§9 Open Question
// 2: whether the next writable track is flagged damaged, and whether its
// NWA is valid. The MMC layer only records these; the interpreter decides
// what, if anything, to warn about.
type NextTrackDamage struct {
	Damaged  bool
	NWAValid bool
}

// Drive is the per-session aggregate described by §3.3. Most fields are
// lazily populated by Acquire and the discovery commands in package mmc.
type Drive struct {
	mu sync.Mutex

	Address string
	Role    transport.Role
	Issuer  transport.Issuer
	Stdio   *transport.StdioStream

	ProfileCode  uint16
	ProfileName  string
	ProfileGuess bool

	Status           Status
	Erasable         bool
	LastLeadinLBA    int64
	LastLeadoutLBA   int64
	MediaCapacity    int64
	ReadCapacity     int64
	StateOfLastSess  int

	CompleteSessions   int
	IncompleteSessions int
	LastTrackNo        int
	TOC                []TOCEntry

	Features FeatureCache

	FormatDescriptors []FormatDescriptor

	Pacing WritePacing

	WaitForBufferFree   bool
	DoStreamRecording   bool
	StreamRecordingStart int64
	NeedsCloseSession   bool
	NeedsSyncCache      bool
	SilentOnSCSIError   bool
	HadParticularError  uint32
	Cancel              bool

	MediaLBALimit int64
	DiscID        string
	BarCode       string
	AppCode       string
	DiscInfoValid uint32

	NextTrackDamage NextTrackDamage
}

// NewNullDrive returns a Drive with RoleNull: every operation that reaches
// the transport layer fails immediately, per the invariant in §3.3.
func NewNullDrive() *Drive {
	return &Drive{Role: transport.RoleNull, Issuer: transport.NullIssuer{}}
}

// NewMMCDrive wraps issuer (already made safe for one-CDB-in-flight use) as
// an MMC optical drive at address addr.
func NewMMCDrive(addr string, issuer transport.Issuer) *Drive {
	return &Drive{Address: addr, Role: transport.RoleMMCOptical, Issuer: issuer}
}

// NewStdioDrive wraps a stdio stream of the given role.
func NewStdioDrive(addr string, stdio *transport.StdioStream) *Drive {
	return &Drive{Address: addr, Role: stdio.Role, Stdio: stdio}
}

// Lock serializes all command issuance on this drive (§5 "Ordering": SCSI
// commands are strictly serialized by a mutex on the drive handle).
func (d *Drive) Lock()   { d.mu.Lock() }
func (d *Drive) Unlock() { d.mu.Unlock() }

// CheckWriteLBA enforces the media_lba_limit invariant from §3.3: a write
// starting at or beyond the limit fails with FATAL and must not dispatch a
// CDB.
func (d *Drive) CheckWriteLBA(startLBA int64, tracker *burn.ProblemTracker) burnerrors.DriverError {
	if d.MediaLBALimit > 0 && startLBA >= d.MediaLBALimit {
		if tracker != nil {
			tracker.Raise(burn.Event{
				Severity: burn.FATAL,
				Code:     "WRITE",
				Message:  "start LBA at or beyond media_lba_limit",
			})
		}
		d.Cancel = true
		return burnerrors.ErrMediaLBALimitExceeded
	}
	return nil
}

// MarkWritten updates the pessimistic buffer-free accounting after a
// successful write of n bytes (§3.3 invariant, §8 property 3).
func (d *Drive) MarkWritten(n int64) {
	d.Pacing.PessimisticBufferFree -= n
	d.Pacing.PBFAltered = true
}

// RefreshBufferFree resets the pessimistic estimate from a READ BUFFER
// CAPACITY reply (§4.3, §4.5).
func (d *Drive) RefreshBufferFree(capacity, available int64) {
	d.Pacing.BufferCapacity = capacity
	d.Pacing.BufferAvailable = available
	d.Pacing.PessimisticBufferFree = available
	d.Pacing.PBFAltered = false
}

// PretendFull overrides the drive's status to Full, used by "blank
// force:*" (§4.2).
func (d *Drive) PretendFull() {
	d.Status = StatusFull
}

// Release drops drive state. If eject is true the caller is expected to
// have already issued the eject command; this only clears local state.
func (d *Drive) Release(eject bool) {
	*d = Drive{Role: transport.RoleNull, Issuer: transport.NullIssuer{}}
}
