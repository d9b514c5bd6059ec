// Package treeio defines the narrow external-collaborator interface (§6.4)
// the dispatcher consumes from the ISO-tree module: lstat, mkdir,
// symlink, rename, unlink, directory walking, adding a file from disk,
// ACL/xattr get/set, content filters, subtree cloning, and session
// load/write. This package does not implement ECMA-119/Rock Ridge/Joliet
// tree internals (spec.md Non-goals); it only names the contract and
// ships an in-memory fake for tests.
package treeio

import (
	"os"
	"time"

	burnerrors "github.com/burnshell/burn/errors"
)

// Stat is the subset of file metadata lstat/add_file_from_disk need to
// agree on.
type Stat struct {
	Path    string
	Size    int64
	Mode    os.FileMode
	ModTime time.Time
	IsDir   bool
	IsLink  bool
	LinkTarget string
}

// ACLEntry is one POSIX ACL entry (§4.8 test type 5, actions 24/25).
type ACLEntry struct {
	Tag        string // "user", "group", "mask", "other", etc.
	Qualifier  string
	Permission string
}

// Tree is the §6.4 external-collaborator contract.
type Tree interface {
	Lstat(path string) (Stat, burnerrors.DriverError)
	Mkdir(path string, mode os.FileMode) burnerrors.DriverError
	Symlink(target, path string) burnerrors.DriverError
	Rename(oldPath, newPath string) burnerrors.DriverError
	Unlink(path string) burnerrors.DriverError
	WalkDirectory(path string, fn func(Stat) error) burnerrors.DriverError
	AddFileFromDisk(pathspec, isoPath string) burnerrors.DriverError

	SetACL(path string, entries []ACLEntry) burnerrors.DriverError
	GetACL(path string) ([]ACLEntry, burnerrors.DriverError)
	SetXattr(path, namespace, name string, value []byte) burnerrors.DriverError
	GetXattr(path, namespace, name string) ([]byte, burnerrors.DriverError)

	SetFilter(path, filterName string) burnerrors.DriverError
	CloneSubtree(srcPath, dstPath string) burnerrors.DriverError

	LoadSession(driveAddress string, sessionID int) burnerrors.DriverError
	WriteSession(driveAddress string, options SessionWriteOptions) burnerrors.DriverError
}

// SessionWriteOptions configures WriteSession; left intentionally thin —
// only the fields the dispatcher actually threads through are named.
type SessionWriteOptions struct {
	VolumeID   string
	Joliet     bool
	RockRidge  bool
	Padding    int64
}
