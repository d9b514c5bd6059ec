package treeio

import (
	"os"
	"path"
	"sort"
	"strings"
	"time"

	burnerrors "github.com/burnshell/burn/errors"
)

// fakeNode is one entry in an in-memory tree used only by tests; it is
// not a real ECMA-119/Rock Ridge implementation (spec.md Non-goals).
type fakeNode struct {
	stat    Stat
	xattrs  map[string][]byte
	acl     []ACLEntry
	filter  string
	content []byte
}

// FakeTree is an in-memory Tree for exercising dispatch/find logic without
// a real ISO image. Paths are absolute, "/"-separated.
type FakeTree struct {
	nodes map[string]*fakeNode
}

var _ Tree = (*FakeTree)(nil)

// NewFakeTree returns an empty tree containing only the root directory.
func NewFakeTree() *FakeTree {
	t := &FakeTree{nodes: map[string]*fakeNode{}}
	t.nodes["/"] = &fakeNode{stat: Stat{Path: "/", IsDir: true, ModTime: time.Time{}}}
	return t
}

func clean(p string) string {
	if p == "" {
		return "/"
	}
	c := path.Clean("/" + p)
	return c
}

func (t *FakeTree) Lstat(p string) (Stat, burnerrors.DriverError) {
	n, ok := t.nodes[clean(p)]
	if !ok {
		return Stat{}, burnerrors.ErrNotFound
	}
	return n.stat, nil
}

func (t *FakeTree) Mkdir(p string, mode os.FileMode) burnerrors.DriverError {
	p = clean(p)
	if _, exists := t.nodes[p]; exists {
		return burnerrors.ErrExists
	}
	parent := path.Dir(p)
	if _, ok := t.nodes[parent]; !ok {
		return burnerrors.ErrNotFound.WithMessage("parent directory missing: " + parent)
	}
	t.nodes[p] = &fakeNode{stat: Stat{Path: p, IsDir: true, Mode: mode, ModTime: time.Time{}}}
	return nil
}

func (t *FakeTree) Symlink(target, p string) burnerrors.DriverError {
	p = clean(p)
	if _, exists := t.nodes[p]; exists {
		return burnerrors.ErrExists
	}
	t.nodes[p] = &fakeNode{stat: Stat{Path: p, IsLink: true, LinkTarget: target}}
	return nil
}

func (t *FakeTree) Rename(oldPath, newPath string) burnerrors.DriverError {
	oldPath, newPath = clean(oldPath), clean(newPath)
	n, ok := t.nodes[oldPath]
	if !ok {
		return burnerrors.ErrNotFound
	}
	delete(t.nodes, oldPath)
	n.stat.Path = newPath
	t.nodes[newPath] = n
	return nil
}

func (t *FakeTree) Unlink(p string) burnerrors.DriverError {
	p = clean(p)
	if _, ok := t.nodes[p]; !ok {
		return burnerrors.ErrNotFound
	}
	delete(t.nodes, p)
	return nil
}

func (t *FakeTree) WalkDirectory(p string, fn func(Stat) error) burnerrors.DriverError {
	p = clean(p)
	prefix := p
	if prefix != "/" {
		prefix += "/"
	} else {
		prefix = "/"
	}

	var paths []string
	for candidate := range t.nodes {
		if candidate == p {
			continue
		}
		if strings.HasPrefix(candidate, prefix) {
			paths = append(paths, candidate)
		}
	}
	sort.Strings(paths)

	for _, candidate := range paths {
		if err := fn(t.nodes[candidate].stat); err != nil {
			return burnerrors.ErrNotSupported.Wrap(err)
		}
	}
	return nil
}

func (t *FakeTree) AddFileFromDisk(pathspec, isoPath string) burnerrors.DriverError {
	data, err := os.ReadFile(pathspec)
	if err != nil {
		return burnerrors.ErrNotFound.Wrap(err)
	}
	isoPath = clean(isoPath)
	t.nodes[isoPath] = &fakeNode{
		stat:    Stat{Path: isoPath, Size: int64(len(data)), ModTime: time.Now()},
		content: data,
	}
	return nil
}

func (t *FakeTree) SetACL(p string, entries []ACLEntry) burnerrors.DriverError {
	n, ok := t.nodes[clean(p)]
	if !ok {
		return burnerrors.ErrNotFound
	}
	n.acl = entries
	return nil
}

func (t *FakeTree) GetACL(p string) ([]ACLEntry, burnerrors.DriverError) {
	n, ok := t.nodes[clean(p)]
	if !ok {
		return nil, burnerrors.ErrNotFound
	}
	return n.acl, nil
}

func (t *FakeTree) SetXattr(p, namespace, name string, value []byte) burnerrors.DriverError {
	n, ok := t.nodes[clean(p)]
	if !ok {
		return burnerrors.ErrNotFound
	}
	if n.xattrs == nil {
		n.xattrs = map[string][]byte{}
	}
	n.xattrs[namespace+"."+name] = value
	return nil
}

func (t *FakeTree) GetXattr(p, namespace, name string) ([]byte, burnerrors.DriverError) {
	n, ok := t.nodes[clean(p)]
	if !ok {
		return nil, burnerrors.ErrNotFound
	}
	v, ok := n.xattrs[namespace+"."+name]
	if !ok {
		return nil, burnerrors.ErrNotFound
	}
	return v, nil
}

func (t *FakeTree) SetFilter(p, filterName string) burnerrors.DriverError {
	n, ok := t.nodes[clean(p)]
	if !ok {
		return burnerrors.ErrNotFound
	}
	n.filter = filterName
	return nil
}

func (t *FakeTree) CloneSubtree(srcPath, dstPath string) burnerrors.DriverError {
	srcPath = clean(srcPath)
	prefix := srcPath
	if prefix != "/" {
		prefix += "/"
	}
	if _, ok := t.nodes[srcPath]; !ok {
		return burnerrors.ErrNotFound
	}
	dstPath = clean(dstPath)
	for candidate, n := range t.nodes {
		if candidate != srcPath && !strings.HasPrefix(candidate, prefix) {
			continue
		}
		rel := strings.TrimPrefix(candidate, srcPath)
		clone := *n
		clone.stat.Path = dstPath + rel
		t.nodes[dstPath+rel] = &clone
	}
	return nil
}

func (t *FakeTree) LoadSession(driveAddress string, sessionID int) burnerrors.DriverError {
	return burnerrors.ErrNotImplemented
}

func (t *FakeTree) WriteSession(driveAddress string, options SessionWriteOptions) burnerrors.DriverError {
	return burnerrors.ErrNotImplemented
}
