package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAgainstWDAbsolutePatternPassesThrough(t *testing.T) {
	resolved, err := ResolveAgainstWD("/some/wd", "/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", resolved)
}

func TestResolveAgainstWDJoinsRelativePattern(t *testing.T) {
	resolved, err := ResolveAgainstWD("/home/user", "docs/file.txt")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/docs/file.txt", resolved)
}

func TestResolveAgainstWDEmptyWDTreatsRootAsParent(t *testing.T) {
	resolved, err := ResolveAgainstWD("", "file.txt")
	require.NoError(t, err)
	assert.Equal(t, "/file.txt", resolved)
}

func TestResolveAgainstWDPopsDotDotWithinWD(t *testing.T) {
	resolved, err := ResolveAgainstWD("/a/b", "../c")
	require.NoError(t, err)
	assert.Equal(t, "/a/c", resolved)
}

func TestResolveAgainstWDRetriesWithoutWDOnUnderflow(t *testing.T) {
	resolved, err := ResolveAgainstWD("/..", "b")
	require.NoError(t, err)
	assert.Equal(t, "/b", resolved)
}

func TestResolveAgainstWDErrorsOnDoubleUnderflow(t *testing.T) {
	_, err := ResolveAgainstWD("/..", "../c")
	assert.Error(t, err)
}

func TestJoinPathRootWD(t *testing.T) {
	assert.Equal(t, "/foo", joinPath("/", "foo"))
	assert.Equal(t, "/foo", joinPath("", "foo"))
}

func TestJoinPathTrimsTrailingSlash(t *testing.T) {
	assert.Equal(t, "/a/b/foo", joinPath("/a/b/", "foo"))
}

func TestPopDotDotCollapsesDotSegments(t *testing.T) {
	resolved, ok := popDotDot("/a/./b/../c")
	assert.True(t, ok)
	assert.Equal(t, "/a/c", resolved)
}

func TestPopDotDotReportsUnderflow(t *testing.T) {
	_, ok := popDotDot("/../a")
	assert.False(t, ok)
}
