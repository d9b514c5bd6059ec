package find

import (
	"testing"

	burnerrors "github.com/burnshell/burn/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nameLookup(name string, args []string) (*Test, int, burnerrors.DriverError) {
	switch name {
	case "-name", "-type":
		if len(args) == 0 {
			return nil, 0, burnerrors.ErrInvalidArgument.WithMessage("missing argument")
		}
		return &Test{Type: TestName, Arg1: args[0]}, 1, nil
	case "-true":
		return &Test{Type: TestTrueFalse}, 0, nil
	default:
		return nil, 0, burnerrors.ErrInvalidArgument.WithMessage("unknown test " + name)
	}
}

func TestParserParsesSingleLeaf(t *testing.T) {
	p := NewParser([]string{"-name", "foo"}, nameLookup)
	n, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, OpLeaf, n.Op)
	assert.Equal(t, "foo", n.Test.Arg1)
}

func TestParserJuxtapositionIsImplicitAnd(t *testing.T) {
	p := NewParser([]string{"-true", "-true"}, nameLookup)
	n, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, OpAnd, n.Op)
}

func TestParserExplicitAnd(t *testing.T) {
	p := NewParser([]string{"-true", "-and", "-true"}, nameLookup)
	n, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, OpAnd, n.Op)
}

func TestParserOrHasLowerPrecedenceThanAnd(t *testing.T) {
	p := NewParser([]string{"-true", "-true", "-or", "-true"}, nameLookup)
	n, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, OpOr, n.Op)
	assert.Equal(t, OpAnd, n.Left.Op)
	assert.Equal(t, OpLeaf, n.Right.Op)
}

func TestParserNot(t *testing.T) {
	p := NewParser([]string{"-not", "-true"}, nameLookup)
	n, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, OpNot, n.Op)
	assert.Equal(t, OpLeaf, n.Left.Op)
}

func TestParserSubExpression(t *testing.T) {
	p := NewParser([]string{"-sub", "-true", "-or", "-true", "-subend"}, nameLookup)
	n, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, OpSub, n.Op)
	assert.Equal(t, OpOr, n.Sub.Op)
}

func TestParserParenthesesAsSubAlias(t *testing.T) {
	p := NewParser([]string{"(", "-true", ")"}, nameLookup)
	n, err := p.Parse()
	require.NoError(t, err)
	assert.Equal(t, OpSub, n.Op)
}

func TestParserUnbalancedSubErrors(t *testing.T) {
	p := NewParser([]string{"-sub", "-true"}, nameLookup)
	_, err := p.Parse()
	assert.Error(t, err)
}

func TestParserTrailingTokensError(t *testing.T) {
	p := NewParser([]string{"-true", "-subend"}, nameLookup)
	_, err := p.Parse()
	assert.Error(t, err)
}

func TestParserEmptyInputErrors(t *testing.T) {
	p := NewParser(nil, nameLookup)
	_, err := p.Parse()
	assert.Error(t, err)
}

func TestParserPropagatesLookupError(t *testing.T) {
	p := NewParser([]string{"-name"}, nameLookup)
	_, err := p.Parse()
	assert.Error(t, err)
}

func TestParserIfThenEndif(t *testing.T) {
	p := NewParser([]string{"-if", "-true", "-then", "-name", "a", "-endif"}, nameLookup)
	n, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, OpIfThenElse, n.Op)
	assert.Equal(t, OpLeaf, n.TrueBranch.Op)
	require.Equal(t, OpLeaf, n.Left.Op)
	assert.Equal(t, "a", n.Left.Test.Arg1)
	assert.Nil(t, n.Right)
}

func TestParserIfThenElseEndif(t *testing.T) {
	p := NewParser(
		[]string{"-if", "-true", "-then", "-name", "a", "-else", "-name", "b", "-endif"},
		nameLookup,
	)
	n, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, OpIfThenElse, n.Op)
	require.Equal(t, OpLeaf, n.Right.Op)
	assert.Equal(t, "b", n.Right.Test.Arg1)
}

func TestParserIfElseifElseEndif(t *testing.T) {
	p := NewParser(
		[]string{
			"-if", "-true", "-then", "-name", "a",
			"-elseif", "-true", "-then", "-name", "b",
			"-else", "-name", "c",
			"-endif",
		},
		nameLookup,
	)
	n, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, OpIfThenElse, n.Op)
	assert.Equal(t, "a", n.Left.Test.Arg1)

	inner := n.Right
	require.NotNil(t, inner)
	require.Equal(t, OpIfThenElse, inner.Op)
	assert.Equal(t, "b", inner.Left.Test.Arg1)
	require.Equal(t, OpLeaf, inner.Right.Op)
	assert.Equal(t, "c", inner.Right.Test.Arg1)
}

func TestParserIfMissingThenErrors(t *testing.T) {
	p := NewParser([]string{"-if", "-true", "-name", "a", "-endif"}, nameLookup)
	_, err := p.Parse()
	assert.Error(t, err)
}

func TestParserIfMissingEndifErrors(t *testing.T) {
	p := NewParser([]string{"-if", "-true", "-then", "-name", "a"}, nameLookup)
	_, err := p.Parse()
	assert.Error(t, err)
}

func TestParserIfComposesWithSurroundingAnd(t *testing.T) {
	p := NewParser(
		[]string{"-true", "-and", "-if", "-true", "-then", "-name", "a", "-endif"},
		nameLookup,
	)
	n, err := p.Parse()
	require.NoError(t, err)
	require.Equal(t, OpAnd, n.Op)
	assert.Equal(t, OpIfThenElse, n.Right.Op)
}
