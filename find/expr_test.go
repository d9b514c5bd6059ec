package find

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeEvaluator struct {
	results map[*Test]TestResult
}

func (e *fakeEvaluator) EvalTest(t *Test) TestResult {
	return e.results[t]
}

func leaf() (*Node, *Test) {
	test := &Test{Type: TestTrueFalse}
	return &Node{Op: OpLeaf, Test: test}, test
}

func TestEvalNilNodeMatches(t *testing.T) {
	var n *Node
	assert.Equal(t, Match, n.Eval(&fakeEvaluator{}))
}

func TestEvalLeafDelegatesToEvaluator(t *testing.T) {
	node, test := leaf()
	ev := &fakeEvaluator{results: map[*Test]TestResult{test: ImmediateYes}}
	assert.Equal(t, ImmediateYes, node.Eval(ev))
}

func TestEvalAndShortCircuitsOnNoMatch(t *testing.T) {
	leftNode, leftTest := leaf()
	rightNode, rightTest := leaf()
	ev := &fakeEvaluator{results: map[*Test]TestResult{
		leftTest:  NoMatch,
		rightTest: Match,
	}}
	n := &Node{Op: OpAnd, Left: leftNode, Right: rightNode}
	assert.Equal(t, NoMatch, n.Eval(ev))
}

func TestEvalAndEvaluatesRightWhenLeftMatches(t *testing.T) {
	leftNode, leftTest := leaf()
	rightNode, rightTest := leaf()
	ev := &fakeEvaluator{results: map[*Test]TestResult{
		leftTest:  Match,
		rightTest: NoMatch,
	}}
	n := &Node{Op: OpAnd, Left: leftNode, Right: rightNode}
	assert.Equal(t, NoMatch, n.Eval(ev))
}

func TestEvalOrShortCircuitsOnMatch(t *testing.T) {
	leftNode, leftTest := leaf()
	rightNode, rightTest := leaf()
	ev := &fakeEvaluator{results: map[*Test]TestResult{
		leftTest:  ImmediateYes,
		rightTest: NoMatch,
	}}
	n := &Node{Op: OpOr, Left: leftNode, Right: rightNode}
	assert.Equal(t, ImmediateYes, n.Eval(ev))
}

func TestEvalOrEvaluatesRightWhenLeftFails(t *testing.T) {
	leftNode, leftTest := leaf()
	rightNode, rightTest := leaf()
	ev := &fakeEvaluator{results: map[*Test]TestResult{
		leftTest:  NoMatch,
		rightTest: Match,
	}}
	n := &Node{Op: OpOr, Left: leftNode, Right: rightNode}
	assert.Equal(t, Match, n.Eval(ev))
}

func TestEvalNotInvertsMatchAndImmediateYes(t *testing.T) {
	matchNode, matchTest := leaf()
	ev := &fakeEvaluator{results: map[*Test]TestResult{matchTest: Match}}
	n := &Node{Op: OpNot, Left: matchNode}
	assert.Equal(t, NoMatch, n.Eval(ev))

	ev.results[matchTest] = ImmediateYes
	assert.Equal(t, NoMatch, n.Eval(ev))

	ev.results[matchTest] = NoMatch
	assert.Equal(t, Match, n.Eval(ev))
}

func TestEvalSubDelegatesToSubExpression(t *testing.T) {
	inner, innerTest := leaf()
	ev := &fakeEvaluator{results: map[*Test]TestResult{innerTest: Match}}
	n := &Node{Op: OpSub, Sub: inner}
	assert.Equal(t, Match, n.Eval(ev))
}

func TestEvalIfThenElsePicksBranchByCondition(t *testing.T) {
	cond, condTest := leaf()
	thenNode, thenTest := leaf()
	elseNode, elseTest := leaf()

	ev := &fakeEvaluator{results: map[*Test]TestResult{
		condTest: Match,
		thenTest: ImmediateYes,
		elseTest: NoMatch,
	}}
	n := &Node{Op: OpIfThenElse, TrueBranch: cond, Left: thenNode, Right: elseNode}
	assert.Equal(t, ImmediateYes, n.Eval(ev))

	ev.results[condTest] = NoMatch
	assert.Equal(t, NoMatch, n.Eval(ev))
}
