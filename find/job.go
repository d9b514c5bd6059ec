package find

import (
	"time"

	burnerrors "github.com/burnshell/burn/errors"
	"github.com/hashicorp/go-multierror"
)

// Action is the numeric action code from §4.8's table.
type Action int

const (
	ActionEcho Action = iota
	ActionRm
	ActionRmR
	_
	ActionChown
	ActionChgrp
	ActionChmod
	ActionAlterDate
	ActionLsdl
	ActionChownR
	ActionChgrpR
	ActionChmodR
	ActionAlterDateR
	ActionFind
	ActionCompare
	ActionInISO
	ActionNotInISO
	ActionUpdate
	ActionAddMissing
	ActionEmptyISODir
	ActionIsFullInISO
	ActionReportDamage
	ActionReportLBA
	ActionFoundPath
	ActionGetfacl
	ActionSetfacl
	ActionGetfattr
	ActionSetfattr
	ActionSetFilter
	ActionShowStream
	_
	_
	ActionWidenHardlinks
	ActionGetAnyXattr
	ActionGetMD5
	ActionCheckMD5
	ActionMakeMD5
	ActionMkisofsR
	ActionSortWeight
	ActionHide
	ActionEstimateSize
	ActionUpdateMerge
	ActionRmMerge
	ActionClearMerge
	ActionListExtattr
	ActionSetHFSCrtp
	ActionGetHFSCrtp
	ActionSetHFSBless
	ActionGetHFSBless
)

// ActionParams carries the action's configured arguments (§3.8): target
// path, secondary text, uid/gid, mode_and/mode_or, a file-type filter, and
// a date, reused across the action codes that need them.
type ActionParams struct {
	Target string
	Text2  string
	UID    int
	GID    int
	ModeAnd uint32
	ModeOr  uint32
	Type    byte
	Date    time.Time
}

// TreeNode is the narrow per-node contract FindJob needs from the external
// tree collaborator (§6.4) to drive traversal and actions; callers supply
// a concrete implementation.
type TreeNode interface {
	Path() string
	IsDir() bool
	Children() ([]TreeNode, error)
}

// ActionFunc performs one action against a matched node; registered per
// Action code by the caller since the actual filesystem/tree operations
// live outside this package (§6.4).
type ActionFunc func(node TreeNode, params ActionParams) burnerrors.DriverError

// FindJob is the root of one find invocation (§3.8).
type FindJob struct {
	Root   *Node
	Action Action
	Params ActionParams
	Prune  bool

	MatchCount      int64
	EstimLowerSize  int64
	EstimUpperSize  int64

	Handlers map[Action]ActionFunc

	Subjob *FindJob // for the recursive "-exec find ..." action (13)

	Err error // aggregated via go-multierror as traversal proceeds
}

// nodeEvaluator adapts a TreeNode plus its damage/ACL/xattr lookups (all
// supplied by the caller via closures stored on the job) to the Evaluator
// interface Node.Eval needs; kept here rather than exported since the
// concrete test semantics are entirely caller-supplied.
type nodeEvaluator struct {
	node    TreeNode
	testFn  func(node TreeNode, t *Test) TestResult
	pruned  bool
}

func (e *nodeEvaluator) EvalTest(t *Test) TestResult {
	res := e.testFn(e.node, t)
	if t.Type == TestPrune && (res == Match || res == ImmediateNo) {
		e.pruned = true
	}
	if t.Invert {
		switch res {
		case Match:
			return NoMatch
		case NoMatch:
			return Match
		}
	}
	return res
}

// Walk depth-first traverses starting at root, evaluating j.Root against
// each node via testFn and invoking the registered action on a match
// (§4.8: "the driver traverses depth-first, applies the expression, and if
// match, invokes the action"). Per-node action errors are aggregated with
// go-multierror rather than aborting the whole traversal, matching the
// tolerant behavior -abort_on selects for WARNING-and-below events.
func (j *FindJob) Walk(root TreeNode, testFn func(node TreeNode, t *Test) TestResult) {
	var errs *multierror.Error
	j.walk(root, testFn, &errs)
	if errs != nil {
		j.Err = errs.ErrorOrNil()
	}
}

func (j *FindJob) walk(node TreeNode, testFn func(node TreeNode, t *Test) TestResult, errs **multierror.Error) {
	ev := &nodeEvaluator{node: node, testFn: testFn}
	result := j.Root.Eval(ev)

	if result == Match || result == ImmediateYes {
		j.MatchCount++
		if handler, ok := j.Handlers[j.Action]; ok {
			if err := handler(node, j.Params); err != nil {
				*errs = multierror.Append(*errs, err)
			}
		}
	}

	if ev.pruned || !node.IsDir() {
		return
	}

	children, err := node.Children()
	if err != nil {
		*errs = multierror.Append(*errs, err)
		return
	}
	for _, child := range children {
		j.walk(child, testFn, errs)
	}
}
