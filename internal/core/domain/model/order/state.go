package order

import (
	"fmt"

	"workflow/internal/pkg/errs"
)

// StageState represents the lifecycle state of a single stage on an order.
// It implements a state machine with defined transitions so stages follow
// the correct workflow.
//
// State transitions:
//
//	Pending ──claim──> Claimed ──complete──> Completed ──rework──> Pending
//	                      │
//	                     flag
//	                      │
//	                      v
//	                  Exception ──skip──> Skipped
//
// Skipped is terminal. Completed is terminal unless a supervisor requests
// rework. StageState is a value object: transition methods return the new
// state without side effects, and the caller applies it.
type StageState int

const (
	// UnknownState represents an invalid or undefined state.
	// This value (0) helps catch uninitialized StageState values.
	UnknownState StageState = iota

	// Pending is the initial state: the stage is reachable work waiting
	// to be claimed (or reopened by rework).
	Pending

	// Claimed means a worker owns the stage and is working on it.
	Claimed

	// Completed means the stage finished successfully. Terminal unless
	// rework is requested.
	Completed

	// Exception means the stage is blocked by a reported problem and
	// needs supervisor resolution.
	Exception

	// Skipped is a supervisor-approved terminal bypass of an exceptional
	// stage. No further transitions are possible.
	Skipped
)

func getStageStateStrings() map[StageState]string {
	return map[StageState]string{
		UnknownState: "UNKNOWN",
		Pending:      "PENDING",
		Claimed:      "CLAIMED",
		Completed:    "COMPLETED",
		Exception:    "EXCEPTION",
		Skipped:      "SKIPPED",
	}
}

func getValidStageStateStrings() map[StageState]string {
	//nolint:exhaustive // UnknownState is intentionally excluded as it's invalid
	return map[StageState]string{
		Pending:   "PENDING",
		Claimed:   "CLAIMED",
		Completed: "COMPLETED",
		Exception: "EXCEPTION",
		Skipped:   "SKIPPED",
	}
}

// ParseStageState converts a wire name to a StageState. Returns
// ValueIsInvalidError for any input that is not a valid state name.
func ParseStageState(s string) (StageState, error) {
	for state, name := range getValidStageStateStrings() {
		if name == s {
			return state, nil
		}
	}
	return UnknownState, errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%q is not a stage state", s))
}

// Validate checks if the StageState value is valid. UnknownState and any
// other values are invalid. Used when reconstructing states from external
// sources such as the database.
func (s StageState) Validate() error {
	if _, ok := getValidStageStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid stage state", s))
	}
	return nil
}

// String returns the wire name of the state. Implements fmt.Stringer and is
// safe on any value, including invalid ones.
func (s StageState) String() string {
	if str, ok := getStageStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the stage no longer blocks pipeline progress.
// Completed counts as terminal even though rework can reopen it later.
func (s StageState) IsTerminal() bool {
	return s == Completed || s == Skipped
}

// Claim transitions Pending -> Claimed.
//
// Returns (Claimed, nil) on a valid transition and (0, InvalidTransitionError)
// from any other source state.
func (s StageState) Claim() (StageState, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionErrorWithCause(
			"claim",
			fmt.Errorf("stage is %s, only %s stages can be claimed", s, Pending),
		)
	}
	return Claimed, nil
}

// Complete transitions Claimed -> Completed.
func (s StageState) Complete() (StageState, error) {
	if s != Claimed {
		return 0, errs.NewInvalidTransitionErrorWithCause(
			"complete",
			fmt.Errorf("stage is %s, only %s stages can be completed", s, Claimed),
		)
	}
	return Completed, nil
}

// Flag transitions Claimed -> Exception.
func (s StageState) Flag() (StageState, error) {
	if s != Claimed {
		return 0, errs.NewInvalidTransitionErrorWithCause(
			"flagException",
			fmt.Errorf("stage is %s, only %s stages can be flagged", s, Claimed),
		)
	}
	return Exception, nil
}

// Skip transitions Exception -> Skipped.
func (s StageState) Skip() (StageState, error) {
	if s != Exception {
		return 0, errs.NewInvalidTransitionErrorWithCause(
			"approveSkip",
			fmt.Errorf("stage is %s, only %s stages can be skipped", s, Exception),
		)
	}
	return Skipped, nil
}

// Rework transitions Completed -> Pending, reopening finished work.
func (s StageState) Rework() (StageState, error) {
	if s != Completed {
		return 0, errs.NewInvalidTransitionErrorWithCause(
			"requestRework",
			fmt.Errorf("stage is %s, only %s stages can be reworked", s, Completed),
		)
	}
	return Pending, nil
}
