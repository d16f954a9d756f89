package order

import (
	"time"
)

// StageStatus is the per-(order, stage) lifecycle record. Exactly one exists
// for every StageKind of the pipeline, owned by its parent Order; it is
// never shared across orders or referenced independently.
//
// Timestamps satisfy claimedAt <= startedAt <= completedAt whenever present
// and are set exactly once; only rework clears them. exceptionReason is set
// while the stage is (or was most recently) in Exception.
type StageStatus struct {
	stage              StageKind
	state              StageState
	assignee           string
	claimedAt          *time.Time
	startedAt          *time.Time
	completedAt        *time.Time
	serviceTimeMinutes *int64
	notes              string
	exceptionReason    string
	supervisorNotes    string
	approvedBy         string
	updatedAt          time.Time
}

// newStageStatus seeds a Pending status for one pipeline stage.
// Only the Order constructor creates stage statuses.
func newStageStatus(stage StageKind, now time.Time) *StageStatus {
	return &StageStatus{
		stage:     stage,
		state:     Pending,
		updatedAt: now,
	}
}

// RestoreStageStatus reconstructs a StageStatus from persistence. The stage
// kind and state must be valid; the remaining fields are trusted as stored.
func RestoreStageStatus(
	stage StageKind,
	state StageState,
	assignee string,
	claimedAt, startedAt, completedAt *time.Time,
	serviceTimeMinutes *int64,
	notes, exceptionReason, supervisorNotes, approvedBy string,
	updatedAt time.Time,
) (*StageStatus, error) {
	if err := stage.Validate(); err != nil {
		return nil, err
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}

	return &StageStatus{
		stage:              stage,
		state:              state,
		assignee:           assignee,
		claimedAt:          claimedAt,
		startedAt:          startedAt,
		completedAt:        completedAt,
		serviceTimeMinutes: serviceTimeMinutes,
		notes:              notes,
		exceptionReason:    exceptionReason,
		supervisorNotes:    supervisorNotes,
		approvedBy:         approvedBy,
		updatedAt:          updatedAt,
	}, nil
}

// Stage returns the pipeline stage this status belongs to.
func (s *StageStatus) Stage() StageKind {
	return s.stage
}

// State returns the current lifecycle state.
func (s *StageStatus) State() StageState {
	return s.state
}

// Assignee returns the worker owning the stage, empty when unclaimed.
func (s *StageStatus) Assignee() string {
	return s.assignee
}

// ClaimedAt returns when the stage was claimed, nil when unclaimed.
func (s *StageStatus) ClaimedAt() *time.Time {
	return s.claimedAt
}

// StartedAt returns when work on the stage began, nil when unclaimed.
func (s *StageStatus) StartedAt() *time.Time {
	return s.startedAt
}

// CompletedAt returns when the stage was completed, nil while open.
func (s *StageStatus) CompletedAt() *time.Time {
	return s.completedAt
}

// ServiceTimeMinutes returns the duration recorded at completion, nil while open.
func (s *StageStatus) ServiceTimeMinutes() *int64 {
	return s.serviceTimeMinutes
}

// Notes returns the worker's free-text notes.
func (s *StageStatus) Notes() string {
	return s.notes
}

// ExceptionReason returns the reported problem, empty unless the stage is
// or was most recently in Exception.
func (s *StageStatus) ExceptionReason() string {
	return s.exceptionReason
}

// SupervisorNotes returns the supervisor's notes from a skip or rework decision.
func (s *StageStatus) SupervisorNotes() string {
	return s.supervisorNotes
}

// ApprovedBy returns the supervisor who acted on the stage.
func (s *StageStatus) ApprovedBy() string {
	return s.approvedBy
}

// UpdatedAt returns the time of the last mutation.
func (s *StageStatus) UpdatedAt() time.Time {
	return s.updatedAt
}

// The mutators below are only called by the Order aggregate after it has
// validated every precondition, so they apply unconditionally.

func (s *StageStatus) applyClaim(assignee string, now time.Time) {
	s.state = Claimed
	s.assignee = assignee
	s.claimedAt = &now
	s.startedAt = &now
	s.updatedAt = now
}

func (s *StageStatus) applyComplete(serviceTimeMinutes int64, notes string, now time.Time) {
	s.state = Completed
	s.completedAt = &now
	s.serviceTimeMinutes = &serviceTimeMinutes
	if notes != "" {
		s.notes = notes
	}
	s.updatedAt = now
}

func (s *StageStatus) applyFlag(exceptionReason, notes string, now time.Time) {
	s.state = Exception
	s.exceptionReason = exceptionReason
	if notes != "" {
		s.notes = notes
	}
	s.updatedAt = now
}

func (s *StageStatus) applySkip(supervisor, supervisorNotes string, now time.Time) {
	s.state = Skipped
	s.approvedBy = supervisor
	s.supervisorNotes = supervisorNotes
	s.updatedAt = now
}

func (s *StageStatus) applyRework(supervisor, supervisorNotes string, now time.Time) {
	s.state = Pending
	s.assignee = ""
	s.claimedAt = nil
	s.startedAt = nil
	s.completedAt = nil
	s.serviceTimeMinutes = nil
	s.approvedBy = supervisor
	s.supervisorNotes = supervisorNotes
	s.updatedAt = now
}
