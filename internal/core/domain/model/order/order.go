package order

import (
	"errors"
	"fmt"
	"time"

	"workflow/internal/core/domain/model/kernel"
	"workflow/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

const (
	// MinPriority is the most urgent priority. Lower number means more
	// urgent; this is the queue ordering convention for the whole system.
	MinPriority = 1

	// MaxPriority is the least urgent priority.
	MaxPriority = 9

	// DefaultPriority is assigned when a caller does not specify one.
	DefaultPriority = 5

	maxOrderNumberLength = 64
	maxNotesLength       = 2000
	maxReasonLength      = 500

	// maxServiceTimeMinutes caps recorded stage durations at 24 hours.
	maxServiceTimeMinutes = int64(1440)
)

// Order is the aggregate root for one fulfillment order. It owns exactly one
// StageStatus per pipeline stage and is the unit of concurrency control:
// all mutations go through its methods, which validate the transition rules
// before touching any field.
//
// Order invariants:
//   - orderNumber is a unique business key, immutable after creation
//   - priority is within [MinPriority, MaxPriority], lower = more urgent
//   - there is exactly one StageStatus per StageKind, in pipeline order
//   - CurrentStage/OverallState are derived, never stored
//   - a failed operation leaves every field unchanged
type Order struct {
	id          kernel.UUID
	orderNumber string
	priority    int
	notes       string
	createdAt   time.Time
	updatedAt   time.Time

	// stages holds one StageStatus per pipeline stage, in pipeline order.
	stages []*StageStatus

	isConstructed bool
}

// NewOrder creates an Order with every pipeline stage seeded in Pending.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - orderNumber: unique business key, required, at most 64 characters
//   - priority: urgency within [MinPriority, MaxPriority], lower = more urgent
//   - notes: optional free text, at most 2000 characters
//
// Returns a validation error if any parameter is invalid. Uniqueness of the
// order number across orders is enforced by the repository.
func NewOrder(id kernel.UUID, orderNumber string, priority int, notes string) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setPriority(priority),
		o.setNotes(notes),
	); err != nil {
		return nil, err
	}

	for _, stage := range Pipeline() {
		o.stages = append(o.stages, newStageStatus(stage, now))
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence. The stage statuses
// must cover the pipeline exactly once each; they are re-sorted into
// pipeline order.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	priority int,
	notes string,
	createdAt, updatedAt time.Time,
	stages []*StageStatus,
) (*Order, error) {
	o := &Order{
		notes:         notes,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setPriority(priority),
	); err != nil {
		return nil, err
	}

	pipeline := Pipeline()
	if len(stages) != len(pipeline) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"stages",
			fmt.Errorf("expected %d stage statuses, got %d", len(pipeline), len(stages)),
		)
	}

	byStage := make(map[StageKind]*StageStatus, len(stages))
	for _, s := range stages {
		if _, dup := byStage[s.Stage()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"stages",
				fmt.Errorf("duplicate status for stage %s", s.Stage()),
			)
		}
		byStage[s.Stage()] = s
	}

	for _, stage := range pipeline {
		s, ok := byStage[stage]
		if !ok {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"stages",
				fmt.Errorf("missing status for stage %s", stage),
			)
		}
		o.stages = append(o.stages, s)
	}

	return o, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the immutable business key.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// Priority returns the order urgency. Lower number means more urgent.
func (o *Order) Priority() int {
	return o.priority
}

// Notes returns the order-level free text.
func (o *Order) Notes() string {
	return o.notes
}

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the time of the last mutation.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Stages returns the stage statuses in pipeline order. The returned slice
// is a copy; the statuses themselves are the aggregate's own.
func (o *Order) Stages() []*StageStatus {
	out := make([]*StageStatus, len(o.stages))
	copy(out, o.stages)
	return out
}

// StageStatusFor returns the status for one pipeline stage. Fails with
// ObjectNotFoundError for kinds outside the pipeline; given the fixed
// pipeline this cannot happen for constructed orders, but it is checked.
func (o *Order) StageStatusFor(stage StageKind) (*StageStatus, error) {
	for _, s := range o.stages {
		if s.Stage() == stage {
			return s, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("stage", stage.String())
}

// CurrentStage returns the earliest stage (by pipeline order) whose status
// is not terminal. When every stage is terminal it returns the last
// pipeline stage. Always recomputed, never cached.
func (o *Order) CurrentStage() StageKind {
	for _, s := range o.stages {
		if !s.State().IsTerminal() {
			return s.Stage()
		}
	}
	return o.stages[len(o.stages)-1].Stage()
}

// OverallState derives the order-level state from the stage set:
// Exception if any stage is in Exception; else Completed if all stages are
// terminal; else Claimed if the current stage is claimed; else Pending.
func (o *Order) OverallState() StageState {
	allTerminal := true
	for _, s := range o.stages {
		if s.State() == Exception {
			return Exception
		}
		if !s.State().IsTerminal() {
			allTerminal = false
		}
	}
	if allTerminal {
		return Completed
	}

	current, err := o.StageStatusFor(o.CurrentStage())
	if err == nil && current.State() == Claimed {
		return Claimed
	}
	return Pending
}

// ClaimStage assigns a pending stage to a worker.
//
// Preconditions: the stage is the order's current stage (sequential gating:
// an earlier unresolved stage blocks claiming) and its state is Pending.
// On success the state becomes Claimed and claimedAt/startedAt are set.
func (o *Order) ClaimStage(stage StageKind, assignee string) error {
	if assignee == "" {
		return errs.NewValueIsRequiredError("assignee")
	}

	status, err := o.StageStatusFor(stage)
	if err != nil {
		return err
	}

	if current := o.CurrentStage(); stage != current {
		return errs.NewInvalidTransitionErrorWithCause(
			"claim",
			fmt.Errorf("stage %s is not the current stage (%s is)", stage, current),
		)
	}

	if _, err = status.State().Claim(); err != nil {
		return err
	}

	now := time.Now().UTC()
	status.applyClaim(assignee, now)
	o.updatedAt = now
	return nil
}

// CompleteStage finishes a claimed stage.
//
// Preconditions: the stage is Claimed and the supplied assignee matches the
// recorded claimant (strictly enforced). serviceTimeMinutes must be within
// [0, 1440]. On success the state becomes Completed and completedAt is set.
func (o *Order) CompleteStage(stage StageKind, assignee string, serviceTimeMinutes int64, notes string) error {
	if assignee == "" {
		return errs.NewValueIsRequiredError("assignee")
	}
	if serviceTimeMinutes < 0 || serviceTimeMinutes > maxServiceTimeMinutes {
		return errs.NewValueIsOutOfRangeError("serviceTimeMinutes", serviceTimeMinutes, 0, maxServiceTimeMinutes)
	}
	if len(notes) > maxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes", len(notes), 0, maxNotesLength)
	}

	status, err := o.StageStatusFor(stage)
	if err != nil {
		return err
	}

	if _, err = status.State().Complete(); err != nil {
		return err
	}

	if status.Assignee() != assignee {
		return errs.NewInvalidTransitionErrorWithCause(
			"complete",
			fmt.Errorf("stage %s is claimed by %s, not %s", stage, status.Assignee(), assignee),
		)
	}

	now := time.Now().UTC()
	status.applyComplete(serviceTimeMinutes, notes, now)
	o.updatedAt = now
	return nil
}

// FlagException blocks a claimed stage with a reported problem. The stage,
// and therefore the order, stops advancing until a supervisor acts.
//
// Preconditions: the stage is Claimed, the caller is the recorded claimant,
// and exceptionReason is non-empty.
func (o *Order) FlagException(stage StageKind, assignee, exceptionReason, notes string) error {
	if assignee == "" {
		return errs.NewValueIsRequiredError("assignee")
	}
	if exceptionReason == "" {
		return errs.NewValueIsRequiredError("exceptionReason")
	}
	if len(exceptionReason) > maxReasonLength {
		return errs.NewValueIsOutOfRangeError("exceptionReason", len(exceptionReason), 1, maxReasonLength)
	}
	if len(notes) > maxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes", len(notes), 0, maxNotesLength)
	}

	status, err := o.StageStatusFor(stage)
	if err != nil {
		return err
	}

	if _, err = status.State().Flag(); err != nil {
		return err
	}

	if status.Assignee() != assignee {
		return errs.NewInvalidTransitionErrorWithCause(
			"flagException",
			fmt.Errorf("stage %s is claimed by %s, not %s", stage, status.Assignee(), assignee),
		)
	}

	now := time.Now().UTC()
	status.applyFlag(exceptionReason, notes, now)
	o.updatedAt = now
	return nil
}

// ApproveSkip resolves an exceptional stage by bypassing it. Skipped is
// terminal, so the order's current stage advances past it.
//
// Preconditions: the stage is in Exception and supervisor is non-empty.
func (o *Order) ApproveSkip(stage StageKind, supervisor, supervisorNotes string) error {
	if supervisor == "" {
		return errs.NewValueIsRequiredError("supervisor")
	}
	if len(supervisorNotes) > maxNotesLength {
		return errs.NewValueIsOutOfRangeError("supervisorNotes", len(supervisorNotes), 0, maxNotesLength)
	}

	status, err := o.StageStatusFor(stage)
	if err != nil {
		return err
	}

	if _, err = status.State().Skip(); err != nil {
		return err
	}

	now := time.Now().UTC()
	status.applySkip(supervisor, supervisorNotes, now)
	o.updatedAt = now
	return nil
}

// RequestRework reopens a completed stage after a downstream quality problem
// is discovered. Only the targeted stage resets; later stages keep their
// state. The order's current stage recedes to this stage because it is
// recomputed from the stage set.
//
// Preconditions: the stage is Completed and supervisor is non-empty. On
// success the assignee, timestamps, and service time are cleared; the
// supervisor and notes are recorded for audit.
func (o *Order) RequestRework(stage StageKind, supervisor, supervisorNotes string) error {
	if supervisor == "" {
		return errs.NewValueIsRequiredError("supervisor")
	}
	if len(supervisorNotes) > maxNotesLength {
		return errs.NewValueIsOutOfRangeError("supervisorNotes", len(supervisorNotes), 0, maxNotesLength)
	}

	status, err := o.StageStatusFor(stage)
	if err != nil {
		return err
	}

	if _, err = status.State().Rework(); err != nil {
		return err
	}

	now := time.Now().UTC()
	status.applyRework(supervisor, supervisorNotes, now)
	o.updatedAt = now
	return nil
}

// ChangePriority updates the order urgency within [MinPriority, MaxPriority].
func (o *Order) ChangePriority(priority int) error {
	if err := o.setPriority(priority); err != nil {
		return err
	}
	o.updatedAt = time.Now().UTC()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	if len(orderNumber) > maxOrderNumberLength {
		return errs.NewValueIsOutOfRangeError("orderNumber", len(orderNumber), 1, maxOrderNumberLength)
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setPriority(priority int) error {
	if priority < MinPriority || priority > MaxPriority {
		return errs.NewValueIsOutOfRangeError("priority", priority, MinPriority, MaxPriority)
	}
	o.priority = priority
	return nil
}

func (o *Order) setNotes(notes string) error {
	if len(notes) > maxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes", len(notes), 0, maxNotesLength)
	}
	o.notes = notes
	return nil
}
