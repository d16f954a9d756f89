// Package order contains the fulfillment order aggregate and its stage
// state machine.
//
// An Order owns one StageStatus per StageKind in the fixed production
// pipeline (preparation, assembly, delivery). Stages progress in pipeline
// order: a stage can only be claimed while every earlier stage is resolved,
// an exceptional stage blocks the whole order until a supervisor skips it,
// and a completed stage can be reopened for rework. The order-level
// CurrentStage and OverallState are always recomputed from the stage set,
// never stored.
//
// Per-stage state machine:
//
//	PENDING ──claim──> CLAIMED ──complete──> COMPLETED ──rework──> PENDING
//	                      │
//	                 flag exception
//	                      │
//	                      v
//	                  EXCEPTION ──approve skip──> SKIPPED (terminal)
//
// All transition rules are enforced inside the aggregate; a failed
// precondition returns errs.InvalidTransitionError and leaves every field
// unchanged.
package order
