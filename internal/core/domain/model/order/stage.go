package order

import (
	"fmt"

	"workflow/internal/pkg/errs"
)

// StageKind identifies one unit of work in the fixed production pipeline.
// The pipeline order is total and significant: it defines which stage is
// "next" and gates claiming. Adding a stage kind means changing Pipeline()
// and redeploying; there is no runtime configuration.
type StageKind int

const (
	// UnknownStage represents an invalid or undefined stage kind.
	// This value (0) helps catch uninitialized StageKind values.
	UnknownStage StageKind = iota

	// Preparation is the first pipeline stage: picking and preparing materials.
	Preparation

	// Assembly is the second pipeline stage: assembling the order.
	Assembly

	// Delivery is the final pipeline stage: handing the order off for shipment.
	Delivery
)

// Pipeline returns the ordered stage sequence. This slice is the single
// source of truth for pipeline order; ordinals and "next stage" logic are
// derived from it.
func Pipeline() []StageKind {
	return []StageKind{Preparation, Assembly, Delivery}
}

func getStageKindStrings() map[StageKind]string {
	return map[StageKind]string{
		UnknownStage: "UNKNOWN",
		Preparation:  "PREPARATION",
		Assembly:     "ASSEMBLY",
		Delivery:     "DELIVERY",
	}
}

// ParseStageKind converts a wire name ("PREPARATION", "ASSEMBLY",
// "DELIVERY") to a StageKind. Returns ValueIsInvalidError for any other
// input.
func ParseStageKind(s string) (StageKind, error) {
	for _, kind := range Pipeline() {
		if kind.String() == s {
			return kind, nil
		}
	}
	return UnknownStage, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a pipeline stage", s))
}

// Validate checks that the StageKind is one of the pipeline stages.
func (k StageKind) Validate() error {
	for _, kind := range Pipeline() {
		if k == kind {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a pipeline stage", k))
}

// Ordinal returns the zero-based position of the stage in the pipeline.
// Returns -1 for stage kinds outside the pipeline.
func (k StageKind) Ordinal() int {
	for i, kind := range Pipeline() {
		if k == kind {
			return i
		}
	}
	return -1
}

// Next returns the stage following this one in the pipeline, and false when
// this is the last stage or the kind is not part of the pipeline.
func (k StageKind) Next() (StageKind, bool) {
	pipeline := Pipeline()
	ord := k.Ordinal()
	if ord < 0 || ord+1 >= len(pipeline) {
		return UnknownStage, false
	}
	return pipeline[ord+1], true
}

// String returns the wire name of the stage kind. Implements fmt.Stringer
// and is safe on any value, including invalid ones.
func (k StageKind) String() string {
	if s, ok := getStageKindStrings()[k]; ok {
		return s
	}
	return "UNKNOWN"
}
