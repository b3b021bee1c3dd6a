// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package engine wires the aggregator, the tactic rule set, and the
// report composer into the one-shot plan builder. Every call is a pure
// function of its request; nothing is shared across invocations.
package engine

import (
	"errors"
	"fmt"

	"github.com/adxyz/yieldplan/pkg/aggregate"
	"github.com/adxyz/yieldplan/pkg/log"
	"github.com/adxyz/yieldplan/pkg/plan"
	"github.com/adxyz/yieldplan/pkg/report"
	"github.com/adxyz/yieldplan/pkg/tactics"
)

// ErrInternal is the generic fallback for unexpected computation
// failures that carry no message of their own.
var ErrInternal = errors.New("plan computation failed")

// Engine builds optimization plans. Stateless; safe for concurrent use.
type Engine struct {
	log log.Logger
}

// New creates an engine.
func New(logger log.Logger) *Engine {
	if logger == nil {
		logger = log.NoOp()
	}
	return &Engine{log: logger}
}

// BuildPlan validates the request, aggregates the inventory, evaluates
// every tactic, and composes the summary. Either the whole call
// succeeds or it fails with no partial output. There is no retry logic:
// the computation is deterministic, so retrying identical input is
// meaningless.
func (e *Engine) BuildPlan(req *plan.PlanRequest) (resp *plan.PlanResponse, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			resp = nil
			if msg := fmt.Sprint(r); msg != "" {
				err = fmt.Errorf("%w: %s", ErrInternal, msg)
			} else {
				err = ErrInternal
			}
			e.log.Error("plan build panicked", log.String("account", req.AccountName), log.Error(err))
		}
	}()

	snap := aggregate.Snapshot(req.Inventory)

	sections := tactics.Evaluate(tactics.Input{
		Inventory:   req.Inventory,
		Constraints: req.Constraints,
		Snapshot:    snap,
	})
	report.SortSections(sections)

	summary, err := report.Compose(req.AccountName, snap, sections)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInternal, err)
	}

	e.log.Info("plan generated",
		log.String("account", req.AccountName),
		log.Int("profiles", len(req.Inventory)),
		log.Int("sections", len(sections)),
	)

	return &plan.PlanResponse{
		AccountName: req.AccountName,
		Summary:     summary,
		Sections:    sections,
		Constraints: req.Constraints,
	}, nil
}
