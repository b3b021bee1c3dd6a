// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package archive keeps recently generated plans in memory so the API
// can serve re-downloads and exports. The engine itself stays
// stateless; the archive is a transport-side convenience with bounded
// retention.
package archive

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adxyz/yieldplan/pkg/plan"
)

// DefaultCapacity bounds retention when no capacity is configured.
const DefaultCapacity = 256

// StoredPlan is one archived plan with its assigned identifier.
type StoredPlan struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Response  *plan.PlanResponse `json:"response"`
}

// Archive is an in-memory, capacity-bounded plan store.
type Archive struct {
	mu       sync.RWMutex
	plans    map[string]*StoredPlan
	order    []string // insertion order, oldest first
	capacity int
}

// New creates an archive holding at most capacity plans. Non-positive
// capacity falls back to DefaultCapacity.
func New(capacity int) *Archive {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Archive{
		plans:    make(map[string]*StoredPlan),
		capacity: capacity,
	}
}

// Put stores a response under a fresh id, evicting the oldest entry
// once the archive is full.
func (a *Archive) Put(resp *plan.PlanResponse) *StoredPlan {
	stored := &StoredPlan{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Response:  resp,
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for len(a.order) >= a.capacity {
		oldest := a.order[0]
		a.order = a.order[1:]
		delete(a.plans, oldest)
	}

	a.plans[stored.ID] = stored
	a.order = append(a.order, stored.ID)
	return stored
}

// Get returns the stored plan for id, if present.
func (a *Archive) Get(id string) (*StoredPlan, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	stored, ok := a.plans[id]
	return stored, ok
}

// List returns all stored plans, newest first.
func (a *Archive) List() []*StoredPlan {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]*StoredPlan, 0, len(a.order))
	for i := len(a.order) - 1; i >= 0; i-- {
		out = append(out, a.plans[a.order[i]])
	}
	return out
}

// Len returns the number of stored plans.
func (a *Archive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.plans)
}
