package board

import (
	"fmt"
	"log/slog"
	"slices"
)

// RegisterUpdater adds fn to the board's update pass under id. Updaters run
// in registration order before dependents are recomputed. Registering an
// id twice replaces the earlier func.
func (b *Board) RegisterUpdater(id string, fn func()) {
	for i := range b.updaters {
		if b.updaters[i].id == id {
			b.updaters[i].fn = fn
			return
		}
	}
	b.updaters = append(b.updaters, updater{id: id, fn: fn})
}

// UnregisterUpdater removes the updater registered under id.
func (b *Board) UnregisterUpdater(id string) {
	b.updaters = slices.DeleteFunc(b.updaters, func(u updater) bool { return u.id == id })
}

// Update is the board's full update pass: every registered updater runs,
// then flagged elements are recomputed.
func (b *Board) Update() {
	for _, u := range slices.Clone(b.updaters) {
		u.fn()
	}
	b.UpdateElements()
}

// MarkDependents flags the direct dependents of each id for recompute.
// A dependent is flagged when it needs regular updates or the board forces
// all updates.
func (b *Board) MarkDependents(ids ...string) {
	for _, id := range ids {
		for _, dep := range b.dependents[id] {
			el, ok := b.elements[dep]
			if !ok {
				continue
			}
			e := el.base()
			e.needsUpdate = e.needsUpdate || e.regular || b.ForceAllUpdates
		}
	}
}

// UpdateElements recomputes every flagged element in dependency order. A
// recomputed element flags its own dependents under the same policy.
func (b *Board) UpdateElements() {
	order, err := b.topologicalOrder()
	if err != nil {
		slog.Error("update elements", "board", b.ID, "error", err)
		return
	}

	for _, id := range order {
		el, ok := b.elements[id]
		if !ok || !el.base().needsUpdate {
			continue
		}
		el.base().needsUpdate = false

		if err := el.recompute(b); err != nil {
			slog.Warn("recompute failed", "element", id, "error", err)
			continue
		}
		b.MarkDependents(id)
	}
}

func (b *Board) topologicalOrder() ([]string, error) {
	if b.topoValid {
		return b.topo, nil
	}
	order, err := b.graph.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("sort dependencies: %w", err)
	}
	b.topo = order
	b.topoValid = true
	return order, nil
}
