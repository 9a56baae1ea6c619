package reconcile

import (
	"context"
	"fmt"
)

// Run reconciles items against the local store one by one, in input order.
//
// Each item is validated, looked up, and then inserted, updated or skipped.
// A failure on one item is recorded and the run moves on; the returned error
// is non-nil only when the context is cancelled. Items are processed
// sequentially so duplicate keys in the input see each other's writes.
func Run(ctx context.Context, adapter Adapter, items []Item, opts Options) (*Report, error) {
	report := &Report{
		Actions: make([]Action, 0, len(items)),
		DryRun:  opts.DryRun,
	}
	report.Summary.Total = len(items)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("%s reconcile interrupted at item %d: %w", adapter.Name(), i, err)
		}

		action := reconcileOne(ctx, adapter, i, item, opts)
		report.Actions = append(report.Actions, action)

		switch action.Type {
		case ActionInsert:
			report.Summary.Inserted++
		case ActionUpdate:
			report.Summary.Updated++
		case ActionSkip:
			report.Summary.Skipped++
		case ActionReject, ActionFail:
			report.Summary.Failed++
		}
	}

	return report, nil
}

// reconcileOne decides and, unless dry-running, applies a single item.
func reconcileOne(ctx context.Context, adapter Adapter, index int, item Item, opts Options) Action {
	key, err := adapter.Key(item)
	if err != nil {
		return Action{Index: index, Type: ActionReject, Key: key, Reason: err.Error()}
	}

	local, found, err := adapter.Lookup(ctx, key)
	if err != nil {
		return Action{Index: index, Type: ActionFail, Key: key, Reason: err.Error()}
	}

	if !found {
		if !opts.DryRun {
			if err := adapter.Insert(ctx, key, item); err != nil {
				return Action{Index: index, Type: ActionFail, Key: key, Reason: err.Error()}
			}
		}
		return Action{Index: index, Type: ActionInsert, Key: key}
	}

	decision, reason := adapter.Compare(item, local)
	if decision != ActionUpdate {
		return Action{Index: index, Type: ActionSkip, Key: key, Reason: reason}
	}

	if !opts.DryRun {
		if err := adapter.Update(ctx, key, item); err != nil {
			return Action{Index: index, Type: ActionFail, Key: key, Reason: err.Error()}
		}
	}
	return Action{Index: index, Type: ActionUpdate, Key: key, Reason: reason}
}
