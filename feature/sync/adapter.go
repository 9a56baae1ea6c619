package sync

import (
	"context"
	"errors"
	"time"

	"smartwarga/core/reconcile"
	"smartwarga/feature/resident"
)

// residentAdapter reconciles sheet rows against the resident store.
//
// Existing residents are overwritten only when the row timestamp is strictly
// newer than the local updated_at. A row without a timestamp always wins
// unless it already matches the local record. An unparseable timestamp
// leaves the local record alone.
type residentAdapter struct {
	store resident.Store
	loc   *time.Location
}

func newResidentAdapter(store resident.Store, loc *time.Location) *residentAdapter {
	return &residentAdapter{store: store, loc: loc}
}

func (a *residentAdapter) Name() string {
	return "resident"
}

func (a *residentAdapter) Key(item reconcile.Item) (string, error) {
	row := item.(Row)
	res, err := DecodeRow(row)
	if err != nil {
		return row.NIK, err
	}
	return res.NIK, nil
}

func (a *residentAdapter) Lookup(ctx context.Context, key string) (reconcile.Local, bool, error) {
	local, err := a.store.FindByNIK(ctx, key)
	if errors.Is(err, resident.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return *local, true, nil
}

func (a *residentAdapter) Compare(item reconcile.Item, local reconcile.Local) (reconcile.ActionType, string) {
	row := item.(Row)
	existing := local.(resident.Resident)

	stamp, present, err := row.Timestamp(a.loc)
	switch {
	case err != nil:
		return reconcile.ActionSkip, err.Error()
	case present && stamp.After(existing.UpdatedAt):
		return reconcile.ActionUpdate, "sheet is newer"
	case present:
		return reconcile.ActionSkip, "local is newer or equal"
	}

	incoming, _ := DecodeRow(row)
	if sameContent(incoming, existing) {
		return reconcile.ActionSkip, "unchanged"
	}
	return reconcile.ActionUpdate, "no timestamp, sheet overrides"
}

func (a *residentAdapter) Insert(ctx context.Context, key string, item reconcile.Item) error {
	res, err := DecodeRow(item.(Row))
	if err != nil {
		return err
	}
	return a.store.Create(ctx, &res)
}

func (a *residentAdapter) Update(ctx context.Context, key string, item reconcile.Item) error {
	res, err := DecodeRow(item.(Row))
	if err != nil {
		return err
	}
	return a.store.Update(ctx, &res)
}
