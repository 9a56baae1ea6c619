package reconcile

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// record is the item type used by the mock adapter.
type record struct {
	Key     string
	Version int
}

// mockAdapter is a simple in-memory adapter: newer versions win.
type mockAdapter struct {
	store     map[string]record
	lookupErr map[string]error
	writeErr  map[string]error
	inserts   []string
	updates   []string
}

func newMockAdapter() *mockAdapter {
	return &mockAdapter{
		store:     map[string]record{},
		lookupErr: map[string]error{},
		writeErr:  map[string]error{},
	}
}

func (m *mockAdapter) Name() string {
	return "mock"
}

func (m *mockAdapter) Key(item Item) (string, error) {
	r := item.(record)
	if len(r.Key) < 3 {
		return r.Key, fmt.Errorf("key too short")
	}
	return r.Key, nil
}

func (m *mockAdapter) Lookup(ctx context.Context, key string) (Local, bool, error) {
	if err := m.lookupErr[key]; err != nil {
		return nil, false, err
	}
	r, ok := m.store[key]
	if !ok {
		return nil, false, nil
	}
	return r, true, nil
}

func (m *mockAdapter) Compare(item Item, local Local) (ActionType, string) {
	if item.(record).Version > local.(record).Version {
		return ActionUpdate, "newer"
	}
	return ActionSkip, "local is newer or equal"
}

func (m *mockAdapter) Insert(ctx context.Context, key string, item Item) error {
	if err := m.writeErr[key]; err != nil {
		return err
	}
	m.store[key] = item.(record)
	m.inserts = append(m.inserts, key)
	return nil
}

func (m *mockAdapter) Update(ctx context.Context, key string, item Item) error {
	if err := m.writeErr[key]; err != nil {
		return err
	}
	m.store[key] = item.(record)
	m.updates = append(m.updates, key)
	return nil
}

func items(recs ...record) []Item {
	out := make([]Item, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out
}

func TestRun_Decisions(t *testing.T) {
	a := newMockAdapter()
	a.store["bbb"] = record{Key: "bbb", Version: 2}
	a.store["ccc"] = record{Key: "ccc", Version: 5}

	report, err := Run(context.Background(), a, items(
		record{Key: "aaa", Version: 1}, // insert
		record{Key: "bbb", Version: 3}, // update
		record{Key: "ccc", Version: 1}, // skip
		record{Key: "x", Version: 1},   // reject
	), Options{})
	require.NoError(t, err)

	assert.Equal(t, Summary{Total: 4, Inserted: 1, Updated: 1, Skipped: 1, Failed: 1}, report.Summary)
	assert.Equal(t, []ActionType{ActionInsert, ActionUpdate, ActionSkip, ActionReject},
		[]ActionType{report.Actions[0].Type, report.Actions[1].Type, report.Actions[2].Type, report.Actions[3].Type})
	assert.Equal(t, 3, a.store["bbb"].Version)
	assert.Equal(t, 5, a.store["ccc"].Version)
	assert.Equal(t, []string{"x: key too short"}, report.Errors())
}

func TestRun_FailureIsolation(t *testing.T) {
	a := newMockAdapter()
	a.lookupErr["bad1"] = errors.New("db down")
	a.writeErr["bad2"] = errors.New("constraint")

	report, err := Run(context.Background(), a, items(
		record{Key: "bad1"},
		record{Key: "bad2"},
		record{Key: "good"},
	), Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Summary.Failed)
	assert.Equal(t, 1, report.Summary.Inserted)
	assert.Equal(t, []string{"good"}, a.inserts)
	assert.Equal(t, []string{"bad1: db down", "bad2: constraint"}, report.Errors())
}

func TestRun_DuplicateKeysSeeEarlierWrites(t *testing.T) {
	a := newMockAdapter()

	report, err := Run(context.Background(), a, items(
		record{Key: "dup", Version: 1},
		record{Key: "dup", Version: 2},
	), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Summary.Inserted)
	assert.Equal(t, 1, report.Summary.Updated)
	assert.Equal(t, 2, a.store["dup"].Version)
}

func TestRun_DryRun(t *testing.T) {
	a := newMockAdapter()
	a.store["bbb"] = record{Key: "bbb", Version: 1}

	report, err := Run(context.Background(), a, items(
		record{Key: "aaa", Version: 1},
		record{Key: "bbb", Version: 2},
	), Options{DryRun: true})
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, 1, report.Summary.Inserted)
	assert.Equal(t, 1, report.Summary.Updated)
	assert.Empty(t, a.inserts)
	assert.Empty(t, a.updates)
	assert.Equal(t, 1, a.store["bbb"].Version)
}

func TestRun_ContextCancelled(t *testing.T) {
	a := newMockAdapter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Run(ctx, a, items(record{Key: "aaa"}), Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Actions)
}
