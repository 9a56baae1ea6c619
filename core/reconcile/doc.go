// Package reconcile provides a generic engine for converging a local store
// towards an external list of records keyed by a natural identifier.
//
// # Architecture
//
// The engine consists of two parts:
//
// 1. Engine: Run walks the incoming items in order and, for each one, validates
// the key, looks up the local record, and inserts, updates or skips it. Every
// decision is recorded as an Action; counts are aggregated into a Summary.
//
// 2. Adapter: Model-specific implementations that define how to validate and
// key an item, how to load the local counterpart, how to decide whether the
// incoming item wins (e.g. last-write-wins on timestamps), and how to write.
//
// # Failure isolation
//
// Validation errors become ActionReject, lookup and write errors become
// ActionFail. Neither stops the run; only context cancellation does.
//
// # Dry Run
//
// With Options.DryRun the engine performs lookups and comparisons only, so the
// report shows what a real run would change.
//
// # Usage Example
//
//	report, err := reconcile.Run(ctx, adapter, items, reconcile.Options{})
//	fmt.Println(report.Summary.Inserted, report.Summary.Updated, report.Summary.Failed)
package reconcile
