// Package sync keeps the resident registry and a Google Sheet in step.
//
// # Row codec
//
// Sheets are read as CSV (published mode) or through the Sheets API
// (service-account mode). SplitLine tokenizes on both ',' and ';', honoring
// double quotes. Headers are matched through a synonym table, so "No. NIK",
// "nama_lengkap" and "JK" resolve to the same fields as "NIK", "Nama" and
// "Jenis Kelamin". The write layout is fixed to the 19 columns of Headers.
//
// # Pull
//
// Every row is reconciled by NIK with core/reconcile: new NIKs are inserted,
// existing ones are overwritten when the row's "Updated At" is strictly newer
// than the local record or when the row has no timestamp at all. Rows with a
// missing or short NIK are counted as failed and never touch the database.
//
// # Push
//
// Push clears A1:S and writes the header plus every resident in creation
// order. It is a full overwrite: edits made only in the sheet since the last
// pull are lost.
//
// # Background work
//
// AutoPusher mirrors single resident changes into the sheet through a bounded
// queue and never blocks the request that caused them. Scheduler runs a
// bidirectional sync on the configured interval when auto-sync is on.
// Archiver keeps CSV snapshots of pushes and exports in object storage.
package sync
