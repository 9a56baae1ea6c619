// Package health exposes GET /health.
//
// The report covers three things: the database answers a ping, the
// residents, sync_configs and sync_logs tables carry every column the service
// reads or writes, and, when object storage is enabled, the snapshot bucket
// exists. Any failed check turns the response into a 503 with the same report
// body.
package health
