// Package catalog exposes the sync passes as a loader.Feature.
//
// The Service runs one pass at a time. Each run gets a fresh syncer.Syncer
// over a cached view of the source, reports every item to the log and, when
// configured, to the run journal, and archives its summary to object storage.
//
// # HTTP Endpoints
//
//   - POST /sync/:kind : starts a pass in the background (?type for instance
//     passes, ?dry_run for gc passes). 409 while another run is in progress.
//   - GET /sync/status : the running pass and the last summary.
//   - GET /sync/runs : journaled runs, most recent first (?limit).
//   - GET /sync/runs/:id/failures : failed items of one run.
package catalog
