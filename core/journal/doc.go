// Package journal records sync runs in the database.
//
// Each pass writes one sync_runs row (kind, outcome counts, timings) and one
// sync_failures row per failed item, so failed keys can be retried by hand.
// The journal is optional; commands run without it when no database is
// configured.
package journal
