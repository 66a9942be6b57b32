// Package ingestion provides the generic feed reconciliation pipeline.
//
// The Pipeline type carries one feed snapshot through fetch, validation,
// row mapping and reconciliation against the record store:
//   - Fetch and validation gate the whole run: a transport failure or a
//     structurally unacceptable feed aborts before any record is touched.
//   - Row mapping and normalization run concurrently on a worker pool.
//   - Reconciliation is idempotent: rows are matched to existing records by
//     external key and become a create, an in-place update, or a no-op.
//
// Feed-specific knowledge (URI, expected header, row mapping) is injected
// through the Source interface, so the same pipeline serves every feed type.
package ingestion
