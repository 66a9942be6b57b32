// Package search provides the query engine: free-text query parsing and
// relevance-ranked matching over ingested records.
//
// Parsing sanitizes the raw string, splits it into required and negated
// terms, and normalizes each term through the same pipeline the ingestion
// side uses for index text. Matching is lexical: a record qualifies when its
// cached index text contains every required term and none of the excluded
// ones, and qualifying records are ranked by field weight and match
// specificity with a deterministic tie-break on creation order.
//
// Queries are read-only and may run with unlimited concurrency.
package search
