// Package core defines the domain model shared by every subsystem: feed
// types, records keyed by (feed, external key), content-derived identifiers,
// derived index text and validation rules. It has no storage or transport
// concerns of its own.
package core
