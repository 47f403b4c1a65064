// Package state implements the persistent option store: a map of option name
// to string encoded value, backed by a Backend.
//
// Responsibilities:
//   - Backend only loads/saves one whole Document (file, memory).
//   - Store owns the in-memory Document, guards it with a single mutex, and
//     decodes/encodes typed values through the descriptors of the opts
//     package and an explicit converter registry.
//
// Data flow:
//
//	Backend.Load -> Store (Document) -> Resolve / Commit -> Store.Save -> Backend.Save
//
// Tolerance:
//
//	A missing or empty backing file is an empty store, not an error. A file
//	that cannot be read or decoded leaves the store empty and is reported as a
//	*PersistenceError. Resolve never fails: absent keys, undecodable values and
//	unknown enum names all resolve to the descriptor's fallback.
//
// Provenance:
//
//	Every successful save is stamped with a fresh Meta.SnapshotID (a UUID) that
//	is also attached to the emitted activity event.
package state
