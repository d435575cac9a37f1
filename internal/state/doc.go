// Package state shares the service catalog between the background refresher
// and the UI.
//
// The refresher calls Store.Update after every catalog load; the UI reads
// Store.Snapshot on its tick and applies a new catalog when Version has
// advanced. A failed refresh keeps the previous catalog and records the
// error, so the UI can keep showing the last good listing while reporting
// that it is stale:
//
//	store.Update(&catalog, nil) // replace catalog, reset failures, Version++
//	store.Update(nil, err)      // keep catalog, record err, failures++
//
// Snapshots are copies; callers may reorder the returned slices without
// affecting the store.
package state
