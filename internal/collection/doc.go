// Package collection implements the client-side collection store.
//
// [Store] owns the single authoritative in-memory list of the user's
// collection entries. All mutation goes through its command methods; views
// read defensive copies via [Store.Snapshot] and never hold references into
// the list across a mutation.
//
// Two mutation disciplines coexist:
//
//   - Status moves are optimistic: [Store.MoveStatus] mutates locally before
//     the network round-trip so drag-and-drop feels instant, then the gateway
//     result either reconciles ([Store.Reconcile]) or compensates
//     ([Store.RollbackMove]). [Store.SetStatus] packages the whole protocol
//     for synchronous callers.
//   - Progress, details, and removal are pessimistic: the gateway responds
//     first and the server's canonical entry is what lands locally.
//
// [Searcher] wraps catalog search with a monotonically increasing request
// token so a slow earlier query can never overwrite the results of a newer
// one (search-as-you-type supersession).
package collection
