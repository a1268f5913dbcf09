// Package models defines the data model for the game backlog tracker.
//
// The package contains three categories of types:
//
// 1. Catalog facts: [GameRecord] describes a game as returned by the catalog
// provider. One record exists per distinct provider+provider_id pair; records
// are never mutated locally.
//
// 2. Collection state: [CollectionEntry] is the core mutable entity, pairing a
// GameRecord with the user's tracking fields (status, progress, playtime,
// rating, notes, chosen platform). The server owns entry identity and
// timestamps; the client's collection store holds the canonical in-memory
// list. [Status] enumerates the six tracking states a game moves through.
//
// 3. View parameters: [FilterSpec] carries the ephemeral search/platform/genre
// filter and [SortKey] selection each view owns. FilterSpecs are never
// persisted.
package models
