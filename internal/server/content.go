package server

import (
	"sync/atomic"

	"git.home.luguber.info/inful/sitegen/internal/content"
	"git.home.luguber.info/inful/sitegen/internal/routes"
	"git.home.luguber.info/inful/sitegen/internal/search"
	"git.home.luguber.info/inful/sitegen/internal/site"
)

// Snapshot is the content a running server answers from.
type Snapshot struct {
	Site  site.Site
	Table *routes.Table
	Index *search.Index
	Posts content.Posts
}

// NewSnapshot builds the served content of a loaded site.
func NewSnapshot(s site.Site, lib *content.Library, table *routes.Table) Snapshot {
	return Snapshot{Site: s, Table: table, Index: search.FromLibrary(lib), Posts: lib.Posts}
}

// Content holds the current Snapshot. Rebuilds swap it atomically.
type Content struct {
	ptr atomic.Pointer[Snapshot]
}

// NewContent returns a holder initialised with snap.
func NewContent(snap Snapshot) *Content {
	c := &Content{}
	c.Store(snap)
	return c
}

// Load returns the current snapshot.
func (c *Content) Load() Snapshot {
	if s := c.ptr.Load(); s != nil {
		return *s
	}
	return Snapshot{}
}

// Store replaces the current snapshot.
func (c *Content) Store(snap Snapshot) {
	c.ptr.Store(&snap)
}
