package tilemap

import (
	"github.com/Faultbox/tilemap/pkg/asset"
	"github.com/Faultbox/tilemap/pkg/tile"
)

// Entity identifies a visual entity owned by the host. The zero value
// means "no entity".
type Entity uint64

// Event is a recorded change to map or chunk state, replayed by a consumer
// once per frame.
type Event interface {
	isEvent()
}

// Created is sent when a chunk is stored at a map index and needs a visual
// representation.
type Created struct {
	Index int
	Chunk asset.Handle
}

// Refresh is sent when an existing chunk was replaced wholesale and its
// texture must be recomposited.
type Refresh struct {
	Chunk asset.Handle
}

// Modified is sent when tiles changed inside a chunk. The setter carries
// local chunk coordinates, already converted from tile coordinates.
type Modified struct {
	Chunk  asset.Handle
	Setter *tile.Setter
}

// Despawned is sent when a chunk's visual entity must go away but the
// chunk's storage stays.
type Despawned struct {
	Chunk  asset.Handle
	Entity Entity
}

// Removed is sent when a chunk is removed outright. The handle slot is
// cleared and the entity despawned by the consumer.
type Removed struct {
	Index  int
	Entity Entity
}

func (Created) isEvent()   {}
func (Refresh) isEvent()   {}
func (Modified) isEvent()  {}
func (Despawned) isEvent() {}
func (Removed) isEvent()   {}

type sequenced struct {
	id    uint64
	event Event
}

// Events is an append-only, double-buffered event log. Send appends to the
// current generation; Update retires the current generation to "previous"
// and drops the one before it. An event therefore survives the frame it
// was sent in plus one more.
//
// Each reader remembers the last event id it consumed, so every reader
// sees every event exactly once as long as Update is called at most once
// between two of its drains. Calling Update twice without draining loses
// the older generation; that bounded retention is the point of the double
// buffer, not a defect.
type Events struct {
	current  []sequenced
	previous []sequenced
	nextID   uint64
}

// Send appends an event to the current generation.
func (e *Events) Send(ev Event) {
	e.nextID++
	e.current = append(e.current, sequenced{id: e.nextID, event: ev})
}

// Update swaps the generations. Call once per logical frame, before
// draining readers.
func (e *Events) Update() {
	e.previous = e.current
	e.current = nil
}

// Len returns the number of retained events across both generations.
func (e *Events) Len() int {
	return len(e.previous) + len(e.current)
}

// Reader is an independent cursor over the log.
type Reader struct {
	lastID uint64
}

// NewReader returns a reader that will see every event still retained.
func (e *Events) NewReader() *Reader {
	return &Reader{}
}

// Drain calls fn for every retained event the reader has not yet seen, in
// send order, and advances the reader past them.
func (e *Events) Drain(r *Reader, fn func(Event)) {
	for _, s := range e.previous {
		if s.id > r.lastID {
			r.lastID = s.id
			fn(s.event)
		}
	}
	for _, s := range e.current {
		if s.id > r.lastID {
			r.lastID = s.id
			fn(s.event)
		}
	}
}
