package tui

import (
	"github.com/vadimtrunov/reelview/internal/view"
)

type modalState int

const (
	modalLoading modalState = iota
	modalOpen
	modalFailed
)

// modal is one detail dialog instance.
type modal struct {
	id      int
	gen     uint64
	state   modalState
	detail  view.Detail
	errText string
	recs    view.Recs
	recSel  int
	scroll  int // first visible content line
}

// modalManager owns the single modal slot. Every open bumps the generation,
// and results tagged with an older generation are rejected by accepts.
type modalManager struct {
	current *modal
	gen     uint64
}

// open replaces any current modal with a loading one for id.
func (mm *modalManager) open(id int) uint64 {
	mm.gen++
	mm.current = &modal{
		id:    id,
		gen:   mm.gen,
		state: modalLoading,
		recs:  view.LoadingRecs(),
	}
	return mm.gen
}

func (mm *modalManager) close() {
	mm.current = nil
}

func (mm *modalManager) isOpen() bool {
	return mm.current != nil
}

// accepts reports whether a result issued for gen may still paint.
func (mm *modalManager) accepts(gen uint64) bool {
	return mm.current != nil && mm.current.gen == gen
}

func (mm *modalManager) active() *modal {
	return mm.current
}
