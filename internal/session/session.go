package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/xxxsen/oaichat/internal/model"
)

// Session holds the conversation of one display view. History lives only in
// memory and is gone when the view disconnects.
type Session struct {
	ID string

	mu      sync.Mutex
	entries []*entry
	// gen is bumped by Clear so slots reserved before it are dropped.
	gen uint64
	// seq numbers reply slots from 1 and is never reset, so the view can
	// count its own submissions and match replies without a round trip.
	seq uint64
}

type entry struct {
	msg    model.ChatMessage
	filled bool
}

// Slot identifies a reserved reply position. Seq is the submission number
// the reply answers.
type Slot struct {
	Seq uint64

	gen   uint64
	entry *entry
}

func New() *Session {
	return &Session{ID: uuid.NewString()}
}

func (s *Session) AppendUser(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, &entry{
		msg:    model.ChatMessage{Role: model.RoleUser, Text: text},
		filled: true,
	})
}

// Reserve takes the next history position for a reply that is still in
// flight, keeping history in submission order.
func (s *Session) Reserve() Slot {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &entry{}
	s.entries = append(s.entries, e)
	s.seq++
	return Slot{Seq: s.seq, gen: s.gen, entry: e}
}

// AppendAI adds a reply that needs no exchange, such as the help card.
func (s *Session) AppendAI(msg model.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, &entry{msg: msg, filled: true})
}

// Fill stores the reply for slot. It reports false when the slot was
// cleared or already filled.
func (s *Session) Fill(slot Slot, msg model.ChatMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot.entry == nil || slot.gen != s.gen || slot.entry.filled {
		return false
	}
	slot.entry.msg = msg
	slot.entry.filled = true
	return true
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.gen++
}

// History returns the filled entries in order. Pending slots are skipped.
func (s *Session) History() []model.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.ChatMessage, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.filled {
			continue
		}
		out = append(out, e.msg)
	}
	return out
}

func (s *Session) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if !e.filled {
			n++
		}
	}
	return n
}
