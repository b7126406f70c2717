// Package workspace holds in-memory drafting sessions. A workspace is one
// processed document plus the evolving response state for each request. All
// state is process-local: restarting the server clears every session.
package workspace

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/profferhq/proffer/internal/objection"
	"github.com/profferhq/proffer/internal/segment"
)

// Errors returned by the store.
var (
	ErrNotFound         = fmt.Errorf("workspace not found")
	ErrResponseNotFound = fmt.Errorf("response not found")
	ErrDraftInFlight    = fmt.Errorf("a draft is already in progress for this request")
)

// ResponseState is the drafting state for one request for production.
type ResponseState struct {
	Request segment.RequestItem `json:"request"`

	// Response is the current draft text. Empty until edited or drafted.
	Response string `json:"response"`

	// Toggles are the active boilerplate objections.
	Toggles objection.ToggleSet `json:"toggles"`

	// Instruction is the user's pending note for the next AI draft.
	Instruction string `json:"instruction,omitempty"`

	// Drafting reports whether an AI draft is currently in flight.
	Drafting bool `json:"drafting"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Workspace is one document-intake session.
type Workspace struct {
	ID        string           `json:"id"`
	FileName  string           `json:"file_name"`
	Text      string           `json:"text"`
	Source    string           `json:"source"`
	Responses []*ResponseState `json:"responses"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// entry pairs a workspace with its lock and response index.
type entry struct {
	mu    sync.Mutex
	ws    *Workspace
	index map[segment.RequestID]*ResponseState
}

// snapshot returns a deep copy safe to hand to callers.
func (e *entry) snapshot() *Workspace {
	cp := *e.ws
	cp.Responses = make([]*ResponseState, len(e.ws.Responses))
	for i, rs := range e.ws.Responses {
		rsCopy := *rs
		cp.Responses[i] = &rsCopy
	}
	return &cp
}

// Store holds all live workspaces.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewStore creates an empty workspace store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Create opens a new workspace for a processed document.
func (s *Store) Create(fileName, text, source string, requests []segment.RequestItem) *Workspace {
	now := time.Now().UTC()
	ws := &Workspace{
		ID:        uuid.New().String(),
		FileName:  fileName,
		Text:      text,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}

	e := &entry{ws: ws, index: make(map[segment.RequestID]*ResponseState, len(requests))}
	for _, req := range requests {
		rs := &ResponseState{Request: req, UpdatedAt: now}
		ws.Responses = append(ws.Responses, rs)
		e.index[req.ID] = rs
	}

	s.mu.Lock()
	s.entries[ws.ID] = e
	s.mu.Unlock()

	return e.snapshot()
}

// Get returns a copy of a workspace.
func (s *Store) Get(id string) (*Workspace, error) {
	e, err := s.entry(id)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot(), nil
}

// Delete removes a workspace.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return ErrNotFound
	}
	delete(s.entries, id)
	return nil
}

// List returns copies of all workspaces, newest first.
func (s *Store) List() []*Workspace {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	out := make([]*Workspace, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		out = append(out, e.snapshot())
		e.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Update describes a manual edit to one response. Nil fields are untouched.
type Update struct {
	Response    *string              `json:"response,omitempty"`
	Toggles     *objection.ToggleSet `json:"toggles,omitempty"`
	Instruction *string              `json:"instruction,omitempty"`
}

// UpdateResponse applies a manual edit and returns the updated state.
func (s *Store) UpdateResponse(wsID string, reqID segment.RequestID, upd Update) (*ResponseState, error) {
	e, err := s.entry(wsID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rs, ok := e.index[reqID]
	if !ok {
		return nil, ErrResponseNotFound
	}

	if upd.Response != nil {
		rs.Response = *upd.Response
	}
	if upd.Toggles != nil {
		rs.Toggles = *upd.Toggles
		// Flipping toggles recomputes the response deterministically,
		// unless the same edit also sets the text explicitly.
		if upd.Response == nil {
			rs.Response = objection.Compose(*upd.Toggles)
		}
	}
	if upd.Instruction != nil {
		rs.Instruction = *upd.Instruction
	}
	now := time.Now().UTC()
	rs.UpdatedAt = now
	e.ws.UpdatedAt = now

	cp := *rs
	return &cp, nil
}

// BeginDraft marks a response as having an AI draft in flight. A second
// concurrent draft for the same response is rejected with ErrDraftInFlight;
// drafts for other responses in the same workspace proceed independently.
func (s *Store) BeginDraft(wsID string, reqID segment.RequestID) (*ResponseState, error) {
	e, err := s.entry(wsID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rs, ok := e.index[reqID]
	if !ok {
		return nil, ErrResponseNotFound
	}
	if rs.Drafting {
		return nil, ErrDraftInFlight
	}
	rs.Drafting = true

	cp := *rs
	return &cp, nil
}

// FinishDraft clears the in-flight flag and, when text is non-nil, replaces
// the draft. A failed draft passes nil and the previous text survives.
func (s *Store) FinishDraft(wsID string, reqID segment.RequestID, text *string) (*ResponseState, error) {
	e, err := s.entry(wsID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rs, ok := e.index[reqID]
	if !ok {
		return nil, ErrResponseNotFound
	}
	rs.Drafting = false
	if text != nil {
		rs.Response = *text
		rs.Instruction = ""
		now := time.Now().UTC()
		rs.UpdatedAt = now
		e.ws.UpdatedAt = now
	}

	cp := *rs
	return &cp, nil
}

func (s *Store) entry(id string) (*entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}
