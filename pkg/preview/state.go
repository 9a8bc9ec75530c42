package preview

import "sync"

// State holds the live preview values and the per-field error flags, both
// keyed by field id. It is safe for concurrent use.
type State struct {
	mu     sync.RWMutex
	values map[string]string
	errors map[string]bool
}

// NewState seeds the state with prefilled values.
func NewState(prefill map[string]string) *State {
	values := make(map[string]string, len(prefill))
	for k, v := range prefill {
		values[k] = v
	}
	return &State{values: values, errors: make(map[string]bool)}
}

// Value returns the stored value for id.
func (s *State) Value(id string) (string, bool) {
	if s == nil {
		return "", false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[id]
	return v, ok
}

// SetValue stores value and clears the error flag for id.
func (s *State) SetValue(id, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[id] = value
	delete(s.errors, id)
}

// Values returns a copy of the value map.
func (s *State) Values() map[string]string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Flagged reports whether id carries a validation error.
func (s *State) Flagged(id string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errors[id]
}

// Errors returns a copy of the error flags. Only flagged ids are present.
func (s *State) Errors() map[string]bool {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.errors))
	for k, v := range s.errors {
		if v {
			out[k] = true
		}
	}
	return out
}

// replaceErrors swaps the whole error set in one step.
func (s *State) replaceErrors(flagged []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = make(map[string]bool, len(flagged))
	for _, id := range flagged {
		s.errors[id] = true
	}
}

// retain drops values and errors for ids outside keep.
func (s *State) retain(keep map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.values {
		if !keep[id] {
			delete(s.values, id)
		}
	}
	for id := range s.errors {
		if !keep[id] {
			delete(s.errors, id)
		}
	}
}
