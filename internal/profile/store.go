package profile

import "github.com/hustlex/hustlexbot/core/telegram/state"

// Store holds the profile sessions of all users for the life of the process.
type Store struct {
	sessions *state.Store[Record]
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{sessions: state.NewStore[Record]()}
}

// Sessions exposes the underlying session store for middleware wiring.
func (s *Store) Sessions() *state.Store[Record] {
	return s.sessions
}

// GetOrCreate returns the record of id.UserID, creating it at StepStart for
// unseen users. It is idempotent: repeated calls return the same record.
func (s *Store) GetOrCreate(id Identity) *Record {
	return s.sessions.GetOrCreate(id.UserID, func() *Record { return NewRecord(id) })
}

// Update runs fn on the record of id.UserID under that user's lock,
// creating the record first if needed.
func (s *Store) Update(id Identity, fn func(*Record) error) error {
	return s.sessions.Update(id.UserID, func() *Record { return NewRecord(id) }, fn)
}

// Apply runs Transition on the user's record and stores the result when the
// transition is accepted. Rejected events leave the record untouched.
func (s *Store) Apply(id Identity, ev Event) (Result, error) {
	var res Result
	err := s.Update(id, func(r *Record) error {
		r.Refresh(id)
		out, err := Transition(*r, ev)
		if err != nil {
			res = Result{Record: *r, From: r.Step}
			return err
		}
		*r = out.Record
		res = out
		return nil
	})
	return res, err
}

// Snapshot returns a copy of the user's record.
func (s *Store) Snapshot(userID int64) (Record, bool) {
	return s.sessions.Snapshot(userID)
}

// Len reports how many users have a session.
func (s *Store) Len() int {
	return s.sessions.Len()
}

// Stats counts sessions per step and completed profiles.
type Stats struct {
	Sessions  int
	Completed int
	InWizard  int
}

// Stats walks every session under its lock.
func (s *Store) Stats() Stats {
	var st Stats
	s.sessions.Range(func(_ int64, r Record) {
		st.Sessions++
		if r.Completed {
			st.Completed++
		}
		if r.Step.Collecting() {
			st.InWizard++
		}
	})
	return st
}
