package xmlsig

import "sort"

// Store holds the ordered list of current SignatureInformation records
// for one manager instance, per §4.9. Add appends and assigns a
// monotonically increasing SecurityId; Remove deletes by index; Replace
// adopts a new set wholesale; Read returns a copy of the current set.
// There is no process-wide state: each
// DocumentSignatureManager owns its own Store.
type Store struct {
	records []SignatureInformation
	nextID  int
}

// NewStore returns an empty signature state store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Add appends a record, assigning it the next SecurityId, and returns
// that id so asynchronous verification/creation callbacks can correlate
// back to it.
func (s *Store) Add(rec SignatureInformation) int {
	rec.SecurityId = s.nextID
	s.nextID++
	s.records = append(s.records, rec)
	return rec.SecurityId
}

// Remove deletes the record at index i, preserving the order of the
// survivors.
func (s *Store) Remove(i int) *Error {
	if i < 0 || i >= len(s.records) {
		return newError(ClassStructural, ErrIndexOutOfRange)
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return nil
}

// Read returns a defensive copy of the current record list, ordered as
// stored.
func (s *Store) Read() []SignatureInformation {
	out := make([]SignatureInformation, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

// Replace discards the current record set and adopts recs wholesale,
// matching §4.9's "read replaces wholesale" ownership rule for the
// reader/verifier driver repopulating the store after a read pass.
func (s *Store) Replace(recs []SignatureInformation) {
	s.records = make([]SignatureInformation, len(recs))
	maxID := 0
	for i, r := range recs {
		s.records[i] = r.Clone()
		if r.SecurityId > maxID {
			maxID = r.SecurityId
		}
	}
	if maxID+1 > s.nextID {
		s.nextID = maxID + 1
	}
}

// UpdateStatus correlates an asynchronous signatureVerified(id, status)
// callback back onto the record carrying that SecurityId.
func (s *Store) UpdateStatus(securityID int, status SecurityStatus) *Error {
	for i := range s.records {
		if s.records[i].SecurityId == securityID {
			s.records[i].Status = status
			return nil
		}
	}
	return newError(ClassStructural, ErrUnknownSecurityId)
}

// Len returns the number of records currently held.
func (s *Store) Len() int { return len(s.records) }

// sortByID orders recs by ascending SecurityId, in place.
func sortByID(recs []SignatureInformation) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].SecurityId < recs[j].SecurityId })
}
