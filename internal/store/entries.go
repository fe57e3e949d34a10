package store

import "fmt"

const entriesKey = "time_entries"

// LoadEntries returns every persisted entry across all users. A missing
// key yields an empty collection.
func (s *Store) LoadEntries() ([]TimeEntry, error) {
	var entries []TimeEntry
	if _, err := s.getJSON(entriesKey, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) saveEntries(entries []TimeEntry) error {
	if entries == nil {
		entries = []TimeEntry{}
	}
	return s.setJSON(entriesKey, entries)
}

// EntriesForUser returns the working set for one user. Entries owned by
// other users stay in storage but are never surfaced to callers.
func (s *Store) EntriesForUser(userID string) ([]TimeEntry, error) {
	all, err := s.LoadEntries()
	if err != nil {
		return nil, err
	}
	var mine []TimeEntry
	for _, e := range all {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	return mine, nil
}

// AddEntry appends a new entry and writes the full collection back.
func (s *Store) AddEntry(entry TimeEntry) error {
	all, err := s.LoadEntries()
	if err != nil {
		return err
	}
	return s.saveEntries(append(all, entry))
}

// UpdateEntry replaces the stored entry with the same ID in full.
func (s *Store) UpdateEntry(entry TimeEntry) error {
	all, err := s.LoadEntries()
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID == entry.ID {
			all[i] = entry
			return s.saveEntries(all)
		}
	}
	return fmt.Errorf("update entry: no entry with id %q", entry.ID)
}

// DeleteEntry removes the entry with the given ID.
func (s *Store) DeleteEntry(id string) error {
	all, err := s.LoadEntries()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, e := range all {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	return s.saveEntries(kept)
}
