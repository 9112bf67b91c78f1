package timetable

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rpggio/coursegrid/internal/domain/lecture"
)

// Store owns the tables of one user and the schedules placed on them. All
// mutations are atomic; readers get copies.
type Store struct {
	mu     sync.RWMutex
	order  []string
	tables map[string]*table
	nextID func() string
	logger *slog.Logger
}

type table struct {
	schedules []Schedule
	version   uint64
	subs      map[int]chan uint64
	nextSub   int
}

// NewStore creates a store holding one empty table named initialID.
func NewStore(initialID string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if initialID == "" {
		initialID = DefaultTableID
	}
	return &Store{
		order:  []string{initialID},
		tables: map[string]*table{initialID: {}},
		nextID: uuid.NewString,
		logger: logger,
	}
}

// Tables lists the tables in display order.
func (s *Store) Tables() []TableInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]TableInfo, 0, len(s.order))
	for _, id := range s.order {
		t := s.tables[id]
		out = append(out, TableInfo{ID: id, Schedules: len(t.schedules), Version: t.version})
	}
	return out
}

// Schedules returns a copy of the table's schedules in insertion order.
func (s *Store) Schedules(tableID string) ([]Schedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.table(tableID)
	if err != nil {
		return nil, err
	}
	return cloneAll(t.schedules), nil
}

// Version returns the table's mutation counter.
func (s *Store) Version(tableID string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.table(tableID)
	if err != nil {
		return 0, err
	}
	return t.version, nil
}

// Snapshot returns the table's schedules together with the version they
// belong to.
func (s *Store) Snapshot(tableID string) ([]Schedule, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, err := s.table(tableID)
	if err != nil {
		return nil, 0, err
	}
	return cloneAll(t.schedules), t.version, nil
}

// AddSchedules appends copies of schedules to the table.
func (s *Store) AddSchedules(tableID string, schedules []Schedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(tableID)
	if err != nil {
		return err
	}
	t.schedules = append(t.schedules, cloneAll(schedules)...)
	s.touch(tableID, t)
	s.logger.Debug("schedules added", "table_id", tableID, "count", len(schedules))
	return nil
}

// AddLecture parses lec's schedule and places every entry on the table. It
// returns what was placed, which is empty for an unparsable schedule.
func (s *Store) AddLecture(tableID string, lec *lecture.Lecture) ([]Schedule, error) {
	placed := FromLecture(lec)
	if err := s.AddSchedules(tableID, placed); err != nil {
		return nil, err
	}
	return placed, nil
}

// RemoveAt removes every schedule on the table whose day is day and whose
// range contains slot. It returns how many were removed; zero is not an
// error.
func (s *Store) RemoveAt(tableID, day string, slot int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(tableID)
	if err != nil {
		return 0, err
	}
	before := len(t.schedules)
	t.schedules = slices.DeleteFunc(t.schedules, func(sc Schedule) bool {
		return sc.Day == day && sc.Covers(slot)
	})
	removed := before - len(t.schedules)
	if removed > 0 {
		s.touch(tableID, t)
		s.logger.Debug("schedules removed", "table_id", tableID, "day", day, "slot", slot, "count", removed)
	}
	return removed, nil
}

// AddTable duplicates the source table under a fresh id, placed directly
// after the source, and returns the new id.
func (s *Store) AddTable(sourceID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, err := s.table(sourceID)
	if err != nil {
		return "", err
	}
	id := s.nextID()
	s.tables[id] = &table{schedules: cloneAll(src.schedules)}
	pos := slices.Index(s.order, sourceID)
	s.order = slices.Insert(s.order, pos+1, id)
	s.logger.Info("table duplicated", "source_id", sourceID, "table_id", id)
	return id, nil
}

// CanRemoveTable reports whether a table may be removed, which is false when
// only one table is left.
func (s *Store) CanRemoveTable() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order) > 1
}

// RemoveTable deletes the table and its schedules. Removing the last table
// is refused and reported as false with a nil error.
func (s *Store) RemoveTable(tableID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(tableID)
	if err != nil {
		return false, err
	}
	if len(s.order) == 1 {
		return false, nil
	}
	for id, ch := range t.subs {
		close(ch)
		delete(t.subs, id)
	}
	delete(s.tables, tableID)
	s.order = slices.DeleteFunc(s.order, func(id string) bool { return id == tableID })
	s.logger.Info("table removed", "table_id", tableID)
	return true, nil
}

// Move shifts the schedule at index by whole grid cells.
func (s *Store) Move(tableID string, index, dayDelta, slotDelta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(tableID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(t.schedules) {
		return fmt.Errorf("%w: index %d", ErrScheduleNotFound, index)
	}
	if dayDelta == 0 && slotDelta == 0 {
		return nil
	}

	sc := t.schedules[index]
	day, ok := lecture.DayAt(lecture.DayIndex(sc.Day) + dayDelta)
	if !ok {
		return fmt.Errorf("%w: day %s%+d", ErrOutOfGrid, sc.Day, dayDelta)
	}
	moved := make([]int, len(sc.Range))
	for i, slot := range sc.Range {
		next := slot + slotDelta
		if next < 1 || next > lecture.SlotCount() {
			return fmt.Errorf("%w: slot %d%+d", ErrOutOfGrid, slot, slotDelta)
		}
		moved[i] = next
	}

	sc.Day = day
	sc.Range = moved
	t.schedules[index] = sc
	s.touch(tableID, t)
	return nil
}

// Subscribe returns a channel that receives the table's version after every
// mutation of that table, and a function that ends the subscription.
// Versions are coalesced: a slow reader sees the latest one. The channel is
// closed when the table is removed or the subscription is cancelled.
func (s *Store) Subscribe(tableID string) (<-chan uint64, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.table(tableID)
	if err != nil {
		return nil, nil, err
	}
	if t.subs == nil {
		t.subs = make(map[int]chan uint64)
	}
	id := t.nextSub
	t.nextSub++
	ch := make(chan uint64, 1)
	t.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := t.subs[id]; ok {
			close(c)
			delete(t.subs, id)
		}
	}
	return ch, cancel, nil
}

func (s *Store) table(tableID string) (*table, error) {
	t, ok := s.tables[tableID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}
	return t, nil
}

// touch bumps the version and notifies the table's subscribers. Callers hold
// s.mu.
func (s *Store) touch(tableID string, t *table) {
	t.version++
	for _, ch := range t.subs {
		select {
		case <-ch:
		default:
		}
		ch <- t.version
	}
	s.logger.Debug("table changed", "table_id", tableID, "version", t.version)
}
