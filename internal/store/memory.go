package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/skistation/resort/internal/models"
)

// Memory is a process-local backend. Transactions are serialised by a single
// mutex; there is no rollback, so callers must do their checks before the
// first write (the services do).
//
// Deletes follow the SQL schema: removing a skier or course nulls the
// matching registration references, and removing a course or piste drops it
// from instructors and skiers. Reads resolve associations against the current
// rows, the way the gorm backend preloads them.
type Memory struct {
	txMu  sync.Mutex
	repos Repos
}

func NewMemory() *Memory {
	pistes := newMemTable(func(v *models.Piste) *uint { return &v.ID })
	skiers := newMemTable(func(v *models.Skier) *uint { return &v.ID })
	courses := newMemTable(func(v *models.Course) *uint { return &v.ID })
	instructors := newMemTable(func(v *models.Instructor) *uint { return &v.ID })
	regs := &memRegistrations{
		memTable:    newMemTable(func(v *models.Registration) *uint { return &v.ID }),
		instructors: instructors,
		courses:     courses,
	}

	regs.beforeSave = regs.checkUnique
	regs.onCreate = func(v *models.Registration) {
		if v.Code == "" {
			v.Code = models.NewRegCode()
		}
	}
	regs.load = func(r *models.Registration) {
		r.Skier, r.Course = nil, nil
		if r.SkierID != nil {
			if s, ok := skiers.get(*r.SkierID); ok {
				r.Skier = &s
			}
		}
		if r.CourseID != nil {
			if c, ok := courses.get(*r.CourseID); ok {
				r.Course = &c
			}
		}
	}
	instructors.load = func(i *models.Instructor) {
		current := make([]models.Course, 0, len(i.Courses))
		for _, c := range i.Courses {
			if row, ok := courses.get(c.ID); ok {
				current = append(current, row)
			}
		}
		i.Courses = current
	}
	skiers.load = func(s *models.Skier) {
		if s.Pistes == nil {
			return
		}
		current := make([]models.Piste, 0, len(s.Pistes))
		for _, p := range s.Pistes {
			if row, ok := pistes.get(p.ID); ok {
				current = append(current, row)
			}
		}
		s.Pistes = current
	}

	skiers.onDelete = func(id uint) {
		regs.update(func(r *models.Registration) bool {
			if r.SkierID == nil || *r.SkierID != id {
				return false
			}
			r.SkierID, r.Skier = nil, nil
			return true
		})
	}
	courses.onDelete = func(id uint) {
		regs.update(func(r *models.Registration) bool {
			if r.CourseID == nil || *r.CourseID != id {
				return false
			}
			r.CourseID, r.Course = nil, nil
			return true
		})
		instructors.update(func(i *models.Instructor) bool {
			kept := make([]models.Course, 0, len(i.Courses))
			for _, c := range i.Courses {
				if c.ID != id {
					kept = append(kept, c)
				}
			}
			if len(kept) == len(i.Courses) {
				return false
			}
			i.Courses = kept
			return true
		})
	}
	pistes.onDelete = func(id uint) {
		skiers.update(func(s *models.Skier) bool {
			kept := make([]models.Piste, 0, len(s.Pistes))
			for _, p := range s.Pistes {
				if p.ID != id {
					kept = append(kept, p)
				}
			}
			if len(kept) == len(s.Pistes) {
				return false
			}
			s.Pistes = kept
			return true
		})
	}

	return &Memory{repos: Repos{
		Pistes:        pistes,
		Skiers:        skiers,
		Courses:       courses,
		Instructors:   instructors,
		Registrations: regs,
	}}
}

func (m *Memory) Repos() Repos { return m.repos }

func (m *Memory) WithinTx(ctx context.Context, fn func(r Repos) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(m.repos)
}

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

func (m *Memory) Close() error { return nil }

// memTable holds one entity kind. Hooks that touch other tables (load,
// onDelete) run after mu is released.
type memTable[T any] struct {
	mu   sync.RWMutex
	rows map[uint]T
	next uint
	id   func(*T) *uint

	onCreate   func(*T)
	beforeSave func(v *T) error // called with mu held
	load       func(*T)
	onDelete   func(id uint)
}

func newMemTable[T any](id func(*T) *uint) *memTable[T] {
	return &memTable[T]{rows: make(map[uint]T), id: id}
}

func (t *memTable[T]) Save(ctx context.Context, v *T) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.beforeSave != nil {
		if err := t.beforeSave(v); err != nil {
			return nil, err
		}
	}
	pk := t.id(v)
	if *pk == 0 {
		t.next++
		*pk = t.next
		if t.onCreate != nil {
			t.onCreate(v)
		}
	} else if *pk > t.next {
		t.next = *pk
	}
	t.rows[*pk] = *v
	return v, nil
}

func (t *memTable[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	row, ok := t.get(id)
	if !ok {
		return nil, nil
	}
	if t.load != nil {
		t.load(&row)
	}
	return &row, nil
}

func (t *memTable[T]) FindAll(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	out := t.sorted(func(T) bool { return true })
	t.mu.RUnlock()
	t.hydrate(out)
	return out, nil
}

func (t *memTable[T]) DeleteByID(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	_, existed := t.rows[id]
	delete(t.rows, id)
	t.mu.Unlock()

	if existed && t.onDelete != nil {
		t.onDelete(id)
	}
	return nil
}

// get returns the stored row as is, without resolving associations.
func (t *memTable[T]) get(id uint) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

// update rewrites every row for which fn reports a change.
func (t *memTable[T]) update(fn func(*T) bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for id, row := range t.rows {
		if fn(&row) {
			t.rows[id] = row
		}
	}
}

func (t *memTable[T]) hydrate(rows []T) {
	if t.load == nil {
		return
	}
	for i := range rows {
		t.load(&rows[i])
	}
}

// sorted returns matching rows ordered by id. Caller holds mu.
func (t *memTable[T]) sorted(keep func(T) bool) []T {
	ids := make([]uint, 0, len(t.rows))
	for id, row := range t.rows {
		if keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

type memRegistrations struct {
	*memTable[models.Registration]
	instructors *memTable[models.Instructor]
	courses     *memTable[models.Course]
}

func (s *memRegistrations) checkUnique(v *models.Registration) error {
	if v.SkierID == nil || v.CourseID == nil {
		return nil
	}
	for id, row := range s.rows {
		if id == v.ID || row.SkierID == nil || row.CourseID == nil {
			continue
		}
		if row.NumWeek == v.NumWeek && *row.SkierID == *v.SkierID && *row.CourseID == *v.CourseID {
			return fmt.Errorf("%w: registration %d already holds week %d for skier %d, course %d",
				ErrConflict, id, v.NumWeek, *v.SkierID, *v.CourseID)
		}
	}
	return nil
}

func (s *memRegistrations) CountByWeekAndSkierAndCourse(ctx context.Context, week int, skierID, courseID uint) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, row := range s.rows {
		if row.NumWeek == week && row.SkierID != nil && *row.SkierID == skierID &&
			row.CourseID != nil && *row.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

// WeeksOfInstructorBySupport reads support from the current course rows, not
// from the copies stored on the instructor.
func (s *memRegistrations) WeeksOfInstructorBySupport(ctx context.Context, instructorID uint, support models.Support) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	weeks := []int{}
	inst, ok := s.instructors.get(instructorID)
	if !ok {
		return weeks, nil
	}
	taught := make(map[uint]bool, len(inst.Courses))
	for _, c := range inst.Courses {
		if row, ok := s.courses.get(c.ID); ok && row.Support == support {
			taught[c.ID] = true
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := map[int]bool{}
	for _, row := range s.rows {
		if row.CourseID == nil || !taught[*row.CourseID] || seen[row.NumWeek] {
			continue
		}
		seen[row.NumWeek] = true
		weeks = append(weeks, row.NumWeek)
	}
	sort.Ints(weeks)
	return weeks, nil
}

func (s *memRegistrations) FindBySkier(ctx context.Context, skierID uint) ([]models.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := s.sorted(func(r models.Registration) bool {
		return r.SkierID != nil && *r.SkierID == skierID
	})
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].NumWeek < out[j].NumWeek })
	s.hydrate(out)
	return out, nil
}

var _ Backend = (*Memory)(nil)
var _ Backend = (*Gorm)(nil)
