package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"pousada/internal/app/uow"
	"pousada/internal/domain/promotions"
	"pousada/internal/domain/rooms"
)

var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// DefaultLimit is used when the stack is built with a non-positive limit.
const DefaultLimit = 50

// Snapshot holds the reference data touched by one admin change.
// A nil entry means the record did not exist on that side of the change.
type Snapshot struct {
	Rooms     map[rooms.RoomID]*rooms.Room
	Discounts map[string]*promotions.DiscountCode
}

func (s Snapshot) clone() Snapshot {
	out := Snapshot{}
	if s.Rooms != nil {
		out.Rooms = make(map[rooms.RoomID]*rooms.Room, len(s.Rooms))
		for id, r := range s.Rooms {
			out.Rooms[id] = r.Clone()
		}
	}
	if s.Discounts != nil {
		out.Discounts = make(map[string]*promotions.DiscountCode, len(s.Discounts))
		for code, d := range s.Discounts {
			out.Discounts[code] = d.Clone()
		}
	}
	return out
}

func RoomSnapshot(r *rooms.Room) Snapshot {
	return Snapshot{Rooms: map[rooms.RoomID]*rooms.Room{r.ID: r.Clone()}}
}

// DiscountSnapshot records d under code; d may be nil when the code does not exist.
func DiscountSnapshot(code string, d *promotions.DiscountCode) Snapshot {
	return Snapshot{Discounts: map[string]*promotions.DiscountCode{code: d.Clone()}}
}

type Change struct {
	Label  string
	Before Snapshot
	After  Snapshot
	At     time.Time
}

// Stack is a bounded undo/redo history. Recording a new change clears the redo side.
type Stack struct {
	mu    sync.Mutex
	limit int
	undo  []Change
	redo  []Change
}

func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Stack{limit: limit}
}

func (s *Stack) Record(c Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Before = c.Before.clone()
	c.After = c.After.clone()
	s.undo = append(s.undo, c)
	if len(s.undo) > s.limit {
		s.undo = s.undo[len(s.undo)-s.limit:]
	}
	s.redo = nil
}

// Undo passes the most recent change to apply and moves it to the redo side when apply succeeds.
func (s *Stack) Undo(apply func(Change) error) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return Change{}, ErrNothingToUndo
	}
	c := s.undo[len(s.undo)-1]
	if err := apply(c); err != nil {
		return Change{}, err
	}
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, c)
	return c, nil
}

func (s *Stack) Redo(apply func(Change) error) (Change, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return Change{}, ErrNothingToRedo
	}
	c := s.redo[len(s.redo)-1]
	if err := apply(c); err != nil {
		return Change{}, err
	}
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, c)
	return c, nil
}

func (s *Stack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

func (s *Stack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// Restore writes snap back through the unit's repositories. Rooms keep their current
// version so optimistic locking accepts the write.
func Restore(ctx context.Context, unit uow.UnitOfWork, snap Snapshot) error {
	for id, saved := range snap.Rooms {
		if saved == nil {
			continue
		}
		current, err := unit.Rooms().ByID(ctx, id)
		if err != nil {
			return err
		}
		next := saved.Clone()
		next.Version = current.Version
		if err := unit.Rooms().Save(ctx, next); err != nil {
			return err
		}
	}
	for code, saved := range snap.Discounts {
		if saved == nil {
			if err := unit.Discounts().Delete(ctx, code); err != nil && !errors.Is(err, promotions.ErrDiscountNotFound) {
				return err
			}
			continue
		}
		if err := unit.Discounts().Save(ctx, saved.Clone()); err != nil {
			return err
		}
	}
	return nil
}
