// Package plunder negotiates post-surrender cargo transfer from the
// opponent's hold into the commander's, under capacity constraints, and
// settles the police-record penalty for the theft.
package plunder

import (
	"fmt"

	"github.com/startrader/startrader/internal/game/data"
	"github.com/startrader/startrader/internal/game/encounter"
	"github.com/startrader/startrader/internal/game/session"
)

// Police-record penalties by victim category. Robbing an honest trader is
// worse than robbing a pirate.
const (
	traderPenalty = -2
	piratePenalty = -1
)

// Result reports one plunder operation. Partial transfers are successes;
// Moved carries the actual unit count.
type Result struct {
	Success bool
	Message string
	// Moved is the number of units actually transferred.
	Moved int
}

// Session is one plundering negotiation against a surrendered opponent.
// Create one per encounter; Finish settles the record penalty exactly
// once no matter how often it is called.
type Session struct {
	tables  *data.Tables
	victim  encounter.Category
	settled bool
}

// New creates a plunder Session for the given victim category.
//
// Precondition: tables must be non-nil.
func New(tables *data.Tables, victim encounter.Category) *Session {
	return &Session{tables: tables, victim: victim}
}

// CanPlunder reports whether any transfer is possible: the commander
// needs free bays and the opponent needs cargo.
//
// Postcondition: Never mutates state; a false result carries the reason.
func (p *Session) CanPlunder(s *session.State) Result {
	if s.Ship.FreeCargoBays(p.tables) <= 0 {
		return Result{Success: false, Message: "Your cargo holds are full."}
	}
	if s.Opponent.TotalCargo() <= 0 {
		return Result{Success: false, Message: "The opponent's holds are empty."}
	}
	return Result{Success: true}
}

// PlunderCargo moves up to amount units of the given trade good from the
// opponent to the commander. The transfer is clamped to what the victim
// carries and to the commander's free bays; the decrement always equals
// the increment.
//
// Precondition: 0 <= itemIndex < data.TradeGoodCount.
// Postcondition: On success, opponent.Cargo[itemIndex] decreases by
// exactly Result.Moved and s.Ship.Cargo[itemIndex] increases by the same;
// the cargo capacity invariant holds afterwards.
func (p *Session) PlunderCargo(s *session.State, itemIndex, amount int) Result {
	if itemIndex < 0 || itemIndex >= data.TradeGoodCount {
		return Result{Success: false, Message: "There is no such cargo."}
	}
	if can := p.CanPlunder(s); !can.Success {
		return can
	}
	if amount <= 0 {
		return Result{Success: false, Message: "Nothing to transfer."}
	}

	move := amount
	if avail := s.Opponent.Cargo[itemIndex]; move > avail {
		move = avail
	}
	if space := s.Ship.FreeCargoBays(p.tables); move > space {
		move = space
	}
	if move <= 0 {
		return Result{Success: false, Message: fmt.Sprintf("No %s to take.", p.tables.Good(itemIndex).Name)}
	}

	s.Opponent.Cargo[itemIndex] -= move
	s.Ship.Cargo[itemIndex] += move
	return Result{
		Success: true,
		Moved:   move,
		Message: fmt.Sprintf("You transfer %d units of %s to your hold.", move, p.tables.Good(itemIndex).Name),
	}
}

// PlunderAllCargo moves as much as fits of everything the opponent
// carries of the given trade good.
func (p *Session) PlunderAllCargo(s *session.State, itemIndex int) Result {
	if itemIndex < 0 || itemIndex >= data.TradeGoodCount {
		return Result{Success: false, Message: "There is no such cargo."}
	}
	return p.PlunderCargo(s, itemIndex, s.Opponent.Cargo[itemIndex])
}

// Finish settles the plundering: the one-time police-record penalty keyed
// by victim category is applied and a completion message returned. A
// second call is a non-success no-op.
//
// Postcondition: PoliceRecordScore changes at most once per Session.
func (p *Session) Finish(s *session.State) Result {
	if p.settled {
		return Result{Success: false, Message: "The plundering is already settled."}
	}
	p.settled = true

	switch p.victim {
	case encounter.CategoryTrader:
		s.PoliceRecordScore += traderPenalty
	default:
		s.PoliceRecordScore += piratePenalty
	}
	return Result{Success: true, Message: "You finish plundering and cast the stripped ship loose."}
}
