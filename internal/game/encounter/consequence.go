package encounter

import (
	"fmt"

	"github.com/startrader/startrader/internal/game/data"
	"github.com/startrader/startrader/internal/game/session"
)

// Bounty bounds.
const (
	minBounty = 25
	maxBounty = 2500
)

// Police record deltas applied on kills and inspections.
const (
	killPoliceRecordDelta   = -6
	killTraderRecordDelta   = -4
	killPirateRecordDelta   = 1
	cleanInspectionDelta    = -70
	caughtInspectionDelta   = -110
	attackPoliceRecordDelta = -3
	attackTraderRecordDelta = -2
)

// Fine and bribe bounds.
const (
	minFine  = 100
	maxFine  = 10000
	minBribe = 100
	maxBribe = 10000
)

// Famous-captain reputation floor and repeat bonus.
const (
	famousReputationFloor = 300
	famousReputationBonus = 100
)

// Scarab hull bonus.
const (
	scarabHullBonus = 10
	scarabHullCap   = 200
)

// CalculateBounty returns the credit reward for destroying the opponent.
// The price counts the hull plus installed weapons and shields only, and
// the nested truncation is deliberate: floor(floor(price/200)/25)*25,
// clamped to [25, 2500]. Pure and RNG-free.
//
// Postcondition: Returns a multiple of 25 in [minBounty, maxBounty].
func CalculateBounty(opponent *session.Ship, tables *data.Tables) int {
	price := tables.Ship(opponent.Type).Price
	for _, slot := range opponent.Weapon {
		if w, ok := tables.Weapon(slot); ok {
			price += w.Price
		}
	}
	for _, slot := range opponent.Shield {
		if sh, ok := tables.Shield(slot); ok {
			price += sh.Price
		}
	}

	bounty := price / 200
	bounty = bounty / 25
	bounty *= 25
	if bounty < minBounty {
		bounty = minBounty
	}
	if bounty > maxBounty {
		bounty = maxBounty
	}
	return bounty
}

// VictoryConsequences applies the kill side effects for destroying the
// opponent of the given encounter type: kill counters, police record and
// reputation deltas, quest status transitions, very-rare bits, and the
// bounty for pirate-family kills.
//
// Precondition: s must be non-nil; t must not be TypeNone.
// Postcondition: Returns the bounty credited (0 outside the pirate
// family). Reputation always rises by 1 + opponentTypeOrdinal/2.
func VictoryConsequences(s *session.State, t Type, tables *data.Tables) (bounty int, message string) {
	switch t.Category() {
	case CategoryPolice:
		s.PoliceKills++
		s.PoliceRecordScore += killPoliceRecordDelta
		message = "You destroyed the police ship. That will not be forgotten."
	case CategoryTrader:
		s.TraderKills++
		s.PoliceRecordScore += killTraderRecordDelta
		message = "You destroyed the trading vessel."
	case CategoryPirate:
		s.PirateKills++
		s.PoliceRecordScore += killPirateRecordDelta
		bounty = CalculateBounty(&s.Opponent, tables)
		s.Credits += bounty
		message = fmt.Sprintf("You destroyed the pirate ship and earned a bounty of %d credits.", bounty)
	case CategoryMonster:
		s.PirateKills++
		s.PoliceRecordScore += killPirateRecordDelta
		s.SpacemonsterStatus = session.MonsterDestroyed
		message = "You destroyed the space monster!"
	case CategoryDragonfly:
		s.PirateKills++
		s.PoliceRecordScore += killPirateRecordDelta
		s.DragonflyStatus = session.DragonflyDestroyed
		message = "You destroyed the Dragonfly!"
	case CategoryScarab:
		s.PirateKills++
		s.PoliceRecordScore += killPirateRecordDelta
		if s.ScarabStatus != session.ScarabUpgradePerformed {
			s.ScarabStatus = session.ScarabDestroyed
		}
		message = "You destroyed the Scarab!"
	case CategoryFamousCaptain:
		s.VeryRareEncounter |= famousCaptainBit(s.EncounterType)
		if s.ReputationScore < famousReputationFloor {
			s.ReputationScore = famousReputationFloor
		} else {
			s.ReputationScore += famousReputationBonus
		}
		message = "You destroyed the famous captain's ship. Word will spread fast."
	default:
		message = "The opponent's ship is destroyed."
	}

	s.ReputationScore += 1 + s.Opponent.Type/2
	return bounty, message
}

// famousCaptainBit maps the active famous-captain encounter code to its
// Already* bit. FamousCaptainAttack keeps the bit the resolver already set
// when the captain was drawn, so nothing extra is recorded for it.
func famousCaptainBit(encounterType int) int {
	switch Type(encounterType) {
	case CaptainAhab:
		return session.AlreadyAhab
	case CaptainConrad:
		return session.AlreadyConrad
	case CaptainHuie:
		return session.AlreadyHuie
	default:
		return 0
	}
}

// HandleScarabDestroyed grants the one-time permanent hull bonus for the
// first Scarab kill. Repeat calls are no-ops that never re-grant the
// bonus.
//
// Postcondition: Hull rises by scarabHullBonus (capped at scarabHullCap)
// exactly once across all calls for a given session.
func HandleScarabDestroyed(s *session.State) Result {
	if s.ScarabStatus == session.ScarabUpgradePerformed {
		return Result{
			Success: false,
			Message: "Your hull has already been upgraded.",
		}
	}
	if s.ScarabStatus != session.ScarabDestroyed {
		return Result{
			Success: false,
			Message: "The Scarab has not been destroyed.",
		}
	}
	s.ScarabStatus = session.ScarabUpgradePerformed
	s.Ship.Hull += scarabHullBonus
	if s.Ship.Hull > scarabHullCap {
		s.Ship.Hull = scarabHullCap
	}
	return Result{
		Success: true,
		Message: "The Scarab's armor plating is salvaged and welded onto your hull.",
	}
}

// CalculateFine returns the police fine for a commander caught in an
// inspection: netWorth / ((7 - difficulty) * 10), rounded up to the next
// multiple of 50 and clamped to [100, 10000].
//
// Postcondition: Returns a multiple of 50 in [minFine, maxFine].
func CalculateFine(netWorth, difficulty int) int {
	fine := netWorth / ((7 - difficulty) * 10)
	fine = ((fine + 49) / 50) * 50
	if fine < minFine {
		fine = minFine
	}
	if fine > maxFine {
		fine = maxFine
	}
	return fine
}

// CalculateBribe returns the bribe a police inspector asks for:
// netWorth / ((10 + 5*(4 - difficulty)) * bribeLevel), rounded up to the
// next multiple of 100, doubled on the easy difficulties or tripled on the
// harder ones when flagged cargo is aboard, clamped to [100, 10000].
//
// Precondition: bribeLevel >= 1.
// Postcondition: Returns a multiple of 100 in [minBribe, maxBribe].
func CalculateBribe(netWorth, difficulty, bribeLevel int, flaggedCargo bool) int {
	if bribeLevel < 1 {
		bribeLevel = 1
	}
	bribe := netWorth / ((10 + 5*(4-difficulty)) * bribeLevel)
	bribe = ((bribe + 99) / 100) * 100
	if flaggedCargo {
		if difficulty <= session.DifficultyEasy {
			bribe *= 2
		} else {
			bribe *= 3
		}
	}
	if bribe < minBribe {
		bribe = minBribe
	}
	if bribe > maxBribe {
		bribe = maxBribe
	}
	return bribe
}
