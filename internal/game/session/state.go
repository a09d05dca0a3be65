package session

import "github.com/startrader/startrader/internal/game/data"

// Difficulty levels.
const (
	DifficultyBeginner = iota
	DifficultyEasy
	DifficultyNormal
	DifficultyHard
	DifficultyImpossible
)

// Very-rare encounter bits in State.VeryRareEncounter. Each fires at most
// once per game.
const (
	AlreadyMarie = 1 << iota
	AlreadyAhab
	AlreadyConrad
	AlreadyHuie
	AlreadyBottleOld
	AlreadyBottleGood
)

// Quest status values for the scripted opponents.
const (
	// MonsterDestroyed marks the Space Monster as killed.
	MonsterDestroyed = 2
	// DragonflyDestroyed marks the Dragonfly as killed.
	DragonflyDestroyed = 5
	// ScarabDestroyed marks the Scarab as killed, hull bonus pending.
	ScarabDestroyed = 2
	// ScarabUpgradePerformed marks the one-time hull bonus as granted.
	ScarabUpgradePerformed = 3
)

// State is the commander session aggregate. Every engine component mutates
// it in place; callers must serialize engine calls for a given State.
type State struct {
	// CommanderName is the player's name, used only in messages.
	CommanderName string
	// Difficulty is one of the Difficulty* levels.
	Difficulty int
	// Days is the elapsed game time in days.
	Days int

	// Ship is the commander's ship.
	Ship Ship
	// Opponent is the ship on the other side of the active encounter.
	Opponent Ship

	Credits int
	Debt    int

	// PoliceRecordScore is the standing with law enforcement; more
	// negative means more criminal.
	PoliceRecordScore int
	// ReputationScore is the combat-prowess standing; higher means more
	// feared.
	ReputationScore int

	PoliceKills int
	TraderKills int
	PirateKills int

	// Commander skills, each nominally in [1, 10].
	PilotSkill    int
	FighterSkill  int
	TraderSkill   int
	EngineerSkill int

	// VeryRareEncounter is the Already* bitmask of one-shot encounters.
	VeryRareEncounter int
	ScarabStatus      int
	DragonflyStatus   int
	SpacemonsterStatus int
	// WildStatus is nonzero while the fugitive Jonathan Wild is aboard.
	WildStatus int
	// ArtifactOnBoard is true while the alien artifact is carried.
	ArtifactOnBoard bool

	// JustLootedMarie is true after boarding the Marie Celeste, until the
	// customs police are dealt with.
	JustLootedMarie bool
	// BottleAvailable is true after boarding yields an unopened bottle.
	BottleAvailable bool
	// Raided is true once pirates have already plundered this trip.
	Raided bool
	// Inspected is true once police have inspected this trip.
	Inspected bool

	EscapePod bool
	Insurance bool

	// EncounterType is the active encounter code, or -1 when travelling
	// undisturbed. Owned by the surrounding dispatcher, written by the
	// engine on transitions.
	EncounterType int
}

// NewState returns a starting commander: a Gnat with one pulse laser, full
// shields (none installed), modest skills, and 1000 credits.
//
// Postcondition: The returned State satisfies the Ship invariants and has
// EncounterType == -1.
func NewState(tables *data.Tables, name string, difficulty int) *State {
	ship := EmptyShip(tables, data.ShipGnat)
	ship.Weapon[0] = data.WeaponPulseLaser
	ship.Crew[0] = 0

	return &State{
		CommanderName: name,
		Difficulty:    difficulty,
		Ship:          ship,
		Credits:       1000,
		PilotSkill:    5,
		FighterSkill:  5,
		TraderSkill:   5,
		EngineerSkill: 5,
		EncounterType: -1,
	}
}

// NetWorth returns credits minus debt plus the current ship's loadout
// value.
func (s *State) NetWorth(tables *data.Tables) int {
	return s.Credits - s.Debt + s.Ship.Value(tables)
}

// CarryingIllegalGoods reports whether any illegal trade good is in the
// hold or the fugitive Wild is aboard.
func (s *State) CarryingIllegalGoods(tables *data.Tables) bool {
	for i, qty := range s.Ship.Cargo {
		if qty > 0 && tables.Good(i).Illegal {
			return true
		}
	}
	return s.WildStatus != 0
}

// ConfiscateIllegalGoods zeroes every illegal cargo bay and returns the
// number of units removed.
func (s *State) ConfiscateIllegalGoods(tables *data.Tables) int {
	removed := 0
	for i := range s.Ship.Cargo {
		if tables.Good(i).Illegal {
			removed += s.Ship.Cargo[i]
			s.Ship.Cargo[i] = 0
		}
	}
	return removed
}

// Pay deducts amount from credits, moving any shortfall to debt.
//
// Precondition: amount >= 0.
// Postcondition: Credits >= 0; Credits_before + Debt_delta covers amount.
func (s *State) Pay(amount int) {
	if amount <= 0 {
		return
	}
	if s.Credits >= amount {
		s.Credits -= amount
		return
	}
	s.Debt += amount - s.Credits
	s.Credits = 0
}
