package encounter

import (
	"math"

	"go.uber.org/zap"

	"github.com/startrader/startrader/internal/game/data"
	"github.com/startrader/startrader/internal/game/rng"
	"github.com/startrader/startrader/internal/game/session"
)

// eliteThreshold is the ceiling of the reputation-scaled draws used by the
// opponent behavior formulas. The fixed-point arithmetic must match the
// ported original exactly.
const eliteThreshold = 12800

// criminalRecord and villainRecord are the police-record cut-offs the
// behavior ladders branch on.
const (
	criminalRecord = -10
	villainRecord  = -30
)

// averageReputation is the reputation below which criminals always draw
// police fire.
const averageReputation = 400

// largePirateShip is the first ship-type index a pirate considers big
// enough to attack regardless of the commander's reputation.
const largePirateShip = 7

// veryRareChancePerThousand is the per-day very-rare encounter chance,
// gated behind the day-ten grace period.
const (
	veryRareChancePerThousand = 5
	veryRareGraceDays         = 10
	veryRareSlotCount         = 6
)

// artifactMantisChance is the probability that carrying the alien artifact
// attracts a Mantis when the normal encounter ladder comes up empty.
const artifactMantisChance = 0.15

// tradeInOrbitChance is the probability that a trader who would otherwise
// pass by offers to trade in orbit instead.
const tradeInOrbitChance = 0.1

// SystemContext carries the travel-leg inputs the resolver needs about the
// destination system. The galaxy model that produces these is outside the
// engine.
type SystemContext struct {
	// PirateStrength, PoliceStrength, and TraderStrength are the system
	// activity levels, each nominally in [0, 8].
	PirateStrength int
	PoliceStrength int
	TraderStrength int
}

// Resolver decides whether an encounter occurs on a travel step and which
// type it is. All methods return TypeNone rather than erroring; there is
// no invalid input that should fail.
type Resolver struct {
	src    rng.Source
	logger *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: src and logger must be non-nil.
func NewResolver(src rng.Source, logger *zap.Logger) *Resolver {
	return &Resolver{src: src, logger: logger}
}

// EncounterDraw rolls the travel-step encounter draw:
// floor(random * (44 - 2*difficulty)), doubled for a Flea. Higher
// difficulty lowers the ceiling, which raises encounter frequency; the
// smallest hull attracts twice the attention.
//
// Postcondition: Returns >= 0.
func (r *Resolver) EncounterDraw(difficulty, shipType int) int {
	draw := int(math.Floor(r.src.Float64() * float64(44-2*difficulty)))
	if shipType == data.ShipFlea {
		draw *= 2
	}
	return draw
}

// policeStrengthModifier scales a system's police activity by how wanted
// the commander is.
func policeStrengthModifier(policeRecord int) int {
	switch {
	case policeRecord <= -70:
		return 3
	case policeRecord <= villainRecord:
		return 2
	default:
		return 1
	}
}

// DetermineCategory walks the fixed priority ladder for the travel draw:
// pirates (unless already raided), then police, then traders, then the
// artifact-triggered Mantis. Ties break by this order, never randomly.
//
// Postcondition: Returns one of CategoryPirate, CategoryPolice,
// CategoryTrader, or CategoryNone. The Mantis comes back as CategoryPirate
// with mantis == true.
func (r *Resolver) DetermineCategory(draw int, sys SystemContext, policeRecord int, hasArtifact, raided bool) (cat Category, mantis bool) {
	pirate := sys.PirateStrength
	police := sys.PoliceStrength * policeStrengthModifier(policeRecord)
	trader := sys.TraderStrength

	switch {
	case draw < pirate && !raided:
		return CategoryPirate, false
	case draw < pirate+police:
		return CategoryPolice, false
	case draw < pirate+police+trader:
		return CategoryTrader, false
	case hasArtifact && r.src.Float64() < artifactMantisChance:
		return CategoryPirate, true
	default:
		return CategoryNone, false
	}
}

// PoliceBehavior decides what an encountered police ship does. A cloaked
// commander is always ignored.
//
// Postcondition: Returns one of PoliceInspect, PoliceAttack, PoliceFlee,
// or PoliceIgnore.
func (r *Resolver) PoliceBehavior(cloaked bool, policeRecord, reputation int, alreadyInspected bool, difficulty int) Type {
	if cloaked {
		return PoliceIgnore
	}
	switch {
	case policeRecord < criminalRecord:
		if reputation < averageReputation {
			return PoliceAttack
		}
		if r.src.Float64()*eliteThreshold > float64(reputation)/2 {
			return PoliceAttack
		}
		return PoliceFlee
	case policeRecord < 10:
		if !alreadyInspected {
			return PoliceInspect
		}
		return PoliceIgnore
	case policeRecord < 30:
		if rng.Chance(r.src, 1/float64(12-difficulty)) {
			return PoliceInspect
		}
		return PoliceIgnore
	default:
		if rng.Chance(r.src, 0.025) {
			return PoliceInspect
		}
		return PoliceIgnore
	}
}

// PirateBehavior decides what an encountered pirate does. A Mantis always
// attacks. A pirate with a strictly better ship than the commander never
// flees.
//
// Postcondition: Returns PirateAttack, PirateFlee, or PirateIgnore for a
// cloaked commander.
func (r *Resolver) PirateBehavior(cloaked bool, reputation int, pirateShipType, playerShipType int, mantis bool) Type {
	if cloaked {
		return PirateIgnore
	}
	if mantis {
		return PirateAttack
	}
	if pirateShipType >= largePirateShip {
		return PirateAttack
	}
	if r.src.Float64()*eliteThreshold > float64(reputation*4)/float64(1+pirateShipType) {
		return PirateAttack
	}
	if pirateShipType > playerShipType {
		return PirateAttack
	}
	return PirateFlee
}

// TraderBehavior decides what an encountered trader does. Traders only
// flee a flagged criminal, and even then only when a reputation-scaled
// draw favors it.
//
// Postcondition: Returns TraderFlee or TraderIgnore; a cloaked commander
// is always ignored.
func (r *Resolver) TraderBehavior(cloaked bool, policeRecord, reputation int, traderShipType, playerShipType int) Type {
	if cloaked {
		return TraderIgnore
	}
	if policeRecord <= villainRecord &&
		r.src.Float64()*eliteThreshold > float64(reputation*10)/float64(1+traderShipType) {
		return TraderFlee
	}
	return TraderIgnore
}

// VeryRare rolls the once-per-day very-rare encounter table. One of six
// slots is picked uniformly; if the chosen slot's eligibility predicate
// fails, the day's roll is spent and TypeNone comes back; no retry
// against another slot.
//
// Postcondition: Returns the scripted encounter type, or TypeNone. On a
// successful pick, the matching Already* bit is set on s so the slot can
// never fire again.
func (r *Resolver) VeryRare(s *session.State) Type {
	if s.Days <= veryRareGraceDays {
		return TypeNone
	}
	if r.src.Intn(1000) >= veryRareChancePerThousand {
		return TypeNone
	}

	slot := r.src.Intn(veryRareSlotCount)
	r.logger.Debug("very rare encounter slot drawn",
		zap.Int("slot", slot),
		zap.Int("days", s.Days),
	)

	switch slot {
	case 0:
		if s.VeryRareEncounter&session.AlreadyMarie == 0 {
			s.VeryRareEncounter |= session.AlreadyMarie
			return MarieCeleste
		}
	case 1:
		if s.VeryRareEncounter&session.AlreadyAhab == 0 &&
			s.Ship.HasShieldType(data.ShieldReflective) &&
			s.PilotSkill < 10 &&
			s.PoliceRecordScore > villainRecord {
			s.VeryRareEncounter |= session.AlreadyAhab
			return CaptainAhab
		}
	case 2:
		if s.VeryRareEncounter&session.AlreadyConrad == 0 &&
			s.Ship.HasWeaponType(data.WeaponMilitaryLaser) &&
			s.EngineerSkill < 10 &&
			s.PoliceRecordScore > villainRecord {
			s.VeryRareEncounter |= session.AlreadyConrad
			return CaptainConrad
		}
	case 3:
		if s.VeryRareEncounter&session.AlreadyHuie == 0 &&
			s.Ship.HasWeaponType(data.WeaponMilitaryLaser) &&
			s.TraderSkill < 10 &&
			s.PoliceRecordScore > villainRecord {
			s.VeryRareEncounter |= session.AlreadyHuie
			return CaptainHuie
		}
	case 4:
		if s.VeryRareEncounter&session.AlreadyBottleOld == 0 {
			s.VeryRareEncounter |= session.AlreadyBottleOld
			return BottleOld
		}
	case 5:
		if s.VeryRareEncounter&session.AlreadyBottleGood == 0 {
			s.VeryRareEncounter |= session.AlreadyBottleGood
			return BottleGood
		}
	}
	return TypeNone
}

// Encounter rolls one full travel step for the commander: the encounter
// draw, the category ladder, the per-category behavior, and finally the
// very-rare table when the ladder comes up empty.
//
// Postcondition: Returns the concrete encounter type for this step, or
// TypeNone. The commander session is only mutated by the very-rare
// Already* bits.
func (r *Resolver) Encounter(s *session.State, sys SystemContext) Type {
	draw := r.EncounterDraw(s.Difficulty, s.Ship.Type)
	cat, mantis := r.DetermineCategory(draw, sys, s.PoliceRecordScore, s.ArtifactOnBoard, s.Raided)

	cloaked := s.Ship.Cloaked()
	var typ Type
	switch cat {
	case CategoryPolice:
		if s.JustLootedMarie {
			// Customs knows about the Marie Celeste salvage and wants
			// the cargo back.
			typ = PostMariePolice
		} else {
			typ = r.PoliceBehavior(cloaked, s.PoliceRecordScore, s.ReputationScore, s.Inspected, s.Difficulty)
		}
	case CategoryPirate:
		pirateShip := r.pirateShipType(s.Difficulty, mantis)
		typ = r.PirateBehavior(cloaked, s.ReputationScore, pirateShip, s.Ship.Type, mantis)
	case CategoryTrader:
		traderShip := 1 + r.src.Intn(data.ShipWasp)
		typ = r.TraderBehavior(cloaked, s.PoliceRecordScore, s.ReputationScore, traderShip, s.Ship.Type)
		if typ == TraderIgnore && !cloaked && rng.Chance(r.src, tradeInOrbitChance) {
			if r.src.Intn(2) == 0 {
				typ = TraderSell
			} else {
				typ = TraderBuy
			}
		}
	default:
		typ = TypeNone
	}

	if typ == TypeNone {
		typ = r.VeryRare(s)
	}

	if typ != TypeNone {
		r.logger.Debug("encounter rolled",
			zap.Int("draw", draw),
			zap.Stringer("category", typ.Category()),
			zap.Stringer("type", typ),
		)
	}
	return typ
}

// pirateShipType picks the hull a rolled pirate flies. Harder difficulties
// skew toward bigger hulls.
func (r *Resolver) pirateShipType(difficulty int, mantis bool) int {
	if mantis {
		return data.ShipMantis
	}
	t := 1 + r.src.Intn(data.ShipWasp)
	if difficulty >= session.DifficultyHard {
		u := 1 + r.src.Intn(data.ShipWasp)
		if u > t {
			t = u
		}
	}
	return t
}
