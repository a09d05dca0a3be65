// Package encounter implements the encounter and combat resolution engine:
// deciding what a commander meets during travel, driving the turn-by-turn
// resolution of an active encounter, and computing the consequences of
// combat outcomes.
package encounter

// Type identifies an active encounter. The numeric value groups into
// decade ranges by opponent family; Category is the accessor that makes the
// grouping explicit.
type Type int

// TypeNone is the sentinel for "no active encounter".
const TypeNone Type = -1

// Police encounters.
const (
	PoliceInspect Type = iota
	PoliceIgnore
	PoliceAttack
	PoliceFlee
	// PostMariePolice is the customs patrol that shows up after looting
	// the Marie Celeste.
	PostMariePolice
)

// Pirate encounters.
const (
	PirateIgnore Type = iota + 10
	PirateAttack
	PirateFlee
	PirateSurrender
)

// Trader encounters.
const (
	TraderIgnore Type = iota + 20
	TraderFlee
	TraderAttack
	TraderSurrender
	TraderSell
	TraderBuy
)

// Space Monster encounters.
const (
	MonsterIgnore Type = iota + 30
	MonsterAttack
)

// Dragonfly encounters.
const (
	DragonflyIgnore Type = iota + 40
	DragonflyAttack
)

// Scarab encounters.
const (
	ScarabIgnore Type = iota + 60
	ScarabAttack
)

// Famous captain encounters.
const (
	CaptainAhab Type = iota + 70
	CaptainConrad
	CaptainHuie
	FamousCaptainAttack
)

// Unique scripted encounters.
const (
	MarieCeleste Type = iota + 80
	BottleOld
	BottleGood
)

// Category classifies encounter types by opponent family.
type Category int

const (
	CategoryNone Category = iota
	CategoryPolice
	CategoryPirate
	CategoryTrader
	CategoryMonster
	CategoryDragonfly
	CategoryScarab
	CategoryFamousCaptain
	CategoryScripted
)

// String returns a human-readable category label.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryPolice:
		return "police"
	case CategoryPirate:
		return "pirate"
	case CategoryTrader:
		return "trader"
	case CategoryMonster:
		return "monster"
	case CategoryDragonfly:
		return "dragonfly"
	case CategoryScarab:
		return "scarab"
	case CategoryFamousCaptain:
		return "famous captain"
	case CategoryScripted:
		return "scripted"
	default:
		return "unknown"
	}
}

// Category returns the opponent family for the encounter type.
//
// Postcondition: Returns CategoryNone iff t is TypeNone or outside every
// defined decade range.
func (t Type) Category() Category {
	switch {
	case t >= PoliceInspect && t <= PostMariePolice:
		return CategoryPolice
	case t >= PirateIgnore && t <= PirateSurrender:
		return CategoryPirate
	case t >= TraderIgnore && t <= TraderBuy:
		return CategoryTrader
	case t == MonsterIgnore || t == MonsterAttack:
		return CategoryMonster
	case t == DragonflyIgnore || t == DragonflyAttack:
		return CategoryDragonfly
	case t == ScarabIgnore || t == ScarabAttack:
		return CategoryScarab
	case t >= CaptainAhab && t <= FamousCaptainAttack:
		return CategoryFamousCaptain
	case t >= MarieCeleste && t <= BottleGood:
		return CategoryScripted
	default:
		return CategoryNone
	}
}

// String returns a human-readable encounter label.
func (t Type) String() string {
	switch t {
	case TypeNone:
		return "no encounter"
	case PoliceInspect:
		return "police inspection"
	case PoliceIgnore:
		return "police (ignoring)"
	case PoliceAttack:
		return "police attack"
	case PoliceFlee:
		return "police (fleeing)"
	case PostMariePolice:
		return "customs police"
	case PirateIgnore:
		return "pirate (ignoring)"
	case PirateAttack:
		return "pirate attack"
	case PirateFlee:
		return "pirate (fleeing)"
	case PirateSurrender:
		return "pirate (surrendered)"
	case TraderIgnore:
		return "trader (ignoring)"
	case TraderFlee:
		return "trader (fleeing)"
	case TraderAttack:
		return "trader attack"
	case TraderSurrender:
		return "trader (surrendered)"
	case TraderSell:
		return "trader (selling)"
	case TraderBuy:
		return "trader (buying)"
	case MonsterIgnore:
		return "space monster (ignoring)"
	case MonsterAttack:
		return "space monster attack"
	case DragonflyIgnore:
		return "dragonfly (ignoring)"
	case DragonflyAttack:
		return "dragonfly attack"
	case ScarabIgnore:
		return "scarab (ignoring)"
	case ScarabAttack:
		return "scarab attack"
	case CaptainAhab:
		return "Captain Ahab"
	case CaptainConrad:
		return "Captain Conrad"
	case CaptainHuie:
		return "Captain Huie"
	case FamousCaptainAttack:
		return "famous captain attack"
	case MarieCeleste:
		return "Marie Celeste"
	case BottleOld:
		return "floating bottle (old)"
	case BottleGood:
		return "floating bottle (good)"
	default:
		return "unknown encounter"
	}
}

// attackEscalation maps every attackable encounter type to the sub-code it
// becomes once the player opens fire. Types already in an attack sub-state
// map to themselves.
func (t Type) attackEscalation() Type {
	switch t.Category() {
	case CategoryPolice:
		return PoliceAttack
	case CategoryPirate:
		return PirateAttack
	case CategoryTrader:
		return TraderAttack
	case CategoryMonster:
		return MonsterAttack
	case CategoryDragonfly:
		return DragonflyAttack
	case CategoryScarab:
		return ScarabAttack
	case CategoryFamousCaptain:
		return FamousCaptainAttack
	default:
		return t
	}
}
