// Package session holds the shared commander session aggregate that every
// encounter-engine component reads and mutates in place. The surrounding
// game loop owns the State; the engine is handed a reference per call and
// must be serialized by the caller; nothing here locks.
package session

import "github.com/startrader/startrader/internal/game/data"

// SlotCount is the number of weapon, shield, gadget, and crew slots a hull
// can expose. Unused slots hold EmptySlot.
const SlotCount = 3

// EmptySlot marks an unoccupied equipment or crew slot.
const EmptySlot = -1

// ExtraBaysPerGadget is the cargo capacity added by each installed
// extra-cargo-bays gadget.
const ExtraBaysPerGadget = 5

// Ship is one hull with its equipment, crew, and cargo manifest.
//
// Invariant: TotalCargo() <= CargoCapacity(tables);
// 0 <= ShieldStrength[i] <= installed shield type power for every slot.
type Ship struct {
	// Type indexes the static ship table.
	Type int
	// Hull is the remaining hull strength, >= 0.
	Hull int
	// Fuel is the remaining fuel in tanks.
	Fuel int
	// Weapon holds weapon table indices per slot, EmptySlot when vacant.
	Weapon [SlotCount]int
	// Shield holds shield table indices per slot, EmptySlot when vacant.
	Shield [SlotCount]int
	// ShieldStrength is the current absorbable charge per shield slot,
	// 0 when the slot is vacant.
	ShieldStrength [SlotCount]int
	// Gadget holds gadget table indices per slot, EmptySlot when vacant.
	Gadget [SlotCount]int
	// Crew holds crew member ids per slot, EmptySlot when vacant.
	Crew [SlotCount]int
	// Cargo holds one non-negative quantity per trade good id.
	Cargo [data.TradeGoodCount]int
	// Tribbles is the number of tribbles loose in the cargo hold.
	Tribbles int
}

// EmptyShip returns a Ship of the given type with all slots vacant and a
// full hull.
func EmptyShip(tables *data.Tables, shipType int) Ship {
	s := Ship{
		Type: shipType,
		Hull: tables.Ship(shipType).HullStrength,
		Fuel: tables.Ship(shipType).FuelTanks,
	}
	for i := 0; i < SlotCount; i++ {
		s.Weapon[i] = EmptySlot
		s.Shield[i] = EmptySlot
		s.Gadget[i] = EmptySlot
		s.Crew[i] = EmptySlot
	}
	return s
}

// TotalCargo returns the summed quantity across all cargo bays.
//
// Postcondition: Returns >= 0.
func (s *Ship) TotalCargo() int {
	total := 0
	for _, qty := range s.Cargo {
		total += qty
	}
	return total
}

// CargoCapacity returns the hull's bay count plus extra-cargo-bay gadgets.
func (s *Ship) CargoCapacity(tables *data.Tables) int {
	capacity := tables.Ship(s.Type).CargoBays
	for _, g := range s.Gadget {
		if g == data.GadgetExtraCargoBays {
			capacity += ExtraBaysPerGadget
		}
	}
	return capacity
}

// FreeCargoBays returns the unoccupied bay count.
//
// Postcondition: Returns >= 0 while the cargo invariant holds.
func (s *Ship) FreeCargoBays(tables *data.Tables) int {
	free := s.CargoCapacity(tables) - s.TotalCargo()
	if free < 0 {
		return 0
	}
	return free
}

// HasWeapon reports whether any weapon slot is occupied.
func (s *Ship) HasWeapon() bool {
	for _, w := range s.Weapon {
		if w != EmptySlot {
			return true
		}
	}
	return false
}

// HasShield reports whether any shield slot is occupied.
func (s *Ship) HasShield() bool {
	for _, sh := range s.Shield {
		if sh != EmptySlot {
			return true
		}
	}
	return false
}

// HasGadget reports whether a gadget of the given type is installed.
func (s *Ship) HasGadget(gadget int) bool {
	for _, g := range s.Gadget {
		if g == gadget {
			return true
		}
	}
	return false
}

// HasShieldType reports whether a shield of the given type is installed.
func (s *Ship) HasShieldType(shield int) bool {
	for _, sh := range s.Shield {
		if sh == shield {
			return true
		}
	}
	return false
}

// HasWeaponType reports whether a weapon of the given type is installed.
func (s *Ship) HasWeaponType(weapon int) bool {
	for _, w := range s.Weapon {
		if w == weapon {
			return true
		}
	}
	return false
}

// Cloaked reports whether a cloaking device is installed.
func (s *Ship) Cloaked() bool {
	return s.HasGadget(data.GadgetCloaking)
}

// WeaponPower returns the summed power of all installed weapons.
func (s *Ship) WeaponPower(tables *data.Tables) int {
	power := 0
	for _, slot := range s.Weapon {
		if w, ok := tables.Weapon(slot); ok {
			power += w.Power
		}
	}
	return power
}

// ShieldPower returns the summed current charge across shield slots. This
// reflects remaining absorption, not the nominal maximum.
func (s *Ship) ShieldPower() int {
	power := 0
	for _, strength := range s.ShieldStrength {
		power += strength
	}
	return power
}

// ChargeShields restores every installed shield slot to its type's full
// power.
func (s *Ship) ChargeShields(tables *data.Tables) {
	for i, slot := range s.Shield {
		if sh, ok := tables.Shield(slot); ok {
			s.ShieldStrength[i] = sh.Power
		} else {
			s.ShieldStrength[i] = 0
		}
	}
}

// ApplyDamage consumes shield-slot strengths first, in slot order, then
// applies the remaining overflow to the hull.
//
// Precondition: amount >= 0.
// Postcondition: Hull >= 0; total absorbed equals
// min(amount, ShieldPower_before + Hull_before).
func (s *Ship) ApplyDamage(amount int) {
	for i := range s.ShieldStrength {
		if amount <= 0 {
			return
		}
		if s.ShieldStrength[i] >= amount {
			s.ShieldStrength[i] -= amount
			return
		}
		amount -= s.ShieldStrength[i]
		s.ShieldStrength[i] = 0
	}
	s.Hull -= amount
	if s.Hull < 0 {
		s.Hull = 0
	}
}

// Value returns the loadout value: hull price plus every installed weapon,
// shield, and gadget price.
func (s *Ship) Value(tables *data.Tables) int {
	value := tables.Ship(s.Type).Price
	for _, slot := range s.Weapon {
		if w, ok := tables.Weapon(slot); ok {
			value += w.Price
		}
	}
	for _, slot := range s.Shield {
		if sh, ok := tables.Shield(slot); ok {
			value += sh.Price
		}
	}
	for _, slot := range s.Gadget {
		if g, ok := tables.Gadget(slot); ok {
			value += g.Price
		}
	}
	return value
}
