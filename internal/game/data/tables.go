// Package data provides the read-only static tables the encounter engine
// looks up by integer id: ship hulls, weapons, shields, gadgets, and trade
// goods. The engine never mutates these tables.
package data

import "fmt"

// Ship type indices. Indices 0-9 are player-purchasable hulls; the rest are
// quest opponents.
const (
	ShipFlea = iota
	ShipGnat
	ShipFirefly
	ShipMosquito
	ShipBumblebee
	ShipBeetle
	ShipHornet
	ShipGrasshopper
	ShipTermite
	ShipWasp
	ShipSpaceMonster
	ShipDragonfly
	ShipMantis
	ShipScarab
	ShipBottle
)

// Weapon indices.
const (
	WeaponPulseLaser = iota
	WeaponBeamLaser
	WeaponMilitaryLaser
	WeaponMorgansLaser
)

// Shield indices.
const (
	ShieldEnergy = iota
	ShieldReflective
	ShieldLightning
)

// Gadget indices.
const (
	GadgetExtraCargoBays = iota
	GadgetAutoRepair
	GadgetNavigation
	GadgetTargeting
	GadgetCloaking
)

// Trade good indices.
const (
	GoodWater = iota
	GoodFurs
	GoodFood
	GoodOre
	GoodGames
	GoodFirearms
	GoodMedicine
	GoodMachines
	GoodNarcotics
	GoodRobots
)

// TradeGoodCount is the number of trade goods and the length of every cargo
// manifest array.
const TradeGoodCount = 10

// ShipType defines one hull design.
type ShipType struct {
	Name         string `yaml:"name"`
	CargoBays    int    `yaml:"cargo_bays"`
	WeaponSlots  int    `yaml:"weapon_slots"`
	ShieldSlots  int    `yaml:"shield_slots"`
	GadgetSlots  int    `yaml:"gadget_slots"`
	CrewQuarters int    `yaml:"crew_quarters"`
	FuelTanks    int    `yaml:"fuel_tanks"`
	HullStrength int    `yaml:"hull_strength"`
	Price        int    `yaml:"price"`
}

// Validate checks that the ship type satisfies basic invariants.
//
// Postcondition: Returns nil iff Name is non-empty and all numeric fields
// are non-negative with HullStrength >= 1.
func (s ShipType) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("ship type: name must not be empty")
	}
	if s.HullStrength < 1 {
		return fmt.Errorf("ship type %q: hull_strength must be >= 1", s.Name)
	}
	if s.CargoBays < 0 || s.WeaponSlots < 0 || s.ShieldSlots < 0 ||
		s.GadgetSlots < 0 || s.CrewQuarters < 0 || s.FuelTanks < 0 || s.Price < 0 {
		return fmt.Errorf("ship type %q: negative field", s.Name)
	}
	return nil
}

// Weapon defines one laser model.
type Weapon struct {
	Name  string `yaml:"name"`
	Power int    `yaml:"power"`
	Price int    `yaml:"price"`
}

// Validate checks weapon invariants.
func (w Weapon) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("weapon: name must not be empty")
	}
	if w.Power < 1 {
		return fmt.Errorf("weapon %q: power must be >= 1", w.Name)
	}
	return nil
}

// Shield defines one shield generator model. Power is the full charge a
// fresh generator carries.
type Shield struct {
	Name  string `yaml:"name"`
	Power int    `yaml:"power"`
	Price int    `yaml:"price"`
}

// Validate checks shield invariants.
func (s Shield) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("shield: name must not be empty")
	}
	if s.Power < 1 {
		return fmt.Errorf("shield %q: power must be >= 1", s.Name)
	}
	return nil
}

// Gadget defines one ship gadget.
type Gadget struct {
	Name  string `yaml:"name"`
	Price int    `yaml:"price"`
}

// Validate checks gadget invariants.
func (g Gadget) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("gadget: name must not be empty")
	}
	return nil
}

// TradeGood defines one tradeable commodity. Illegal goods are what police
// inspections look for.
type TradeGood struct {
	Name      string `yaml:"name"`
	BasePrice int    `yaml:"base_price"`
	Illegal   bool   `yaml:"illegal"`
}

// Validate checks trade good invariants.
func (t TradeGood) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("trade good: name must not be empty")
	}
	if t.BasePrice < 0 {
		return fmt.Errorf("trade good %q: base_price must be >= 0", t.Name)
	}
	return nil
}

// Tables aggregates every static lookup table. The zero value is not
// usable; build one with DefaultTables or LoadTables.
type Tables struct {
	Ships   []ShipType  `yaml:"ships"`
	Weapons []Weapon    `yaml:"weapons"`
	Shields []Shield    `yaml:"shields"`
	Gadgets []Gadget    `yaml:"gadgets"`
	Goods   []TradeGood `yaml:"goods"`
}

// Ship returns the ship type for index i.
//
// Precondition: 0 <= i < len(Ships). Out-of-range indices return the Flea,
// the defensive fallback the engine relies on when an opponent was never
// configured.
func (t *Tables) Ship(i int) ShipType {
	if i < 0 || i >= len(t.Ships) {
		return t.Ships[ShipFlea]
	}
	return t.Ships[i]
}

// Weapon returns the weapon for slot index i, and false for an empty
// slot (-1) or out-of-range index.
func (t *Tables) Weapon(i int) (Weapon, bool) {
	if i < 0 || i >= len(t.Weapons) {
		return Weapon{}, false
	}
	return t.Weapons[i], true
}

// Shield returns the shield for slot index i, and false for an empty
// slot (-1) or out-of-range index.
func (t *Tables) Shield(i int) (Shield, bool) {
	if i < 0 || i >= len(t.Shields) {
		return Shield{}, false
	}
	return t.Shields[i], true
}

// Gadget returns the gadget for slot index i, and false for an empty
// slot (-1) or out-of-range index.
func (t *Tables) Gadget(i int) (Gadget, bool) {
	if i < 0 || i >= len(t.Gadgets) {
		return Gadget{}, false
	}
	return t.Gadgets[i], true
}

// Good returns the trade good for index i.
//
// Precondition: 0 <= i < len(Goods). Out-of-range indices return Water.
func (t *Tables) Good(i int) TradeGood {
	if i < 0 || i >= len(t.Goods) {
		return t.Goods[GoodWater]
	}
	return t.Goods[i]
}

// Validate checks every entry in every table.
//
// Postcondition: Returns nil iff all entries validate and the good count
// matches TradeGoodCount.
func (t *Tables) Validate() error {
	if len(t.Ships) == 0 {
		return fmt.Errorf("tables: at least one ship type is required")
	}
	for i, s := range t.Ships {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("tables: ship[%d]: %w", i, err)
		}
	}
	for i, w := range t.Weapons {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("tables: weapon[%d]: %w", i, err)
		}
	}
	for i, s := range t.Shields {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("tables: shield[%d]: %w", i, err)
		}
	}
	for i, g := range t.Gadgets {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("tables: gadget[%d]: %w", i, err)
		}
	}
	if len(t.Goods) != TradeGoodCount {
		return fmt.Errorf("tables: expected %d trade goods, got %d", TradeGoodCount, len(t.Goods))
	}
	for i, g := range t.Goods {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("tables: good[%d]: %w", i, err)
		}
	}
	return nil
}

// DefaultTables returns the built-in static tables.
//
// Postcondition: The returned Tables pass Validate.
func DefaultTables() *Tables {
	return &Tables{
		Ships: []ShipType{
			{Name: "Flea", CargoBays: 10, WeaponSlots: 0, ShieldSlots: 0, GadgetSlots: 0, CrewQuarters: 1, FuelTanks: 20, HullStrength: 25, Price: 2000},
			{Name: "Gnat", CargoBays: 15, WeaponSlots: 1, ShieldSlots: 0, GadgetSlots: 1, CrewQuarters: 1, FuelTanks: 14, HullStrength: 100, Price: 10000},
			{Name: "Firefly", CargoBays: 20, WeaponSlots: 1, ShieldSlots: 1, GadgetSlots: 1, CrewQuarters: 1, FuelTanks: 17, HullStrength: 100, Price: 25000},
			{Name: "Mosquito", CargoBays: 15, WeaponSlots: 2, ShieldSlots: 1, GadgetSlots: 1, CrewQuarters: 1, FuelTanks: 13, HullStrength: 100, Price: 30000},
			{Name: "Bumblebee", CargoBays: 25, WeaponSlots: 1, ShieldSlots: 2, GadgetSlots: 2, CrewQuarters: 2, FuelTanks: 15, HullStrength: 100, Price: 60000},
			{Name: "Beetle", CargoBays: 50, WeaponSlots: 0, ShieldSlots: 1, GadgetSlots: 1, CrewQuarters: 3, FuelTanks: 14, HullStrength: 50, Price: 80000},
			{Name: "Hornet", CargoBays: 20, WeaponSlots: 3, ShieldSlots: 2, GadgetSlots: 1, CrewQuarters: 2, FuelTanks: 16, HullStrength: 150, Price: 100000},
			{Name: "Grasshopper", CargoBays: 30, WeaponSlots: 2, ShieldSlots: 2, GadgetSlots: 3, CrewQuarters: 3, FuelTanks: 15, HullStrength: 150, Price: 150000},
			{Name: "Termite", CargoBays: 60, WeaponSlots: 1, ShieldSlots: 3, GadgetSlots: 2, CrewQuarters: 3, FuelTanks: 13, HullStrength: 200, Price: 225000},
			{Name: "Wasp", CargoBays: 35, WeaponSlots: 3, ShieldSlots: 2, GadgetSlots: 2, CrewQuarters: 3, FuelTanks: 14, HullStrength: 200, Price: 300000},
			{Name: "Space Monster", CargoBays: 0, WeaponSlots: 3, ShieldSlots: 0, GadgetSlots: 0, CrewQuarters: 0, FuelTanks: 1, HullStrength: 500, Price: 500000},
			{Name: "Dragonfly", CargoBays: 0, WeaponSlots: 2, ShieldSlots: 3, GadgetSlots: 2, CrewQuarters: 0, FuelTanks: 1, HullStrength: 10, Price: 500000},
			{Name: "Mantis", CargoBays: 0, WeaponSlots: 3, ShieldSlots: 1, GadgetSlots: 3, CrewQuarters: 3, FuelTanks: 1, HullStrength: 300, Price: 500000},
			{Name: "Scarab", CargoBays: 20, WeaponSlots: 2, ShieldSlots: 0, GadgetSlots: 0, CrewQuarters: 2, FuelTanks: 1, HullStrength: 400, Price: 500000},
			{Name: "Bottle", CargoBays: 0, WeaponSlots: 0, ShieldSlots: 0, GadgetSlots: 0, CrewQuarters: 0, FuelTanks: 1, HullStrength: 10, Price: 100},
		},
		Weapons: []Weapon{
			{Name: "Pulse laser", Power: 15, Price: 2000},
			{Name: "Beam laser", Power: 25, Price: 12500},
			{Name: "Military laser", Power: 35, Price: 35000},
			{Name: "Morgan's laser", Power: 85, Price: 50000},
		},
		Shields: []Shield{
			{Name: "Energy shield", Power: 100, Price: 5000},
			{Name: "Reflective shield", Power: 200, Price: 20000},
			{Name: "Lightning shield", Power: 350, Price: 45000},
		},
		Gadgets: []Gadget{
			{Name: "5 extra cargo bays", Price: 2500},
			{Name: "Auto-repair system", Price: 7500},
			{Name: "Navigating system", Price: 15000},
			{Name: "Targeting system", Price: 25000},
			{Name: "Cloaking device", Price: 100000},
		},
		Goods: []TradeGood{
			{Name: "Water", BasePrice: 30},
			{Name: "Furs", BasePrice: 250},
			{Name: "Food", BasePrice: 100},
			{Name: "Ore", BasePrice: 350},
			{Name: "Games", BasePrice: 250},
			{Name: "Firearms", BasePrice: 1250, Illegal: true},
			{Name: "Medicine", BasePrice: 650},
			{Name: "Machines", BasePrice: 900},
			{Name: "Narcotics", BasePrice: 3500, Illegal: true},
			{Name: "Robots", BasePrice: 5000},
		},
	}
}
