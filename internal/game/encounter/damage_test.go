package encounter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/startrader/startrader/internal/game/data"
	"github.com/startrader/startrader/internal/game/encounter"
	"github.com/startrader/startrader/internal/game/rng"
	"github.com/startrader/startrader/internal/game/session"
)

func TestCalculateDamage(t *testing.T) {
	tables := data.DefaultTables()

	t.Run("pulse laser against bare hull", func(t *testing.T) {
		attacker := session.EmptyShip(tables, data.ShipGnat)
		attacker.Weapon[0] = data.WeaponPulseLaser
		defender := session.EmptyShip(tables, data.ShipGnat)

		// Scale factor 0.5 + 0.5 = 1.0, so damage equals weapon power.
		src := &rng.Fixed{Floats: []float64{0.5}}
		assert.Equal(t, 15, encounter.CalculateDamage(&attacker, &defender, tables, src))
	})

	t.Run("unarmed attacker deals nothing", func(t *testing.T) {
		attacker := session.EmptyShip(tables, data.ShipFlea)
		defender := session.EmptyShip(tables, data.ShipGnat)

		src := &rng.Fixed{Floats: []float64{0.99}}
		assert.Equal(t, 0, encounter.CalculateDamage(&attacker, &defender, tables, src))
	})

	t.Run("heavy shields floor armed damage at one", func(t *testing.T) {
		attacker := session.EmptyShip(tables, data.ShipGnat)
		attacker.Weapon[0] = data.WeaponPulseLaser
		defender := session.EmptyShip(tables, data.ShipFirefly)
		defender.Shield[0] = data.ShieldEnergy
		defender.ChargeShields(tables)

		// 15 - 0.5*100 is negative; an armed hit still lands 1.
		src := &rng.Fixed{Floats: []float64{0.5}}
		assert.Equal(t, 1, encounter.CalculateDamage(&attacker, &defender, tables, src))
	})

	t.Run("scale factor is floored", func(t *testing.T) {
		attacker := session.EmptyShip(tables, data.ShipGnat)
		attacker.Weapon[0] = data.WeaponPulseLaser
		defender := session.EmptyShip(tables, data.ShipGnat)

		// 15 * (0.5 + 0.9) = 21.0; 15 * (0.5 + 0.99) = 22.35 -> 22.
		src := &rng.Fixed{Floats: []float64{0.9, 0.99}}
		assert.Equal(t, 21, encounter.CalculateDamage(&attacker, &defender, tables, src))
		assert.Equal(t, 22, encounter.CalculateDamage(&attacker, &defender, tables, src))
	})
}

func TestCalculateDamage_ArmedAlwaysLands(t *testing.T) {
	tables := data.DefaultTables()
	rapid.Check(t, func(t *rapid.T) {
		attacker := session.EmptyShip(tables, data.ShipGnat)
		attacker.Weapon[0] = rapid.IntRange(data.WeaponPulseLaser, data.WeaponMorgansLaser).Draw(t, "weapon")

		defender := session.EmptyShip(tables, data.ShipWasp)
		if rapid.Bool().Draw(t, "shielded") {
			defender.Shield[0] = rapid.IntRange(data.ShieldEnergy, data.ShieldLightning).Draw(t, "shield")
			defender.ChargeShields(tables)
		}

		src := &rng.Fixed{Floats: []float64{rapid.Float64Range(0, 0.999).Draw(t, "roll")}}
		dmg := encounter.CalculateDamage(&attacker, &defender, tables, src)
		assert.GreaterOrEqual(t, dmg, 1, "an armed attacker must land at least 1")
	})
}
