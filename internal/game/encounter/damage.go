package encounter

import (
	"math"

	"github.com/startrader/startrader/internal/game/data"
	"github.com/startrader/startrader/internal/game/rng"
	"github.com/startrader/startrader/internal/game/session"
)

// CalculateDamage computes one attack's damage from attacker to defender:
// raw damage is weapon power minus half the defender's remaining shield
// charge, scaled by a uniform factor in [0.5, 1.5) and floored. An armed
// attacker always lands at least 1; an unarmed attacker lands 0.
//
// Precondition: attacker, defender, tables, and src must be non-nil.
// Postcondition: Returns 0 iff the attacker has no weapon; otherwise >= 1.
func CalculateDamage(attacker, defender *session.Ship, tables *data.Tables, src rng.Source) int {
	if !attacker.HasWeapon() {
		return 0
	}
	raw := float64(attacker.WeaponPower(tables)) - 0.5*float64(defender.ShieldPower())
	dmg := int(math.Floor(raw * (0.5 + src.Float64())))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}
