package encounter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/startrader/startrader/internal/game/data"
	"github.com/startrader/startrader/internal/game/encounter"
	"github.com/startrader/startrader/internal/game/session"
)

func TestCalculateBounty(t *testing.T) {
	tables := data.DefaultTables()

	t.Run("gnat with pulse laser", func(t *testing.T) {
		opp := session.EmptyShip(tables, data.ShipGnat)
		opp.Weapon[0] = data.WeaponPulseLaser
		// (10000 + 2000) / 200 = 60; 60 / 25 = 2; 2 * 25 = 50.
		assert.Equal(t, 50, encounter.CalculateBounty(&opp, tables))
	})

	t.Run("cheap hull clamps to the minimum", func(t *testing.T) {
		opp := session.EmptyShip(tables, data.ShipFlea)
		assert.Equal(t, 25, encounter.CalculateBounty(&opp, tables))
	})

	t.Run("cargo does not raise the price", func(t *testing.T) {
		bare := session.EmptyShip(tables, data.ShipWasp)
		laden := session.EmptyShip(tables, data.ShipWasp)
		laden.Cargo[data.GoodRobots] = 30
		assert.Equal(t, encounter.CalculateBounty(&bare, tables), encounter.CalculateBounty(&laden, tables))
	})
}

func TestCalculateBounty_Properties(t *testing.T) {
	tables := data.DefaultTables()
	rapid.Check(t, func(t *rapid.T) {
		opp := session.EmptyShip(tables, rapid.IntRange(data.ShipFlea, data.ShipBottle).Draw(t, "ship"))
		for i := 0; i < session.SlotCount; i++ {
			if rapid.Bool().Draw(t, "armed") {
				opp.Weapon[i] = rapid.IntRange(data.WeaponPulseLaser, data.WeaponMorgansLaser).Draw(t, "weapon")
			}
			if rapid.Bool().Draw(t, "shielded") {
				opp.Shield[i] = rapid.IntRange(data.ShieldEnergy, data.ShieldLightning).Draw(t, "shield")
			}
		}

		bounty := encounter.CalculateBounty(&opp, tables)
		assert.Zero(t, bounty%25, "bounty must be a multiple of 25")
		assert.GreaterOrEqual(t, bounty, 25)
		assert.LessOrEqual(t, bounty, 2500)
		// Pure: a second call sees the same ship and returns the same value.
		assert.Equal(t, bounty, encounter.CalculateBounty(&opp, tables))
	})
}

func TestVictoryConsequences(t *testing.T) {
	tables := data.DefaultTables()

	newState := func() *session.State {
		s := session.NewState(tables, "Test", session.DifficultyNormal)
		s.Opponent = session.EmptyShip(tables, data.ShipGnat)
		s.Opponent.Weapon[0] = data.WeaponPulseLaser
		return s
	}

	t.Run("pirate kill pays the bounty", func(t *testing.T) {
		s := newState()
		before := s.Credits
		bounty, msg := encounter.VictoryConsequences(s, encounter.PirateAttack, tables)

		assert.Equal(t, 50, bounty)
		assert.Equal(t, before+50, s.Credits)
		assert.Equal(t, 1, s.PirateKills)
		assert.Equal(t, 1, s.PoliceRecordScore)
		assert.Contains(t, msg, "bounty")
	})

	t.Run("police kill pays nothing and stains the record", func(t *testing.T) {
		s := newState()
		before := s.Credits
		bounty, _ := encounter.VictoryConsequences(s, encounter.PoliceAttack, tables)

		assert.Zero(t, bounty)
		assert.Equal(t, before, s.Credits)
		assert.Equal(t, 1, s.PoliceKills)
		assert.Equal(t, -6, s.PoliceRecordScore)
	})

	t.Run("trader kill", func(t *testing.T) {
		s := newState()
		bounty, _ := encounter.VictoryConsequences(s, encounter.TraderAttack, tables)
		assert.Zero(t, bounty)
		assert.Equal(t, 1, s.TraderKills)
		assert.Equal(t, -4, s.PoliceRecordScore)
	})

	t.Run("monster kill settles the quest", func(t *testing.T) {
		s := newState()
		s.Opponent = session.EmptyShip(tables, data.ShipSpaceMonster)
		encounter.VictoryConsequences(s, encounter.MonsterAttack, tables)
		assert.Equal(t, session.MonsterDestroyed, s.SpacemonsterStatus)
		assert.Equal(t, 1, s.PirateKills)
	})

	t.Run("famous captain floors reputation", func(t *testing.T) {
		s := newState()
		s.EncounterType = int(encounter.CaptainAhab)
		s.ReputationScore = 10
		encounter.VictoryConsequences(s, encounter.CaptainAhab, tables)
		assert.GreaterOrEqual(t, s.ReputationScore, 300)
		assert.NotZero(t, s.VeryRareEncounter&session.AlreadyAhab)
	})

	t.Run("famous captain above the floor gets the bonus", func(t *testing.T) {
		s := newState()
		s.EncounterType = int(encounter.CaptainHuie)
		s.ReputationScore = 350
		encounter.VictoryConsequences(s, encounter.CaptainHuie, tables)
		assert.GreaterOrEqual(t, s.ReputationScore, 450)
	})

	t.Run("reputation rises with the opponent hull", func(t *testing.T) {
		small := newState()
		small.Opponent = session.EmptyShip(tables, data.ShipGnat)
		encounter.VictoryConsequences(small, encounter.PirateAttack, tables)

		big := newState()
		big.Opponent = session.EmptyShip(tables, data.ShipWasp)
		encounter.VictoryConsequences(big, encounter.PirateAttack, tables)

		assert.Greater(t, big.ReputationScore, small.ReputationScore)
	})
}

func TestHandleScarabDestroyed(t *testing.T) {
	tables := data.DefaultTables()

	t.Run("grants the hull bonus once", func(t *testing.T) {
		s := session.NewState(tables, "Test", session.DifficultyNormal)
		s.ScarabStatus = session.ScarabDestroyed
		before := s.Ship.Hull

		res := encounter.HandleScarabDestroyed(s)
		require.True(t, res.Success)
		assert.Equal(t, before+10, s.Ship.Hull)
		assert.Equal(t, session.ScarabUpgradePerformed, s.ScarabStatus)

		again := encounter.HandleScarabDestroyed(s)
		assert.False(t, again.Success)
		assert.Equal(t, before+10, s.Ship.Hull, "repeat calls must not stack")
	})

	t.Run("requires the kill first", func(t *testing.T) {
		s := session.NewState(tables, "Test", session.DifficultyNormal)
		res := encounter.HandleScarabDestroyed(s)
		assert.False(t, res.Success)
	})

	t.Run("caps at the hull ceiling", func(t *testing.T) {
		s := session.NewState(tables, "Test", session.DifficultyNormal)
		s.ScarabStatus = session.ScarabDestroyed
		s.Ship.Hull = 195
		encounter.HandleScarabDestroyed(s)
		assert.Equal(t, 200, s.Ship.Hull)
	})
}

func TestCalculateFine(t *testing.T) {
	tests := []struct {
		name                       string
		netWorth, difficulty, want int
	}{
		{"poor commander clamps to minimum", 0, session.DifficultyNormal, 100},
		{"normal difficulty divides by 50", 10000, session.DifficultyNormal, 200},
		{"rounds up to the next 50", 10100, session.DifficultyNormal, 250},
		{"harder difficulty fines more", 10000, session.DifficultyImpossible, 350},
		{"rich commander clamps to maximum", 100000000, session.DifficultyNormal, 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encounter.CalculateFine(tt.netWorth, tt.difficulty))
		})
	}

	rapid.Check(t, func(t *rapid.T) {
		fine := encounter.CalculateFine(
			rapid.IntRange(0, 10_000_000).Draw(t, "netWorth"),
			rapid.IntRange(session.DifficultyBeginner, session.DifficultyImpossible).Draw(t, "difficulty"),
		)
		assert.Zero(t, fine%50)
		assert.GreaterOrEqual(t, fine, 100)
		assert.LessOrEqual(t, fine, 10000)
	})
}

func TestCalculateBribe(t *testing.T) {
	t.Run("scales with difficulty and bribe level", func(t *testing.T) {
		// Normal: divisor (10 + 5*2) * 1 = 20; 40000/20 = 2000.
		assert.Equal(t, 2000, encounter.CalculateBribe(40000, session.DifficultyNormal, 1, false))
		// Doubling the bribe level halves the ask.
		assert.Equal(t, 1000, encounter.CalculateBribe(40000, session.DifficultyNormal, 2, false))
	})

	t.Run("flagged cargo multiplies the ask", func(t *testing.T) {
		clean := encounter.CalculateBribe(40000, session.DifficultyEasy, 1, false)
		dirty := encounter.CalculateBribe(40000, session.DifficultyEasy, 1, true)
		assert.Equal(t, clean*2, dirty)

		cleanHard := encounter.CalculateBribe(40000, session.DifficultyNormal, 1, false)
		dirtyHard := encounter.CalculateBribe(40000, session.DifficultyNormal, 1, true)
		assert.Equal(t, cleanHard*3, dirtyHard)
	})

	t.Run("treats a non-positive bribe level as one", func(t *testing.T) {
		assert.Equal(t,
			encounter.CalculateBribe(40000, session.DifficultyNormal, 1, false),
			encounter.CalculateBribe(40000, session.DifficultyNormal, 0, false),
		)
	})

	rapid.Check(t, func(t *rapid.T) {
		bribe := encounter.CalculateBribe(
			rapid.IntRange(0, 10_000_000).Draw(t, "netWorth"),
			rapid.IntRange(session.DifficultyBeginner, session.DifficultyImpossible).Draw(t, "difficulty"),
			rapid.IntRange(1, 5).Draw(t, "level"),
			rapid.Bool().Draw(t, "flagged"),
		)
		assert.Zero(t, bribe%100)
		assert.GreaterOrEqual(t, bribe, 100)
		assert.LessOrEqual(t, bribe, 10000)
	})
}
