package plunder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/startrader/startrader/internal/game/data"
	"github.com/startrader/startrader/internal/game/encounter"
	"github.com/startrader/startrader/internal/game/plunder"
	"github.com/startrader/startrader/internal/game/session"
)

func newState(t *testing.T, tables *data.Tables) *session.State {
	t.Helper()
	s := session.NewState(tables, "Test", session.DifficultyNormal)
	s.Opponent = session.EmptyShip(tables, data.ShipFirefly)
	return s
}

func TestSession_CanPlunder(t *testing.T) {
	tables := data.DefaultTables()

	t.Run("opponent with cargo and free bays", func(t *testing.T) {
		s := newState(t, tables)
		s.Opponent.Cargo[data.GoodFurs] = 3
		res := plunder.New(tables, encounter.CategoryPirate).CanPlunder(s)
		assert.True(t, res.Success)
	})

	t.Run("empty opponent hold", func(t *testing.T) {
		s := newState(t, tables)
		res := plunder.New(tables, encounter.CategoryPirate).CanPlunder(s)
		require.False(t, res.Success)
		assert.Contains(t, res.Message, "empty")
	})

	t.Run("full commander hold", func(t *testing.T) {
		s := newState(t, tables)
		s.Opponent.Cargo[data.GoodFurs] = 3
		cap := s.Ship.CargoCapacity(tables)
		s.Ship.Cargo[data.GoodWater] = cap
		res := plunder.New(tables, encounter.CategoryPirate).CanPlunder(s)
		require.False(t, res.Success)
		assert.Contains(t, res.Message, "full")
	})
}

func TestSession_PlunderCargo(t *testing.T) {
	tables := data.DefaultTables()

	t.Run("clamps to opponent quantity", func(t *testing.T) {
		s := newState(t, tables)
		s.Opponent.Cargo[data.GoodFood] = 4
		p := plunder.New(tables, encounter.CategoryPirate)

		res := p.PlunderCargo(s, data.GoodFood, 10)
		require.True(t, res.Success)
		assert.Equal(t, 4, res.Moved)
		assert.Equal(t, 0, s.Opponent.Cargo[data.GoodFood])
		assert.Equal(t, 4, s.Ship.Cargo[data.GoodFood])
	})

	t.Run("clamps to free bays", func(t *testing.T) {
		s := newState(t, tables)
		free := s.Ship.FreeCargoBays(tables)
		s.Opponent.Cargo[data.GoodOre] = free + 7
		p := plunder.New(tables, encounter.CategoryPirate)

		res := p.PlunderCargo(s, data.GoodOre, free+7)
		require.True(t, res.Success)
		assert.Equal(t, free, res.Moved)
		assert.Equal(t, 7, s.Opponent.Cargo[data.GoodOre])
		assert.Equal(t, 0, s.Ship.FreeCargoBays(tables))
	})

	t.Run("rejects bad item index", func(t *testing.T) {
		s := newState(t, tables)
		s.Opponent.Cargo[data.GoodFood] = 1
		p := plunder.New(tables, encounter.CategoryPirate)
		assert.False(t, p.PlunderCargo(s, -1, 1).Success)
		assert.False(t, p.PlunderCargo(s, data.TradeGoodCount, 1).Success)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		s := newState(t, tables)
		s.Opponent.Cargo[data.GoodFood] = 1
		p := plunder.New(tables, encounter.CategoryPirate)
		assert.False(t, p.PlunderCargo(s, data.GoodFood, 0).Success)
	})
}

func TestSession_PlunderCargo_Conservation(t *testing.T) {
	tables := data.DefaultTables()
	rapid.Check(t, func(t *rapid.T) {
		s := session.NewState(tables, "Test", session.DifficultyNormal)
		s.Opponent = session.EmptyShip(tables, data.ShipFirefly)

		item := rapid.IntRange(0, data.TradeGoodCount-1).Draw(t, "item")
		held := rapid.IntRange(0, 30).Draw(t, "held")
		asked := rapid.IntRange(1, 30).Draw(t, "asked")
		s.Opponent.Cargo[item] = held

		before := s.Opponent.Cargo[item] + s.Ship.Cargo[item]
		res := plunder.New(tables, encounter.CategoryPirate).PlunderCargo(s, item, asked)
		after := s.Opponent.Cargo[item] + s.Ship.Cargo[item]

		assert.Equal(t, before, after, "units must be conserved")
		if res.Success {
			assert.Greater(t, res.Moved, 0)
			assert.LessOrEqual(t, res.Moved, held)
			assert.LessOrEqual(t, s.Ship.TotalCargo(), s.Ship.CargoCapacity(tables))
		}
	})
}

func TestSession_PlunderAllCargo(t *testing.T) {
	tables := data.DefaultTables()
	s := newState(t, tables)
	s.Opponent.Cargo[data.GoodGames] = 5

	res := plunder.New(tables, encounter.CategoryPirate).PlunderAllCargo(s, data.GoodGames)
	require.True(t, res.Success)
	assert.Equal(t, 5, res.Moved)
	assert.Equal(t, 0, s.Opponent.Cargo[data.GoodGames])
}

func TestSession_Finish(t *testing.T) {
	tables := data.DefaultTables()

	t.Run("trader victim costs more standing than pirate", func(t *testing.T) {
		st := newState(t, tables)
		plunder.New(tables, encounter.CategoryTrader).Finish(st)
		sp := newState(t, tables)
		plunder.New(tables, encounter.CategoryPirate).Finish(sp)

		assert.Equal(t, -2, st.PoliceRecordScore)
		assert.Equal(t, -1, sp.PoliceRecordScore)
		assert.Less(t, st.PoliceRecordScore, sp.PoliceRecordScore)
	})

	t.Run("second call is a no-op", func(t *testing.T) {
		s := newState(t, tables)
		p := plunder.New(tables, encounter.CategoryPirate)

		require.True(t, p.Finish(s).Success)
		res := p.Finish(s)
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "already")
		assert.Equal(t, -1, s.PoliceRecordScore)
	})
}
