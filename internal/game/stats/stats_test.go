package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/startrader/startrader/internal/game/data"
	"github.com/startrader/startrader/internal/game/session"
	"github.com/startrader/startrader/internal/game/stats"
)

func TestSummarize(t *testing.T) {
	s := session.NewState(data.DefaultTables(), "Test", session.DifficultyNormal)
	s.PoliceKills = 3
	s.TraderKills = 1
	s.PirateKills = 7

	sum := stats.Summarize(s)
	assert.Equal(t, 3, sum.PoliceKills)
	assert.Equal(t, 1, sum.TraderKills)
	assert.Equal(t, 7, sum.PirateKills)
	assert.Equal(t, 11, sum.TotalKills)
}

func TestSummarize_TotalIsSum(t *testing.T) {
	tables := data.DefaultTables()
	rapid.Check(t, func(t *rapid.T) {
		s := session.NewState(tables, "Test", session.DifficultyNormal)
		s.PoliceKills = rapid.IntRange(0, 1000).Draw(t, "police")
		s.TraderKills = rapid.IntRange(0, 1000).Draw(t, "trader")
		s.PirateKills = rapid.IntRange(0, 1000).Draw(t, "pirate")

		sum := stats.Summarize(s)
		assert.Equal(t, sum.PoliceKills+sum.TraderKills+sum.PirateKills, sum.TotalKills)
	})
}

func TestAchievements(t *testing.T) {
	tables := data.DefaultTables()

	tests := []struct {
		name                   string
		police, trader, pirate int
		want                   []stats.Achievement
	}{
		{
			name: "fresh commander has none",
		},
		{
			name:   "centurion at 100 total",
			police: 40, trader: 30, pirate: 30,
			want: []stats.Achievement{stats.AchievementCenturion},
		},
		{
			name:   "warmonger implies centurion",
			trader: 500,
			want:   []stats.Achievement{stats.AchievementCenturion, stats.AchievementWarmonger},
		},
		{
			name:   "outlaw at 50 police kills",
			police: 50,
			want:   []stats.Achievement{stats.AchievementOutlaw, stats.AchievementCleanHands},
		},
		{
			name:   "scourge at 100 pirate kills",
			pirate: 100,
			want: []stats.Achievement{
				stats.AchievementCenturion,
				stats.AchievementScourge,
				stats.AchievementCleanHands,
			},
		},
		{
			name:   "single trader kill spoils clean hands",
			police: 49, trader: 1,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := session.NewState(tables, "Test", session.DifficultyNormal)
			s.PoliceKills = tt.police
			s.TraderKills = tt.trader
			s.PirateKills = tt.pirate
			assert.Equal(t, tt.want, stats.Achievements(s))
		})
	}
}
