// Package stats derives read-only kill summaries and achievement flags
// from a commander session. Nothing in here mutates state.
package stats

import "github.com/startrader/startrader/internal/game/session"

// Achievement thresholds.
const (
	centurionKills  = 100
	warmongerKills  = 500
	outlawKills     = 50
	scourgeKills    = 100
	cleanHandsKills = 50
)

// Summary is the per-category kill tally for one commander.
type Summary struct {
	PoliceKills int
	TraderKills int
	PirateKills int
	TotalKills  int
}

// Achievement identifies one combat milestone.
type Achievement string

const (
	// AchievementCenturion marks 100 or more total kills.
	AchievementCenturion Achievement = "centurion"
	// AchievementWarmonger marks 500 or more total kills.
	AchievementWarmonger Achievement = "warmonger"
	// AchievementOutlaw marks 50 or more police kills.
	AchievementOutlaw Achievement = "outlaw"
	// AchievementScourge marks 100 or more pirate kills.
	AchievementScourge Achievement = "scourge"
	// AchievementCleanHands marks 50 or more kills without a single trader
	// among them.
	AchievementCleanHands Achievement = "clean-hands"
)

// Summarize tallies the commander's kills by opponent category.
//
// Postcondition: TotalKills == PoliceKills + TraderKills + PirateKills.
func Summarize(s *session.State) Summary {
	return Summary{
		PoliceKills: s.PoliceKills,
		TraderKills: s.TraderKills,
		PirateKills: s.PirateKills,
		TotalKills:  s.PoliceKills + s.TraderKills + s.PirateKills,
	}
}

// Achievements returns every milestone the commander has reached, in a
// stable order. Milestones are not exclusive; a commander can hold all of
// them at once except that clean-hands requires zero trader kills.
func Achievements(s *session.State) []Achievement {
	sum := Summarize(s)

	var earned []Achievement
	if sum.TotalKills >= centurionKills {
		earned = append(earned, AchievementCenturion)
	}
	if sum.TotalKills >= warmongerKills {
		earned = append(earned, AchievementWarmonger)
	}
	if sum.PoliceKills >= outlawKills {
		earned = append(earned, AchievementOutlaw)
	}
	if sum.PirateKills >= scourgeKills {
		earned = append(earned, AchievementScourge)
	}
	if sum.TotalKills >= cleanHandsKills && sum.TraderKills == 0 {
		earned = append(earned, AchievementCleanHands)
	}
	return earned
}
