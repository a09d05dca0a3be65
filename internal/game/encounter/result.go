package encounter

// Outcome classifies how a resolved round left the encounter.
type Outcome int

const (
	// OutcomeOngoing means the encounter continues into another round.
	OutcomeOngoing Outcome = iota
	// OutcomeVictory means the opponent's ship was destroyed.
	OutcomeVictory
	// OutcomeDefeat means the commander's ship was destroyed with no
	// escape pod; the result also carries GameOver.
	OutcomeDefeat
	// OutcomeFled means the commander escaped.
	OutcomeFled
	// OutcomeSurrendered means the commander gave up.
	OutcomeSurrendered
	// OutcomeEscapedPod means the ship was lost but the pod fired.
	OutcomeEscapedPod
	// OutcomeEnded means the encounter closed without combat resolution
	// (ignore, submit, bribe, trade, board, drink).
	OutcomeEnded
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeFled:
		return "fled"
	case OutcomeSurrendered:
		return "surrendered"
	case OutcomeEscapedPod:
		return "escape pod"
	case OutcomeEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Result is the value every public engine operation returns. Callers
// branch on Success; game rules never surface as Go errors.
type Result struct {
	// Success is false for illegal actions and insufficient resources;
	// a false result guarantees no state was mutated.
	Success bool
	// Message is the human-readable narration for the round.
	Message string
	// Outcome classifies the encounter's state after this round.
	Outcome Outcome
	// GameOver is true when the commander died with no escape pod.
	GameOver bool
	// Bounty is the credit reward applied this round, if any.
	Bounty int
}

// failure returns a no-mutation failure Result with the given message.
func failure(message string) Result {
	return Result{Success: false, Message: message, Outcome: OutcomeOngoing}
}
