package encounter

// Action identifies what the commander does with the current encounter
// round. The zero value (ActionUnknown) is intentionally invalid.
type Action int

const (
	ActionUnknown Action = iota // zero value; intentionally invalid
	ActionAttack
	ActionFlee
	ActionIgnore
	ActionSubmit
	ActionBribe
	ActionYield
	ActionSurrender
	ActionPlunder
	ActionTrade
	ActionBoard
	ActionDrink
	// ActionContinue is the only legal action when no encounter is active.
	ActionContinue
)

// String returns the human-readable name of the Action.
func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionFlee:
		return "flee"
	case ActionIgnore:
		return "ignore"
	case ActionSubmit:
		return "submit"
	case ActionBribe:
		return "bribe"
	case ActionYield:
		return "yield"
	case ActionSurrender:
		return "surrender"
	case ActionPlunder:
		return "plunder"
	case ActionTrade:
		return "trade"
	case ActionBoard:
		return "board"
	case ActionDrink:
		return "drink"
	case ActionContinue:
		return "continue"
	default:
		return "unknown"
	}
}

// AvailableActions returns the legal action set for the encounter type.
// The table is total: every defined type yields a non-empty set, and
// TypeNone yields exactly [ActionContinue].
func AvailableActions(t Type) []Action {
	switch t {
	case TypeNone:
		return []Action{ActionContinue}
	case PoliceInspect:
		return []Action{ActionAttack, ActionFlee, ActionSubmit, ActionBribe}
	case PostMariePolice:
		return []Action{ActionAttack, ActionFlee, ActionYield, ActionBribe}
	case PoliceIgnore, PoliceFlee,
		PirateIgnore, PirateFlee,
		MonsterIgnore, DragonflyIgnore, ScarabIgnore:
		return []Action{ActionAttack, ActionIgnore}
	case PoliceAttack, PirateAttack,
		MonsterAttack, DragonflyAttack, ScarabAttack:
		return []Action{ActionAttack, ActionFlee, ActionSurrender}
	case PirateSurrender:
		return []Action{ActionAttack, ActionPlunder}
	case TraderSell, TraderBuy:
		return []Action{ActionAttack, ActionIgnore, ActionTrade}
	case TraderAttack:
		return []Action{ActionAttack, ActionFlee}
	case TraderIgnore, TraderFlee, TraderSurrender:
		return []Action{ActionAttack, ActionIgnore}
	case MarieCeleste:
		return []Action{ActionBoard, ActionIgnore}
	case BottleOld, BottleGood:
		return []Action{ActionDrink, ActionIgnore}
	case CaptainAhab, CaptainConrad, CaptainHuie, FamousCaptainAttack:
		return []Action{ActionAttack, ActionFlee, ActionIgnore}
	default:
		// Undefined codes fall back to the cancel-only set so the caller
		// can always leave the encounter.
		return []Action{ActionIgnore}
	}
}

// CanPerform reports whether a is in the legal action set for t.
func CanPerform(t Type, a Action) bool {
	for _, legal := range AvailableActions(t) {
		if legal == a {
			return true
		}
	}
	return false
}
