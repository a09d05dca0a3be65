package encounter

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/startrader/startrader/internal/game/data"
	"github.com/startrader/startrader/internal/game/rng"
	"github.com/startrader/startrader/internal/game/session"
)

// fleeSuccessChance is the fixed probability that fleeing works.
const fleeSuccessChance = 0.7

// Escape pod recovery constants.
const (
	escapePodCost       = 500
	flatInsurancePayout = 500
	escapePodDays       = 3
)

// Bottle effect bounds.
const (
	bottleHullDelta = 10
	bottleHullCap   = 100
	bottleHullFloor = 1
)

// TradeResult is what the orbital trading collaborator reports back. The
// engine treats Reason as opaque user-facing text.
type TradeResult struct {
	Success bool
	Reason  string
}

// OrbitalTrader is the external collaborator invoked for the trade
// action. playerBuys is true when the trader is selling to the commander.
type OrbitalTrader interface {
	TradeInOrbit(s *session.State, playerBuys bool) TradeResult
}

// Hooks decorates encounter messages from an external scripting layer.
// Implementations must never mutate game state.
type Hooks interface {
	// CallHook invokes the named hook with string fields and returns a
	// replacement message when the hook produced one.
	CallHook(hook string, fields map[string]string) (string, bool)
}

// Engine drives active encounters round by round. It owns no session
// state: the commander State is passed by reference into every call and
// mutated in place, and callers must serialize calls per State.
type Engine struct {
	tables *data.Tables
	src    rng.Source
	logger *zap.Logger

	// Trader handles the trade action. nil means trading in orbit is
	// unavailable. Injected after construction.
	Trader OrbitalTrader
	// Hooks optionally decorates messages. nil means no scripting.
	Hooks Hooks
}

// NewEngine creates an Engine.
//
// Precondition: tables, src, and logger must be non-nil.
func NewEngine(tables *data.Tables, src rng.Source, logger *zap.Logger) *Engine {
	return &Engine{tables: tables, src: src, logger: logger}
}

// Begin opens an encounter of the given type: it creates the transient
// Session, stamps the commander's EncounterType, and configures the
// opponent ship.
//
// Postcondition: For t != TypeNone the returned Session is Active and the
// opponent has a live hull. For TypeNone the Session is inactive and the
// commander is untouched.
func (e *Engine) Begin(s *session.State, t Type) *Session {
	sess := NewSession(t)
	if t == TypeNone {
		sess.Active = false
		return sess
	}

	s.EncounterType = int(t)
	e.configureOpponent(s, t)

	// A drifting bottle is scooped aboard as the encounter opens.
	if t == BottleGood || t == BottleOld {
		s.BottleAvailable = true
	}

	e.logger.Info("encounter started",
		zap.String("session", sess.ID),
		zap.Stringer("type", t),
		zap.String("opponent", e.tables.Ship(s.Opponent.Type).Name),
	)
	e.decorate("", "on_encounter_start", map[string]string{
		"type":     t.String(),
		"category": t.Category().String(),
	})
	return sess
}

// End closes the encounter: the sentinel is restored and the Session is
// deactivated. Flee, ignore, and surrender funnel through here, which is
// what makes them unconditional cancellations.
func (e *Engine) End(s *session.State, sess *Session) {
	s.EncounterType = int(TypeNone)
	sess.end()
}

// AvailableActions returns the legal actions for the session's encounter
// type, or the continue-only set for an inactive session.
func (e *Engine) AvailableActions(sess *Session) []Action {
	if sess == nil || !sess.Active {
		return AvailableActions(TypeNone)
	}
	return AvailableActions(sess.Type)
}

// CanPerform reports whether the action is legal for the session.
func (e *Engine) CanPerform(sess *Session, a Action) bool {
	if sess == nil || !sess.Active {
		return CanPerform(TypeNone, a)
	}
	return CanPerform(sess.Type, a)
}

// ResolveRound resolves one action against the active encounter. An
// illegal action fails without mutating anything. Within a round the
// commander's action always resolves before any opponent counter-action.
//
// Precondition: s must be non-nil; sess must come from Begin.
// Postcondition: On success the session log gains one entry. Terminal
// outcomes (victory, defeat, fled, ended) deactivate the session and
// restore the TypeNone sentinel on s.
func (e *Engine) ResolveRound(s *session.State, sess *Session, a Action) Result {
	if sess == nil || !sess.Active {
		if a == ActionContinue {
			return Result{Success: true, Outcome: OutcomeEnded, Message: "You continue your trip."}
		}
		return failure("There is no encounter to act on.")
	}
	if !CanPerform(sess.Type, a) {
		return failure(fmt.Sprintf("You cannot %s during a %s encounter.", a, sess.Type))
	}

	var res Result
	switch a {
	case ActionAttack:
		res = e.resolveAttack(s, sess)
	case ActionFlee:
		res = e.resolveFlee(s, sess)
	case ActionIgnore:
		res = e.resolveIgnore(s, sess)
	case ActionSubmit:
		res = e.resolveSubmit(s, sess)
	case ActionBribe:
		res = e.resolveBribe(s, sess)
	case ActionYield:
		res = e.resolveYield(s, sess)
	case ActionSurrender:
		e.End(s, sess)
		res = Result{Success: true, Outcome: OutcomeSurrendered, Message: "You surrender."}
	case ActionPlunder:
		res = Result{Success: true, Outcome: OutcomeOngoing, Message: "You dock with the surrendered ship and prepare to plunder its hold."}
	case ActionTrade:
		res = e.resolveTrade(s, sess)
	case ActionBoard:
		res = e.resolveBoard(s, sess)
	case ActionDrink:
		res = e.resolveDrink(s, sess)
	default:
		return failure(fmt.Sprintf("Action %s is not implemented.", a))
	}

	if res.Success {
		sess.record(a, res.Message)
	}
	return res
}

// resolveAttack runs one player attack and, when the opponent survives,
// the sequential counter-attack. First shots at police or traders carry a
// one-time police-record penalty and escalate the encounter to the
// family's attack sub-state.
func (e *Engine) resolveAttack(s *session.State, sess *Session) Result {
	e.ensureOpponent(s, sess)

	prev := sess.Type
	escalated := prev.attackEscalation()
	if escalated != prev {
		switch prev.Category() {
		case CategoryPolice:
			s.PoliceRecordScore += attackPoliceRecordDelta
		case CategoryTrader:
			// The shot that forced a surrender already paid the penalty.
			if prev != TraderSurrender {
				s.PoliceRecordScore += attackTraderRecordDelta
			}
		}
		sess.Type = escalated
		s.EncounterType = int(escalated)
	}

	opponentName := e.tables.Ship(s.Opponent.Type).Name
	dmg := CalculateDamage(&s.Ship, &s.Opponent, e.tables, e.src)
	s.Opponent.ApplyDamage(dmg)
	msg := fmt.Sprintf("You hit the %s for %d damage.", opponentName, dmg)
	if dmg == 0 {
		msg = fmt.Sprintf("You have no weapons to fire at the %s.", opponentName)
	}

	// Counter-attack is sequential: only a survivor shoots back.
	if s.Opponent.Hull > 0 {
		counter := CalculateDamage(&s.Opponent, &s.Ship, e.tables, e.src)
		if counter > 0 {
			s.Ship.ApplyDamage(counter)
			msg += fmt.Sprintf(" The %s hits you for %d damage.", opponentName, counter)
		}
	}

	res := e.checkTermination(s, sess, msg)
	if res.Outcome == OutcomeOngoing {
		e.checkOpponentSurrender(s, sess, &res)
	}
	return res
}

// checkOpponentSurrender moves a battered pirate or trader attacker into
// its surrendered sub-state. The opponent only considers it with less
// than half its hull left; a feared commander forces the decision more
// often, and a Mantis never strikes its colors.
func (e *Engine) checkOpponentSurrender(s *session.State, sess *Session, res *Result) {
	var surrendered Type
	switch sess.Type {
	case PirateAttack:
		if s.Opponent.Type == data.ShipMantis {
			return
		}
		surrendered = PirateSurrender
	case TraderAttack:
		surrendered = TraderSurrender
	default:
		return
	}

	if s.Opponent.Hull*2 >= e.tables.Ship(s.Opponent.Type).HullStrength {
		return
	}
	if e.src.Float64()*eliteThreshold >= float64(s.ReputationScore)+eliteThreshold/2 {
		return
	}

	sess.Type = surrendered
	s.EncounterType = int(surrendered)
	res.Message += fmt.Sprintf(" The %s signals its surrender.", e.tables.Ship(s.Opponent.Type).Name)
	e.logger.Debug("opponent surrendered",
		zap.String("session", sess.ID),
		zap.Stringer("type", surrendered),
	)
}

// resolveFlee attempts the fixed-chance escape. A failed attempt gives
// the opponent one free, uncontested attack.
func (e *Engine) resolveFlee(s *session.State, sess *Session) Result {
	e.ensureOpponent(s, sess)

	if e.src.Float64() < fleeSuccessChance {
		e.End(s, sess)
		return Result{Success: true, Outcome: OutcomeFled, Message: "You manage to escape."}
	}

	opponentName := e.tables.Ship(s.Opponent.Type).Name
	counter := CalculateDamage(&s.Opponent, &s.Ship, e.tables, e.src)
	msg := fmt.Sprintf("You fail to get away. The %s hits you for %d damage.", opponentName, counter)
	s.Ship.ApplyDamage(counter)
	return e.checkTermination(s, sess, msg)
}

// resolveIgnore ends the encounter with no message so the travel layer
// can narrate the continuation. Ignoring a famous captain is the one
// exception: it is a meeting, and the captain's lesson raises the
// matching commander skill.
func (e *Engine) resolveIgnore(s *session.State, sess *Session) Result {
	msg := ""
	if sess.Type.Category() == CategoryFamousCaptain {
		msg = e.famousCaptainLesson(s, sess.Type)
	}
	e.End(s, sess)
	return Result{Success: true, Outcome: OutcomeEnded, Message: msg}
}

// famousCaptainLesson applies the met captain's skill lesson, capped at
// the skill ceiling of 10.
func (e *Engine) famousCaptainLesson(s *session.State, t Type) string {
	raise := func(skill *int) {
		if *skill < 10 {
			*skill++
		}
	}
	switch t {
	case CaptainAhab:
		raise(&s.PilotSkill)
		return "Captain Ahab shares a few piloting tricks before moving on."
	case CaptainConrad:
		raise(&s.EngineerSkill)
		return "Captain Conrad walks your engineer through a few refinements."
	case CaptainHuie:
		raise(&s.TraderSkill)
		return "Captain Huie trades stories and sharpens your bargaining."
	default:
		return ""
	}
}

// resolveSubmit handles a police inspection. A dirty hold loses its
// illegal goods and pays the fine; a clean hold still takes the ported
// record drop.
func (e *Engine) resolveSubmit(s *session.State, sess *Session) Result {
	s.Inspected = true

	if s.CarryingIllegalGoods(e.tables) {
		removed := s.ConfiscateIllegalGoods(e.tables)
		fine := CalculateFine(s.NetWorth(e.tables), s.Difficulty)
		s.Pay(fine)
		s.WildStatus = 0
		s.PoliceRecordScore += caughtInspectionDelta
		e.End(s, sess)
		return Result{
			Success: true,
			Outcome: OutcomeEnded,
			Message: fmt.Sprintf("The police confiscate %d units of illegal cargo and fine you %d credits.", removed, fine),
		}
	}

	s.PoliceRecordScore += cleanInspectionDelta
	e.End(s, sess)
	return Result{
		Success: true,
		Outcome: OutcomeEnded,
		Message: "The police find nothing illegal in your cargo holds and apologize for the inconvenience.",
	}
}

// resolveBribe offers the inspector a bribe. Too little cash rejects the
// attempt outright with no mutation.
func (e *Engine) resolveBribe(s *session.State, sess *Session) Result {
	bribe := CalculateBribe(s.NetWorth(e.tables), s.Difficulty, sess.BribeLevel, s.CarryingIllegalGoods(e.tables))
	if s.Credits < bribe {
		return failure(fmt.Sprintf("The police demand %d credits and you cannot pay.", bribe))
	}
	s.Credits -= bribe
	e.End(s, sess)
	return Result{
		Success: true,
		Outcome: OutcomeEnded,
		Message: fmt.Sprintf("You hand over %d credits and the police wave you through.", bribe),
	}
}

// resolveYield hands the Marie Celeste loot over to the customs patrol:
// no fine, no record change, but the contraband and the bottle are gone.
func (e *Engine) resolveYield(s *session.State, sess *Session) Result {
	removed := s.ConfiscateIllegalGoods(e.tables)
	s.JustLootedMarie = false
	s.BottleAvailable = false
	e.End(s, sess)
	return Result{
		Success: true,
		Outcome: OutcomeEnded,
		Message: fmt.Sprintf("You yield %d units of cargo to the customs police and are free to go.", removed),
	}
}

// resolveTrade delegates to the orbital trading collaborator.
func (e *Engine) resolveTrade(s *session.State, sess *Session) Result {
	if e.Trader == nil {
		return failure("There is no way to trade in orbit here.")
	}
	tr := e.Trader.TradeInOrbit(s, sess.Type == TraderSell)
	if !tr.Success {
		return failure(tr.Reason)
	}
	e.End(s, sess)
	return Result{Success: true, Outcome: OutcomeEnded, Message: tr.Reason}
}

// resolveBoard boards the Marie Celeste. A full hold blocks the boarding
// party; otherwise the commander comes away with contraband and one
// unopened bottle.
func (e *Engine) resolveBoard(s *session.State, sess *Session) Result {
	if s.Ship.FreeCargoBays(e.tables) == 0 {
		return failure("Your cargo holds are full; there is no room for anything from the drifting ship.")
	}
	s.JustLootedMarie = true
	s.BottleAvailable = true
	e.End(s, sess)
	msg := e.decorate(
		"You board the Marie Celeste and find an old bottle among the abandoned cargo.",
		"on_board",
		map[string]string{"type": sess.Type.String()},
	)
	return Result{Success: true, Outcome: OutcomeEnded, Message: msg}
}

// resolveDrink opens the bottle: an even draw heals the hull, an odd one
// hurts it. Drinking consumes the bottle flag, so there must be one
// aboard.
func (e *Engine) resolveDrink(s *session.State, sess *Session) Result {
	if !s.BottleAvailable {
		return failure("There is no bottle aboard to open.")
	}

	var msg string
	if e.src.Intn(2) == 0 {
		if s.Ship.Hull < bottleHullCap {
			s.Ship.Hull += bottleHullDelta
			if s.Ship.Hull > bottleHullCap {
				s.Ship.Hull = bottleHullCap
			}
		}
		msg = "The old bottle holds a skill tonic. You feel restored."
	} else {
		s.Ship.Hull -= bottleHullDelta
		if s.Ship.Hull < bottleHullFloor {
			s.Ship.Hull = bottleHullFloor
		}
		msg = "The bottle's contents went bad long ago. You feel terrible."
	}
	s.BottleAvailable = false
	e.End(s, sess)
	return Result{Success: true, Outcome: OutcomeEnded, Message: msg}
}

// AttemptSurrender resolves the consequences of giving up, which differ
// by captor. It is the path the dispatcher uses instead of the plain
// surrender action when the commander wants terms.
//
// Postcondition: On success the encounter is over. Pirates strip cargo
// (or credits from an empty hold) and set Raided; police treat it as a
// caught inspection; a Mantis only accepts the artifact.
func (e *Engine) AttemptSurrender(s *session.State, sess *Session) Result {
	if sess == nil || !sess.Active {
		return failure("There is no encounter to surrender to.")
	}

	if s.Opponent.Type == data.ShipMantis {
		if !s.ArtifactOnBoard {
			return failure("The alien ship will not accept your surrender.")
		}
		s.ArtifactOnBoard = false
		e.End(s, sess)
		res := Result{
			Success: true,
			Outcome: OutcomeSurrendered,
			Message: "The aliens seize the artifact and let you go.",
		}
		sess.record(ActionSurrender, res.Message)
		return res
	}

	switch sess.Type.Category() {
	case CategoryPirate:
		msg := e.pirateRaid(s)
		e.End(s, sess)
		res := Result{Success: true, Outcome: OutcomeSurrendered, Message: msg}
		sess.record(ActionSurrender, res.Message)
		return res
	case CategoryPolice:
		removed := s.ConfiscateIllegalGoods(e.tables)
		fine := CalculateFine(s.NetWorth(e.tables), s.Difficulty)
		s.Pay(fine)
		s.WildStatus = 0
		s.PoliceRecordScore += caughtInspectionDelta
		e.End(s, sess)
		res := Result{
			Success: true,
			Outcome: OutcomeSurrendered,
			Message: fmt.Sprintf("You give up. The police seize %d units of cargo and fine you %d credits.", removed, fine),
		}
		sess.record(ActionSurrender, res.Message)
		return res
	default:
		return failure("Your opponent has no interest in your surrender.")
	}
}

// pirateRaid transfers cargo to the surrendered-to pirates, limited by
// their free bays. An empty hold costs credits instead.
func (e *Engine) pirateRaid(s *session.State) string {
	s.Raided = true

	if s.Ship.TotalCargo() == 0 {
		take := s.Credits / 10
		if take < 500 {
			take = 500
		}
		if take > s.Credits {
			take = s.Credits
		}
		s.Credits -= take
		return fmt.Sprintf("Finding no cargo, the pirates take %d credits and let you go.", take)
	}

	taken := 0
	space := s.Opponent.FreeCargoBays(e.tables)
	for i := range s.Ship.Cargo {
		if space <= 0 {
			break
		}
		move := s.Ship.Cargo[i]
		if move > space {
			move = space
		}
		s.Ship.Cargo[i] -= move
		s.Opponent.Cargo[i] += move
		space -= move
		taken += move
	}
	return fmt.Sprintf("The pirates board your ship and haul away %d units of cargo.", taken)
}

// checkTermination inspects both hulls after damage and closes out the
// round: defeat and the escape-pod recovery take precedence over victory,
// so a mutual kill never pays a bounty.
func (e *Engine) checkTermination(s *session.State, sess *Session, msg string) Result {
	switch {
	case s.Ship.Hull <= 0:
		if s.EscapePod {
			e.applyEscapePod(s)
			e.End(s, sess)
			return Result{
				Success: true,
				Outcome: OutcomeEscapedPod,
				Message: msg + " Your ship breaks apart, but the escape pod carries you clear.",
			}
		}
		e.End(s, sess)
		e.logger.Info("commander destroyed", zap.String("session", sess.ID))
		return Result{
			Success:  true,
			Outcome:  OutcomeDefeat,
			GameOver: true,
			Message:  msg + " Your ship is destroyed.",
		}

	case s.Opponent.Hull <= 0:
		bounty, victoryMsg := VictoryConsequences(s, sess.Type, e.tables)
		if sess.Type.Category() == CategoryScarab {
			if upgrade := HandleScarabDestroyed(s); upgrade.Success {
				victoryMsg += " " + upgrade.Message
			}
		}
		victoryMsg = e.decorate(victoryMsg, "on_victory", map[string]string{
			"type":     sess.Type.String(),
			"category": sess.Type.Category().String(),
		})
		e.End(s, sess)
		e.logger.Info("opponent destroyed",
			zap.String("session", sess.ID),
			zap.Stringer("type", sess.Type),
			zap.Int("bounty", bounty),
		)
		return Result{
			Success: true,
			Outcome: OutcomeVictory,
			Bounty:  bounty,
			Message: msg + " " + victoryMsg,
		}

	default:
		return Result{Success: true, Outcome: OutcomeOngoing, Message: msg}
	}
}

// applyEscapePod converts a fatal hull-zero into ship loss: back to a
// bare Flea with only the first crew slot, 500 credits poorer (or deeper
// in debt), quest cargo gone, three days lost, pod and insurance spent.
func (e *Engine) applyEscapePod(s *session.State) {
	if s.Insurance {
		s.Credits += flatInsurancePayout
	}
	crew := s.Ship.Crew[0]
	s.Ship = session.EmptyShip(e.tables, data.ShipFlea)
	s.Ship.Crew[0] = crew
	s.Pay(escapePodCost)

	s.ArtifactOnBoard = false
	s.WildStatus = 0
	s.JustLootedMarie = false
	s.BottleAvailable = false
	s.Days += escapePodDays
	s.EscapePod = false
	s.Insurance = false
}

// ensureOpponent defensively reconfigures a malformed or stale opponent
// (hull already at zero) in place rather than failing the round.
func (e *Engine) ensureOpponent(s *session.State, sess *Session) {
	if s.Opponent.Hull <= 0 {
		e.logger.Debug("reconfiguring stale opponent", zap.Stringer("type", sess.Type))
		e.configureOpponent(s, sess.Type)
	}
}

// configureOpponent builds the opposing ship for the encounter type.
func (e *Engine) configureOpponent(s *session.State, t Type) {
	var shipType int
	switch t.Category() {
	case CategoryMonster:
		shipType = data.ShipSpaceMonster
	case CategoryDragonfly:
		shipType = data.ShipDragonfly
	case CategoryScarab:
		shipType = data.ShipScarab
	case CategoryFamousCaptain:
		shipType = data.ShipWasp
	case CategoryScripted:
		if t == MarieCeleste {
			shipType = data.ShipBumblebee
		} else {
			shipType = data.ShipBottle
		}
	case CategoryPolice:
		shipType = data.ShipMosquito
		if s.Difficulty >= session.DifficultyHard {
			shipType = data.ShipHornet
		}
	default:
		// Pirates and traders fly a random purchasable hull.
		shipType = 1 + e.src.Intn(data.ShipWasp)
	}

	opp := session.EmptyShip(e.tables, shipType)
	e.armOpponent(&opp, t, s.Difficulty)
	opp.ChargeShields(e.tables)
	opp.Crew[0] = 0

	if cat := t.Category(); cat == CategoryPirate || cat == CategoryTrader {
		e.fillOpponentCargo(&opp)
	}
	s.Opponent = opp
}

// armOpponent outfits the opponent's weapon and shield slots by family.
func (e *Engine) armOpponent(opp *session.Ship, t Type, difficulty int) {
	hullType := e.tables.Ship(opp.Type)

	weapon := data.WeaponPulseLaser
	shield := data.ShieldEnergy
	switch t.Category() {
	case CategoryMonster, CategoryScarab, CategoryFamousCaptain:
		weapon = data.WeaponMilitaryLaser
		shield = data.ShieldReflective
	case CategoryDragonfly:
		weapon = data.WeaponMilitaryLaser
		shield = data.ShieldLightning
	case CategoryPirate:
		if opp.Type == data.ShipMantis {
			weapon = data.WeaponMilitaryLaser
		} else if difficulty >= session.DifficultyNormal {
			weapon = data.WeaponBeamLaser
		}
	}

	for i := 0; i < hullType.WeaponSlots && i < session.SlotCount; i++ {
		opp.Weapon[i] = weapon
	}
	for i := 0; i < hullType.ShieldSlots && i < session.SlotCount; i++ {
		opp.Shield[i] = shield
	}
}

// fillOpponentCargo stocks a pirate or trader hold with a random spread
// of goods, leaving some bays free.
func (e *Engine) fillOpponentCargo(opp *session.Ship) {
	space := opp.CargoCapacity(e.tables) / 2
	for i := range opp.Cargo {
		if space <= 0 {
			return
		}
		qty := e.src.Intn(4)
		if qty > space {
			qty = space
		}
		opp.Cargo[i] = qty
		space -= qty
	}
}

// decorate runs msg through the optional scripting hook.
func (e *Engine) decorate(msg, hook string, fields map[string]string) string {
	if e.Hooks == nil {
		return msg
	}
	if override, ok := e.Hooks.CallHook(hook, fields); ok && override != "" {
		return override
	}
	return msg
}
