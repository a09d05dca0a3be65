// Package main provides the travel simulator for the encounter engine.
// It wires together configuration, static tables, the RNG, the resolver,
// the round engine, and optional Lua hooks, then plays out a run of
// travel days with a simple commander policy.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/startrader/startrader/internal/config"
	"github.com/startrader/startrader/internal/game/data"
	"github.com/startrader/startrader/internal/game/encounter"
	"github.com/startrader/startrader/internal/game/plunder"
	"github.com/startrader/startrader/internal/game/rng"
	"github.com/startrader/startrader/internal/game/session"
	"github.com/startrader/startrader/internal/game/stats"
	"github.com/startrader/startrader/internal/observability"
	"github.com/startrader/startrader/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (built-in defaults when empty)")
	days := flag.Int("days", 0, "override the number of simulated travel days")
	seed := flag.Int64("seed", 0, "override the random seed (0 keeps the configured one)")
	flag.Parse()

	// Load configuration
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		cfg = loaded
	}
	if *days > 0 {
		cfg.Sim.Days = *days
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}

	// Initialize logger
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting encounter simulator",
		zap.Int("days", cfg.Sim.Days),
		zap.Int("difficulty", cfg.Sim.Difficulty),
		zap.String("commander", cfg.Sim.Commander),
	)

	// Load static tables
	tables := data.DefaultTables()
	if cfg.Data.Dir != "" {
		tables, err = data.LoadTables(cfg.Data.Dir)
		if err != nil {
			logger.Fatal("loading tables", zap.Error(err))
		}
		logger.Info("table overrides loaded", zap.String("dir", cfg.Data.Dir))
	}

	// Pick the random source
	var src rng.Source
	if cfg.Sim.Seed != 0 {
		src = rng.NewSeededSource(cfg.Sim.Seed)
		logger.Info("deterministic run", zap.Int64("seed", cfg.Sim.Seed))
	} else {
		src = rng.NewCryptoSource()
	}

	state := session.NewState(tables, cfg.Sim.Commander, cfg.Sim.Difficulty)
	resolver := encounter.NewResolver(src, logger)
	engine := encounter.NewEngine(tables, src, logger)

	// Optional Lua hooks
	if cfg.Scripts.Dir != "" {
		mgr := scripting.NewManager(logger)
		mgr.GetCommander = func() *scripting.CommanderInfo {
			return &scripting.CommanderInfo{
				Name:         state.CommanderName,
				Credits:      state.Credits,
				Reputation:   state.ReputationScore,
				PoliceRecord: state.PoliceRecordScore,
				Kills:        state.PoliceKills + state.TraderKills + state.PirateKills,
			}
		}
		if err := mgr.Load(cfg.Scripts.Dir, cfg.Scripts.InstructionLimit); err != nil {
			logger.Fatal("loading hook scripts", zap.Error(err))
		}
		defer mgr.Close()
		engine.Hooks = mgr
	}

	sim := &simulator{
		tables:   tables,
		src:      src,
		resolver: resolver,
		engine:   engine,
		logger:   logger,
	}

	gameOver := false
	for day := 0; day < cfg.Sim.Days && !gameOver; day++ {
		state.Days++
		state.Raided = false
		state.Inspected = false
		gameOver = sim.travelDay(state)
	}

	summary := stats.Summarize(state)
	logger.Info("simulation complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("days", state.Days),
		zap.Int("credits", state.Credits),
		zap.Int("debt", state.Debt),
		zap.Int("police_record", state.PoliceRecordScore),
		zap.Int("reputation", state.ReputationScore),
		zap.Int("kills", summary.TotalKills),
		zap.Bool("game_over", gameOver),
	)

	fmt.Printf("Commander %s after %d days:\n", state.CommanderName, state.Days)
	fmt.Printf("  credits %d, debt %d, ship %s (hull %d)\n",
		state.Credits, state.Debt, tables.Ship(state.Ship.Type).Name, state.Ship.Hull)
	fmt.Printf("  kills: %d police, %d traders, %d pirates\n",
		summary.PoliceKills, summary.TraderKills, summary.PirateKills)
	if state.Ship.Tribbles > 0 {
		fmt.Printf("  tribbles loose in the hold: %d\n", state.Ship.Tribbles)
	}
	for _, a := range stats.Achievements(state) {
		fmt.Printf("  achievement: %s\n", a)
	}
}

// simulator plays one commander through travel days with a fixed policy.
type simulator struct {
	tables   *data.Tables
	src      rng.Source
	resolver *encounter.Resolver
	engine   *encounter.Engine
	logger   *zap.Logger
}

// travelDay rolls one day's encounter and plays it out. Returns true when
// the commander's run is over.
func (s *simulator) travelDay(state *session.State) bool {
	sys := encounter.SystemContext{
		PirateStrength: s.src.Intn(9),
		PoliceStrength: s.src.Intn(9),
		TraderStrength: s.src.Intn(9),
	}

	typ := s.resolver.Encounter(state, sys)
	if typ == encounter.TypeNone {
		return false
	}

	sess := s.engine.Begin(state, typ)
	for sess.Active {
		action := s.chooseAction(state, sess)
		res := s.engine.ResolveRound(state, sess, action)
		if !res.Success {
			// The policy picked something the situation rejects (for
			// example an unaffordable bribe); fall back to submitting or
			// fleeing rather than looping forever.
			res = s.engine.ResolveRound(state, sess, s.fallbackAction(sess))
		}
		if res.Message != "" {
			s.logger.Info("round resolved",
				zap.Int("day", state.Days),
				zap.Stringer("type", sess.Type),
				zap.Stringer("action", action),
				zap.Stringer("outcome", res.Outcome),
				zap.String("result", res.Message),
			)
		}
		if action == encounter.ActionPlunder && res.Success {
			s.plunderHold(state, sess)
			s.engine.End(state, sess)
		}
		if res.GameOver {
			return true
		}
	}
	return false
}

// chooseAction is the commander policy: stay honest with the police, fight
// pirates while the hull holds, loot what drifts by, and otherwise move on.
func (s *simulator) chooseAction(state *session.State, sess *encounter.Session) encounter.Action {
	healthy := state.Ship.Hull > s.tables.Ship(state.Ship.Type).HullStrength/3

	switch sess.Type {
	case encounter.PoliceInspect:
		return encounter.ActionSubmit
	case encounter.PostMariePolice:
		return encounter.ActionYield
	case encounter.PoliceAttack:
		return encounter.ActionFlee
	case encounter.PirateAttack:
		if healthy {
			return encounter.ActionAttack
		}
		return encounter.ActionFlee
	case encounter.PirateSurrender:
		return encounter.ActionPlunder
	case encounter.MarieCeleste:
		return encounter.ActionBoard
	case encounter.BottleOld, encounter.BottleGood:
		return encounter.ActionDrink
	case encounter.MonsterAttack, encounter.DragonflyAttack, encounter.ScarabAttack,
		encounter.FamousCaptainAttack, encounter.TraderAttack:
		if healthy {
			return encounter.ActionAttack
		}
		return encounter.ActionFlee
	default:
		if encounter.CanPerform(sess.Type, encounter.ActionIgnore) {
			return encounter.ActionIgnore
		}
		return encounter.ActionFlee
	}
}

// fallbackAction picks a legal way out after a rejected action.
func (s *simulator) fallbackAction(sess *encounter.Session) encounter.Action {
	for _, a := range []encounter.Action{
		encounter.ActionSubmit,
		encounter.ActionIgnore,
		encounter.ActionFlee,
		encounter.ActionAttack,
	} {
		if encounter.CanPerform(sess.Type, a) {
			return a
		}
	}
	return encounter.ActionIgnore
}

// plunderHold strips a surrendered pirate's cargo and settles the theft.
func (s *simulator) plunderHold(state *session.State, sess *encounter.Session) {
	p := plunder.New(s.tables, sess.Type.Category())
	for item := 0; item < data.TradeGoodCount; item++ {
		if res := p.PlunderAllCargo(state, item); res.Success {
			s.logger.Info("plundered", zap.Int("day", state.Days), zap.String("result", res.Message))
		}
	}
	if res := p.Finish(state); res.Success {
		s.logger.Info("plunder settled", zap.Int("day", state.Days), zap.String("result", res.Message))
	}
}
