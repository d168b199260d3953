package system

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"roguecore/internal/action"
	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/logging"
)

// DefaultMaxRewrites caps how many times one step may chain into a new action.
const DefaultMaxRewrites = 2

// Report describes one Advance call.
type Report struct {
	Outcome  action.Outcome
	Performs int  // Perform calls made this step
	Idle     bool // nothing was pending and no AI produced an action
	Aborted  bool // the rewrite cap was hit
}

// Scheduler drives one actor at a time through its pending action. It holds
// no state between calls beyond whose turn it is.
type Scheduler struct {
	env         *action.Env
	rng         *rand.Rand
	maxRewrites int
	regen       int
	logger      logrus.FieldLogger
	current     ecs.EntityID
}

// NewScheduler builds a scheduler. A negative maxRewrites selects
// DefaultMaxRewrites. logger and rng may be nil.
func NewScheduler(env *action.Env, rng *rand.Rand, maxRewrites int, logger logrus.FieldLogger) *Scheduler {
	if maxRewrites < 0 {
		maxRewrites = DefaultMaxRewrites
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Scheduler{env: env, rng: rng, maxRewrites: maxRewrites, logger: logger}
}

// SetEnergyPerRound sets how much energy Round grants every actor before
// its turn.
func (s *Scheduler) SetEnergyPerRound(n int) { s.regen = n }

// Current returns the entity whose step ran last.
func (s *Scheduler) Current() ecs.EntityID { return s.current }

// Advance runs one scheduling step for id. An AI actor with an empty slot is
// polled first. The pending action is performed and a rewrite is performed
// again straight away, up to the rewrite cap. Success and Blocked empty the
// slot; Deferred leaves the action waiting for energy.
func (s *Scheduler) Advance(id ecs.EntityID) Report {
	s.current = id
	w := s.env.World
	if !w.Alive(id) {
		return Report{Idle: true}
	}

	if _, pending := action.PendingOf(w, id); !pending {
		if d, ok := Decide(w, id, s.rng); ok {
			action.Assign(w, id, Intend(s.env, id, d, s.rng))
		}
	}
	act, ok := action.PendingOf(w, id)
	if !ok {
		return Report{Idle: true}
	}

	log := s.logger.WithField("actor", uint64(id))
	rewrites := 0
	for performs := 1; ; performs++ {
		res := act.Perform()
		switch res.Outcome {
		case action.Rewritten:
			rewrites++
			if res.Next == nil || rewrites > s.maxRewrites {
				action.Clear(w, id)
				log.WithField("action", act.String()).Debug("rewrite cap reached, turn aborted")
				return Report{Outcome: action.Blocked, Performs: performs, Aborted: true}
			}
			log.WithFields(logrus.Fields{"from": act.String(), "to": res.Next.String()}).Debug("action rewritten")
			act = res.Next
			action.Assign(w, id, act)
		case action.Deferred:
			log.WithField("action", act.String()).Debug("action deferred")
			return Report{Outcome: action.Deferred, Performs: performs}
		default:
			action.Clear(w, id)
			return Report{Outcome: res.Outcome, Performs: performs}
		}
	}
}

// Round grants the per-round energy to every active entity and advances
// each once, in ascending ID order.
func (s *Scheduler) Round() map[ecs.EntityID]Report {
	w := s.env.World
	reports := make(map[ecs.EntityID]Report)
	for _, id := range w.Query(component.CActive) {
		if !w.Alive(id) {
			continue
		}
		s.Accrue(id)
		reports[id] = s.Advance(id)
	}
	return reports
}

// Accrue grants id the per-round energy. Entities without Energy get none.
func (s *Scheduler) Accrue(id ecs.EntityID) {
	if s.regen <= 0 {
		return
	}
	w := s.env.World
	if e, ok := ecs.GetAs[component.Energy](w, id, component.CEnergy); ok {
		w.Add(id, e.Gain(s.regen))
	}
}
