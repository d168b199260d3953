package system

import (
	"math/rand"
	"testing"

	"roguecore/internal/action"
	"roguecore/internal/component"
	"roguecore/internal/ecs"
	"roguecore/internal/gamemap"
	"roguecore/internal/grid"
)

// openMap creates a w×h map that is entirely passable floor.
func openMap(w, h int) *gamemap.GameMap {
	gmap := gamemap.New(w, h)
	for y := range h {
		for x := range w {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	return gmap
}

// newAIWorld creates a world with a player at (px, py) on a 20×20 open map.
func newAIWorld(px, py int) (*ecs.World, *gamemap.GameMap, ecs.EntityID) {
	w := ecs.NewWorld()
	gmap := openMap(20, 20)
	player := w.CreateEntity()
	component.Place(w, player, gmap, grid.Pt(px, py))
	w.Add(player, component.TagPlayer{})
	w.Add(player, component.Active{})
	return w, gmap, player
}

func addMonster(w *ecs.World, gmap *gamemap.GameMap, x, y int, s component.Strategy) ecs.EntityID {
	id := w.CreateEntity()
	component.Place(w, id, gmap, grid.Pt(x, y))
	w.Add(id, component.AI{Strategy: s})
	w.Add(id, component.Active{})
	return id
}

func TestSimpleStrategies(t *testing.T) {
	cases := []struct {
		name string
		s    component.Strategy
		want component.Decision
	}{
		{"waiter", Waiter{}, component.Decision{Intent: component.IntentWait}},
		{"mover", Mover{Dir: grid.West}, component.Decision{Intent: component.IntentMove, Dir: grid.West}},
		{"wanderer", Wanderer{}, component.Decision{Intent: component.IntentWander}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.s.Decide(component.Mind{}, rand.New(rand.NewSource(1)))
			if got != tc.want {
				t.Fatalf("Decide = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestDecideWithoutAI(t *testing.T) {
	w, _, player := newAIWorld(5, 5)
	if _, ok := Decide(w, player, rand.New(rand.NewSource(0))); ok {
		t.Fatal("an entity without AI has nothing to decide")
	}
}

func TestChaserStepsTowardPlayer(t *testing.T) {
	w, gmap, _ := newAIWorld(10, 10)
	ghoul := addMonster(w, gmap, 5, 10, Chaser{SightRange: 8})

	d, ok := Decide(w, ghoul, rand.New(rand.NewSource(0)))
	if !ok {
		t.Fatal("expected a decision")
	}
	if d.Intent != component.IntentMove || d.Dir != grid.East {
		t.Fatalf("decision = %+v, want move east", d)
	}
}

func TestChaserAdjacentBumpsPlayer(t *testing.T) {
	w, gmap, _ := newAIWorld(10, 10)
	ghoul := addMonster(w, gmap, 10, 11, Chaser{SightRange: 8})

	d, _ := Decide(w, ghoul, rand.New(rand.NewSource(0)))
	if d.Intent != component.IntentMove || d.Dir != grid.North {
		t.Fatalf("decision = %+v, want move north into the player", d)
	}
}

func TestChaserOutOfSightWanders(t *testing.T) {
	w, gmap, _ := newAIWorld(0, 0)
	ghoul := addMonster(w, gmap, 15, 15, Chaser{SightRange: 3})

	d, _ := Decide(w, ghoul, rand.New(rand.NewSource(0)))
	if d.Intent != component.IntentWander {
		t.Fatalf("decision = %+v, want wander", d)
	}
}

func TestWanderIsUniformOverDirectionSet(t *testing.T) {
	w, gmap, _ := newAIWorld(0, 0)
	bat := addMonster(w, gmap, 10, 10, Wanderer{})
	rng := rand.New(rand.NewSource(42))

	const draws = 4000
	counts := make(map[grid.Direction]int)
	for range draws {
		counts[wanderDirection(w, bat, rng)]++
	}
	if len(counts) != len(grid.Cardinal) {
		t.Fatalf("wander used %d directions on a 4-way map: %v", len(counts), counts)
	}
	for _, d := range grid.Cardinal {
		if n := counts[d]; n < 850 || n > 1150 {
			t.Errorf("%v drawn %d times out of %d", d, n, draws)
		}
	}

	gmap.SetDirections(grid.EightWay)
	diagonal := false
	for range 200 {
		if wanderDirection(w, bat, rng).IsDiagonal() {
			diagonal = true
			break
		}
	}
	if !diagonal {
		t.Error("8-way maps should let wander pick diagonals")
	}
}

func TestWanderIsSeedable(t *testing.T) {
	w, gmap, _ := newAIWorld(0, 0)
	bat := addMonster(w, gmap, 10, 10, Wanderer{})

	draw := func() []grid.Direction {
		rng := rand.New(rand.NewSource(7))
		out := make([]grid.Direction, 20)
		for i := range out {
			out[i] = wanderDirection(w, bat, rng)
		}
		return out
	}
	a, b := draw(), draw()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at draw %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestWanderWithoutPositionWaits(t *testing.T) {
	w := ecs.NewWorld()
	id := w.CreateEntity()
	if d := wanderDirection(w, id, rand.New(rand.NewSource(0))); d != grid.Wait {
		t.Fatalf("wander without a map = %v, want wait", d)
	}
}

func TestIntendBuildsMoves(t *testing.T) {
	w, gmap, _ := newAIWorld(0, 0)
	id := addMonster(w, gmap, 10, 10, Waiter{})
	env := &action.Env{World: w}
	rng := rand.New(rand.NewSource(3))

	cases := []struct {
		name string
		d    component.Decision
		want func(grid.Direction) bool
	}{
		{"wait", component.Decision{Intent: component.IntentWait}, func(d grid.Direction) bool { return d == grid.Wait }},
		{"move", component.Decision{Intent: component.IntentMove, Dir: grid.South}, func(d grid.Direction) bool { return d == grid.South }},
		{"wander", component.Decision{Intent: component.IntentWander}, func(d grid.Direction) bool { return d != grid.Wait && !d.IsDiagonal() }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := Intend(env, id, tc.d, rng)
			m, ok := a.(*action.Move)
			if !ok {
				t.Fatalf("Intend = %T, want *action.Move", a)
			}
			if !tc.want(m.Dir) {
				t.Fatalf("unexpected direction %v", m.Dir)
			}
			if m.Actor() != id {
				t.Fatalf("actor = %v, want %v", m.Actor(), id)
			}
		})
	}
}
