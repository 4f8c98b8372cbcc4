// Package crowd evaluates many avatars at once on an ECS world.
//
// Each avatar carries its slider vector plus cached metrics and morph
// weights. Set marks an avatar dirty; Update recomputes only dirty avatars,
// running both engines on the full vector every time.
package crowd

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bodylab/components"
	"github.com/pthm-cable/bodylab/config"
	"github.com/pthm-cable/bodylab/metrics"
	"github.com/pthm-cable/bodylab/morph"
	"github.com/pthm-cable/bodylab/params"
)

// Crowd holds the avatar world.
type Crowd struct {
	world *ecs.World
	cfg   *config.Config

	avatarMapper *ecs.Map4[
		components.Avatar,
		components.Sliders,
		components.Metrics,
		components.Morphs,
	]
	avatarFilter *ecs.Filter4[
		components.Avatar,
		components.Sliders,
		components.Metrics,
		components.Morphs,
	]

	slidersMap *ecs.Map1[components.Sliders]
	metricsMap *ecs.Map1[components.Metrics]
	morphsMap  *ecs.Map1[components.Morphs]

	nextID uint32
	count  int
}

// New creates an empty crowd evaluated with cfg.
func New(cfg *config.Config) *Crowd {
	world := ecs.NewWorld()

	return &Crowd{
		world: world,
		cfg:   cfg,
		avatarMapper: ecs.NewMap4[
			components.Avatar,
			components.Sliders,
			components.Metrics,
			components.Morphs,
		](world),
		avatarFilter: ecs.NewFilter4[
			components.Avatar,
			components.Sliders,
			components.Metrics,
			components.Morphs,
		](world),
		slidersMap: ecs.NewMap1[components.Sliders](world),
		metricsMap: ecs.NewMap1[components.Metrics](world),
		morphsMap:  ecs.NewMap1[components.Morphs](world),
	}
}

// Spawn adds an avatar. Its metrics are computed on the next Update.
func (c *Crowd) Spawn(v params.Vector) ecs.Entity {
	avatar := components.Avatar{ID: c.nextID}
	c.nextID++

	sliders := components.Sliders{Vector: v.Clamped(), Dirty: true}
	m := components.Metrics{}
	w := components.Morphs{}

	c.count++
	return c.avatarMapper.NewEntity(&avatar, &sliders, &m, &w)
}

// SpawnRandom adds n avatars with uniformly random raw slider values.
func (c *Crowd) SpawnRandom(n int, rng *rand.Rand) []ecs.Entity {
	out := make([]ecs.Entity, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, c.Spawn(RandomVector(rng)))
	}
	return out
}

// RandomVector draws every slider uniformly over the raw range.
func RandomVector(rng *rand.Rand) params.Vector {
	v := params.Neutral()
	for _, k := range params.Keys() {
		v = v.WithRaw(k, params.RawMin+rng.Float64()*(params.RawMax-params.RawMin))
	}
	return v
}

// Set replaces an avatar's slider vector and marks it dirty.
// It returns false if the entity is no longer alive.
func (c *Crowd) Set(e ecs.Entity, v params.Vector) bool {
	if !c.world.Alive(e) {
		return false
	}
	s := c.slidersMap.Get(e)
	s.Vector = v.Clamped()
	s.Dirty = true
	return true
}

// Remove deletes an avatar. It returns false if the entity was not alive.
func (c *Crowd) Remove(e ecs.Entity) bool {
	if !c.world.Alive(e) {
		return false
	}
	c.world.RemoveEntity(e)
	c.count--
	return true
}

// Update recomputes metrics and morph weights for dirty avatars and
// returns how many were recomputed.
func (c *Crowd) Update() int {
	a := &c.cfg.Anthropometry
	mc := &c.cfg.Morph

	updated := 0
	query := c.avatarFilter.Query()
	for query.Next() {
		_, sliders, m, w := query.Get()
		if !sliders.Dirty {
			continue
		}

		m.Breakdown = metrics.Estimate(sliders.Vector, a)
		m.Display = m.Breakdown.Round()
		w.Weights = morph.Synthesize(sliders.Vector, mc)
		w.Dense = w.Weights.Dense()

		sliders.Dirty = false
		updated++
	}

	if updated > 0 {
		slog.Debug("crowd updated", "avatars", updated, "total", c.count)
	}
	return updated
}

// Each calls fn for every avatar. fn must not add or remove avatars.
func (c *Crowd) Each(fn func(e ecs.Entity, a *components.Avatar, s *components.Sliders, m *components.Metrics, w *components.Morphs)) {
	query := c.avatarFilter.Query()
	for query.Next() {
		a, s, m, w := query.Get()
		fn(query.Entity(), a, s, m, w)
	}
}

// Metrics returns the cached metrics of an avatar.
func (c *Crowd) Metrics(e ecs.Entity) (components.Metrics, bool) {
	if !c.world.Alive(e) {
		return components.Metrics{}, false
	}
	return *c.metricsMap.Get(e), true
}

// Morphs returns the cached morph weights of an avatar.
func (c *Crowd) Morphs(e ecs.Entity) (components.Morphs, bool) {
	if !c.world.Alive(e) {
		return components.Morphs{}, false
	}
	return *c.morphsMap.Get(e), true
}

// Len returns the number of live avatars.
func (c *Crowd) Len() int {
	return c.count
}
