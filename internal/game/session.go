package game

// GameState is the coarse session state.
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StateGameOver
)

// HUDState is the snapshot the renderer draws each frame.
type HUDState struct {
	Score         int
	HealthPercent int
	BoostReady    bool
	WantedLevel   int
	SurvivalTime  float64
}

// GameSession owns every simulation system and the session state machine.
// Starting a run rebuilds all systems from the seed, so every run is a full
// reset.
type GameSession struct {
	State GameState
	Score int
	HUD   HUDState

	Player     *Player
	World      *World
	Police     *PoliceSystem
	Traffic    *TrafficSystem
	Obstacles  *ObstacleSystem
	Collisions *CollisionSystem
	Wanted     *WantedSystem
	Difficulty *DifficultySystem
	Camera     *Camera
	Events     *EventQueue

	// Input is sampled by the host each frame before the loop runs.
	Input InputState

	cfg  *Config
	seed uint64
	rnd  *Rand

	bonus     int
	overSent  bool
	prevBoost bool
}

func NewGameSession(cfg *Config, seed uint64) *GameSession {
	s := &GameSession{cfg: cfg, seed: seed}
	s.Events = NewEventQueue()
	s.Events.Subscribe(EventNearMiss, func(e Event) {
		s.bonus += e.Value
	})
	for _, t := range []EventType{EventPlayerHitObstacle, EventPlayerHitBuilding, EventPlayerHitTraffic} {
		s.Events.Subscribe(t, func(Event) {
			s.Camera.Shake(1.5, 0.3)
		})
	}
	s.build()
	return s
}

// build constructs fresh systems from the seed. The event queue persists
// across runs so host subscriptions survive a restart. Sub-seeds are derived
// so the systems draw from independent streams.
func (s *GameSession) build() {
	s.rnd = NewRand(s.seed)
	s.Player = NewPlayer(s.cfg)
	s.World = NewWorld(s.cfg, s.seed)
	s.Police = NewPoliceSystem(s.cfg, NewRand(s.seed^0xCAFE))
	s.Traffic = NewTrafficSystem(s.cfg, NewRand(s.seed^0xBEEF))
	s.Obstacles = NewObstacleSystem(s.cfg, NewRand(s.seed^0xF00D))
	s.Collisions = NewCollisionSystem(s.cfg, s.Events)
	s.Wanted = NewWantedSystem(s.cfg, NewRand(s.seed^0xACE), s.Events)
	s.Difficulty = NewDifficultySystem(s.cfg)
	s.Camera = NewCamera(NewRand(s.seed ^ 0x5EED))
	s.bonus = 0
	s.overSent = false
	s.prevBoost = false

	s.Difficulty.OnChange(func(level int, mult float64) {
		s.Obstacles.SetDifficulty(level)
		s.Traffic.SetTarget(int(float64(s.cfg.TrafficCount) * mult))
	})

	// seed the initial pack
	for i := 0; i < s.cfg.BasePoliceCount; i++ {
		s.Wanted.place(s.Player, s.Police)
	}
}

// Start begins a run, from the menu or after a game over.
func (s *GameSession) Start() {
	s.build()
	s.Score = 0
	s.State = StatePlaying
}

// Register wires the session into the loop in tick order.
func (s *GameSession) Register(loop *Loop) {
	playing := func(fn func(dt float64)) func(float64) {
		return func(dt float64) {
			if s.State == StatePlaying {
				fn(dt)
			}
		}
	}

	loop.AddStep("player", playing(func(dt float64) {
		s.Player.Update(dt, s.Input)
	}))
	loop.AddStep("world", playing(func(dt float64) {
		s.World.Update(s.Player.X, s.Player.Z)
	}))
	loop.AddStep("police", playing(func(dt float64) {
		s.Police.Update(dt, s.Player, s.World)
	}))
	loop.AddStep("traffic", playing(func(dt float64) {
		s.Traffic.Update(dt, s.Player, s.World)
	}))
	loop.AddStep("obstacles", playing(func(dt float64) {
		s.Obstacles.Update(dt, s.Player)
	}))
	loop.AddStep("collisions", playing(func(dt float64) {
		s.Collisions.Update(dt, s.Player, s.World, s.Police, s.Traffic, s.Obstacles)
	}))
	loop.AddStep("progress", playing(func(dt float64) {
		s.Difficulty.Update(dt)
		s.Wanted.Update(dt, s.Player, s.Police)
		s.Score = int(s.Player.DistanceTraveled*s.cfg.ScorePerMeter) + s.bonus
	}))
	loop.AddStep("camera", playing(func(dt float64) {
		s.Camera.Update(dt, s.Player)
	}))
	loop.AddStep("state", func(dt float64) {
		if s.Player.Boosting() && !s.prevBoost {
			s.Events.Emit(Event{Type: EventBoostStarted})
		}
		s.prevBoost = s.Player.Boosting()
		if s.State == StatePlaying && s.Player.State == PlayerDead && !s.overSent {
			s.overSent = true
			s.Events.Emit(Event{Type: EventGameOver, Value: s.Score})
			s.State = StateGameOver
		}
		s.HUD = HUDState{
			Score:         s.Score,
			HealthPercent: s.Player.Health.Percent(),
			BoostReady:    s.Player.BoostReady(),
			WantedLevel:   s.Wanted.Level,
			SurvivalTime:  s.Wanted.SurvivalTime,
		}
	})
	loop.AddStep("events", func(dt float64) {
		s.Events.Drain()
	})
}
