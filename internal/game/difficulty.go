package game

// DifficultySystem ratchets a global multiplier on a fixed timer and tells
// the other systems about it.
type DifficultySystem struct {
	Level      int
	Multiplier float64

	cfg   *Config
	timer float64

	listeners []func(level int, mult float64)
}

func NewDifficultySystem(cfg *Config) *DifficultySystem {
	return &DifficultySystem{
		Multiplier: 1,
		cfg:        cfg,
		timer:      cfg.DifficultyInterval,
	}
}

func (ds *DifficultySystem) OnChange(f func(level int, mult float64)) {
	ds.listeners = append(ds.listeners, f)
}

func (ds *DifficultySystem) Update(dt float64) {
	if ds.Multiplier >= ds.cfg.DifficultyMaxMult {
		return
	}
	ds.timer -= dt
	if ds.timer > 0 {
		return
	}
	ds.timer = ds.cfg.DifficultyInterval

	ds.Level++
	ds.Multiplier += ds.cfg.DifficultyIncrement
	if ds.Multiplier > ds.cfg.DifficultyMaxMult {
		ds.Multiplier = ds.cfg.DifficultyMaxMult
	}
	for _, f := range ds.listeners {
		f(ds.Level, ds.Multiplier)
	}
}

func (ds *DifficultySystem) Reset() {
	ds.Level = 0
	ds.Multiplier = 1
	ds.timer = ds.cfg.DifficultyInterval
}
