package game

// Health is a simple hit-point pool. It only ever goes down.
type Health struct {
	Current int
	Max     int
}

func NewHealth(max int) Health {
	return Health{Current: max, Max: max}
}

func (h *Health) Damage(amount int) {
	if amount <= 0 {
		return
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
}

func (h *Health) IsDead() bool {
	return h.Current <= 0
}

// Fraction returns remaining health in [0,1].
func (h *Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}

func (h *Health) Percent() int {
	return int(h.Fraction() * 100)
}
