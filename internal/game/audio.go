package game

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies the procedural sound effects.
type SoundKind int

const (
	SoundCrash SoundKind = iota
	SoundNearMiss
	SoundBoost
	SoundSplash
	SoundCaptured
	SoundSiren
	SoundWantedUp
)

const sfxVolume = 0.6

// AudioSystem plays procedurally synthesized effects through oto.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

// InitAudio opens the audio device. Safe to skip on failure; playback
// becomes a no-op.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

func PlaySound(kind SoundKind) {
	playSoundWithGain(kind, 1.0)
}

// PlaySoundWithGain plays a sound at a gain in [0,1]. Used for the siren,
// whose gain tracks the nearest chaser's distance.
func PlaySoundWithGain(kind SoundKind, gain float64) {
	playSoundWithGain(kind, gain)
}

func playSoundWithGain(kind SoundKind, gain float64) {
	if globalAudio == nil || gain <= 0 {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	samples := generateSound(kind)
	if len(samples) == 0 {
		return
	}
	go func() {
		reader := &soundReader{data: samples}
		player := globalAudio.ctx.NewPlayer(reader)
		player.SetVolume(sfxVolume * clampF(gain, 0, 1))
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// BindEvents hooks the event queue up to sound effects.
func BindEvents(q *EventQueue) {
	for _, t := range []EventType{EventPlayerHitObstacle, EventPlayerHitBuilding, EventPlayerHitTraffic} {
		q.Subscribe(t, func(Event) { PlaySound(SoundCrash) })
	}
	q.Subscribe(EventNearMiss, func(Event) { PlaySound(SoundNearMiss) })
	q.Subscribe(EventBoostStarted, func(Event) { PlaySound(SoundBoost) })
	q.Subscribe(EventPlayerFell, func(Event) { PlaySound(SoundSplash) })
	q.Subscribe(EventPlayerCaptured, func(Event) { PlaySound(SoundCaptured) })
	q.Subscribe(EventWantedIncreased, func(Event) { PlaySound(SoundWantedUp) })
}

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundCrash:
		return genCrash()
	case SoundNearMiss:
		return genNearMiss()
	case SoundBoost:
		return genBoost()
	case SoundSplash:
		return genSplash()
	case SoundCaptured:
		return genCaptured()
	case SoundSiren:
		return genSiren()
	case SoundWantedUp:
		return genWantedUp()
	}
	return nil
}

// genCrash is a filtered noise burst with a low thump underneath.
func genCrash() []byte {
	dur := 0.35
	n := int(dur * SampleRate)
	buf := make([]byte, n*8)
	seed := uint64(0x5147)
	prev := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		noise := lcg(&seed)
		prev = prev*0.7 + noise*0.3
		t := float64(i) / SampleRate
		thump := math.Sin(2*math.Pi*55*t) * math.Exp(-t*12)
		env := adsr(progress, 0.01, 0.2, 0.3, 0.5)
		putStereoF32(buf, i, (prev*0.6+thump*0.8)*env)
	}
	return buf
}

// genNearMiss is a quick rising whoosh.
func genNearMiss() []byte {
	dur := 0.18
	n := int(dur * SampleRate)
	buf := make([]byte, n*8)
	seed := uint64(0xA11CE)
	prev := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		noise := lcg(&seed)
		k := 0.85 - progress*0.5
		prev = prev*k + noise*(1-k)
		env := adsr(progress, 0.3, 0.2, 0.6, 0.4)
		putStereoF32(buf, i, prev*env*0.5)
	}
	return buf
}

func genBoost() []byte {
	dur := 0.25
	n := int(dur * SampleRate)
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		t := float64(i) / SampleRate
		freq := 180 + progress*420
		s := fm(t, freq, 2.0, 1.5)
		env := adsr(progress, 0.05, 0.1, 0.7, 0.3)
		putStereoF32(buf, i, s*env*0.4)
	}
	return buf
}

func genSplash() []byte {
	dur := 0.5
	n := int(dur * SampleRate)
	buf := make([]byte, n*8)
	seed := uint64(0xBA7)
	prev := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		noise := lcg(&seed)
		prev = prev*0.9 + noise*0.1
		env := adsr(progress, 0.02, 0.3, 0.2, 0.5)
		putStereoF32(buf, i, prev*env*0.7)
	}
	return buf
}

// genCaptured is a descending two-tone sting.
func genCaptured() []byte {
	dur := 0.8
	n := int(dur * SampleRate)
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		t := float64(i) / SampleRate
		freq := 440.0
		if progress > 0.5 {
			freq = 330
		}
		s := math.Sin(2 * math.Pi * freq * t)
		env := adsr(progress, 0.02, 0.1, 0.8, 0.2)
		putStereoF32(buf, i, s*env*0.4)
	}
	return buf
}

// genSiren is one two-tone wail cycle; callers re-trigger it periodically
// with distance-based gain.
func genSiren() []byte {
	dur := 1.2
	n := int(dur * SampleRate)
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		t := float64(i) / SampleRate
		freq := 700 + 250*math.Sin(2*math.Pi*progress)
		s := math.Sin(2 * math.Pi * freq * t)
		env := adsr(progress, 0.1, 0.1, 0.9, 0.15)
		putStereoF32(buf, i, s*env*0.3)
	}
	return buf
}

func genWantedUp() []byte {
	dur := 0.3
	n := int(dur * SampleRate)
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		t := float64(i) / SampleRate
		freq := 520.0
		if progress > 0.5 {
			freq = 660
		}
		s := math.Sin(2 * math.Pi * freq * t)
		env := adsr(progress, 0.05, 0.1, 0.7, 0.3)
		putStereoF32(buf, i, s*env*0.35)
	}
	return buf
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	return math.Sin(2*math.Pi*carrier*t + modIdx*math.Sin(2*math.Pi*carrier*modRatio*t))
}

func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}
