package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"neural-snake/game/event"
)

const sampleRate = beep.SampleRate(48000)

const (
	goalFreq     = 880.0
	gameOverFreq = 220.0
	winFreq      = 1320.0

	goalLength     = 60 * time.Millisecond
	gameOverLength = 300 * time.Millisecond
)

// Player plays short tones for world events
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	logger      *zap.Logger

	// play receives every tone; the speaker mixer unless replaced in tests
	play func(beep.Streamer)
}

func NewPlayer(logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Player{
		mixer:  &beep.Mixer{},
		logger: logger,
	}
	p.play = p.mix
	return p
}

// Initialize opens the speaker. On failure the player stays silent and the
// error is returned for logging.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.logger.Warn("audio disabled", zap.Error(err))
		return err
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything queued
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Observe is an event.Handler
func (p *Player) Observe(ev event.Event) {
	switch e := ev.(type) {
	case event.GoalConsumed:
		p.tone(goalFreq, goalLength)
	case event.GameOver:
		if e.Won() {
			p.tone(winFreq, gameOverLength)
			return
		}
		p.tone(gameOverFreq, gameOverLength)
	}
}

func (p *Player) tone(freq float64, length time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	p.play(beep.Take(sampleRate.N(length), NewToneGenerator(sampleRate, freq)))
}

func (p *Player) mix(s beep.Streamer) {
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// ToneGenerator is a sine wave with a short attack and release
type ToneGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

func NewToneGenerator(sr beep.SampleRate, freq float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := math.Sin(2 * math.Pi * g.freq * t)
		envelope := math.Min(t/0.005, 1.0)
		sample *= envelope * 0.25

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
