package audio

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neural-snake/game/event"
	"neural-snake/game/types"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestToneGeneratorRange(t *testing.T) {
	gen := NewToneGenerator(sampleRate, goalFreq)
	samples := make([][2]float64, 1000)
	n, ok := gen.Stream(samples)
	require.True(t, ok)
	require.Equal(t, 1000, n)
	assert.NoError(t, gen.Err())

	assert.Zero(t, samples[0][0], "attack starts silent")
	for i := 0; i < n; i++ {
		assert.LessOrEqual(t, samples[i][0], 0.25)
		assert.GreaterOrEqual(t, samples[i][0], -0.25)
		assert.Equal(t, samples[i][0], samples[i][1])
	}
}

func TestPlayerTones(t *testing.T) {
	var lengths []int
	p := NewPlayer(nil)
	p.initialized = true
	p.play = func(s beep.Streamer) { lengths = append(lengths, drain(s)) }

	p.Observe(event.Ticked{})
	p.Observe(event.GoalConsumed{Score: 1, BodyLength: 2})
	p.Observe(event.GameOver{Cause: types.WallCollision})
	p.Observe(event.GameOver{Cause: types.GridFilled})

	assert.Equal(t, []int{
		sampleRate.N(goalLength),
		sampleRate.N(gameOverLength),
		sampleRate.N(gameOverLength),
	}, lengths)
}

func TestPlayerSilentUntilInitialized(t *testing.T) {
	played := 0
	p := NewPlayer(nil)
	p.play = func(beep.Streamer) { played++ }

	p.Observe(event.GoalConsumed{Score: 1, BodyLength: 2})
	p.Close()
	assert.Zero(t, played)
}
