// Package audio plays short feedback tones for shape changes and hand
// tracking transitions.
package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"github.com/iburimskiy/gesture-particles/internal/config"
)

const (
	sampleRate = beep.SampleRate(44100)
	ringSize   = 4096
	// samples averaged by Level, about 23ms
	levelWindow = 1024

	attack = 5 * time.Millisecond
)

// Chimes plays feedback tones. The zero value and a nil *Chimes are silent.
type Chimes struct {
	mixer  *beep.Mixer
	tap    *levelTap
	volume float64
}

// NewChimes opens the speaker. When sound is disabled it returns a silent
// player; when the device cannot be opened it returns a silent player and
// the error so the caller can report it and carry on.
func NewChimes(cfg config.Sound) (*Chimes, error) {
	if !cfg.Enabled {
		return &Chimes{}, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return &Chimes{}, fmt.Errorf("audio init: %w", err)
	}
	mixer := &beep.Mixer{}
	c := &Chimes{
		mixer:  mixer,
		tap:    newLevelTap(mixer, ringSize),
		volume: cfg.Volume,
	}
	speaker.Play(c.tap)
	return c, nil
}

// ShapeChanged plays a soft two-note chime.
func (c *Chimes) ShapeChanged() {
	c.play(
		tone(660, 90*time.Millisecond, c.vol()),
		tone(880, 140*time.Millisecond, c.vol()),
	)
}

// HandsFound plays a rising triad.
func (c *Chimes) HandsFound() {
	c.play(
		tone(523.25, 70*time.Millisecond, c.vol()),
		tone(659.25, 70*time.Millisecond, c.vol()),
		tone(783.99, 120*time.Millisecond, c.vol()),
	)
}

// HandsLost plays a single low note.
func (c *Chimes) HandsLost() {
	c.play(tone(330, 120*time.Millisecond, c.vol()*0.6))
}

// Level returns the loudness of what is currently playing, roughly in [0,1].
func (c *Chimes) Level() float64 {
	if c == nil || c.tap == nil {
		return 0
	}
	return c.tap.level(levelWindow)
}

func (c *Chimes) vol() float64 {
	if c == nil {
		return 0
	}
	return c.volume
}

func (c *Chimes) play(notes ...beep.Streamer) {
	if c == nil || c.mixer == nil || c.volume <= 0 {
		return
	}
	speaker.Lock()
	c.mixer.Add(beep.Seq(notes...))
	speaker.Unlock()
}

// tone is a finite sine with a short linear attack and an exponential tail.
func tone(freq float64, d time.Duration, amp float64) beep.Streamer {
	total := sampleRate.N(d)
	rise := sampleRate.N(attack)
	step := 2 * math.Pi * freq / float64(sampleRate)
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			env := math.Exp(-4 * float64(pos) / float64(total))
			if pos < rise {
				env *= float64(pos) / float64(rise)
			}
			v := amp * env * math.Sin(step*float64(pos))
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}
