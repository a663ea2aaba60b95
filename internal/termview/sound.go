package termview

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	beepFreq   = 880.0
	beepLength = 80 * time.Millisecond
	beepVolume = 0.2
)

// Beeper plays a short cue
type Beeper interface {
	Beep()
}

// SpeakerBeeper plays a sine blip through the default audio device
type SpeakerBeeper struct{}

// NewSpeakerBeeper opens the audio device
func NewSpeakerBeeper() (*SpeakerBeeper, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("failed to init speaker: %w", err)
	}
	return &SpeakerBeeper{}, nil
}

func (SpeakerBeeper) Beep() {
	tone, err := Tone(sampleRate, beepFreq, beepLength)
	if err != nil {
		log.Printf("Warning: failed to build beep: %v", err)
		return
	}
	speaker.Play(tone)
}

// Tone returns a sine wave of the given frequency at beepVolume that ends after d
func Tone(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("failed to create sine tone: %w", err)
	}
	quiet := &effects.Volume{Streamer: sine, Base: 2, Volume: math.Log2(beepVolume)}
	return beep.Take(rate.N(d), quiet), nil
}
