package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"golang.org/x/time/rate"
)

const (
	sampleRate    = beep.SampleRate(44100)
	toneFrequency = 660
	toneDuration  = 40 * time.Millisecond
	toneInterval  = 120 * time.Millisecond
)

func (s *Sandbox) initAudio() error {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err != nil {
		return err
	}
	s.audioInit = true
	s.toneLimiter = rate.NewLimiter(rate.Every(toneInterval), 1)
	return nil
}

// playContactTone beeps once, dropping tones that arrive faster than toneInterval
func (s *Sandbox) playContactTone() {
	if !s.audioInit || !s.toneLimiter.Allow() {
		return
	}
	sine, err := generators.SineTone(sampleRate, toneFrequency)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneDuration), sine))
}
