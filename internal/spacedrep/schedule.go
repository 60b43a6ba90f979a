package spacedrep

import (
	"errors"
	"fmt"
)

// Default policy values for the easiness-factor model.
const (
	DefaultMasteryThreshold = 3
	DefaultInitialEase      = 2.5
	DefaultMinEase          = 1.3
	DefaultEaseBonus        = 0.1
)

// First two intervals after consecutive correct answers, in days. Later
// intervals grow by the easiness factor.
const (
	FirstIntervalDays  = 1
	SecondIntervalDays = 6
)

// ErrInvalidConfig is returned by New for out-of-range configuration.
var ErrInvalidConfig = errors.New("spacedrep: invalid config")

// IncorrectPolicy selects how a wrong answer affects the correct streak.
type IncorrectPolicy string

const (
	// ResetStreak sets the streak back to zero.
	ResetStreak IncorrectPolicy = "reset"
	// DecrementStreak removes one from the streak, bottoming out at zero.
	DecrementStreak IncorrectPolicy = "decrement"
)

// ParseIncorrectPolicy parses a policy name. The empty string selects ResetStreak.
func ParseIncorrectPolicy(s string) (IncorrectPolicy, error) {
	switch IncorrectPolicy(s) {
	case "", ResetStreak:
		return ResetStreak, nil
	case DecrementStreak:
		return DecrementStreak, nil
	}
	return "", fmt.Errorf("%w: unknown incorrect policy %q", ErrInvalidConfig, s)
}

// Config configures a Scheduler.
// Zero values produce the defaults of the easiness-factor model.
type Config struct {
	MasteryThreshold int             // zero → 3
	InitialEase      float64         // zero → 2.5
	MinEase          float64         // zero → 1.3
	EaseBonus        float64         // zero → 0.1
	OnIncorrect      IncorrectPolicy // empty → ResetStreak

	// IgnoreDue makes every unmastered question open regardless of its due
	// time, which turns the scheduler into plain count-based mastery.
	IgnoreDue bool
}

// DefaultConfig returns the easiness-factor model with due gating.
func DefaultConfig() Config {
	return Config{
		MasteryThreshold: DefaultMasteryThreshold,
		InitialEase:      DefaultInitialEase,
		MinEase:          DefaultMinEase,
		EaseBonus:        DefaultEaseBonus,
		OnIncorrect:      ResetStreak,
	}
}

// CountOnlyConfig returns the "answer correctly once" policy: a single
// correct answer masters a question and due times are ignored.
func CountOnlyConfig() Config {
	cfg := DefaultConfig()
	cfg.MasteryThreshold = 1
	cfg.IgnoreDue = true
	return cfg
}

func (c Config) withDefaults() Config {
	if c.MasteryThreshold == 0 {
		c.MasteryThreshold = DefaultMasteryThreshold
	}
	if c.InitialEase == 0 {
		c.InitialEase = DefaultInitialEase
	}
	if c.MinEase == 0 {
		c.MinEase = DefaultMinEase
	}
	if c.EaseBonus == 0 {
		c.EaseBonus = DefaultEaseBonus
	}
	if c.OnIncorrect == "" {
		c.OnIncorrect = ResetStreak
	}
	return c
}

func (c Config) validate() error {
	if c.MasteryThreshold < 1 {
		return fmt.Errorf("%w: mastery threshold %d must be at least 1", ErrInvalidConfig, c.MasteryThreshold)
	}
	if c.MinEase <= 0 {
		return fmt.Errorf("%w: minimum ease %v must be positive", ErrInvalidConfig, c.MinEase)
	}
	if c.InitialEase < c.MinEase {
		return fmt.Errorf("%w: initial ease %v below minimum %v", ErrInvalidConfig, c.InitialEase, c.MinEase)
	}
	if c.EaseBonus < 0 {
		return fmt.Errorf("%w: ease bonus %v must not be negative", ErrInvalidConfig, c.EaseBonus)
	}
	if _, err := ParseIncorrectPolicy(string(c.OnIncorrect)); err != nil {
		return err
	}
	return nil
}
