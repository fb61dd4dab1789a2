package motion

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of an engine and its named transitions.
//
//	capacity: 512
//	budget:
//	  frameTime: 0.016667
//	  maxLayers: 24
//	springs:
//	  card: {stiffness: 220, damping: 24, mass: 1}
//	transitions:
//	  fadeIn: {duration: 0.3, easing: outCubic}
//	  pop:    {spring: card}
type Config struct {
	Budget      Budget                      `yaml:"budget"`
	Capacity    int                         `yaml:"capacity"`
	Debug       bool                        `yaml:"debug"`
	ColorSpace  string                      `yaml:"colorSpace"`
	Springs     map[string]SpringConfig     `yaml:"springs"`
	Transitions map[string]TransitionConfig `yaml:"transitions"`
}

// TransitionConfig is the YAML form of a Transition.
type TransitionConfig struct {
	Duration float64 `yaml:"duration"`
	Delay    float64 `yaml:"delay"`
	// Easing is a curve name, "bezier(...)" or "spring(...)".
	Easing string `yaml:"easing"`
	// Spring names a spring from Config.Springs or a preset. It overrides
	// Easing.
	Spring string `yaml:"spring"`
	// Repeat is the number of extra plays; -1 repeats forever.
	Repeat        int     `yaml:"repeat"`
	Yoyo          bool    `yaml:"yoyo"`
	Stagger       float64 `yaml:"stagger"`
	StaggerFrom   string  `yaml:"staggerFrom"`
	StaggerOrigin int     `yaml:"staggerOrigin"`
	ColorSpace    string  `yaml:"colorSpace"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{Budget: DefaultBudget(), Capacity: DefaultCapacity}
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses YAML on top of DefaultConfig. Unknown fields are
// rejected. An empty document yields the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the budget, every spring and every named transition.
func (c Config) Validate() error {
	if err := c.Budget.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	if c.Capacity < 0 {
		return fmt.Errorf("%w: capacity must be non-negative, got %d", ErrInvalidConfiguration, c.Capacity)
	}
	if _, err := ParseColorSpace(c.ColorSpace); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	for name, s := range c.Springs {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: spring %q: %v", ErrInvalidConfiguration, name, err)
		}
	}
	for name := range c.Transitions {
		if _, err := c.Transition(name); err != nil {
			return err
		}
	}
	return nil
}

// Spring returns the spring named name from Springs, or a preset.
func (c Config) Spring(name string) (SpringConfig, bool) {
	if s, ok := c.Springs[name]; ok {
		return s, true
	}
	return SpringPreset(name)
}

// Transition resolves a named transition.
func (c Config) Transition(name string) (Transition, error) {
	tc, ok := c.Transitions[name]
	if !ok {
		return Transition{}, fmt.Errorf("%w: unknown transition %q", ErrInvalidConfiguration, name)
	}
	tr, err := c.resolve(tc)
	if err != nil {
		return Transition{}, fmt.Errorf("%w: transition %q: %v", ErrInvalidConfiguration, name, err)
	}
	return tr, nil
}

// Resolve turns an inline TransitionConfig into a Transition, looking up
// springs by name.
func (c Config) Resolve(tc TransitionConfig) (Transition, error) {
	tr, err := c.resolve(tc)
	if err != nil {
		return Transition{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return tr, nil
}

func (c Config) resolve(tc TransitionConfig) (Transition, error) {
	tr := Transition{Duration: tc.Duration, Delay: tc.Delay}

	switch {
	case tc.Spring != "":
		s, ok := c.Spring(tc.Spring)
		if !ok {
			return Transition{}, fmt.Errorf("unknown spring %q", tc.Spring)
		}
		tr.Easing = Spring(s)
	case tc.Easing != "":
		e, err := c.parseEasing(tc.Easing)
		if err != nil {
			return Transition{}, err
		}
		tr.Easing = e
	}

	switch {
	case tc.Repeat < -1:
		return Transition{}, fmt.Errorf("repeat must be -1 or more, got %d", tc.Repeat)
	case tc.Repeat == -1:
		tr.Repeat = Forever()
	case tc.Repeat > 0:
		tr.Repeat = Times(tc.Repeat)
	}
	tr.Repeat.Alternate = tc.Yoyo

	if tc.Stagger != 0 || tc.StaggerFrom != "" {
		from, err := ParseStaggerFrom(tc.StaggerFrom)
		if err != nil {
			return Transition{}, err
		}
		tr.Stagger = &Stagger{Each: tc.Stagger, From: from, Origin: tc.StaggerOrigin}
	}

	space := tc.ColorSpace
	if space == "" {
		space = c.ColorSpace
	}
	cs, err := ParseColorSpace(space)
	if err != nil {
		return Transition{}, err
	}
	tr.ColorSpace = cs

	if err := tr.Validate(); err != nil {
		return Transition{}, err
	}
	return tr, nil
}

// parseEasing is ParseEasing with config-defined spring names.
func (c Config) parseEasing(s string) (Easing, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "spring(") && strings.HasSuffix(s, ")") {
		if cfg, ok := c.Springs[strings.TrimSpace(s[len("spring("):len(s)-1])]; ok {
			return Spring(cfg), nil
		}
	}
	return ParseEasing(s)
}

// ParseStaggerFrom parses "forward" (or ""), "reverse", "center" or "index".
func ParseStaggerFrom(s string) (StaggerFrom, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "forward", "first":
		return StaggerForward, nil
	case "reverse", "last":
		return StaggerReverse, nil
	case "center":
		return StaggerCenter, nil
	case "index":
		return StaggerFromIndex, nil
	}
	return 0, fmt.Errorf("unknown stagger origin %q", s)
}
