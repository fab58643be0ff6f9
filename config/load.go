package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Load reads a YAML file over the defaults and validates the result
// Fields absent from the file keep their default value
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	cfg.overlay(&file)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlay copies every non-zero field of f onto c
// Maps and slices are replaced wholesale, never merged
func (c *Config) overlay(f *Config) {
	if f.Theme != (Theme{}) {
		c.Theme = f.Theme
	}
	if len(f.PuzzleOrder) > 0 {
		c.PuzzleOrder = f.PuzzleOrder
	}
	if f.Sequence != nil {
		c.Sequence = f.Sequence
	}
	if f.Code != "" {
		c.Code = f.Code
	}
	if f.CodeMaxLen != 0 {
		c.CodeMaxLen = f.CodeMaxLen
	}
	if f.Mapping != nil {
		c.Mapping = f.Mapping
	}
	if f.Band != (Band{}) {
		c.Band = f.Band
	}
	if f.Egg.Pattern != nil {
		c.Egg.Pattern = f.Egg.Pattern
	}
	if f.Egg.Window != 0 {
		c.Egg.Window = f.Egg.Window
	}

	t := &c.Timing
	ft := f.Timing
	for _, p := range []struct {
		dst *time.Duration
		src time.Duration
	}{
		{&t.ConfirmDelay, ft.ConfirmDelay},
		{&t.ErrorDelay, ft.ErrorDelay},
		{&t.IdleHint, ft.IdleHint},
		{&t.DebugDelay, ft.DebugDelay},
		{&t.DoorOpen, ft.DoorOpen},
		{&t.DwellStep, ft.DwellStep},
		{&t.DwellThreshold, ft.DwellThreshold},
	} {
		if p.src != 0 {
			*p.dst = p.src
		}
	}

	c.Debug = c.Debug || f.Debug
}

// Validate checks every precondition the engine relies on
// Returns a single error naming all violated rules
func (c *Config) Validate() error {
	var errs []error

	if err := getValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s: failed %q (%v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
		} else {
			errs = append(errs, err)
		}
	}

	if c.Band.Max >= c.Band.Min && !c.Band.Reachable() {
		errs = append(errs, fmt.Errorf("band: %g..%g outside reachable temperature %g..%g",
			c.Band.Min, c.Band.Max, ReachableMin, ReachableMax))
	}

	if c.CodeMaxLen > 0 && len(c.Code) > c.CodeMaxLen {
		errs = append(errs, fmt.Errorf("code: length %d exceeds code_max_len %d", len(c.Code), c.CodeMaxLen))
	}

	// Mapping must be a bijection from labels onto ports 1..N
	n := len(c.Mapping)
	seen := make(map[int]string, n)
	for _, label := range c.Labels() {
		port := c.Mapping[label]
		if port < 1 || port > n {
			errs = append(errs, fmt.Errorf("mapping: label %q port %d outside 1..%d", label, port, n))
			continue
		}
		if other, dup := seen[port]; dup {
			errs = append(errs, fmt.Errorf("mapping: labels %q and %q share port %d", other, label, port))
		}
		seen[port] = label
	}

	known := make(map[string]bool, len(Required))
	for _, id := range Required {
		known[id] = true
	}
	for _, id := range c.PuzzleOrder {
		if !known[id] {
			errs = append(errs, fmt.Errorf("puzzle_order: unknown puzzle %q", id))
		}
	}

	if len(errs) > 0 {
		sort.SliceStable(errs, func(i, j int) bool { return errs[i].Error() < errs[j].Error() })
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
