// Package config loads the plain-text "key = value" configuration format
// from SPEC_FULL.md §6 into a typed structure backed by
// github.com/spf13/viper, following the reference codebase's own Config
// wrapper idiom (one viper.Viper instance, lower-cased keys, typed
// accessor methods).
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/gilchrisn/ergm-estimnet/internal/errs"
)

// knownKeys is the whitelist from SPEC_FULL.md §6, plus four keys its
// table does not list: lambda (the alternating-statistic decay parameter,
// "conventionally 2.0"), tntHastingsCorrection (the §13.3 flag),
// twopathBackend and loglevel.
var knownKeys = map[string]bool{
	"useifdsampler":            true,
	"usetntsampler":            true,
	"ifd_k":                    true,
	"aca_s":                    true,
	"aca_ee":                   true,
	"compc":                    true,
	"samplersteps":             true,
	"ssteps":                   true,
	"eesteps":                  true,
	"eeinnersteps":             true,
	"arclistfile":              true,
	"binattrfile":              true,
	"catattrfile":              true,
	"contattrfile":             true,
	"setattrfile":              true,
	"zonefile":                 true,
	"useconditionalestimation": true,
	"forbidreciprocity":        true,
	"allowloops":               true,
	"structparams":             true,
	"attrparams":               true,
	"dyadicparams":             true,
	"attrinteractionparams":    true,
	"thetafileprefix":          true,
	"dzafileprefix":            true,
	"statsfile":                true,
	"simnetfileprefix":         true,
	"numnodes":                 true,
	"samplesize":               true,
	"interval":                 true,
	"burnin":                   true,
	"outputsimulatednetworks":  true,
	"lambda":                   true,
	"tnthastingscorrection":    true,
	"twopathbackend":           true, // "dense" | "sparse" | "disabled" (SPEC_FULL.md §12.2)
	"loglevel":                 true, // zerolog level name, default "info" (SPEC_FULL.md §10.1)
}

// Config wraps an in-memory viper.Viper populated entirely from Set
// calls (never ReadInConfig): each recognized key from the source file
// is lower-cased and stored, and typed accessors coerce it on read.
type Config struct {
	v *viper.Viper
}

// Load parses r as the spec's key = value format: blank lines and lines
// starting with # are skipped; every other line must be "key = value"
// with key in knownKeys, or Load reports the offending line number as
// an errs.ErrConfig.
func Load(r io.Reader) (*Config, error) {
	v := viper.New()
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.Index(line, "=")
		if idx < 0 {
			return nil, fmt.Errorf("config: line %d: expected \"key = value\", got %q: %w", lineNo, line, errs.ErrConfig)
		}
		key := strings.ToLower(strings.TrimSpace(line[:idx]))
		val := strings.TrimSpace(line[idx+1:])
		if key == "" {
			return nil, fmt.Errorf("config: line %d: empty key: %w", lineNo, errs.ErrConfig)
		}
		if !knownKeys[key] {
			return nil, fmt.Errorf("config: line %d: unknown key %q: %w", lineNo, key, errs.ErrConfig)
		}
		v.Set(key, val)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return &Config{v: v}, nil
}

// IsSet reports whether key was present in the source file.
func (c *Config) IsSet(key string) bool { return c.v.IsSet(strings.ToLower(key)) }

// Float64 returns the value for key, or def if it was not set.
func (c *Config) Float64(key string, def float64) float64 {
	key = strings.ToLower(key)
	if !c.v.IsSet(key) {
		return def
	}
	return c.v.GetFloat64(key)
}

// Int returns the value for key, or def if it was not set.
func (c *Config) Int(key string, def int) int {
	key = strings.ToLower(key)
	if !c.v.IsSet(key) {
		return def
	}
	return c.v.GetInt(key)
}

// Bool returns the value for key (false if unset).
func (c *Config) Bool(key string) bool { return c.v.GetBool(strings.ToLower(key)) }

// String returns the raw value for key, or "" if unset.
func (c *Config) String(key string) string { return c.v.GetString(strings.ToLower(key)) }

// StringSlice splits a comma-separated value into trimmed entries; used
// for structParams/attrParams/dyadicParams/attrInteractionParams.
func (c *Config) StringSlice(key string) []string {
	raw := c.String(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CreateLogger builds a console-writer zerolog.Logger tagged with
// component, the way the reference codebase's own Config.CreateLogger
// does for its "service" field.
func (c *Config) CreateLogger(component string) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.String("loglevel"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Str("component", component).Logger()
}
