package app

import (
	"errors"
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

// ReadConfig loads a YAML config file over DefaultConfig (so any knob
// the file leaves out keeps its default), and validates the result. The core packages (partition,
// metric, phantom, mld) take no configuration at all — everything here
// is CLI/demo-boundary tuning, per spec.md §7's "core never re-validates
// its own invariants" stance: this is the one place caller-supplied
// input is checked.
func ReadConfig(file string) (Config, error) {
	slog.Info("reading config file", slog.String("path", file))
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, err
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// DefaultConfig returns the knob values used when a fixture is run
// without a config file at all.
func DefaultConfig() Config {
	return Config{
		Solver: SolverOptions{
			WantDistance: true,
			WantDuration: true,
			Validation:   STRICT,
		},
		Workers: WorkerOptions{
			PoolSize: runtime.NumCPU(),
		},
	}
}

// Config is decoded once at process start and shared read-only across
// every worker's WorkingStorage — it never changes mid-query.
type Config struct {
	Solver  SolverOptions `yaml:"solver" validate:"required"`
	Workers WorkerOptions `yaml:"workers" validate:"required"`
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}

// SolverOptions are the default result-matrix flags used by the query
// command when --want-distance/--want-duration are not overridden on
// the command line, plus the input-validation strictness applied to
// phantom/index fixtures before they reach the engine.
type SolverOptions struct {
	WantDistance bool           `yaml:"want-distance"`
	WantDuration bool           `yaml:"want-duration"`
	Validation   ValidationMode `yaml:"validation"`
}

// WorkerOptions sizes the bench command's worker pool; each worker
// gets its own WorkingStorage and never shares it.
type WorkerOptions struct {
	PoolSize int `yaml:"pool-size" validate:"gte=1"`
}

//**********************************************************
// validation mode
//**********************************************************

type ValidationMode byte

const (
	STRICT  ValidationMode = 0
	LENIENT ValidationMode = 1
)

func (m ValidationMode) String() string {
	switch m {
	case STRICT:
		return "strict"
	case LENIENT:
		return "lenient"
	default:
		panic("unknown validation mode")
	}
}

func (m ValidationMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

func (m *ValidationMode) UnmarshalYAML(value *yaml.Node) error {
	if value.Value == "" {
		*m = STRICT
		return nil
	}
	mode, err := ValidationModeFromString(value.Value)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func ValidationModeFromString(s string) (ValidationMode, error) {
	switch s {
	case "strict":
		return STRICT, nil
	case "lenient":
		return LENIENT, nil
	default:
		return STRICT, errors.New("unknown validation mode: " + s)
	}
}
