// Package config loads a flat key/value configuration bag into a typed
// Config struct, viper-backed. A fresh viper.New() instance per load
// rather than the global viper singleton keeps repeated test loads
// independent of each other.
package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"timetabling-UDP/internal/xerrors"
)

// Config is the typed projection of every recognized configuration key.
// Keys this run doesn't recognize are tolerated (a forward-compatible
// bag). Load checks only parallel.nrsolvers and the weights table; every
// other recognized key is read with viper's lenient getters, so a
// malformed value there becomes that key's zero value, not an error.
type Config struct {
	Termination struct {
		StopWhenComplete bool
		MaxIters         int
		TimeOutSeconds   int
	}
	General struct {
		Input              string
		OutputFile         string
		Output             string
		Seed               int64
		SaveBestUnassigned int
		Reports            bool
	}
	Parallel struct {
		NrSolvers int
	}
	Exam struct {
		ColoringConstruction bool
		GreatDeluge          bool
	}
	Neighbours struct {
		HillClimber        []string
		SimulatedAnnealing []string
		GreatDeluge        []string
	}
	// Weights is the criterion-name -> weight table handed to
	// internal/criteria.Registry.Build.
	Weights map[string]float64
}

func setDefaults(vp *viper.Viper) {
	vp.SetDefault("termination.stopwhencomplete", true)
	vp.SetDefault("termination.maxiters", 100000)
	vp.SetDefault("termination.timeoutseconds", 0)
	vp.SetDefault("general.seed", int64(1))
	vp.SetDefault("general.savebestunassigned", -1)
	vp.SetDefault("general.reports", false)
	vp.SetDefault("parallel.nrsolvers", 1)
	vp.SetDefault("exam.coloringconstruction", true)
	vp.SetDefault("exam.greatdeluge", false)

	_ = vp.BindEnv("general.input", "TIMETABLING_INPUT")
	_ = vp.BindEnv("general.output", "TIMETABLING_OUTPUT")
	_ = vp.BindEnv("general.seed", "TIMETABLING_SEED")
}

// Load reads path (YAML, or any format viper's codec set recognizes by
// extension) into a Config, applying defaults for every recognized key
// and tolerating unrecognized keys. A missing or unreadable file,
// parallel.nrsolvers below 1, or a non-numeric weight raises
// xerrors.ConfigError; other malformed values are not detected.
func Load(path string) (*Config, error) {
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType(configType(path))
	vp.AddConfigPath(filepath.Dir(path))
	setDefaults(vp)

	if err := vp.ReadInConfig(); err != nil {
		return nil, xerrors.NewConfigError("reading config %s: %v", path, err)
	}

	cfg := &Config{Weights: map[string]float64{}}
	cfg.Termination.StopWhenComplete = vp.GetBool("termination.stopwhencomplete")
	cfg.Termination.MaxIters = vp.GetInt("termination.maxiters")
	cfg.Termination.TimeOutSeconds = vp.GetInt("termination.timeoutseconds")
	cfg.General.Input = vp.GetString("general.input")
	cfg.General.OutputFile = vp.GetString("general.outputfile")
	cfg.General.Output = vp.GetString("general.output")
	cfg.General.Seed = vp.GetInt64("general.seed")
	cfg.General.SaveBestUnassigned = vp.GetInt("general.savebestunassigned")
	cfg.General.Reports = vp.GetBool("general.reports")
	cfg.Parallel.NrSolvers = vp.GetInt("parallel.nrsolvers")
	cfg.Exam.ColoringConstruction = vp.GetBool("exam.coloringconstruction")
	cfg.Exam.GreatDeluge = vp.GetBool("exam.greatdeluge")
	cfg.Neighbours.HillClimber = splitSemicolon(vp.GetString("hillclimber.neighbours"))
	cfg.Neighbours.SimulatedAnnealing = splitSemicolon(vp.GetString("simulatedannealing.neighbours"))
	cfg.Neighbours.GreatDeluge = splitSemicolon(vp.GetString("greatdeluge.neighbours"))

	if cfg.Parallel.NrSolvers < 1 {
		return nil, xerrors.NewConfigError("parallel.nrsolvers must be >= 1, got %d", cfg.Parallel.NrSolvers)
	}

	for key, raw := range vp.GetStringMap("weights") {
		var f float64
		switch v := raw.(type) {
		case float64:
			f = v
		case int:
			f = float64(v)
		case int64:
			f = float64(v)
		default:
			return nil, xerrors.NewConfigError("weights.%s must be a number, got %T", key, raw)
		}
		cfg.Weights[key] = f
	}

	return cfg, nil
}

func splitSemicolon(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func configType(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "yaml"
	}
	return ext
}
