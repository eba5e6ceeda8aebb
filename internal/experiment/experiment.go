// Package experiment loads experiment definitions from TOML and runs them
// through cross-validation.
package experiment

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/go-sod/knn/internal/crossval"
	"github.com/go-sod/knn/internal/dataset"
	"github.com/go-sod/knn/internal/predictor"
)

var ErrInvalidExperiment = errors.New("invalid experiment")

// Experiment describes one cross-validated evaluation. Unset fields take
// their value from the defaults passed to Load.
type Experiment struct {
	Name                string   `toml:"name" yaml:"name"`
	Dataset             string   `toml:"dataset" yaml:"dataset"`
	Task                string   `toml:"task" yaml:"task"`
	Target              string   `toml:"target" yaml:"target"`
	Ignored             []string `toml:"ignored" yaml:"ignored"`
	K                   *int     `toml:"k" yaml:"k"`
	Folds               *int     `toml:"folds" yaml:"folds"`
	Seed                *int64   `toml:"seed" yaml:"seed"`
	DistanceWeighting   *bool    `toml:"distance_weighting" yaml:"distance_weighting"`
	RealDistance        string   `toml:"real_distance" yaml:"real_distance"`
	P                   float64  `toml:"p" yaml:"p"`
	CategoricalDistance string   `toml:"categorical_distance" yaml:"categorical_distance"`
}

type file struct {
	Experiments []Experiment `toml:"experiment" yaml:"experiment"`
}

// Defaults supplies the values of fields an experiment leaves unset.
type Defaults struct {
	Predictor predictor.Config
	Dataset   dataset.Config
}

// LoadFile reads experiments from path, as YAML when the extension is .yaml
// or .yml and as TOML otherwise. Relative dataset paths are resolved against
// the directory of path.
func LoadFile(path string, defaults Defaults) ([]Experiment, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening experiments: %w", err)
	}
	defer fd.Close()

	load := Load
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		load = LoadYAML
	}
	experiments, err := load(fd, defaults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i := range experiments {
		if !filepath.IsAbs(experiments[i].Dataset) {
			experiments[i].Dataset = filepath.Join(dir, experiments[i].Dataset)
		}
	}
	return experiments, nil
}

// Load reads TOML experiments from r.
func Load(r io.Reader, defaults Defaults) ([]Experiment, error) {
	var f file
	meta, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, fmt.Errorf("decoding experiments: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidExperiment, strings.Join(keys, ", "))
	}
	return finish(f, defaults)
}

// LoadYAML reads YAML experiments from r.
func LoadYAML(r io.Reader, defaults Defaults) ([]Experiment, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decoding experiments: %v", ErrInvalidExperiment, err)
	}
	return finish(f, defaults)
}

func finish(f file, defaults Defaults) ([]Experiment, error) {
	seen := make(map[string]struct{}, len(f.Experiments))
	for i := range f.Experiments {
		e := &f.Experiments[i]
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("experiment %d: %w", i, err)
		}
		if _, ok := seen[e.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidExperiment, e.Name)
		}
		seen[e.Name] = struct{}{}
		e.applyDefaults(defaults)
	}
	return f.Experiments, nil
}

func (e *Experiment) validate() error {
	switch {
	case e.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidExperiment)
	case e.Dataset == "":
		return fmt.Errorf("%w: %s: dataset is required", ErrInvalidExperiment, e.Name)
	case e.Target == "":
		return fmt.Errorf("%w: %s: target is required", ErrInvalidExperiment, e.Name)
	}
	if e.K != nil && *e.K < 1 {
		return fmt.Errorf("%w: %s: k must be positive, got %d", ErrInvalidExperiment, e.Name, *e.K)
	}
	if e.Folds != nil && *e.Folds < 1 {
		return fmt.Errorf("%w: %s: folds must be positive, got %d", ErrInvalidExperiment, e.Name, *e.Folds)
	}
	task, err := crossval.ParseTask(e.Task)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidExperiment, e.Name, err)
	}
	e.Task = string(task)
	return nil
}

func (e *Experiment) applyDefaults(d Defaults) {
	if e.K == nil {
		k := d.Predictor.K
		e.K = &k
	}
	if e.Folds == nil {
		folds := d.Dataset.Folds
		e.Folds = &folds
	}
	if e.Seed == nil {
		seed := d.Dataset.Seed
		e.Seed = &seed
	}
	if e.DistanceWeighting == nil {
		weighted := d.Predictor.DistanceWeighting
		e.DistanceWeighting = &weighted
	}
	if e.RealDistance == "" {
		e.RealDistance = d.Predictor.RealDistance
	}
	if e.P == 0 {
		e.P = d.Predictor.P
	}
	if e.CategoricalDistance == "" {
		e.CategoricalDistance = d.Predictor.CategoricalDistance
	}
}

func (e Experiment) PredictorConfig() predictor.Config {
	cfg := predictor.Config{
		RealDistance:        e.RealDistance,
		P:                   e.P,
		CategoricalDistance: e.CategoricalDistance,
	}
	if e.K != nil {
		cfg.K = *e.K
	}
	if e.DistanceWeighting != nil {
		cfg.DistanceWeighting = *e.DistanceWeighting
	}
	return cfg
}

func (e Experiment) DatasetConfig() dataset.Config {
	cfg := dataset.Config{Folds: dataset.DefaultFolds, Seed: dataset.DefaultSeed}
	if e.Folds != nil {
		cfg.Folds = *e.Folds
	}
	if e.Seed != nil {
		cfg.Seed = *e.Seed
	}
	return cfg
}
