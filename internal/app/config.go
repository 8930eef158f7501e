package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"gol-miner/internal/logging"
	"gol-miner/internal/persist"
)

// Config represents every tunable of a run. Values come from defaults, then
// an optional YAML file, then command-line flags. Storage credentials are only
// read from the environment.
type Config struct {
	Size     int           `yaml:"size"`
	Workers  int           `yaml:"workers"`
	Density  float64       `yaml:"density"`
	Seed     int64         `yaml:"seed"`
	Interval time.Duration `yaml:"interval"`
	MaxTicks int           `yaml:"max_ticks"`
	Preset   string        `yaml:"preset"`

	Eps        float64 `yaml:"eps"`
	MinSamples int     `yaml:"min_samples"`
	MaxCells   int     `yaml:"max_cells"`
	Threshold  int     `yaml:"threshold"`

	Store string              `yaml:"store"`
	Dir   string              `yaml:"dir"`
	Minio persist.MinioConfig `yaml:"minio"`
	Redis persist.RedisConfig `yaml:"redis"`

	Render    string `yaml:"render"`
	RenderDir string `yaml:"render_dir"`

	Scale int `yaml:"scale"`
	TPS   int `yaml:"tps"`

	Log logging.Config `yaml:"log"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Size:       256,
		Workers:    16,
		Density:    0.1,
		Interval:   time.Second,
		Eps:        5,
		MinSamples: 3,
		MaxCells:   64,
		Threshold:  persist.DefaultThreshold,
		Store:      "memory",
		Dir:        "patterns",
		Minio:      persist.MinioConfig{Bucket: "game-of-life-patterns"},
		Redis:      persist.RedisConfig{Prefix: "gol:"},
		Render:     "none",
		RenderDir:  ".",
		Scale:      3,
		TPS:        30,
		Log:        logging.DefaultConfig(),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Size, "size", c.Size, "board side in cells")
	fs.IntVar(&c.Workers, "workers", c.Workers, "workers per generation")
	fs.Float64Var(&c.Density, "density", c.Density, "initial alive probability per cell")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial board (0 = time based)")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "pause between ticks")
	fs.IntVar(&c.MaxTicks, "max-ticks", c.MaxTicks, "stop after this many ticks (0 = run until interrupted)")
	fs.StringVar(&c.Preset, "preset", c.Preset, "tile a named preset instead of random seeding")
	fs.Float64Var(&c.Eps, "eps", c.Eps, "clustering neighborhood radius")
	fs.IntVar(&c.MinSamples, "min-samples", c.MinSamples, "clustering density threshold")
	fs.IntVar(&c.MaxCells, "max-cells", c.MaxCells, "ignore groups larger than this (0 = no limit)")
	fs.IntVar(&c.Threshold, "threshold", c.Threshold, "save a pattern once its count exceeds this")
	fs.StringVar(&c.Store, "store", c.Store, "pattern store: memory, dir, minio or redis")
	fs.StringVar(&c.Dir, "dir", c.Dir, "directory for the dir store")
	fs.StringVar(&c.Minio.Bucket, "bucket", c.Minio.Bucket, "bucket for the minio store")
	fs.BoolVar(&c.Minio.CreateBucket, "create-bucket", c.Minio.CreateBucket, "create the minio bucket when missing")
	fs.StringVar(&c.Render, "render", c.Render, "render sink: none, png or term")
	fs.StringVar(&c.RenderDir, "render-dir", c.RenderDir, "output directory for png frames")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "viewer frames per second")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "log level")
	fs.StringVar(&c.Log.Format, "log-format", c.Log.Format, "log format: console or json")
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// LoadStorageEnv reads storage credentials from the environment, after
// loading envFile when it exists. Variables already set win over the file.
func (c *Config) LoadStorageEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("env file %s: %w", envFile, err)
		}
	}
	if err := envconfig.Process("", &c.Minio); err != nil {
		return fmt.Errorf("minio env: %w", err)
	}
	if err := envconfig.Process("", &c.Redis); err != nil {
		return fmt.Errorf("redis env: %w", err)
	}
	return nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Size <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %d", c.Size))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.Density < 0 || c.Density > 1 {
		errs = append(errs, fmt.Errorf("density must be within [0,1], got %g", c.Density))
	}
	if c.Eps <= 0 {
		errs = append(errs, fmt.Errorf("eps must be positive, got %g", c.Eps))
	}
	if c.MinSamples <= 0 {
		errs = append(errs, fmt.Errorf("min-samples must be positive, got %d", c.MinSamples))
	}
	if c.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must not be negative, got %d", c.Threshold))
	}
	return errors.Join(errs...)
}

// Load builds a Config from args: defaults, then the file named by -config,
// then the remaining flags, then storage variables from the environment.
func Load(name string, args []string, output io.Writer) (*Config, error) {
	parse := func(cfg *Config) (*flag.FlagSet, *string, *string, error) {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.SetOutput(output)
		path := fs.String("config", "", "YAML config file")
		env := fs.String("env", ".env", "dotenv file with storage credentials")
		cfg.Bind(fs)
		err := fs.Parse(args)
		return fs, path, env, err
	}

	cfg := NewConfig()
	_, path, env, err := parse(cfg)
	if err != nil {
		return nil, err
	}
	if *path != "" {
		cfg = NewConfig()
		if err := cfg.LoadFile(*path); err != nil {
			return nil, err
		}
		if _, _, _, err := parse(cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.LoadStorageEnv(*env); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
