package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ttpr0/poi-routing/geo"
	"github.com/ttpr0/poi-routing/graph"
	"github.com/ttpr0/poi-routing/parser"
	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) (Config, error) {
	slog.Info("Reading config file")
	data, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (Config, error) {
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

type Config struct {
	Server  ServerOptions        `yaml:"server"`
	Source  parser.SourceOptions `yaml:"source"`
	Build   BuildOptions         `yaml:"build"`
	Routing RoutingOptions       `yaml:"routing"`
	Logging LoggingOptions       `yaml:"logging"`
}

type ServerOptions struct {
	Address     string   `yaml:"address"`
	CorsOrigins []string `yaml:"cors-origins"`
}

type BuildOptions struct {
	// meters
	SnapThreshold float64 `yaml:"snap-threshold"`
	// rebuild the graph when a source file changes
	Watch bool `yaml:"watch"`
}

func (self BuildOptions) GraphOptions() graph.BuildOptions {
	return graph.BuildOptions{
		SnapThreshold: self.SnapThreshold,
	}
}

type RoutingOptions struct {
	// [lon, lat] used when a request has no start
	DefaultStart  []float64 `yaml:"default-start"`
	MaxMatrixSize int       `yaml:"max-matrix-size"`
	MatrixWorkers int       `yaml:"matrix-workers"`
}

func (self RoutingOptions) GetDefaultStart() geo.Coord {
	return geo.NewCoord(self.DefaultStart[0], self.DefaultStart[1])
}

type LoggingOptions struct {
	Level LogLevel `yaml:"level"`
	// rotating log file, empty for stdout only
	File string `yaml:"file"`
	// megabytes
	MaxSize int `yaml:"max-size"`
	// days
	MaxAge int `yaml:"max-age"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerOptions{
			Address:     ":5000",
			CorsOrigins: []string{"*"},
		},
		Source: parser.SourceOptions{
			Points: "./static/points.json",
			Roads:  "./static/roads.json",
		},
		Build: BuildOptions{
			SnapThreshold: graph.DEFAULT_SNAP_THRESHOLD,
		},
		Routing: RoutingOptions{
			DefaultStart:  []float64{3.072866677193673, 36.7468386861365},
			MaxMatrixSize: 100,
			MatrixWorkers: 4,
		},
		Logging: LoggingOptions{
			Level:   LogLevel(slog.LevelInfo),
			MaxSize: 100,
			MaxAge:  28,
		},
	}
}

func (self Config) Validate() error {
	if !(self.Build.SnapThreshold >= 0) || math.IsInf(self.Build.SnapThreshold, 0) {
		return errors.New("snap-threshold must be a non-negative number")
	}
	if len(self.Routing.DefaultStart) != 2 || !self.Routing.GetDefaultStart().IsValid() {
		return errors.New("default-start must be a valid [lon, lat] pair")
	}
	if self.Routing.MaxMatrixSize <= 0 {
		return errors.New("max-matrix-size must be positive")
	}
	if self.Routing.MatrixWorkers <= 0 {
		return errors.New("matrix-workers must be positive")
	}
	return nil
}

//**********************************************************
// enums
//**********************************************************

type LogLevel slog.Level

func (self LogLevel) String() string {
	return slog.Level(self).String()
}
func (self LogLevel) MarshalYAML() (any, error) {
	return strings.ToLower(self.String()), nil
}
func (self *LogLevel) UnmarshalYAML(value *yaml.Node) error {
	level, err := LogLevelFromString(value.Value)
	if err != nil {
		return err
	}
	*self = level
	return nil
}

func LogLevelFromString(s string) (LogLevel, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LogLevel(slog.LevelDebug), nil
	case "info":
		return LogLevel(slog.LevelInfo), nil
	case "warn", "warning":
		return LogLevel(slog.LevelWarn), nil
	case "error":
		return LogLevel(slog.LevelError), nil
	default:
		return LogLevel(slog.LevelInfo), errors.New("unknown log level")
	}
}
