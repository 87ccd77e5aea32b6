package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	StockFiles struct {
		RootPath           string `yaml:"root_path" validate:"required"`
		OutputPath         string `yaml:"output_path" validate:"required"`
		SmallFileThreshold int64  `yaml:"small_file_size_threshold" validate:"gte=0"`
		WindowLength       int    `yaml:"previous_line_count_used_for_prediction" validate:"gte=1"`
	} `yaml:"stock_files"`
	Server struct {
		Addr            string `yaml:"addr" validate:"required"`
		DefaultMaxFiles int    `yaml:"default_max_files_per_exchange" validate:"gte=1"`
	} `yaml:"server"`
	Schedule struct {
		GenerateCron    string `yaml:"generate_cron"`
		MaxFiles        int    `yaml:"max_files_per_exchange" validate:"gte=0"`
		PredictionCount int    `yaml:"prediction_count" validate:"gte=0,lte=100000"`
		Algorithm       string `yaml:"algorithm" validate:"omitempty,oneof=primitive linear"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. A missing file is not an error. Keys the
// file sets explicitly win over defaults, zero values included.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if cfg.Schedule.GenerateCron != "" && cfg.Schedule.MaxFiles == 0 {
		cfg.Schedule.MaxFiles = cfg.Server.DefaultMaxFiles
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("STOCK_ROOT_PATH"); v != "" {
		c.StockFiles.RootPath = v
	}
	if v := os.Getenv("STOCK_OUTPUT_PATH"); v != "" {
		c.StockFiles.OutputPath = v
	}
	if v := os.Getenv("SMALL_FILE_SIZE_THRESHOLD"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SMALL_FILE_SIZE_THRESHOLD: %w", err)
		}
		c.StockFiles.SmallFileThreshold = n
	}
	if v := os.Getenv("PREVIOUS_LINE_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PREVIOUS_LINE_COUNT: %w", err)
		}
		c.StockFiles.WindowLength = n
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_GENERATE"); v != "" {
		c.Schedule.GenerateCron = v
	}
	return nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.StockFiles.RootPath = "data/stock_files"
	cfg.StockFiles.OutputPath = "data/output"
	cfg.StockFiles.SmallFileThreshold = 1 << 20
	cfg.StockFiles.WindowLength = 10
	cfg.Server.Addr = ":8080"
	cfg.Server.DefaultMaxFiles = 2
	cfg.Database.SQLitePath = "data/stockpredict.db"
	return cfg
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
