package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"BiasDesk/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Inputs struct {
		Daily string `yaml:"daily"`
		H4    string `yaml:"h4"`
		M60   string `yaml:"m60"`
		M30   string `yaml:"m30"`
	} `yaml:"inputs"`
	Analysis   Options    `yaml:"analysis"`
	Thresholds Thresholds `yaml:"thresholds"`

	Export struct {
		Dir string `yaml:"dir"`
	} `yaml:"export"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stderr"`
	} `yaml:"log"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
}

// Options selects what the single-bar interpreter looks at.
type Options struct {
	InterpretTimeframe string `yaml:"interpret_timeframe" default:"daily" validate:"oneof=daily 4h 60m 30m"`
	SelectedDate       string `yaml:"selected_date" validate:"omitempty,datetime=2006-01-02"`
	Lookback           int    `yaml:"lookback" default:"5" validate:"gte=3,lte=10"`
}

// Thresholds is the full rule configuration. Load applies the defaults before
// reading YAML, so an explicit zero in the file is kept.
type Thresholds struct {
	DailyPOCUpDays         int `yaml:"daily_poc_up_days" default:"2" validate:"gte=1"`
	DailyVWAPOverPOCMin    int `yaml:"daily_vwap_over_poc_min" default:"2" validate:"gte=1"`
	DailyClosesAboveVAHMin int `yaml:"daily_closes_above_vah_min" default:"2" validate:"gte=1"`
	DailyClosesBelowVALMin int `yaml:"daily_closes_below_val_min" default:"2" validate:"gte=1"`
	DailyBars              int `yaml:"daily_bars" default:"3" validate:"gte=2"`
	H4VWAPOverPOCMin       int `yaml:"h4_vwap_over_poc_min" default:"4" validate:"gte=1"`
	H4ClosesAboveVAHMin    int `yaml:"h4_closes_above_vah_min" default:"2" validate:"gte=1"`
	H4ClosesBelowVALMin    int `yaml:"h4_closes_below_val_min" default:"2" validate:"gte=1"`
	H4Bars                 int `yaml:"h4_bars" default:"6" validate:"gte=1"`
	Min30Bars              int `yaml:"min30_bars" default:"5" validate:"gte=2"`
	StructureLookback      int `yaml:"structure_lookback" default:"6" validate:"gte=1"`
	StructureTolerance     int `yaml:"structure_tolerance" default:"1" validate:"gte=0"`
	BacktestSessions       int `yaml:"backtest_sessions" default:"10" validate:"gte=1"`

	RequireTrendAgreement bool `yaml:"require_trend_agreement"`

	Min30PriceDelta         float64 `yaml:"min30_price_delta_threshold" default:"5" validate:"gte=0"`
	Min30VWAPDelta          float64 `yaml:"min30_vwap_delta_threshold" default:"3" validate:"gte=0"`
	StructureNarrowRatio    float64 `yaml:"structure_narrow_ratio" default:"0.7" validate:"gt=0"`
	VolumeSpikeRatio        float64 `yaml:"volume_spike_ratio" default:"1.3" validate:"gt=0"`
	VACompressionRatio      float64 `yaml:"va_compression_ratio" default:"0.7" validate:"gt=0"`
	BalancedFraction        float64 `yaml:"balanced_fraction" default:"0.1" validate:"gt=0"`
	ConsensusFraction       float64 `yaml:"consensus_fraction" default:"0.1" validate:"gt=0"`
	ProximityFraction       float64 `yaml:"proximity_fraction" default:"0.2" validate:"gt=0"`
	AbsorptionBodyFraction  float64 `yaml:"absorption_body_fraction" default:"0.2" validate:"gt=0"`
	InefficientBodyFraction float64 `yaml:"inefficient_body_fraction" default:"0.5" validate:"gt=0"`
	InefficientTradesRatio  float64 `yaml:"inefficient_trades_ratio" default:"0.8" validate:"gt=0"`
	MergeVolumeMinDaily     float64 `yaml:"merge_volume_min_daily" validate:"gte=0"`
	MergeVolumeMinH4        float64 `yaml:"merge_volume_min_h4" validate:"gte=0"`
	MergeVolumeMinIntraday  float64 `yaml:"merge_volume_min_intraday" validate:"gte=0"`
}

var validate = validator.New()

// DefaultThresholds returns a Thresholds with every default applied.
func DefaultThresholds() Thresholds {
	var t Thresholds
	if err := defaults.Set(&t); err != nil {
		// only reachable with a malformed default tag
		panic(fmt.Sprintf("threshold defaults: %v", err))
	}
	return t
}

// Validate checks every threshold against its declared range.
func (t Thresholds) Validate() error { return describe(validate.Struct(t)) }

// DefaultOptions returns Options with every default applied.
func DefaultOptions() Options {
	var o Options
	_ = defaults.Set(&o)
	return o
}

// Validate checks the options against their declared ranges.
func (o Options) Validate() error { return describe(validate.Struct(o)) }

// Timeframe returns the parsed interpret timeframe.
func (o Options) Timeframe() model.Timeframe {
	tf, err := model.ParseTimeframe(o.InterpretTimeframe)
	if err != nil {
		return model.TFDaily
	}
	return tf
}

// Load applies defaults, then reads config from a YAML file and applies
// environment variable overrides. A missing file yields a default config.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BIAS_DAILY_CSV"); v != "" {
		cfg.Inputs.Daily = v
	}
	if v := os.Getenv("BIAS_H4_CSV"); v != "" {
		cfg.Inputs.H4 = v
	}
	if v := os.Getenv("BIAS_60M_CSV"); v != "" {
		cfg.Inputs.M60 = v
	}
	if v := os.Getenv("BIAS_30M_CSV"); v != "" {
		cfg.Inputs.M30 = v
	}
	if v := os.Getenv("BIAS_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("BIAS_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if err := cfg.Analysis.Validate(); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, fmt.Errorf("thresholds: %w", err)
	}

	return cfg, nil
}

// InputPaths returns the configured source path per timeframe.
func (c *Config) InputPaths() map[model.Timeframe]string {
	out := map[model.Timeframe]string{}
	if c.Inputs.Daily != "" {
		out[model.TFDaily] = c.Inputs.Daily
	}
	if c.Inputs.H4 != "" {
		out[model.TF4H] = c.Inputs.H4
	}
	if c.Inputs.M60 != "" {
		out[model.TF60m] = c.Inputs.M60
	}
	if c.Inputs.M30 != "" {
		out[model.TF30m] = c.Inputs.M30
	}
	return out
}

// Validate checks that the config can drive a run.
func (c *Config) Validate() error {
	if len(c.InputPaths()) == 0 {
		return fmt.Errorf("at least one of inputs.daily, inputs.h4, inputs.m60, inputs.m30 is required")
	}
	return nil
}

func describe(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s (got %v)", fe.Field(), fe.Tag(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
