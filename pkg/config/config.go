// Package config loads the engine's tunables through Viper, grounded
// on the teacher's pkg/config.EnhancedConfig: defaults are set in
// code, then overridden by an optional config file and environment
// variables, with fsnotify watching the file for live reload of the
// tunables §9's Open Questions ask to be configuration, not constants
// (tolerance percentages, pool sizes, TTLs, token-bucket shape).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds every tunable the spec calls out as configuration
// rather than a baked-in constant.
type Config struct {
	Environment string
	Debug       bool

	Server ServerConfig
	Redis  RedisConfig

	Tolerances   TolerancesConfig
	HardCaps     HardCapsConfig
	MarketRun    MarketRunConfig
	PriceClient  PriceClientConfig
	Nutrition    NutritionConfig
	Solver       SolverConfig
	Events       EventsConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RequestWall  time.Duration // §5: 180s total per-request wall time
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// TolerancesConfig is the "expose as configuration, not bake them"
// knob set from §9's Open Questions.
type TolerancesConfig struct {
	KcalPct      float64
	MacroPct     float64 // applies to protein/fat/carb
	CarbFloorPct float64
	FingerprintKcalPct  float64
	FingerprintMacroPct float64
}

type HardCapsConfig struct {
	ProteinMaxGPerKg float64
	FatMaxMultiple   float64
	CarbMinMultiple  float64
	MinKcal          float64
}

type MarketRunConfig struct {
	Workers int
}

type PriceClientConfig struct {
	BucketCapacity    float64
	BucketRefillRate  float64
	BucketMaxWait     time.Duration
	HTTPTimeout       time.Duration
	MaxRetries        int
	RateLimitRetryDelay time.Duration
	FreshTTL          time.Duration
	HardTTL           time.Duration
	PageSize          int
}

type NutritionConfig struct {
	ResolverWorkers int
	FreshTTL        time.Duration
	HardTTL         time.Duration
}

type SolverConfig struct {
	MinScale        float64
	MaxScale        float64
	MaxIterations   int
	HeuristicMaxIter int
}

// EventsConfig controls whether a run's progress events are also
// published to Kafka, for an external subscriber, in addition to the
// in-request NDJSON stream (§6's event log is additive, not either/or).
type EventsConfig struct {
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Default returns the baseline values taken directly from spec.md
// (§4.9, §4.10, §4.11, §5, §4.6) before any override is applied.
func Default() *Config {
	return &Config{
		Environment: "development",
		Debug:       false,
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			RequestWall:  180 * time.Second,
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Tolerances: TolerancesConfig{
			KcalPct:             0.03,
			MacroPct:            0.08,
			CarbFloorPct:        0.8,
			FingerprintKcalPct:  0.20,
			FingerprintMacroPct: 0.25,
		},
		HardCaps: HardCapsConfig{
			ProteinMaxGPerKg: 2.8,
			FatMaxMultiple:   1.5,
			CarbMinMultiple:  0.8,
			MinKcal:          1200,
		},
		MarketRun: MarketRunConfig{Workers: 5},
		PriceClient: PriceClientConfig{
			BucketCapacity:      10,
			BucketRefillRate:    10,
			BucketMaxWait:       250 * time.Millisecond,
			HTTPTimeout:         8 * time.Second,
			MaxRetries:          3,
			RateLimitRetryDelay: 700 * time.Millisecond,
			FreshTTL:            1 * time.Hour,
			HardTTL:             3 * time.Hour,
			PageSize:            20,
		},
		Nutrition: NutritionConfig{
			ResolverWorkers: 5,
			FreshTTL:        6 * time.Hour,
			HardTTL:         24 * time.Hour,
		},
		Solver: SolverConfig{
			MinScale:         0.3,
			MaxScale:         3.0,
			MaxIterations:    800,
			HeuristicMaxIter: 400,
		},
		Events: EventsConfig{
			KafkaEnabled: false,
			KafkaBrokers: []string{"localhost:9092"},
			KafkaTopic:   "mealplan.run.events",
		},
	}
}

// Load reads an optional config file (path may be empty) and
// environment variables (prefixed MEALPLAN_) on top of Default(),
// and watches the file for changes, invoking onChange with the
// reloaded Config. Grounded on pkg/config.EnhancedConfig.Watch.
func Load(path string, log *zap.Logger, onChange func(*Config)) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("MEALPLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if path != "" && onChange != nil {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			reloaded := Default()
			if err := v.Unmarshal(reloaded); err != nil {
				if log != nil {
					log.Warn("config reload failed", zap.Error(err))
				}
				return
			}
			onChange(reloaded)
		})
	}

	return cfg, nil
}

func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("environment", cfg.Environment)
	v.SetDefault("tolerances.kcalpct", cfg.Tolerances.KcalPct)
	v.SetDefault("tolerances.macropct", cfg.Tolerances.MacroPct)
	v.SetDefault("tolerances.carbfloorpct", cfg.Tolerances.CarbFloorPct)
	v.SetDefault("marketrun.workers", cfg.MarketRun.Workers)
	v.SetDefault("priceclient.bucketcapacity", cfg.PriceClient.BucketCapacity)
	v.SetDefault("priceclient.bucketrefillrate", cfg.PriceClient.BucketRefillRate)
	v.SetDefault("events.kafkaenabled", cfg.Events.KafkaEnabled)
	v.SetDefault("events.kafkabrokers", cfg.Events.KafkaBrokers)
	v.SetDefault("events.kafkatopic", cfg.Events.KafkaTopic)
}
