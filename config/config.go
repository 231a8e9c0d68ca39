package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del bot.
type Config struct {
	Model    ModelConfig    `yaml:"model"`
	Strategy StrategyConfig `yaml:"strategy"`
	Data     DataConfig     `yaml:"data"`
	Kalshi   KalshiConfig   `yaml:"kalshi"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// ModelConfig controla la derivación de probabilidades.
type ModelConfig struct {
	ReferenceRate float64 `yaml:"reference_rate"` // EFFR actual en %
	StepSize      float64 `yaml:"step_size"`      // movimiento estándar, 0.25 = 25 bps
}

// StrategyConfig controla el motor de basis y el simulador.
type StrategyConfig struct {
	EntryThreshold    float64 `yaml:"entry_threshold"` // centavos
	FeesRoundTrip     float64 `yaml:"fees_round_trip"` // centavos por contrato
	ContractsPerTrade int     `yaml:"contracts_per_trade"`
	Side              string  `yaml:"side"` // yes | no
}

// DataConfig controla las fuentes de datos del backtest.
type DataConfig struct {
	CMECSVPath  string  `yaml:"cme_csv_path"`
	MockSeed    int64   `yaml:"mock_seed"`    // seed del generador de quotes sintéticos
	DriftStd    float64 `yaml:"drift_std"`    // ruido del mock, en probabilidad
	SpreadWidth int     `yaml:"spread_width"` // ancho del quote mock en centavos
}

// KalshiConfig contiene las credenciales y el entorno del API.
type KalshiConfig struct {
	Demo           bool   `yaml:"demo"`
	APIKeyID       string `yaml:"api_key_id"` // o env KALSHI_API_KEY_ID
	PrivateKeyPath string `yaml:"private_key_path"`
}

// MonitorConfig controla el loop de trading en vivo.
type MonitorConfig struct {
	Ticker              string  `yaml:"ticker"`
	PollIntervalSeconds float64 `yaml:"poll_interval_seconds"`
	MaxPosition         int     `yaml:"max_position"`
	DryRun              bool    `yaml:"dry_run"`
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// PollInterval devuelve el intervalo de polling como time.Duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Monitor.PollIntervalSeconds * float64(time.Second))
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("KALSHI_API_KEY_ID"); v != "" {
		cfg.Kalshi.APIKeyID = v
	}
	if v := os.Getenv("KALSHI_PRIVATE_KEY_PATH"); v != "" {
		cfg.Kalshi.PrivateKeyPath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Model.ReferenceRate == 0 {
		cfg.Model.ReferenceRate = 5.33
	}
	if cfg.Model.StepSize == 0 {
		cfg.Model.StepSize = 0.25
	}
	if cfg.Strategy.EntryThreshold == 0 {
		cfg.Strategy.EntryThreshold = 4.5
	}
	if cfg.Strategy.FeesRoundTrip == 0 {
		cfg.Strategy.FeesRoundTrip = 2.0
	}
	if cfg.Strategy.ContractsPerTrade == 0 {
		cfg.Strategy.ContractsPerTrade = 10
	}
	if cfg.Strategy.Side == "" {
		cfg.Strategy.Side = "yes"
	}
	if cfg.Data.CMECSVPath == "" {
		cfg.Data.CMECSVPath = "CBOT 30-DAY Federal Fund Futures Historical Data.csv"
	}
	if cfg.Data.MockSeed == 0 {
		cfg.Data.MockSeed = 42
	}
	if cfg.Data.DriftStd == 0 {
		cfg.Data.DriftStd = 0.05
	}
	if cfg.Data.SpreadWidth == 0 {
		cfg.Data.SpreadWidth = 4
	}
	if cfg.Monitor.PollIntervalSeconds == 0 {
		cfg.Monitor.PollIntervalSeconds = 5
	}
	if cfg.Monitor.MaxPosition == 0 {
		cfg.Monitor.MaxPosition = 10
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "basisbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
