// Package config provides a reusable loader for the basket engine's
// policy configuration: the DAO-wide fee split/floor and the bounds a
// basket's own parameters must respect, loaded from YAML with
// environment-variable overrides. It is versioned so that applications
// can depend on a stable API contract.
//
// Version: v0.2.0
package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"synnergy-network/core"
	"synnergy-network/pkg/utils"
)

// Version is the semantic version of this configuration package.
const Version = "v0.2.0"

// DAOFeeSection mirrors core.DAOFeeConfig's three fields as plain decimal
// strings in YAML/env (e.g. "0.5", "0.0001"), parsed into D18-scaled
// core.Decimal values by ToDAOFeeConfig.
type DAOFeeSection struct {
	Numerator   string `mapstructure:"numerator" json:"numerator"`
	Denominator string `mapstructure:"denominator" json:"denominator"`
	Floor       string `mapstructure:"floor" json:"floor"`
}

// PolicyBounds mirrors the package-level caps in core/constants.go that a
// deployment may retune within the documented ranges (spec.md §6's "Key
// constants ... implementers may tune within documented bounds").
type PolicyBounds struct {
	MaxTVLFeeAnnual      string `mapstructure:"max_tvl_fee_annual" json:"max_tvl_fee_annual"`
	MaxMintFee           string `mapstructure:"max_mint_fee" json:"max_mint_fee"`
	MinAuctionLength     uint64 `mapstructure:"min_auction_length" json:"min_auction_length"`
	MaxAuctionLength     uint64 `mapstructure:"max_auction_length" json:"max_auction_length"`
	MaxTTL               uint64 `mapstructure:"max_ttl" json:"max_ttl"`
	RestrictedAuctionBuf uint64 `mapstructure:"restricted_auction_buffer" json:"restricted_auction_buffer"`
}

// Config is the unified policy configuration for one deployment of the
// basket engine. It mirrors the structure of the YAML files under
// cmd/config.
type Config struct {
	DAOFee DAOFeeSection `mapstructure:"dao_fee" json:"dao_fee"`
	Policy PolicyBounds  `mapstructure:"policy" json:"policy"`

	Logging struct {
		Level string `mapstructure:"level" json:"level"`
		File  string `mapstructure:"file" json:"file"`
	} `mapstructure:"logging" json:"logging"`
}

// AppConfig holds the configuration loaded via Load or LoadFromEnv.
var AppConfig Config

// Load reads configuration files and merges any environment specific
// overrides. The resulting configuration is stored in AppConfig and
// returned.
//
// The function uses the provided environment name to merge additional
// config files. If env is empty, only the default configuration is
// loaded.
func Load(env string) (*Config, error) {
	viper.SetConfigName("default")
	viper.AddConfigPath("cmd/config")
	viper.AddConfigPath("config")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, utils.Wrap(err, "load config")
	}

	if env != "" {
		viper.SetConfigName(env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, utils.Wrap(err, fmt.Sprintf("merge %s config", env))
		}
	}

	viper.AutomaticEnv() // no prefix or key replacer: overrides use the upper-cased key, e.g. DAO_FEE.NUMERATOR

	if err := viper.Unmarshal(&AppConfig); err != nil {
		return nil, utils.Wrap(err, "unmarshal config")
	}
	return &AppConfig, nil
}

// LoadFromEnv loads configuration using the SYNN_ENV environment variable.
func LoadFromEnv() (*Config, error) {
	return Load(utils.EnvOrDefault("SYNN_ENV", ""))
}

// WatchPolicyChanges installs a viper config-file watcher (backed
// transitively by fsnotify) so a long-running cranker process picks up
// DAO fee-floor or policy-bound changes without a restart. onChange is
// invoked with the freshly reloaded Config after each write; unmarshal
// errors are passed through unchanged so the caller can decide whether to
// keep running on the previous, known-good Config.
func WatchPolicyChanges(onChange func(*Config, error)) {
	viper.OnConfigChange(func(_ fsnotify.Event) {
		var cfg Config
		err := viper.Unmarshal(&cfg)
		if err == nil {
			AppConfig = cfg
		}
		onChange(&cfg, err)
	})
	viper.WatchConfig()
}

// ToDAOFeeConfig parses the section's decimal-string fields into a
// core.DAOFeeConfig ready to pass into core.Basket.Poke /
// CalculateFeesForMinting.
func (s DAOFeeSection) ToDAOFeeConfig() (core.DAOFeeConfig, error) {
	num, err := parseDecimal(s.Numerator)
	if err != nil {
		return core.DAOFeeConfig{}, utils.Wrap(err, "dao_fee.numerator")
	}
	den, err := parseDecimal(s.Denominator)
	if err != nil {
		return core.DAOFeeConfig{}, utils.Wrap(err, "dao_fee.denominator")
	}
	floor, err := parseDecimal(s.Floor)
	if err != nil {
		return core.DAOFeeConfig{}, utils.Wrap(err, "dao_fee.floor")
	}
	return core.DAOFeeConfig{Numerator: num, Denominator: den, Floor: floor}, nil
}

// parseDecimal parses a base-10 decimal literal into a D18-scaled
// core.Decimal, rejecting malformed input rather than panicking the way
// core's package-init constant parser may.
func parseDecimal(s string) (core.Decimal, error) {
	if s == "" {
		return core.ZeroDecimal, nil
	}
	return core.ParseDecimal(s)
}
