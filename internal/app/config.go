package app

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultContractAddress is the ballot the client talks to unless told
	// otherwise.
	DefaultContractAddress = "0xFc894967E9c09c6DBDBc002F7d6Fb9F657710cAF"
	DefaultRPCURL          = "http://127.0.0.1:8545"
	DefaultQuestion        = "Should we get a 5.0 on the final?"

	WalletLocal = "local"
	WalletRPC   = "rpc"

	configFileName = "config.yaml"
	envPrefix      = "CHAINVOTE_"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	// Home is the data directory, e.g. $HOME/.chainvote. Not read from the
	// config file.
	Home string `yaml:"-"`

	// Chain access
	RPCURL          string `yaml:"rpc_url"`
	ContractAddress string `yaml:"contract_address"`
	ChainID         uint64 `yaml:"chain_id"`  // 0 = ask the node
	GasLimit        uint64 `yaml:"gas_limit"` // 0 = estimate
	VerifyContract  bool   `yaml:"verify_contract"`

	// Wallet provider: "local" (encrypted key in Home) or "rpc".
	Wallet       string `yaml:"wallet"`
	WalletRPCURL string `yaml:"wallet_rpc_url"` // defaults to RPCURL

	// Timing, as Go durations ("2m", "1s").
	ConfirmTimeout string `yaml:"confirm_timeout"`
	PollInterval   string `yaml:"poll_interval"`

	// Screen text
	Question string `yaml:"question"`
	Footer   string `yaml:"footer"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // used by the interactive screen
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig(home string) Config {
	return Config{
		Home:            home,
		RPCURL:          DefaultRPCURL,
		ContractAddress: DefaultContractAddress,
		VerifyContract:  true,
		Wallet:          WalletLocal,
		ConfirmTimeout:  "2m",
		PollInterval:    "2s",
		Question:        DefaultQuestion,
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(home, "chainvote.log"),
		},
	}
}

// ConfigPath returns the default config file location inside home.
func ConfigPath(home string) string { return filepath.Join(home, configFileName) }

// LoadConfigFile overlays the YAML file at path onto cfg. A missing file is
// not an error.
func LoadConfigFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overlays CHAINVOTE_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	str := map[string]*string{
		"RPC_URL":          &cfg.RPCURL,
		"CONTRACT_ADDRESS": &cfg.ContractAddress,
		"WALLET":           &cfg.Wallet,
		"WALLET_RPC_URL":   &cfg.WalletRPCURL,
		"CONFIRM_TIMEOUT":  &cfg.ConfirmTimeout,
		"POLL_INTERVAL":    &cfg.PollInterval,
		"QUESTION":         &cfg.Question,
		"FOOTER":           &cfg.Footer,
		"LOG_LEVEL":        &cfg.Logging.Level,
		"LOG_FILE":         &cfg.Logging.File,
	}
	for k, dst := range str {
		if v, ok := os.LookupEnv(envPrefix + k); ok {
			*dst = v
		}
	}

	nums := map[string]*uint64{
		"CHAIN_ID":  &cfg.ChainID,
		"GAS_LIMIT": &cfg.GasLimit,
	}
	for k, dst := range nums {
		if v, ok := os.LookupEnv(envPrefix + k); ok && v != "" {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid %s%s: %w", envPrefix, k, err)
			}
			*dst = n
		}
	}

	if v, ok := os.LookupEnv(envPrefix + "VERIFY_CONTRACT"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %sVERIFY_CONTRACT: %w", envPrefix, err)
		}
		cfg.VerifyContract = b
	}
	return nil
}

// Settings are the validated, typed form of Config.
type Settings struct {
	Contract       common.Address
	ChainID        *big.Int
	ConfirmTimeout time.Duration
	PollInterval   time.Duration
}

// Validate checks cfg and returns its typed settings.
func (cfg Config) Validate() (Settings, error) {
	var s Settings

	if cfg.Home == "" {
		return s, errors.New("home directory is not set")
	}
	if strings.TrimSpace(cfg.RPCURL) == "" {
		return s, errors.New("rpc_url is required")
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return s, fmt.Errorf("contract_address %q is not a valid address", cfg.ContractAddress)
	}
	s.Contract = common.HexToAddress(cfg.ContractAddress)

	switch cfg.Wallet {
	case WalletLocal, WalletRPC:
	default:
		return s, fmt.Errorf("wallet must be %q or %q, got %q", WalletLocal, WalletRPC, cfg.Wallet)
	}

	if cfg.ChainID != 0 {
		s.ChainID = new(big.Int).SetUint64(cfg.ChainID)
	}

	var err error
	if s.ConfirmTimeout, err = parseDuration("confirm_timeout", cfg.ConfirmTimeout); err != nil {
		return s, err
	}
	if s.PollInterval, err = parseDuration("poll_interval", cfg.PollInterval); err != nil {
		return s, err
	}
	return s, nil
}

func parseDuration(field, v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", field)
	}
	return d, nil
}

// WalletEndpoint returns the URL of the RPC wallet.
func (cfg Config) WalletEndpoint() string {
	if cfg.WalletRPCURL != "" {
		return cfg.WalletRPCURL
	}
	return cfg.RPCURL
}
