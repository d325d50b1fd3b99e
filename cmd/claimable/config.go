package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// passwordEnv overrides wallet password from the config file.
const passwordEnv = "CLAIMABLE_WALLET_PASSWORD"

const (
	defaultTimeout     = 15 * time.Second
	defaultWaitTimeout = 2 * time.Minute
)

// config is the YAML configuration of the tool. Command line flags take
// precedence over it.
type config struct {
	RPC struct {
		Endpoint       string        `yaml:"endpoint"`
		DialTimeout    time.Duration `yaml:"dial_timeout"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
	} `yaml:"rpc"`

	Wallet struct {
		Path     string `yaml:"path"`
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
	} `yaml:"wallet"`

	// Address or LE script hash of the Claimable contract.
	Contract string `yaml:"contract"`

	// Limits waiting for transaction acceptance.
	WaitTimeout time.Duration `yaml:"wait_timeout"`

	Logger struct {
		Level string `yaml:"level"`
	} `yaml:"logger"`
}

// loadConfig reads config from path. Empty path gives defaults.
func loadConfig(path string) (*config, error) {
	var c config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		err = yaml.Unmarshal(data, &c)
		if err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	if v := os.Getenv(passwordEnv); v != "" {
		c.Wallet.Password = v
	}

	if c.RPC.DialTimeout == 0 {
		c.RPC.DialTimeout = defaultTimeout
	}
	if c.RPC.RequestTimeout == 0 {
		c.RPC.RequestTimeout = defaultTimeout
	}
	if c.WaitTimeout == 0 {
		c.WaitTimeout = defaultWaitTimeout
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}

	return &c, nil
}

// flagSource is the part of cli.Context used to override config values.
type flagSource interface {
	GlobalIsSet(name string) bool
	GlobalString(name string) string
}

// applyFlags overrides config values by global flags set explicitly.
func (c *config) applyFlags(f flagSource) {
	for name, dst := range map[string]*string{
		rpcFlag:      &c.RPC.Endpoint,
		walletFlag:   &c.Wallet.Path,
		addressFlag:  &c.Wallet.Address,
		contractFlag: &c.Contract,
		logLevelFlag: &c.Logger.Level,
	} {
		if f.GlobalIsSet(name) {
			*dst = f.GlobalString(name)
		}
	}
}

func (c *config) checkRPC() error {
	if c.RPC.Endpoint == "" {
		return errors.New("missing Neo RPC endpoint")
	}
	return nil
}
