// Command claimable is an operator tool of the Claimable balance contract.
// It deploys the contract, makes deposits and claims, shows records and dumps
// the contract state.
package main

import (
	"fmt"
	"os"

	"github.com/nspcc-dev/claimable-contract/common"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

const (
	configFlag   = "config"
	rpcFlag      = "rpc"
	walletFlag   = "wallet"
	addressFlag  = "address"
	contractFlag = "contract"
	logLevelFlag = "log-level"

	tokenFlag        = "token"
	inFlag           = "in"
	adminFlag        = "admin"
	blocksPerDayFlag = "blocks-per-day"
	extendFlag       = "extend"
	dirFlag          = "dir"
	labelFlag        = "label"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "claimable"
	app.Usage = "Claimable balance contract tool"
	app.Version = fmt.Sprintf("v%d.%d.%d", common.Version/1_000_000, common.Version/1_000%1_000, common.Version%1_000)
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: configFlag + ", c", Usage: "Path to the YAML config"},
		cli.StringFlag{Name: rpcFlag + ", r", Usage: "Network address of the Neo RPC server"},
		cli.StringFlag{Name: walletFlag + ", w", Usage: "Path to the NEP-6 wallet"},
		cli.StringFlag{Name: addressFlag + ", a", Usage: "Wallet account to act on behalf of"},
		cli.StringFlag{Name: contractFlag, Usage: "Address or LE script hash of the contract"},
		cli.StringFlag{Name: logLevelFlag, Usage: "Logging level (debug, info, warn, error)"},
	}
	app.Commands = []cli.Command{
		{
			Name:   "deploy",
			Usage:  "Deploy the contract or update its code",
			Action: deployCmd,
			Flags: []cli.Flag{
				cli.StringFlag{Name: inFlag, Value: "contracts/claimable", Usage: "Directory with compiled contract.nef and manifest.json"},
				cli.StringFlag{Name: adminFlag, Usage: "Account allowed to make deposits, defaults to the wallet account"},
				cli.IntFlag{Name: blocksPerDayFlag, Usage: "Number of blocks per day, 0 for the contract default"},
			},
		},
		{
			Name:      "deposit",
			Usage:     "Lock tokens of the wallet account for the claimants",
			ArgsUsage: "<account:amount>...",
			Action:    depositCmd,
			Flags: []cli.Flag{
				cli.StringFlag{Name: tokenFlag, Usage: "NEP-17 token to deposit"},
			},
		},
		{
			Name:   "claim",
			Usage:  "Withdraw the allotment of the wallet account",
			Action: claimCmd,
			Flags: []cli.Flag{
				cli.StringFlag{Name: tokenFlag, Usage: "NEP-17 token to claim"},
			},
		},
		{
			Name:   "balance",
			Usage:  "Show record of the token, or all records",
			Action: balanceCmd,
			Flags: []cli.Flag{
				cli.StringFlag{Name: tokenFlag, Usage: "NEP-17 token of the record"},
			},
		},
		{
			Name:   "ttl",
			Usage:  "Show remaining lifetime of the contract storage",
			Action: ttlCmd,
			Flags: []cli.Flag{
				cli.BoolFlag{Name: extendFlag, Usage: "Extend the lifetime before showing it"},
			},
		},
		{
			Name:   "dump",
			Usage:  "Dump the contract state into the directory",
			Action: dumpCmd,
			Flags: []cli.Flag{
				cli.StringFlag{Name: dirFlag, Value: "testdata", Usage: "Dump directory"},
				cli.StringFlag{Name: labelFlag, Usage: "Label of the blockchain environment (e.g. 'testnet')"},
			},
		},
		{
			Name:   "inspect",
			Usage:  "Print the contract states stored in the dump directory",
			Action: inspectCmd,
			Flags: []cli.Flag{
				cli.StringFlag{Name: dirFlag, Value: "testdata", Usage: "Dump directory"},
			},
		},
	}

	return app
}

// setup loads the config and builds the logger.
func setup(c *cli.Context) (*config, *zap.Logger, error) {
	cfg, err := loadConfig(c.GlobalString(configFlag))
	if err != nil {
		return nil, nil, err
	}

	cfg.applyFlags(c)

	l, err := newLogger(cfg.Logger.Level)
	if err != nil {
		return nil, nil, err
	}

	return cfg, l, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logger level: %w", err)
	}

	c := zap.NewProductionConfig()
	c.Level = lvl
	c.Encoding = "console"
	c.Sampling = nil

	l, err := c.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return l, nil
}
