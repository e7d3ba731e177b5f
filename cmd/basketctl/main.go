// Command basketctl is a local-demo CLI over the basket/rebalance/auction
// engine in core. It keeps all state in memory for one process lifetime,
// standing in for the several on-chain accounts the reference
// implementation persists, and is meant for exercising the engine end to
// end rather than for production basket administration.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	core "synnergy-network/core"
	"synnergy-network/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "basketctl",
	Short: "Drive the basket engine's lifecycle, rebalances, and auctions",
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "basketctl: logger init failed: %v\n", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		zap.L().Sugar().Warnw("config load failed, continuing with defaults", "error", err)
		cfg = &config.Config{}
	}
	dao, err := cfg.DAOFee.ToDAOFeeConfig()
	if err != nil {
		zap.L().Sugar().Warnw("dao fee config invalid, defaulting to zero", "error", err)
		dao = core.DAOFeeConfig{}
	}
	selfProgram := core.AddressFromLabel("basketctl-self")
	engine = NewEngine(dao, selfProgram, core.NewLogrusSink(nil))

	rootCmd.AddCommand(rootBasketCmd, roleCmd, rebalanceCmd, auctionCmd, feesCmd, migrationCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
