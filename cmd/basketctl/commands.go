package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	core "synnergy-network/core"
)

// engine is the process-wide controller every command below dispatches
// into. It is constructed in main() once config is loaded, matching the
// teacher's ensureAIInitialised lazy-singleton pattern but resolved
// eagerly here since basketctl has no network bootstrap step.
var engine *Engine

func parseAddr(s string) (core.Address, error) {
	if s == "" {
		return core.Address{}, fmt.Errorf("address required")
	}
	if len(s) == 64 || (len(s) == 66 && s[:2] == "0x") {
		return core.AddressFromHex(s)
	}
	return core.AddressFromLabel(s), nil
}

func mustAddrFlag(cmd *cobra.Command, name string) (core.Address, error) {
	s, _ := cmd.Flags().GetString(name)
	return parseAddr(s)
}

var rootBasketCmd = &cobra.Command{Use: "basket", Short: "Manage basket lifecycle"}

var initBasketCmd = &cobra.Command{
	Use:   "init <basket-label>",
	Short: "Initialise a new basket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		owner, err := mustAddrFlag(cmd, "owner")
		if err != nil {
			return err
		}
		tokenMint, err := mustAddrFlag(cmd, "token-mint")
		if err != nil {
			return err
		}
		tvlFeeStr, _ := cmd.Flags().GetString("tvl-fee")
		mintFeeStr, _ := cmd.Flags().GetString("mint-fee")
		auctionLength, _ := cmd.Flags().GetUint64("auction-length")
		mandate, _ := cmd.Flags().GetString("mandate")

		tvlFee, err := core.ParseDecimal(tvlFeeStr)
		if err != nil {
			return fmt.Errorf("tvl-fee: %w", err)
		}
		mintFee, err := core.ParseDecimal(mintFeeStr)
		if err != nil {
			return fmt.Errorf("mint-fee: %w", err)
		}
		if err := engine.InitBasket(basketID, tokenMint, owner, tvlFee, mintFee, auctionLength, mandate); err != nil {
			return err
		}
		zap.L().Sugar().Infow("basket initialised", "basket", args[0])
		fmt.Fprintf(cmd.OutOrStdout(), "basket %s initialised\n", args[0])
		return nil
	},
}

var addToBasketCmd = &cobra.Command{
	Use:   "add <basket-label> <mint-label>",
	Short: "Deposit a token mint into a basket",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		mint := core.AddressFromLabel(args[1])
		owner, err := mustAddrFlag(cmd, "owner")
		if err != nil {
			return err
		}
		amount, _ := cmd.Flags().GetUint64("amount")
		if err := engine.AddToBasket(basketID, owner, mint, amount); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deposited %d of %s into %s\n", amount, args[1], args[0])
		return nil
	},
}

var pokeCmd = &cobra.Command{
	Use:   "poke <basket-label>",
	Short: "Accrue TVL fees up to the given timestamp",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		now, _ := cmd.Flags().GetUint64("now")
		supply, _ := cmd.Flags().GetUint64("supply")
		if err := engine.Poke(basketID, now, supply); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "basket %s poked at %d\n", args[0], now)
		return nil
	},
}

var killBasketCmd = &cobra.Command{
	Use:   "kill <basket-label>",
	Short: "Kill a basket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		caller, err := mustAddrFlag(cmd, "caller")
		if err != nil {
			return err
		}
		if err := engine.KillBasket(basketID, caller); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "basket %s killed\n", args[0])
		return nil
	},
}

var updateBasketCmd = &cobra.Command{
	Use:   "update <basket-label>",
	Short: "Update a basket's mandate, auction length, or fee parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		caller, err := mustAddrFlag(cmd, "caller")
		if err != nil {
			return err
		}

		var mandate *string
		if cmd.Flags().Changed("mandate") {
			m, _ := cmd.Flags().GetString("mandate")
			mandate = &m
		}
		var auctionLength *uint64
		if cmd.Flags().Changed("auction-length") {
			al, _ := cmd.Flags().GetUint64("auction-length")
			auctionLength = &al
		}
		var tvlFee *core.Decimal
		if cmd.Flags().Changed("tvl-fee") {
			s, _ := cmd.Flags().GetString("tvl-fee")
			d, err := core.ParseDecimal(s)
			if err != nil {
				return fmt.Errorf("tvl-fee: %w", err)
			}
			tvlFee = &d
		}
		var mintFee *core.Decimal
		if cmd.Flags().Changed("mint-fee") {
			s, _ := cmd.Flags().GetString("mint-fee")
			d, err := core.ParseDecimal(s)
			if err != nil {
				return fmt.Errorf("mint-fee: %w", err)
			}
			mintFee = &d
		}

		recipientFlags, _ := cmd.Flags().GetStringArray("recipient")
		portionFlags, _ := cmd.Flags().GetStringArray("portion")
		if len(recipientFlags) != len(portionFlags) {
			return fmt.Errorf("--recipient and --portion must be given the same number of times")
		}
		recipients := make([]core.FeeRecipient, 0, len(recipientFlags))
		for i, r := range recipientFlags {
			addr, err := parseAddr(r)
			if err != nil {
				return err
			}
			portion, err := core.ParseDecimal(portionFlags[i])
			if err != nil {
				return fmt.Errorf("portion %d: %w", i, err)
			}
			recipients = append(recipients, core.FeeRecipient{Recipient: addr, Portion: portion})
		}
		var cranker core.Address
		if len(recipients) > 0 {
			cranker, err = mustAddrFlag(cmd, "cranker")
			if err != nil {
				return err
			}
		}

		rec, err := engine.UpdateBasket(basketID, caller, mandate, auctionLength, tvlFee, mintFee, recipients, cranker)
		if err != nil {
			return err
		}
		if rec != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "basket %s updated, distribution index %d recorded\n", args[0], rec.Index)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "basket %s updated\n", args[0])
		}
		return nil
	},
}

var roleCmd = &cobra.Command{Use: "role", Short: "Grant or revoke per-basket roles"}

func parseRole(name string) (core.Role, error) {
	switch name {
	case "owner":
		return core.RoleOwner, nil
	case "auction-launcher":
		return core.RoleAuctionLauncher, nil
	case "rebalance-manager":
		return core.RoleRebalanceManager, nil
	case "cranker":
		return core.RoleCranker, nil
	default:
		return 0, fmt.Errorf("unknown role %q", name)
	}
}

func setRoleRunE(grant bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		caller, err := mustAddrFlag(cmd, "caller")
		if err != nil {
			return err
		}
		user, err := parseAddr(args[1])
		if err != nil {
			return err
		}
		role, err := parseRole(args[2])
		if err != nil {
			return err
		}
		if err := engine.SetRole(basketID, caller, user, role, grant); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "role %s %s for %s on %s\n", args[2], map[bool]string{true: "granted", false: "revoked"}[grant], args[1], args[0])
		return nil
	}
}

var grantRoleCmd = &cobra.Command{
	Use:   "grant <basket-label> <user> <role>",
	Short: "Grant a role (owner|auction-launcher|rebalance-manager|cranker)",
	Args:  cobra.ExactArgs(3),
	RunE:  setRoleRunE(true),
}

var revokeRoleCmd = &cobra.Command{
	Use:   "revoke <basket-label> <user> <role>",
	Short: "Revoke a role",
	Args:  cobra.ExactArgs(3),
	RunE:  setRoleRunE(false),
}

var rebalanceCmd = &cobra.Command{Use: "rebalance", Short: "Manage rebalance windows"}

var startRebalanceCmd = &cobra.Command{
	Use:   "start <basket-label>",
	Short: "Open a new rebalance window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		caller, err := mustAddrFlag(cmd, "caller")
		if err != nil {
			return err
		}
		now, _ := cmd.Flags().GetUint64("now")
		ttl, _ := cmd.Flags().GetUint64("ttl")
		restrictedTTL, _ := cmd.Flags().GetUint64("restricted-ttl")
		if err := engine.StartRebalance(basketID, caller, now, ttl, restrictedTTL); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rebalance started for %s\n", args[0])
		return nil
	},
}

var addDetailCmd = &cobra.Command{
	Use:   "add-detail <basket-label> <mint-label>",
	Short: "Add a token's rebalance price/limit band",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		caller, err := mustAddrFlag(cmd, "caller")
		if err != nil {
			return err
		}
		mint := core.AddressFromLabel(args[1])
		low, _ := cmd.Flags().GetString("low")
		spot, _ := cmd.Flags().GetString("spot")
		high, _ := cmd.Flags().GetString("high")
		priceLow, _ := cmd.Flags().GetString("price-low")
		priceHigh, _ := cmd.Flags().GetString("price-high")
		allAdded, _ := cmd.Flags().GetBool("final")

		lowD, err := core.ParseDecimal(low)
		if err != nil {
			return fmt.Errorf("low: %w", err)
		}
		spotD, err := core.ParseDecimal(spot)
		if err != nil {
			return fmt.Errorf("spot: %w", err)
		}
		highD, err := core.ParseDecimal(high)
		if err != nil {
			return fmt.Errorf("high: %w", err)
		}
		priceLowD, err := core.ParseDecimal(priceLow)
		if err != nil {
			return fmt.Errorf("price-low: %w", err)
		}
		priceHighD, err := core.ParseDecimal(priceHigh)
		if err != nil {
			return fmt.Errorf("price-high: %w", err)
		}
		detail := core.TokenDetail{
			Mint:      mint,
			PriceLow:  priceLowD,
			PriceHigh: priceHighD,
			Limits:    core.RebalanceLimits{Low: lowD, Spot: spotD, High: highD},
		}
		if err := engine.AddRebalanceDetail(basketID, caller, detail, allAdded); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "detail added for %s on %s\n", args[1], args[0])
		return nil
	},
}

var auctionCmd = &cobra.Command{Use: "auction", Short: "Open and bid on Dutch auctions"}

var openAuctionCmd = &cobra.Command{
	Use:   "open <basket-label> <sell-mint> <buy-mint>",
	Short: "Open a restricted or permissionless auction",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		caller, err := mustAddrFlag(cmd, "caller")
		if err != nil {
			return err
		}
		sell := core.AddressFromLabel(args[1])
		buy := core.AddressFromLabel(args[2])
		now, _ := cmd.Flags().GetUint64("now")
		restricted, _ := cmd.Flags().GetBool("restricted")
		auction, err := engine.OpenAuction(basketID, caller, sell, buy, now, restricted)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "auction %d opened: %s -> %s, start=%s end=%s\n",
			auction.ID, args[1], args[2], auction.PriceStart.String(), auction.PriceEnd.String())
		return nil
	},
}

var bidCmd = &cobra.Command{
	Use:   "bid <basket-label> <auction-id>",
	Short: "Place a bid against a running auction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		var auctionID uint64
		if _, err := fmt.Sscanf(args[1], "%d", &auctionID); err != nil {
			return fmt.Errorf("invalid auction id: %w", err)
		}
		bidder, err := mustAddrFlag(cmd, "bidder")
		if err != nil {
			return err
		}
		now, _ := cmd.Flags().GetUint64("now")
		sell, _ := cmd.Flags().GetUint64("sell")
		maxBuy, _ := cmd.Flags().GetUint64("max-buy")
		minBuy, _ := cmd.Flags().GetUint64("min-buy")

		bid, err := engine.Bid(context.Background(), basketID, auctionID, bidder, now, sell, maxBuy, minBuy)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "bid settled: sold %d, bought %d\n", bid.SellAmount, bid.BuyAmount)
		return nil
	},
}

var feesCmd = &cobra.Command{Use: "fees", Short: "Distribute and crank accrued fee shares"}

var distributeCmd = &cobra.Command{
	Use:   "distribute <basket-label>",
	Short: "Snapshot pending fee shares into a new distribution record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		caller, err := mustAddrFlag(cmd, "caller")
		if err != nil {
			return err
		}
		cranker, err := mustAddrFlag(cmd, "cranker")
		if err != nil {
			return err
		}
		recipientFlags, _ := cmd.Flags().GetStringArray("recipient")
		portionFlags, _ := cmd.Flags().GetStringArray("portion")
		if len(recipientFlags) != len(portionFlags) {
			return fmt.Errorf("--recipient and --portion must be given the same number of times")
		}
		recipients := make([]core.FeeRecipient, 0, len(recipientFlags))
		for i, r := range recipientFlags {
			addr, err := parseAddr(r)
			if err != nil {
				return err
			}
			portion, err := core.ParseDecimal(portionFlags[i])
			if err != nil {
				return fmt.Errorf("portion %d: %w", i, err)
			}
			recipients = append(recipients, core.FeeRecipient{Recipient: addr, Portion: portion})
		}
		// idempotencyKey is a fresh request id drawn on every invocation;
		// basketctl only logs and prints it and keeps no request store, so
		// a retried submission is not deduplicated.
		idempotencyKey := uuid.New()
		rec, err := engine.DistributeFees(basketID, caller, recipients, cranker)
		if err != nil {
			return err
		}
		zap.L().Sugar().Infow("fee distribution recorded", "basket", args[0], "index", rec.Index, "idempotency_key", idempotencyKey.String())
		fmt.Fprintf(cmd.OutOrStdout(), "distribution index %d recorded for %s (request %s)\n", rec.Index, args[0], idempotencyKey.String())
		return nil
	},
}

var crankCmd = &cobra.Command{
	Use:   "crank <basket-label> <index>",
	Short: "Mint out a fee-distribution record's recipient shares",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		var index uint64
		if _, err := fmt.Sscanf(args[1], "%d", &index); err != nil {
			return fmt.Errorf("invalid index: %w", err)
		}
		allFlag, _ := cmd.Flags().GetBool("all")
		var indices []int
		if allFlag {
			count, err := engine.DistributionRecipientCount(basketID, index)
			if err != nil {
				return err
			}
			indices = make([]int, count)
			for i := range indices {
				indices[i] = i
			}
		} else {
			indices, _ = cmd.Flags().GetIntSlice("recipient-index")
		}
		closed, err := engine.CrankFeeDistribution(context.Background(), basketID, index, indices)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "cranked distribution %d for %s, closed=%v\n", index, args[0], closed)
		return nil
	},
}

var migrationCmd = &cobra.Command{Use: "migration", Short: "Cross-program basket migration"}

var registerTargetCmd = &cobra.Command{
	Use:   "register-target <program-label>",
	Short: "Whitelist a program as a valid migration destination",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine.RegisterMigrationTarget(core.AddressFromLabel(args[0]))
		fmt.Fprintf(cmd.OutOrStdout(), "registered %s as migration target\n", args[0])
		return nil
	},
}

var beginMigrationCmd = &cobra.Command{
	Use:   "begin <basket-label>",
	Short: "Transition a basket into Migrating",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		caller, err := mustAddrFlag(cmd, "caller")
		if err != nil {
			return err
		}
		if err := engine.BeginMigration(basketID, caller); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "basket %s migrating\n", args[0])
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "move <basket-label> <new-basket-label> <new-program-label>",
	Short: "Drain a Migrating basket's inventory into its successor",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		basketID := core.AddressFromLabel(args[0])
		newBasketID := core.AddressFromLabel(args[1])
		newProgram := core.AddressFromLabel(args[2])
		ownedByNew, _ := cmd.Flags().GetBool("new-basket-owned")
		discriminatorValid, _ := cmd.Flags().GetBool("new-basket-discriminator-valid")
		groupFlags, _ := cmd.Flags().GetStringArray("group")

		groups := make([]core.TokenAccountGroup, 0, len(groupFlags))
		for _, g := range groupFlags {
			parts := strings.Split(g, ":")
			if len(parts) != 3 {
				return fmt.Errorf("--group must be mint:source:destination, got %q", g)
			}
			mintS, srcS, dstS := parts[0], parts[1], parts[2]
			mint, err := parseAddr(mintS)
			if err != nil {
				return err
			}
			src, err := parseAddr(srcS)
			if err != nil {
				return err
			}
			dst, err := parseAddr(dstS)
			if err != nil {
				return err
			}
			groups = append(groups, core.TokenAccountGroup{Mint: mint, Source: src, Destination: dst})
		}

		if err := engine.Migrate(context.Background(), basketID, newBasketID, newProgram, ownedByNew, discriminatorValid, groups); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %s to %s on %s\n", args[0], args[1], args[2])
		return nil
	},
}

func init() {
	initBasketCmd.Flags().String("owner", "", "owner address or label")
	initBasketCmd.Flags().String("token-mint", "", "basket share token mint")
	initBasketCmd.Flags().String("tvl-fee", "0", "annual TVL fee, e.g. 0.02")
	initBasketCmd.Flags().String("mint-fee", "0", "mint fee, e.g. 0.001")
	initBasketCmd.Flags().Uint64("auction-length", core.MinAuctionLength, "auction length in seconds")
	initBasketCmd.Flags().String("mandate", "", "free-text basket mandate")

	addToBasketCmd.Flags().String("owner", "", "owner address or label")
	addToBasketCmd.Flags().Uint64("amount", 0, "raw amount to deposit")

	pokeCmd.Flags().Uint64("now", 0, "current unix timestamp")
	pokeCmd.Flags().Uint64("supply", 0, "circulating raw supply of the basket token")

	killBasketCmd.Flags().String("caller", "", "caller address or label")

	updateBasketCmd.Flags().String("caller", "", "caller address or label")
	updateBasketCmd.Flags().String("mandate", "", "replace the basket's free-text mandate")
	updateBasketCmd.Flags().Uint64("auction-length", 0, "replace the basket's default auction length in seconds")
	updateBasketCmd.Flags().String("tvl-fee", "0", "replace the basket's annual TVL fee, e.g. 0.02")
	updateBasketCmd.Flags().String("mint-fee", "0", "replace the basket's mint fee, e.g. 0.001")
	updateBasketCmd.Flags().String("cranker", "", "cranker address or label (required if --recipient is given)")
	updateBasketCmd.Flags().StringArray("recipient", nil, "trigger a fee distribution to this recipient (repeatable)")
	updateBasketCmd.Flags().StringArray("portion", nil, "recipient's portion out of core.MaxFeeRecipientsPortion (repeatable, paired with --recipient)")

	grantRoleCmd.Flags().String("caller", "", "caller address or label")
	revokeRoleCmd.Flags().String("caller", "", "caller address or label")

	startRebalanceCmd.Flags().String("caller", "", "caller address or label")
	startRebalanceCmd.Flags().Uint64("now", 0, "current unix timestamp")
	startRebalanceCmd.Flags().Uint64("ttl", 0, "rebalance time-to-live in seconds")
	startRebalanceCmd.Flags().Uint64("restricted-ttl", 0, "restricted-window duration in seconds")

	addDetailCmd.Flags().String("caller", "", "caller address or label")
	addDetailCmd.Flags().String("low", "0", "low limit band (fraction of basket supply)")
	addDetailCmd.Flags().String("spot", "0", "spot target (fraction of basket supply)")
	addDetailCmd.Flags().String("high", "0", "high limit band (fraction of basket supply)")
	addDetailCmd.Flags().String("price-low", "0", "low end of the auction price range (0 defers pricing)")
	addDetailCmd.Flags().String("price-high", "0", "high end of the auction price range (0 defers pricing)")
	addDetailCmd.Flags().Bool("final", false, "mark this as the last detail in the rebalance batch (sets all_rebalance_details_added)")

	openAuctionCmd.Flags().String("caller", "", "caller address or label")
	openAuctionCmd.Flags().Uint64("now", 0, "current unix timestamp")
	openAuctionCmd.Flags().Bool("restricted", false, "open during the restricted window (requires auction-launcher role)")

	bidCmd.Flags().String("bidder", "", "bidder address or label")
	bidCmd.Flags().Uint64("now", 0, "current unix timestamp")
	bidCmd.Flags().Uint64("sell", 0, "raw amount offered")
	bidCmd.Flags().Uint64("max-buy", 0, "maximum raw amount willing to pay")
	bidCmd.Flags().Uint64("min-buy", 0, "minimum acceptable raw amount out (slippage floor)")

	distributeCmd.Flags().String("caller", "", "caller address or label")
	distributeCmd.Flags().String("cranker", "", "cranker address or label")
	distributeCmd.Flags().StringArray("recipient", nil, "recipient address or label (repeatable)")
	distributeCmd.Flags().StringArray("portion", nil, "recipient's portion out of core.MaxFeeRecipientsPortion (repeatable, paired with --recipient)")

	crankCmd.Flags().Bool("all", true, "mint every recipient in the record")
	crankCmd.Flags().IntSlice("recipient-index", nil, "specific recipient indices to mint (when --all=false)")

	beginMigrationCmd.Flags().String("caller", "", "caller address or label")

	migrateCmd.Flags().Bool("new-basket-owned", false, "whether the successor basket is owned by the new program")
	migrateCmd.Flags().Bool("new-basket-discriminator-valid", false, "whether the successor basket's account discriminator matches")
	migrateCmd.Flags().StringArray("group", nil, "mint:source:destination token account group (repeatable)")

	rootBasketCmd.AddCommand(initBasketCmd, addToBasketCmd, pokeCmd, killBasketCmd, updateBasketCmd)
	roleCmd.AddCommand(grantRoleCmd, revokeRoleCmd)
	rebalanceCmd.AddCommand(startRebalanceCmd, addDetailCmd)
	auctionCmd.AddCommand(openAuctionCmd, bidCmd)
	feesCmd.AddCommand(distributeCmd, crankCmd)
	migrationCmd.AddCommand(registerTargetCmd, beginMigrationCmd, migrateCmd)
}
