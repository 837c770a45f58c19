package main

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCmd builds the swapsim command tree. Flags can also be supplied via
// SWAPSIM_* environment variables or a config file picked up by viper.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "swapsim",
		Short: "Constant product pool sandbox",
		Long: `swapsim runs the swap module keeper against an in-memory store and asset
ledger, so pool pricing, liquidity accounting, and rounding behavior can be
inspected without a running chain.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("denom-a", "uatom", "first pool denom")
	rootCmd.PersistentFlags().String("denom-b", "uusdt", "second pool denom")

	v := viper.New()
	v.SetEnvPrefix("SWAPSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		quoteCmd(v),
		spotPriceCmd(v),
		demoCmd(v),
	)

	return rootCmd
}

// quoteCmd quotes a swap against the given reserves
func quoteCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "quote [reserve-in] [reserve-out] [amount-in]",
		Short: "Quote a swap against the given reserves",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			reserveIn, reserveOut, amountIn, err := parseAmounts(args)
			if err != nil {
				return err
			}

			sb, err := newSandbox()
			if err != nil {
				return err
			}

			denomA, denomB := v.GetString("denom-a"), v.GetString("denom-b")
			pool, err := sb.seedPool(denomA, denomB, reserveIn, reserveOut)
			if err != nil {
				return err
			}

			amountOut, err := sb.keeper.SimulateSwap(sb.ctx, pool.Id, pool.TokenA, pool.TokenB, amountIn)
			if err != nil {
				return err
			}

			cmd.Printf("pool %s/%s reserves (%s, %s)\n", pool.TokenA, pool.TokenB, pool.ReserveA, pool.ReserveB)
			cmd.Printf("swap %s%s -> %s%s\n", amountIn, pool.TokenA, amountOut, pool.TokenB)
			return nil
		},
	}
}

// spotPriceCmd prints the reserve ratio for the given reserves
func spotPriceCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "spot-price [reserve-a] [reserve-b]",
		Short: "Print the spot price for the given reserves",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reserveA, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			reserveB, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			sb, err := newSandbox()
			if err != nil {
				return err
			}

			denomA, denomB := v.GetString("denom-a"), v.GetString("denom-b")
			pool, err := sb.seedPool(denomA, denomB, reserveA, reserveB)
			if err != nil {
				return err
			}

			forward, err := sb.keeper.GetSpotPrice(sb.ctx, pool.Id, pool.TokenA, pool.TokenB)
			if err != nil {
				return err
			}
			reverse, err := sb.keeper.GetSpotPrice(sb.ctx, pool.Id, pool.TokenB, pool.TokenA)
			if err != nil {
				return err
			}

			cmd.Printf("%s per %s: %s\n", pool.TokenB, pool.TokenA, forward)
			cmd.Printf("%s per %s: %s\n", pool.TokenA, pool.TokenB, reverse)
			return nil
		},
	}
}

// demoCmd walks the full pool lifecycle and prints each step
func demoCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk the full pool lifecycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sb, err := newSandbox()
			if err != nil {
				return err
			}

			denomA, denomB := v.GetString("denom-a"), v.GetString("denom-b")
			reserveA := math.NewInt(v.GetInt64("reserve-a"))
			reserveB := math.NewInt(v.GetInt64("reserve-b"))
			swapIn := math.NewInt(v.GetInt64("swap-in"))

			pool, err := sb.seedPool(denomA, denomB, reserveA, reserveB)
			if err != nil {
				return err
			}
			cmd.Printf("created pool %d %s/%s, seeded (%s, %s), minted %s shares\n",
				pool.Id, pool.TokenA, pool.TokenB, pool.ReserveA, pool.ReserveB, pool.TotalShares)

			trader := sb.addr("trader")
			sb.ledger.Fund(trader, sdk.NewCoins(sdk.NewCoin(pool.TokenA, swapIn)))
			amountOut, err := sb.keeper.Swap(sb.ctx, trader, pool.Id, pool.TokenA, pool.TokenB, swapIn)
			if err != nil {
				return err
			}
			pool, _ = sb.keeper.GetPool(sb.ctx, pool.Id)
			cmd.Printf("swapped %s%s -> %s%s, reserves now (%s, %s), product %s\n",
				swapIn, pool.TokenA, amountOut, pool.TokenB, pool.ReserveA, pool.ReserveB, pool.Product())

			// Deposit at twice the current A-side ratio to show the excess refund
			depositA := pool.ReserveA.Quo(math.NewInt(10)).AddRaw(1)
			depositB := pool.ReserveB.Quo(math.NewInt(5)).AddRaw(1)
			provider := sb.addr("demo-provider")
			sb.ledger.Fund(provider, sdk.NewCoins(
				sdk.NewCoin(pool.TokenA, depositA),
				sdk.NewCoin(pool.TokenB, depositB),
			))
			usedA, usedB, shares, err := sb.keeper.AddLiquidity(sb.ctx, provider, pool.Id, pool.TokenA, depositA, pool.TokenB, depositB)
			if err != nil {
				return err
			}
			cmd.Printf("deposited (%s, %s), consumed (%s, %s), minted %s shares, refunded (%s, %s)\n",
				depositA, depositB, usedA, usedB, shares, depositA.Sub(usedA), depositB.Sub(usedB))

			amountA, amountB, err := sb.keeper.RemoveLiquidity(sb.ctx, provider, pool.Id, shares)
			if err != nil {
				return err
			}
			pool, _ = sb.keeper.GetPool(sb.ctx, pool.Id)
			cmd.Printf("burned %s shares for (%s, %s), reserves now (%s, %s)\n",
				shares, amountA, amountB, pool.ReserveA, pool.ReserveB)

			exported, err := sb.keeper.ExportGenesis(sb.ctx)
			if err != nil {
				return err
			}
			cmd.Printf("final state: %d pool(s), %d position(s), next pool id %d\n",
				len(exported.Pools), len(exported.Positions), exported.NextPoolId)
			return nil
		},
	}

	cmd.Flags().Int64("reserve-a", 1000, "initial reserve of the first denom")
	cmd.Flags().Int64("reserve-b", 1000, "initial reserve of the second denom")
	cmd.Flags().Int64("swap-in", 100, "swap input amount")
	_ = v.BindPFlags(cmd.Flags())

	return cmd
}

func parseAmounts(args []string) (math.Int, math.Int, math.Int, error) {
	zero := math.ZeroInt()
	a, err := parseAmount(args[0])
	if err != nil {
		return zero, zero, zero, err
	}
	b, err := parseAmount(args[1])
	if err != nil {
		return zero, zero, zero, err
	}
	c, err := parseAmount(args[2])
	if err != nil {
		return zero, zero, zero, err
	}
	return a, b, c, nil
}

func parseAmount(arg string) (math.Int, error) {
	n, err := cast.ToInt64E(arg)
	if err != nil {
		return math.ZeroInt(), fmt.Errorf("invalid amount %q: %w", arg, err)
	}
	if n <= 0 {
		return math.ZeroInt(), fmt.Errorf("amount must be positive, got %d", n)
	}
	return math.NewInt(n), nil
}
