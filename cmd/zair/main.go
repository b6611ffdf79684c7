// Command zair runs the shielded-pool non-membership airdrop pipeline:
// config build, claim prepare/prove/sign, and verify.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "zair",
		Short:         "Shielded-pool non-membership airdrop claim pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("network", envOr("NETWORK", "mainnet"), "mainnet or testnet")
	root.PersistentFlags().String("log-level", "info", "debug, info, warn, or error")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		network, _ := cmd.Flags().GetString("network")
		return validNetwork(network)
	}

	root.AddCommand(newConfigCmd())
	root.AddCommand(newClaimCmd())
	root.AddCommand(newVerifyCmd())

	return root
}

// envOr returns the value of the named environment variable, or fallback
// if it is unset. It supplies the default of --network from NETWORK.
func envOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

func flagOrEnv(cmd *cobra.Command, flag, env string) string {
	v, _ := cmd.Flags().GetString(flag)
	if v == "" {
		v = os.Getenv(env)
	}
	return v
}

func validNetwork(s string) error {
	if s != "mainnet" && s != "testnet" {
		return fmt.Errorf("network must be %q or %q, got %q", "mainnet", "testnet", s)
	}
	return nil
}
