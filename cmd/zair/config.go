package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eigerco/zair/internal/zair/airdropconfig"
	"github.com/eigerco/zair/internal/zair/nullifiersrc"
	"github.com/eigerco/zair/internal/zair/pipeline"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Build or inspect an airdrop configuration"}
	cmd.AddCommand(newConfigBuildCmd())
	cmd.AddCommand(newConfigSchemaCmd())
	return cmd
}

func newConfigBuildCmd() *cobra.Command {
	var (
		snapshot                               string
		poolSel                                 string
		source                                  string
		configOut                               string
		snapshotOutSapling, snapshotOutOrchard  string
		targetSapling, targetOrchard            string
		schemeSapling, schemeOrchard            string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Stream a chain source, canonicalise, build gap trees, and seal a configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			rng, err := parseSnapshotRange(flagOrEnv(cmd, "snapshot", "SNAPSHOT"))
			if err != nil {
				return err
			}

			src := &nullifiersrc.FileSource{}
			if poolSel == "sapling" || poolSel == "both" {
				src.SaplingPath = source + ".sapling"
			}
			if poolSel == "orchard" || poolSel == "both" {
				src.OrchardPath = source + ".orchard"
			}

			params := pipeline.ConfigBuildParams{
				Source: src,
				Range:  rng,
			}

			if snapshotOutSapling != "" {
				f, err := os.Create(snapshotOutSapling)
				if err != nil {
					return fmt.Errorf("create sapling snapshot output: %w", err)
				}
				defer f.Close()
				params.SaplingOut = f
				scheme, err := parseScheme(schemeSapling)
				if err != nil {
					return err
				}
				params.SaplingScheme = scheme
				params.SaplingTargetID = []byte(targetSapling)
			}
			if snapshotOutOrchard != "" {
				f, err := os.Create(snapshotOutOrchard)
				if err != nil {
					return fmt.Errorf("create orchard snapshot output: %w", err)
				}
				defer f.Close()
				params.OrchardOut = f
				scheme, err := parseScheme(schemeOrchard)
				if err != nil {
					return err
				}
				params.OrchardScheme = scheme
				params.OrchardTargetID = []byte(targetOrchard)
			}

			result, err := pipeline.ConfigBuild(cmd.Context(), params)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(result.Configuration, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal configuration: %w", err)
			}

			out := flagOrEnv(cmd, "config-out", "CONFIG_FILE")
			if out == "" {
				return fmt.Errorf("--config-out (or CONFIG_FILE) is required")
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write configuration: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&snapshot, "snapshot", "", "inclusive snapshot range, START..=END")
	cmd.Flags().StringVar(&poolSel, "pool", "both", "sapling, orchard, or both")
	cmd.Flags().StringVar(&source, "source", "", "chain snapshot source path prefix")
	cmd.Flags().StringVar(&configOut, "config-out", "", "path to write the sealed configuration JSON")
	cmd.Flags().StringVar(&snapshotOutSapling, "snapshot-out-sapling", "", "path to write the canonicalised Sapling snapshot")
	cmd.Flags().StringVar(&snapshotOutOrchard, "snapshot-out-orchard", "", "path to write the canonicalised Orchard snapshot")
	cmd.Flags().StringVar(&targetSapling, "target-sapling", "", "Sapling target identifier")
	cmd.Flags().StringVar(&targetOrchard, "target-orchard", "", "Orchard target identifier")
	cmd.Flags().StringVar(&schemeSapling, "scheme-sapling", string(airdropconfig.SchemeNative), "native or sha256")
	cmd.Flags().StringVar(&schemeOrchard, "scheme-orchard", string(airdropconfig.SchemeNative), "native or sha256")

	return cmd
}

func newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration's JSON Schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(airdropconfig.Schema(), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func parseScheme(s string) (airdropconfig.Scheme, error) {
	switch airdropconfig.Scheme(s) {
	case airdropconfig.SchemeNative, airdropconfig.SchemeSHA256:
		return airdropconfig.Scheme(s), nil
	default:
		return "", fmt.Errorf("scheme must be %q or %q, got %q", airdropconfig.SchemeNative, airdropconfig.SchemeSHA256, s)
	}
}
