package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eigerco/zair/internal/zair/airdropconfig"
	"github.com/eigerco/zair/internal/zair/claim"
	"github.com/eigerco/zair/internal/zair/commitment"
	"github.com/eigerco/zair/internal/zair/nullifiersrc"
	"github.com/eigerco/zair/internal/zair/pipeline"
	"github.com/eigerco/zair/internal/zair/signer"
	"github.com/eigerco/zair/internal/zair/zkbackend"
)

func newClaimCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "claim", Short: "Prepare, prove, and sign airdrop claims"}
	cmd.AddCommand(newClaimPrepareCmd())
	cmd.AddCommand(newClaimProveCmd())
	cmd.AddCommand(newClaimSignCmd())
	cmd.AddCommand(newClaimRunCmd())
	return cmd
}

func loadConfig(path string) (*airdropconfig.Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	return airdropconfig.Parse(data)
}

func runClaimPrepare(cmd *cobra.Command, configPath, notesIn, snapshotSapling, snapshotOrchard string, birthday uint64, claimsOut string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	src := &nullifiersrc.FileSource{SaplingPath: snapshotSapling, OrchardPath: snapshotOrchard}
	scanner := fileNoteScanner{Path: notesIn}

	prepared, err := pipeline.ClaimPrepare(cmd.Context(), pipeline.ClaimPrepareParams{
		Config:  cfg,
		Source:  src,
		Scanner: scanner,
		Range:   nullifiersrc.Range{Start: birthday, End: cfg.SnapshotRange.End},
	})
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(prepared, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal prepared claim: %w", err)
	}
	return os.WriteFile(claimsOut, data, 0o644)
}

func newClaimPrepareCmd() *cobra.Command {
	var configPath, ufvk, notesIn, snapSapling, snapOrchard, claimsOut string
	var birthday uint64

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Map owned notes to non-membership gaps and emit a prepared claim",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = ufvk // the unified full-viewing key is consumed by the external scan that produced --notes-in
			return runClaimPrepare(cmd, configPath, notesIn, snapSapling, snapOrchard, birthday, claimsOut)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "sealed configuration file")
	cmd.Flags().StringVar(&ufvk, "ufvk", "", "unified full-viewing key (documentary; see --notes-in)")
	cmd.Flags().StringVar(&notesIn, "notes-in", "", "JSON file of notes found by a prior UFVK-driven wallet scan")
	cmd.Flags().StringVar(&snapSapling, "snapshot-sapling", "", "Sapling snapshot file")
	cmd.Flags().StringVar(&snapOrchard, "snapshot-orchard", "", "Orchard snapshot file")
	cmd.Flags().Uint64Var(&birthday, "birthday", 0, "wallet birthday block height")
	cmd.Flags().StringVar(&claimsOut, "claims-out", "", "path to write the prepared claim JSON")

	return cmd
}

func runClaimProve(cmd *cobra.Command, configPath, claimsIn, seedPath, proofsOut, secretsOut string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(claimsIn)
	if err != nil {
		return fmt.Errorf("read prepared claim: %w", err)
	}
	var prepared claim.PreparedClaim
	if err := json.Unmarshal(data, &prepared); err != nil {
		return fmt.Errorf("parse prepared claim: %w", err)
	}

	baseKey, err := loadBaseKey(seedPath)
	if err != nil {
		return err
	}

	prover := zkbackend.Mock{
		SaplingScheme: commitment.Scheme(cfg.SaplingScheme),
		OrchardScheme: commitment.Scheme(cfg.OrchardScheme),
	}

	proofs, secrets, err := pipeline.ClaimProve(cmd.Context(), pipeline.ClaimProveParams{
		Config:   cfg,
		Prepared: &prepared,
		Prover:   prover,
		BaseKey:  baseKey,
	})
	if err != nil {
		return err
	}

	if err := writeJSON(proofsOut, proofs); err != nil {
		return err
	}
	return writeJSON(secretsOut, secrets)
}

func newClaimProveCmd() *cobra.Command {
	var configPath, claimsIn, seedPath, pk, proofsOut, secretsOut string
	var account uint32

	cmd := &cobra.Command{
		Use:   "prove",
		Short: "Call the external circuit backend once per prepared claim",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _ = pk, account // external proving-key selection is the backend's concern, not the core's
			return runClaimProve(cmd, configPath, claimsIn, seedPath, proofsOut, secretsOut)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "sealed configuration file")
	cmd.Flags().StringVar(&claimsIn, "claims-in", "", "prepared claim JSON file")
	cmd.Flags().StringVar(&seedPath, "seed", "", "BIP-39 mnemonic seed file")
	cmd.Flags().StringVar(&pk, "pk", "", "proving key path")
	cmd.Flags().Uint32Var(&account, "account", 0, "account index")
	cmd.Flags().StringVar(&proofsOut, "proofs-out", "", "path to write UnspentNotesProofs JSON")
	cmd.Flags().StringVar(&secretsOut, "secrets-out", "", "path to write Secrets JSON")

	return cmd
}

func runClaimSign(cmd *cobra.Command, configPath, proofsIn, secretsIn, seedPath, msg, submissionOut string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	var proofs claim.UnspentNotesProofs
	if err := readJSON(proofsIn, &proofs); err != nil {
		return err
	}
	var secrets claim.Secrets
	if err := readJSON(secretsIn, &secrets); err != nil {
		return err
	}

	baseKey, err := loadBaseKey(seedPath)
	if err != nil {
		return err
	}

	submission, err := pipeline.ClaimSign(pipeline.ClaimSignParams{
		Config:  cfg,
		Proofs:  &proofs,
		Secrets: &secrets,
		BaseKey: baseKey,
		MsgHash: []byte(msg),
		Signer:  signer.Default{},
	})
	if err != nil {
		return err
	}
	return writeJSON(submissionOut, submission)
}

func newClaimSignCmd() *cobra.Command {
	var configPath, proofsIn, secretsIn, seedPath, msg, submissionOut string

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign proofs with a randomised spend-auth key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClaimSign(cmd, configPath, proofsIn, secretsIn, seedPath, msg, submissionOut)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "sealed configuration file")
	cmd.Flags().StringVar(&proofsIn, "proofs-in", "", "UnspentNotesProofs JSON file")
	cmd.Flags().StringVar(&secretsIn, "secrets-in", "", "Secrets JSON file")
	cmd.Flags().StringVar(&seedPath, "seed", "", "BIP-39 mnemonic seed file")
	cmd.Flags().StringVar(&msg, "msg", "", "message the recipient chain binds the claim to")
	cmd.Flags().StringVar(&submissionOut, "submission-out", "", "path to write the Submission JSON")

	return cmd
}

func newClaimRunCmd() *cobra.Command {
	var configPath, ufvk, notesIn, snapSapling, snapOrchard, seedPath, pk, msg string
	var birthday uint64
	var account uint32

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run prepare, prove, and sign in sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, _ = ufvk, pk, account

			claimsOut := tempJSONPath("zair-claims")
			proofsOut := tempJSONPath("zair-proofs")
			secretsOut := tempJSONPath("zair-secrets")
			submissionOut := tempJSONPath("zair-submission")

			if err := runClaimPrepare(cmd, configPath, notesIn, snapSapling, snapOrchard, birthday, claimsOut); err != nil {
				return err
			}
			if err := runClaimProve(cmd, configPath, claimsOut, seedPath, proofsOut, secretsOut); err != nil {
				return err
			}
			if err := runClaimSign(cmd, configPath, proofsOut, secretsOut, seedPath, msg, submissionOut); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), submissionOut)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "sealed configuration file")
	cmd.Flags().StringVar(&ufvk, "ufvk", "", "unified full-viewing key")
	cmd.Flags().StringVar(&notesIn, "notes-in", "", "JSON file of notes found by a prior UFVK-driven wallet scan")
	cmd.Flags().StringVar(&snapSapling, "snapshot-sapling", "", "Sapling snapshot file")
	cmd.Flags().StringVar(&snapOrchard, "snapshot-orchard", "", "Orchard snapshot file")
	cmd.Flags().Uint64Var(&birthday, "birthday", 0, "wallet birthday block height")
	cmd.Flags().StringVar(&seedPath, "seed", "", "BIP-39 mnemonic seed file")
	cmd.Flags().StringVar(&pk, "pk", "", "proving key path")
	cmd.Flags().Uint32Var(&account, "account", 0, "account index")
	cmd.Flags().StringVar(&msg, "msg", "", "message the recipient chain binds the claim to")

	return cmd
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return json.Unmarshal(data, v)
}

func tempJSONPath(prefix string) string {
	f, err := os.CreateTemp("", prefix+"-*.json")
	if err != nil {
		return prefix + ".json"
	}
	path := f.Name()
	f.Close()
	return path
}
