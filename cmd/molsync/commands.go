package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/helixml/molsync"
	"github.com/helixml/molsync/domain/structure"
)

func colourCmd() *cobra.Command {
	var flags passFlags
	cmd := &cobra.Command{
		Use:     "colour",
		Aliases: []string{"color"},
		Short:   "Colour structures as their aligned sequences are coloured",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, &flags, passes["colour"])
		},
	}
	flags.register(cmd)
	return cmd
}

func attributesCmd() *cobra.Command {
	var (
		flags    passFlags
		features []string
	)
	cmd := &cobra.Command{
		Use:   "attributes",
		Short: "Set a residue attribute per sequence feature",
		Long: `Set a residue attribute per sequence feature. Attributes are named after
the feature with a jv_ prefix. Without --feature every feature type in the
session's feature file is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, &flags, func(ctx context.Context, c *molsync.Client, ws *molsync.Workspace) (structure.CommandSet, error) {
				return c.SetAttributes(ctx, ws, features...)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVar(&features, "feature", nil, "Feature type (repeatable)")
	return cmd
}

func chainCmd() *cobra.Command {
	var flags passFlags
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Colour each chain differently",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, &flags, passes["chain"])
		},
	}
	flags.register(cmd)
	return cmd
}

func chargeCmd() *cobra.Command {
	var flags passFlags
	cmd := &cobra.Command{
		Use:   "charge",
		Short: "Colour charged residues",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPass(cmd, &flags, passes["charge"])
		},
	}
	flags.register(cmd)
	return cmd
}

func forgetCmd() *cobra.Command {
	var (
		envFile string
		viewer  string
	)
	cmd := &cobra.Command{
		Use:   "forget",
		Short: "Drop the recorded commands of a viewer session",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			client, err := molsync.New(molsync.WithConfig(cfg))
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()
			return client.Forget(commandContext(cmd), viewer)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&viewer, "viewer", "", "Viewer session ID")
	_ = cmd.MarkFlagRequired("viewer")
	return cmd
}
