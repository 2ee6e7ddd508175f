package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/helixml/molsync"
	"github.com/helixml/molsync/domain/colour"
	"github.com/helixml/molsync/domain/structure"
	"github.com/helixml/molsync/internal/config"
	"github.com/helixml/molsync/internal/log"
)

// passFlags are the flags shared by every command-generating subcommand.
type passFlags struct {
	envFile        string
	sessions       []string
	dialect        string
	viewer         string
	maxChunkLength int
	hiddenColour   string
}

func (f *passFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringArrayVarP(&f.sessions, "session", "s", nil, "Session file (repeatable)")
	cmd.Flags().StringVar(&f.dialect, "dialect", "", "Command dialect: chimera, chimerax, jmol")
	cmd.Flags().StringVar(&f.viewer, "viewer", "", "Viewer session ID; only changed commands are printed")
	cmd.Flags().IntVar(&f.maxChunkLength, "max-chunk-length", 0, "Characters per command chunk, 0 for no limit")
	cmd.Flags().StringVar(&f.hiddenColour, "hidden-colour", "", "Colour of hidden columns, #rrggbb or r,g,b")
	_ = cmd.MarkFlagRequired("session")
}

// appConfig loads configuration and applies the flags the user set.
func (f *passFlags) appConfig(cmd *cobra.Command) (config.AppConfig, error) {
	cfg, err := loadConfig(f.envFile)
	if err != nil {
		return config.AppConfig{}, err
	}

	var opts []config.AppConfigOption
	if cmd.Flags().Changed("dialect") {
		opts = append(opts, config.WithDialect(f.dialect))
	}
	if cmd.Flags().Changed("max-chunk-length") {
		opts = append(opts, config.WithMaxChunkLength(f.maxChunkLength))
	}
	if cmd.Flags().Changed("hidden-colour") {
		rgb, err := colour.Parse(f.hiddenColour)
		if err != nil {
			return config.AppConfig{}, fmt.Errorf("--hidden-colour: %w", err)
		}
		opts = append(opts, config.WithHiddenColour(rgb))
	}
	return cfg.Apply(opts...), nil
}

// passFunc generates the command set of one workspace.
type passFunc func(ctx context.Context, client *molsync.Client, ws *molsync.Workspace) (structure.CommandSet, error)

// runPass runs pass over every session, at most WorkerCount at a time, and
// prints each command set's chunks one per line in session order.
func runPass(cmd *cobra.Command, flags *passFlags, pass passFunc) error {
	if flags.viewer != "" && len(flags.sessions) != 1 {
		return errors.New("--viewer needs exactly one --session")
	}

	cfg, err := flags.appConfig(cmd)
	if err != nil {
		return err
	}
	logger := log.Configure(cfg)
	logger.Debug("configuration loaded", attrsToArgs(cfg.LogAttrs())...)

	client, err := molsync.New(molsync.WithConfig(cfg), molsync.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("close client", slog.Any("error", err))
		}
	}()

	ctx := commandContext(cmd)

	results := make([]structure.CommandSet, len(flags.sessions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.WorkerCount())
	for i, path := range flags.sessions {
		g.Go(func() error {
			ws, err := molsync.LoadWorkspace(path)
			if err != nil {
				return err
			}
			set, err := pass(log.WithPassID(gctx, log.NewPassID()), client, ws)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if flags.viewer != "" {
		changed, err := client.Publish(ctx, flags.viewer, results[0])
		if err != nil {
			return err
		}
		if !changed {
			logger.InfoContext(log.WithViewer(ctx, flags.viewer), "commands unchanged, nothing to send")
			return nil
		}
	}

	return writeChunks(cmd.OutOrStdout(), results)
}

func writeChunks(w io.Writer, sets []structure.CommandSet) error {
	for _, set := range sets {
		for _, chunk := range set.Chunks() {
			if _, err := fmt.Fprintln(w, chunk); err != nil {
				return err
			}
		}
	}
	return nil
}

// commandContext is cmd's context, or Background when executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func attrsToArgs(attrs []slog.Attr) []any {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return args
}
