package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helixml/molsync"
	"github.com/helixml/molsync/application/service"
	"github.com/helixml/molsync/domain/structure"
	"github.com/helixml/molsync/internal/config"
	"github.com/helixml/molsync/internal/log"
)

var passes = map[string]passFunc{
	"colour": func(ctx context.Context, c *molsync.Client, ws *molsync.Workspace) (structure.CommandSet, error) {
		return c.ColourBySequence(ctx, ws)
	},
	"attributes": func(ctx context.Context, c *molsync.Client, ws *molsync.Workspace) (structure.CommandSet, error) {
		return c.SetAttributes(ctx, ws)
	},
	"chain": func(_ context.Context, c *molsync.Client, ws *molsync.Workspace) (structure.CommandSet, error) {
		return c.ColourByChain(ws), nil
	},
	"charge": func(_ context.Context, c *molsync.Client, ws *molsync.Workspace) (structure.CommandSet, error) {
		return c.ColourByCharge(ws), nil
	},
}

func passNames() []string {
	names := make([]string, 0, len(passes))
	for name := range passes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func watchCmd() *cobra.Command {
	var (
		flags    passFlags
		passName string
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate commands as the session changes",
		Long: `Reload the session on a timer and print the viewer's commands whenever
they change. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, ok := passes[passName]
			if !ok {
				return fmt.Errorf("unknown pass %q, want one of %s", passName, strings.Join(passNames(), ", "))
			}
			if len(flags.sessions) != 1 {
				return errors.New("watch needs exactly one --session")
			}
			if flags.viewer == "" {
				flags.viewer = flags.sessions[0]
			}

			cfg, err := flags.appConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("interval") {
				cfg = cfg.Apply(config.WithWatchInterval(interval))
			}
			return runWatch(cmd, cfg, flags.viewer, flags.sessions[0], pass)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&passName, "pass", "colour", "Commands to generate: "+strings.Join(passNames(), ", "))
	cmd.Flags().DurationVar(&interval, "interval", config.DefaultWatchInterval, "How often to reload the session")
	return cmd
}

func runWatch(cmd *cobra.Command, cfg config.AppConfig, viewer, session string, pass passFunc) error {
	logger := log.Configure(cfg)
	logger.Debug("configuration loaded", attrsToArgs(cfg.LogAttrs())...)

	client, err := molsync.New(molsync.WithConfig(cfg), molsync.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	out := cmd.OutOrStdout()
	client.AddListener(service.ListenerFunc(func(_ context.Context, _ string, set structure.CommandSet) error {
		return writeChunks(out, []structure.CommandSet{set})
	}))

	w := client.Watcher(viewer, cfg.WatchInterval(), func(ctx context.Context) (structure.CommandSet, error) {
		ws, err := molsync.LoadWorkspace(session)
		if err != nil {
			return structure.CommandSet{}, err
		}
		return pass(ctx, client, ws)
	})

	ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w.Start(ctx)
	<-ctx.Done()
	w.Stop()
	return nil
}
