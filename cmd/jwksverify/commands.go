package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/jwksverify/internal/app"
	"github.com/dropDatabas3/jwksverify/internal/config"
	"github.com/dropDatabas3/jwksverify/internal/jwks"
	"github.com/dropDatabas3/jwksverify/internal/observability/logger"
)

// cli guarda lo que PersistentPreRunE deja listo para los subcomandos.
type cli struct {
	configPath string
	envFile    string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "jwksverify",
		Short:         "Verifica bearer tokens RS256 contra el JWKS cacheado del proveedor",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Archivo YAML de config (env CONFIG_PATH)")
	root.PersistentFlags().StringVar(&c.envFile, "env-file", ".env", "Archivo .env opcional")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Levanta el servicio HTTP (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.serve(cmd.Context())
			},
		},
		c.fetchCmd(),
		c.inspectCmd(),
	)
	return root
}

func (c *cli) load() error {
	if err := config.LoadDotEnv(c.envFile); err != nil {
		return fmt.Errorf("load %s: %w", c.envFile, err)
	}
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.cfg = cfg

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "jwksverify",
		Version:     version,
	})
	return nil
}

func (c *cli) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctr, err := app.New(ctx, c.cfg, version)
	if err != nil {
		logger.L().Error("startup failed", logger.Err(err))
		return err
	}
	defer ctr.Close()

	return ctr.Serve(ctx)
}

func (c *cli) fetchCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Descarga el documento JWKS si no está (--force lo vuelve a bajar)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), c.cfg.FetchTimeout())
			defer cancel()

			store, closeStore, err := app.OpenStore(c.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			name := jwks.DocumentName(c.cfg.JWKS.ClientID)
			src := app.NewSource(c.cfg, store)
			if force {
				err = src.Refresh(ctx, name, c.cfg.JWKS.ClientID)
			} else {
				err = src.Ensure(ctx, name, c.cfg.JWKS.ClientID)
			}
			if err != nil {
				return err
			}

			rec, err := jwks.Load(ctx, store, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s kid=%s\n", store.Location(name), rec.KeyID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Borra el documento cacheado y lo descarga de nuevo")
	return cmd
}

func (c *cli) inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Imprime el KeyRecord del documento cacheado (sin tocar la red)",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, closeStore, err := app.OpenStore(c.cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			rec, err := jwks.Load(cmd.Context(), store, jwks.DocumentName(c.cfg.JWKS.ClientID))
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
}
