package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ochronus/gocatbox/internal/app"
	"github.com/ochronus/gocatbox/internal/config"
	"github.com/ochronus/gocatbox/internal/http"
	"github.com/ochronus/gocatbox/internal/utils"
	"github.com/spf13/cobra"
)

const version = "0.3.1"

var (
	configPath string
	dotenvPath string
	userHash   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	// Get default config path
	defaultConfigPath, err := config.DefaultConfigPath()
	if err != nil {
		defaultConfigPath = "./config.toml"
	}

	// Root command
	rootCmd := &cobra.Command{
		Use:           "gocatbox",
		Short:         "Catbox file hosting client",
		Long:          "Upload files to catbox.moe and manage files and albums from the command line, or relay the Catbox API locally with your userhash attached.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath, "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dotenvPath, "env-file", ".env", "Path to a dotenv file with CATBOX_* overrides")
	rootCmd.PersistentFlags().StringVar(&userHash, "userhash", "", "Catbox userhash (overrides config and environment)")

	// Serve command
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local relay for the Catbox API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	// Generate-config command
	generateConfigCmd := &cobra.Command{
		Use:   "generate-config",
		Short: "Generate config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return utils.GenerateConfig(configPath, utils.PromptUserHash)
		},
	}

	// Version command
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gocatbox version %s\n", version)
		},
	}

	rootCmd.AddCommand(newUploadCmd())
	rootCmd.AddCommand(newUploadURLCmd())
	rootCmd.AddCommand(newDeleteFilesCmd())
	rootCmd.AddCommand(newAlbumCmd())
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateConfigCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// buildContainer loads configuration the same way for every command:
// config file, then dotenv, then environment, then the --userhash flag.
func buildContainer(cmd *cobra.Command, opts ...app.Option) (*app.Container, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadOrDefault(configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.ApplyEnv(dotenvPath); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	if cmd.Flags().Changed("userhash") {
		cfg.Catbox.UserHash = userHash
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	container, err := app.NewContainer(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build container: %w", err)
	}
	return container, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	container, err := buildContainer(cmd)
	if err != nil {
		return err
	}

	container.Logger.Infof("Starting gocatbox relay, version %s", version)

	server := http.NewServer(container)
	return server.StartWithContext(cmd.Context())
}
