package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/inkwell-labs/inkwell/internal/config"
	"github.com/inkwell-labs/inkwell/pkg/logger"
	"github.com/spf13/cobra"
)

var Version = "dev"

var (
	serverURL string
	token     string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inkwell",
		Short:         "Inkwell - generate content and SEO reports through the relay",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init()
		},
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", config.GetEnvOrDefault("INKWELL_URL", "http://localhost:8080"), "relay base URL")
	cmd.PersistentFlags().StringVar(&token, "token", config.GetEnvOrDefault("INKWELL_TOKEN", ""), "bearer token identifying the user")

	cmd.AddCommand(generateCmd())
	cmd.AddCommand(seoCmd())

	return cmd
}
