package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pitchside/internal/backend"
	"github.com/mauv0809/pitchside/internal/config"
	"github.com/spf13/cobra"
)

var (
	host    string
	apiURL  string
	timeout time.Duration
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pitchside",
	Short: "A CLI for match predictions",
	Long: `A command-line interface for the prediction backend and the pitchside
daemon. Backend commands talk to --api directly; daemon commands talk to --host.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if verbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
}

func init() {
	defaultAPI := config.DefaultAPIURL
	if v, ok := os.LookupEnv("PITCHSIDE_API_URL"); ok && v != "" {
		defaultAPI = v
	}
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the pitchside daemon")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "The base URL of the prediction backend")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", config.DefaultRequestTimeout, "Per-request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func newBackend() backend.BackendClient {
	return backend.NewClient(apiURL, timeout)
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
