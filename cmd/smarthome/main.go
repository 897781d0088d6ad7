package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hyandell/alexa-smarthome-validation/contracts"
	"github.com/hyandell/alexa-smarthome-validation/health"
	"github.com/hyandell/alexa-smarthome-validation/internal/config"
	"github.com/hyandell/alexa-smarthome-validation/router"
	"github.com/hyandell/alexa-smarthome-validation/schema"
)

var (
	// Version information
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "smarthome",
		Short: "Smart home request/response adapter",
		Long: `Smarthome routes voice-assistant home automation requests against a
sample device catalog and validates every response against the protocol
schema before it is released.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildTime),
	}

	var (
		configPath string
		verbose    bool
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	loadConfig := func() (config.Config, error) {
		cfg := config.Default()
		if configPath != "" {
			loaded, err := config.Load(configPath)
			if err != nil {
				return cfg, err
			}
			cfg = loaded
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}
		return cfg, nil
	}

	respondCmd := &cobra.Command{
		Use:   "respond [request-file]",
		Short: "Route a request and print the validated response",
		Long: `Reads a request message (JSON) from the given file or stdin, fabricates
the response from the sample catalog, validates it, and prints it. A response
that violates any protocol rule is never printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			request, err := readMessage(cmd.InOrStdin(), args, 0)
			if err != nil {
				return err
			}

			response, err := routeRequest(cfg, request)
			if err != nil {
				return err
			}
			return printMessage(cmd.OutOrStdout(), response)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate <request-file> <response-file>",
		Short: "Validate a candidate response against its request",
		Long: `Runs the response validation engine only: reads a request and a candidate
response and reports the first violated rule, if any.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			request, err := readMessageFile(args[0])
			if err != nil {
				return err
			}
			response, err := readMessageFile(args[1])
			if err != nil {
				return err
			}

			validator := schema.NewResponseValidator(schema.WithLogger(cfg.Logger()))
			if err := validator.Validate(context.Background(), request, response); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "response is valid")
			return nil
		},
	}

	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "Print the validated discovery listing for the sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			request := contracts.NewMessage(
				contracts.NewHeader(contracts.NamespaceDiscovery, "DiscoverAppliancesRequest", ""),
				map[string]interface{}{"accessToken": "sample-access-token"},
			)

			response, err := routeRequest(cfg, request)
			if err != nil {
				return err
			}
			return printMessage(cmd.OutOrStdout(), response)
		},
	}

	rootCmd.AddCommand(respondCmd, validateCmd, discoverCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func routeRequest(cfg config.Config, request contracts.Message) (contracts.Message, error) {
	logger := cfg.Logger()

	opts := []router.RouterOption{
		router.WithRouterLogger(logger),
		router.WithValidator(schema.NewResponseValidator(schema.WithLogger(logger))),
		router.WithHealthCheckers(
			health.NewCatalogChecker(logger),
			health.NewRuntimeChecker(cfg.MaxGoroutines),
		),
	}
	if cfg.EnforceBudget {
		opts = append(opts, router.WithDeadlineCheck())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ProcessingBudget.Std())
	defer cancel()

	return router.NewRouter(opts...).Route(ctx, request)
}

func readMessage(stdin io.Reader, args []string, index int) (contracts.Message, error) {
	if len(args) > index {
		return readMessageFile(args[index])
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read request from stdin: %w", err)
	}
	return contracts.FromJSON(data)
}

func readMessageFile(path string) (contracts.Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	message, err := contracts.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return message, nil
}

func printMessage(out io.Writer, message contracts.Message) error {
	data, err := message.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
