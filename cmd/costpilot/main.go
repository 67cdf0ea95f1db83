package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/everstacklabs/costpilot/internal/architect"
	"github.com/everstacklabs/costpilot/internal/catalog"
	"github.com/everstacklabs/costpilot/internal/config"
	"github.com/everstacklabs/costpilot/internal/llm"
	"github.com/everstacklabs/costpilot/internal/server"
	"github.com/everstacklabs/costpilot/internal/validate"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "costpilot",
		Short: "Cost-optimal model recommendations for LLM workloads",
		Long:  "Analyzes a use case description and token volumes, then recommends the cheapest catalog model that satisfies the workload's requirements.",
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	rootCmd.AddCommand(
		serveCmd(),
		optimizeCmd(),
		modelsCmd(),
		validateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)

			if port, _ := cmd.Flags().GetInt("port"); port > 0 {
				cfg.Server.Port = port
			}

			store, err := buildStore(cfg)
			if err != nil {
				return err
			}

			arch := architect.New(store, buildExtractor(cfg))

			srv, err := server.New(cfg.Server, arch, store)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().Int("port", 0, "Override the configured listen port")

	return cmd
}

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "One-shot recommendation for a described workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)

			useCase, _ := cmd.Flags().GetString("use-case")
			inputTokens, _ := cmd.Flags().GetInt64("input-tokens")
			outputTokens, _ := cmd.Flags().GetInt64("output-tokens")
			currentModel, _ := cmd.Flags().GetString("current-model")

			store, err := buildStore(cfg)
			if err != nil {
				return err
			}

			arch := architect.New(store, buildExtractor(cfg))

			result, err := arch.Optimize(cmd.Context(), architect.Request{
				UseCaseDescription:  useCase,
				MonthlyInputTokens:  inputTokens,
				MonthlyOutputTokens: outputTokens,
				CurrentModel:        currentModel,
			})
			if err != nil {
				return err
			}

			printReport(result)
			return nil
		},
	}

	cmd.Flags().String("use-case", "", "Description of the workload")
	cmd.Flags().Int64("input-tokens", 0, "Monthly input token volume")
	cmd.Flags().Int64("output-tokens", 0, "Monthly output token volume (default: 20% of input)")
	cmd.Flags().String("current-model", "", "Model currently in use, for savings comparison")
	_ = cmd.MarkFlagRequired("use-case")
	_ = cmd.MarkFlagRequired("input-tokens")

	return cmd
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the model catalog with pricing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			setupLogging(cfg.LogLevel)

			store, err := buildStore(cfg)
			if err != nil {
				return err
			}
			snap, err := store.Snapshot()
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			_, _ = bold.Printf("%-12s %-28s %12s %12s %10s  %s\n",
				"PROVIDER", "MODEL", "IN $/1M", "OUT $/1M", "CONTEXT", "CAPABILITIES")

			for _, o := range snap.Offerings() {
				var caps []string
				if o.SupportsFunctionCalling {
					caps = append(caps, "functions")
				}
				if o.SupportsVision {
					caps = append(caps, "vision")
				}
				if o.SupportsJSONMode {
					caps = append(caps, "json")
				}
				fmt.Printf("%-12s %-28s %12.2f %12.2f %10d  %s\n",
					o.Provider, o.Name, o.InputCostPer1M, o.OutputCostPer1M,
					o.ContextWindow, strings.Join(caps, ","))
			}

			fmt.Printf("\nTotal: %d models\n", snap.Len())
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the model catalog (CI check)",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogPath, _ := cmd.Flags().GetString("catalog-path")
			if catalogPath == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				catalogPath = cfg.CatalogPath
			}

			var offerings []catalog.Offering
			if catalogPath == "" {
				offerings = catalog.Seed()
			} else {
				var err error
				offerings, err = catalog.Load(catalogPath)
				if err != nil {
					return fmt.Errorf("loading catalog: %w", err)
				}
			}

			result := validate.ValidateCatalog(offerings)
			fmt.Println(validate.FormatResult(result))

			if result.HasErrors() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().String("catalog-path", "", "Path to model catalog (default: from config)")

	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// buildStore loads the catalog from disk when a path is configured, otherwise
// falls back to the built-in seed catalog.
func buildStore(cfg *config.Config) (*catalog.Store, error) {
	offerings := catalog.Seed()
	if cfg.CatalogPath != "" {
		loaded, err := catalog.Load(cfg.CatalogPath)
		if err != nil {
			return nil, fmt.Errorf("loading catalog: %w", err)
		}
		offerings = loaded
	}
	return catalog.NewStore(offerings)
}

// buildExtractor wires LLM-backed extraction when enabled and a key is
// present, always wrapped in the keyword fallback.
func buildExtractor(cfg *config.Config) architect.Extractor {
	if !cfg.Extractor.Enabled {
		return architect.NewFallbackExtractor(nil, 0)
	}

	var client llm.Client
	switch strings.ToLower(cfg.Extractor.Provider) {
	case "anthropic":
		if cfg.Anthropic.APIKey != "" {
			client = llm.NewAnthropicClient(cfg.Anthropic.APIKey, cfg.Anthropic.BaseURL,
				cfg.Extractor.Model, cfg.Extractor.MaxTokens, cfg.Extractor.TimeoutDuration())
		}
	default:
		if cfg.OpenAI.APIKey != "" {
			client = llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL,
				cfg.Extractor.Model, cfg.Extractor.MaxTokens, cfg.Extractor.TimeoutDuration())
		}
	}

	if client == nil {
		slog.Warn("extractor enabled but no API key configured, using keyword matching",
			"provider", cfg.Extractor.Provider)
		return architect.NewFallbackExtractor(nil, 0)
	}
	return architect.NewFallbackExtractor(architect.NewLLMExtractor(client), cfg.Extractor.TimeoutDuration())
}

func printReport(r *architect.Result) {
	report := architect.RenderReport(r)

	green := color.New(color.FgGreen, color.Bold)
	cyan := color.New(color.FgCyan)

	for _, line := range strings.Split(report, "\n") {
		switch {
		case strings.HasPrefix(line, "Recommended:"):
			_, _ = green.Println(line)
		case strings.HasPrefix(line, "Savings:"):
			_, _ = cyan.Println(line)
		default:
			fmt.Println(line)
		}
	}
}
