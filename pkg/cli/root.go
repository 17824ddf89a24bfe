// Package cli implements fidash, the command-line companion of the
// financial inclusion dashboard. It reads the same dataset files as the
// server and answers from them directly.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"fi-dashboard/internal/config"
	"fi-dashboard/internal/dataset"
	"fi-dashboard/internal/domain"
	"fi-dashboard/internal/service/ingestion"
	"fi-dashboard/internal/service/insight"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if getOutputFormat(rootCmd) == "json" {
			_ = printJSON(os.Stdout, errorObject(err))
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// errorObject describes err for JSON output, adding the details carried by
// typed dataset errors.
func errorObject(err error) map[string]interface{} {
	obj := map[string]interface{}{"error": err.Error()}

	var notFound *domain.NotFoundError
	var validation *domain.ValidationError
	var schema *domain.SchemaError
	var dateParse *domain.DateParseError
	var load *domain.LoadError
	switch {
	case errors.As(err, &schema):
		obj["code"] = "SCHEMA_ERROR"
		obj["missing"] = schema.Missing
	case errors.As(err, &dateParse):
		obj["code"] = "DATE_PARSE_ERROR"
		obj["line"] = dateParse.Line
	case errors.As(err, &notFound):
		obj["code"] = "NOT_FOUND"
	case errors.As(err, &validation):
		obj["code"] = "VALIDATION_ERROR"
	case errors.As(err, &load):
		obj["code"] = "LOAD_ERROR"
		obj["path"] = load.Path
	}
	return obj
}

// runtime carries the resolved configuration from the root command to its
// subcommands and builds the services on first use.
type runtime struct {
	cfg    *config.Config
	output string

	ingestion *ingestion.IngestionService
	insight   *insight.InsightService
}

func (rt *runtime) services(cmd *cobra.Command) (*ingestion.IngestionService, *insight.InsightService) {
	if rt.ingestion == nil {
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
		rt.ingestion = ingestion.NewIngestionService(
			dataset.NewCache(nil), rt.cfg.DataPath, rt.cfg.ForecastPath, rt.cfg.Scenarios, logger,
		)
		rt.insight = insight.NewInsightService(rt.ingestion, nil, rt.cfg.OverviewMetrics, rt.cfg.Scenarios)
	}
	return rt.ingestion, rt.insight
}

func newRootCmd() *cobra.Command {
	var (
		dataPath     string
		forecastPath string
		configFile   string
		profile      string
	)
	output := outputFlag("table")
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:           "fidash",
		Short:         "Financial inclusion dashboard CLI",
		Long:          "Validate, partition and query the financial inclusion datasets from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Config file is optional
			uc, err := LoadUserConfig()
			if err != nil {
				uc = newUserConfig()
			}
			p, err := uc.ActiveProfile(profile)
			if err != nil {
				return err
			}

			// Apply precedence: flag > env > profile > default
			if !cmd.Flags().Changed("output") {
				if v := firstNonEmpty(os.Getenv("FIDASH_OUTPUT"), p.Output); v != "" {
					if err := output.Set(v); err != nil {
						return err
					}
				}
			}

			cfg, err := resolveConfig(dataPath, forecastPath, configFile, p)
			if err != nil {
				return err
			}
			rt.cfg = cfg
			rt.output = string(output)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Unified dataset CSV (default "+config.DefaultDataPath+")")
	rootCmd.PersistentFlags().StringVar(&forecastPath, "forecast", "", "Forecast dataset CSV (default "+config.DefaultForecastPath+")")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file with scenarios and overview metrics")
	rootCmd.PersistentFlags().VarP(&output, "output", "o", "Output format (table, json)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "Config profile to use")

	rootCmd.AddCommand(newValidateCmd(rt))
	rootCmd.AddCommand(newPartitionCmd(rt))
	rootCmd.AddCommand(newLatestCmd(rt))
	rootCmd.AddCommand(newTrendCmd(rt))
	rootCmd.AddCommand(newForecastCmd(rt))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Shell completions
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// resolveConfig applies flag > env > config file > profile > default for
// the dataset paths. Scenarios and overview metrics come from the config
// file only.
func resolveConfig(dataPath, forecastPath, configFile string, p Profile) (*config.Config, error) {
	cfg := &config.Config{
		DataPath:     firstNonEmpty(dataPath, os.Getenv("DATA_PATH")),
		ForecastPath: firstNonEmpty(forecastPath, os.Getenv("FORECAST_PATH")),
	}

	if configFile = firstNonEmpty(configFile, os.Getenv("CONFIG_FILE")); configFile != "" {
		fc, err := config.LoadFile(configFile)
		if err != nil {
			return nil, err
		}
		if err := cfg.Apply(fc); err != nil {
			return nil, fmt.Errorf("config file %s: %w", configFile, err)
		}
	}

	cfg.DataPath = firstNonEmpty(cfg.DataPath, p.Data)
	cfg.ForecastPath = firstNonEmpty(cfg.ForecastPath, p.Forecast)
	cfg.ApplyDefaults()
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}
	return cmd
}
