package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nasedkinpv/numr/internal/obs"
	"github.com/nasedkinpv/numr/internal/ratecache"
)

var (
	flagRatesPath string
	flagLogLevel  string
	flagJSONLogs  bool
)

// rootCmd is the base command when numr is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "numr",
	Short: "A text calculator for money, quantities, and percentages",
	Long: `numr evaluates lines of plain-text arithmetic that understands
currency, physical units, and percentages, the way a spreadsheet
formula bar would if you could type into it in prose.`,
}

func init() {
	_ = godotenv.Load()

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	initFlags()
	cobra.OnInitialize(initEnvConfig, initLogging)
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(&flagRatesPath, "rates", "r", "",
		`path to an exchange-rate cache document --rates <path> | example: --rates=rates.json`)
	rootCmd.PersistentFlags().StringVarP(&flagLogLevel, "log-level", "l", "info",
		`logging level --log-level <level> | example: --log-level=debug`)
	rootCmd.PersistentFlags().BoolVarP(&flagJSONLogs, "json-logs", "", false,
		`emit structured logs as JSON instead of text --json-logs <true/false>`)
}

// initEnvConfig binds NUMR_-prefixed environment variables over the
// flag defaults, letting a deployment configure numr without flags.
func initEnvConfig() {
	viper.BindEnv("rates", "NUMR_RATES")
	viper.BindEnv("log_level", "NUMR_LOG_LEVEL")
	viper.BindEnv("json_logs", "NUMR_JSON_LOGS")

	if v := viper.GetString("rates"); v != "" && flagRatesPath == "" {
		flagRatesPath = v
	}
	if v := viper.GetString("log_level"); v != "" {
		flagLogLevel = v
	}
	if viper.IsSet("json_logs") {
		flagJSONLogs = viper.GetBool("json_logs")
	}
}

func initLogging() {
	obs.Init(flagLogLevel, flagJSONLogs)
}

// loadRates loads the rate-cache document named by --rates, if any. A
// session with no rates installed still evaluates everything that
// doesn't need cross-currency conversion.
func loadRates() *ratecache.Graph {
	if flagRatesPath == "" {
		return nil
	}
	g, err := ratecache.Load(flagRatesPath)
	if err != nil {
		logrus.WithError(err).Warn("failed to load rate cache, continuing without one")
		return nil
	}
	return g
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
