package cli

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/veridict/veridict/internal/model"
)

var (
	cfgFile string
	verbose bool
	profile string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "veridict",
	Short: "Veridict - news credibility scoring",
	Long: `Veridict scores the credibility of news articles.

Given raw article text or a URL, it acquires the text, runs a set of
transparent signal extractors (length, sensational language, source
trust, optional classifier and corroboration search), aggregates them
into a 0-100 score and maps the score to a verdict: Likely Real,
Suspicious or Likely Fake. Every verdict comes with the list of
reasons that produced it.

Veridict estimates credibility signals; it does not check facts.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("veridict v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.veridict/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "scoring profile (heuristic, ml, corroboration)")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.veridict")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("VERIDICT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults, then the
// config file, then environment and the profile flag on top.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()

	if viper.ConfigFileUsed() != "" {
		// The config structs carry yaml tags; durations parse via
		// viper's string-to-duration hook.
		if err := viper.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
			dc.TagName = "yaml"
		}); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if env := os.Getenv("VERIDICT_PROFILE"); env != "" {
		cfg.Profile = env
	}
	if profile != "" {
		cfg.Profile = profile
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.Classifier.APIKey == "" {
		cfg.Classifier.APIKey = key
	}

	cfg.Output.Verbose = verbose

	if _, err := cfg.ActiveProfile(); err != nil {
		return nil, err
	}

	return cfg, nil
}
