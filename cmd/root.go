/*
Copyright © 2024 Roberto Castro roberto.castro@example.com
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/castrovroberto/prophet/internal/config"
	"github.com/castrovroberto/prophet/internal/contextkeys"
	"github.com/castrovroberto/prophet/internal/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "prophet",
	Short: "Prophet: a terminal front end for a fine-tuned LLM.",
	Long: `Prophet lets you ask a fine-tuned LLM one of a few preset questions and
watch the answer arrive, with a loading carousel while you wait.

Configure it via a .prophet.yaml file in your home or current directory,
environment variables (prefixed with PROPHET_, e.g. PROPHET_LLM_MODEL), or
command-line flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadConfig(cfgFile); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.InitLogger(config.Cfg.LogLevel)

		ctx := contextkeys.WithConfig(cmd.Context(), &config.Cfg)
		ctx = contextkeys.WithLogger(ctx, logger.Get())
		cmd.SetContext(ctx)
		return nil
	},
}

// ExecuteContext adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.prophet.yaml or ./.prophet.yaml)")

	rootCmd.PersistentFlags().String("provider", "", "LLM provider: openai, ollama or gemini")
	viper.BindPFlag("llm.provider", rootCmd.PersistentFlags().Lookup("provider"))
	rootCmd.PersistentFlags().StringP("model", "m", "", "Model name (overrides llm.model)")
	viper.BindPFlag("llm.model", rootCmd.PersistentFlags().Lookup("model"))
	rootCmd.PersistentFlags().String("base-url", "", "Provider base URL (e.g., http://localhost:11434)")
	viper.BindPFlag("llm.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
}
