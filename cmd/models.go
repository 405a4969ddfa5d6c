package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/castrovroberto/prophet/internal/contextkeys"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available from the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appCfg := contextkeys.ConfigFromContext(ctx)

		client, cleanup, err := newClient(appCfg)
		if err != nil {
			return err
		}
		defer cleanup()

		models, err := client.ListAvailableModels(ctx)
		if err != nil {
			return fmt.Errorf("failed to list %s models: %w", appCfg.LLM.Provider, err)
		}
		sort.Strings(models)

		out := cmd.OutOrStdout()
		for _, m := range models {
			marker := " "
			if m == appCfg.LLM.Model {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s\n", marker, m)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
