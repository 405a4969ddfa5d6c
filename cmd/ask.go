package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/castrovroberto/prophet/internal/contextkeys"
	"github.com/castrovroberto/prophet/internal/llm"
	"github.com/castrovroberto/prophet/internal/textutils"
)

var (
	askOption int
	askFull   bool
)

var askCmd = &cobra.Command{
	Use:   "ask [prompt]",
	Short: "Ask a single question and print the answer",
	Example: `  prophet ask "Tell me about AI"
  prophet ask --option 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := contextkeys.LoggerFromContext(ctx)
		appCfg := contextkeys.ConfigFromContext(ctx)
		persona := appCfg.Persona()

		var prompt string
		switch {
		case len(args) == 1:
			prompt = args[0]
		case askOption > 0:
			if askOption > len(persona.PromptOptions) {
				return fmt.Errorf("option %d out of range (1-%d)", askOption, len(persona.PromptOptions))
			}
			prompt = persona.PromptOptions[askOption-1].Label
		default:
			return errors.New("provide a prompt or --option N (see `prophet prompts`)")
		}

		sess, cleanup, err := newSession(appCfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		resp, err := sess.Send(ctx, prompt)
		if err != nil {
			return err
		}

		switch resp.Status {
		case http.StatusOK:
			text := resp.Text
			if !askFull {
				text = textutils.Truncate(text, appCfg.Truncate)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		case http.StatusTooManyRequests:
			fmt.Fprintln(cmd.ErrOrStderr(), persona.RateLimitNotice)
			return llm.ErrRateLimited
		default:
			return fmt.Errorf("request failed (status %d): %w", resp.Status, resp.Err)
		}
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().IntVarP(&askOption, "option", "o", 0, "Ask the Nth prompt option of the persona")
	askCmd.Flags().BoolVar(&askFull, "full", false, "Print the whole answer without truncation")
}
