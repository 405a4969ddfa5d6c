package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/castrovroberto/prophet/internal/contextkeys"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "List the prompt options and loading messages of the persona",
	RunE: func(cmd *cobra.Command, args []string) error {
		appCfg := contextkeys.ConfigFromContext(cmd.Context())
		persona := appCfg.Persona()
		out := cmd.OutOrStdout()
		title := lipgloss.NewStyle().Bold(true)

		fmt.Fprintln(out, title.Render(persona.Name))
		if persona.Welcome != "" {
			fmt.Fprintln(out, persona.Welcome)
		}
		fmt.Fprintln(out)

		options := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("#", "PROMPT", "IMAGE")
		for i, opt := range persona.PromptOptions {
			options.Row(strconv.Itoa(i+1), opt.Label, opt.Image)
		}
		fmt.Fprintln(out, title.Render(fmt.Sprintf("Prompt options (%d shown at a time)", persona.OptionCount)))
		fmt.Fprintln(out, options.Render())
		fmt.Fprintln(out)

		fmt.Fprintln(out, title.Render("Loading messages"))
		for _, m := range persona.CarouselMessages {
			fmt.Fprintf(out, "  • %s\n", m)
		}
		if persona.FinalMessage != "" {
			fmt.Fprintf(out, "  ⇒ %s (always last)\n", persona.FinalMessage)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptsCmd)
}
