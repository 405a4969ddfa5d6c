package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/castrovroberto/prophet/internal/animation"
	"github.com/castrovroberto/prophet/internal/config"
	"github.com/castrovroberto/prophet/internal/contextkeys"
	"github.com/castrovroberto/prophet/internal/logger"
	"github.com/castrovroberto/prophet/internal/tui"
	"github.com/castrovroberto/prophet/internal/tui/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive prophet screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appCfg := contextkeys.ConfigFromContext(ctx)

		// The alt screen owns the terminal, so logs go to a file.
		closer, err := logger.InitLoggerForTUI(appCfg.LogLevel, appCfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to initialize TUI logger: %w", err)
		}
		defer closer.Close()
		log := logger.Get()
		ctx = contextkeys.WithLogger(ctx, log)

		sess, cleanup, err := newSession(appCfg, log)
		if err != nil {
			return err
		}
		defer cleanup()

		ctrl := animation.NewController(appCfg.AnimationSettings(), animation.NewRand(appCfg.Seed))
		model := chat.NewModel(appCfg, ctrl, sess,
			chat.WithParentContext(ctx),
			chat.WithLogger(log),
		)

		p := tui.NewProgram(ctx, model)
		config.Watch(func(cfg *config.AppConfig, err error) {
			p.Send(chat.ConfigReloadedMsg{Config: cfg, Err: err})
		})

		log.Info("Starting chat screen", "provider", appCfg.LLM.Provider, "model", appCfg.LLM.Model)
		if err := tui.Run(p); err != nil {
			log.Error("Chat TUI failed", "error", err)
			return fmt.Errorf("failed to run interactive chat session: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
