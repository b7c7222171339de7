package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var askToday string

var askCmd = &cobra.Command{
	Use:   "ask <pergunta>",
	Short: "Responde uma pergunta localmente, sem WhatsApp",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		today := cfg.Today()
		if askToday != "" {
			today, err = time.Parse(time.DateOnly, askToday)
			if err != nil {
				return fmt.Errorf("data invalida em --today: %w", err)
			}
		}

		eng, closeFn := newEngine(cmd.Context(), cfg, log)
		defer closeFn()

		reply := eng.ResolveReply(strings.Join(args, " "), today)
		fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
		if reply.Match != nil {
			log.Debug().Str("match", reply.Match.Key).Int("score", reply.Match.Score).Msg("melhor pergunta")
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askToday, "today", "", "data de referencia (YYYY-MM-DD), padrao hoje")
}
