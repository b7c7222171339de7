package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var keysFilter string

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Lista as perguntas e sinonimos carregados",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}

		eng, closeFn := newEngine(cmd.Context(), cfg, log)
		defer closeFn()

		for _, key := range eng.Keys(keysFilter) {
			fmt.Fprintln(cmd.OutOrStdout(), key)
		}
		return nil
	},
}

func init() {
	keysCmd.Flags().StringVarP(&keysFilter, "filter", "f", "", "filtra as chaves por aproximacao")
}
