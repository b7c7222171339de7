package cmd

import (
	"context"

	"charlie/config"
	"charlie/internal/database"
	"charlie/internal/domain"
	"charlie/internal/engine"
	"charlie/internal/observability"
	"charlie/internal/source"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "charlie",
	Short:         "Charlie: assistente de RH no WhatsApp",
	Long:          "Responde saldo de folgas, proximo feriado e perguntas frequentes por aproximacao de texto.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute executa o comando raiz.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(keysCmd)
}

// setup carrega a configuracao e cria o logger.
func setup() (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, zerolog.Nop(), err
	}
	log := observability.NewLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: "charlie",
	})
	return cfg, log, nil
}

// openSource escolhe a fonte de registros: banco, arquivo YAML ou nenhuma.
// Sem dados de folga usa a lista padrao. A funcao devolvida fecha o banco.
func openSource(ctx context.Context, cfg config.Config, log zerolog.Logger) (domain.RecordSource, func()) {
	switch {
	case cfg.DatabaseUrl != "":
		db, err := database.Open(ctx, cfg.DatabaseUrl, log)
		if err != nil {
			log.Error().Err(err).Msg("banco de dados indisponivel, seguindo sem dados")
			return source.WithDefaultLeave(source.Static{}), func() {}
		}
		return source.WithDefaultLeave(source.NewSQLSource(db, log)), func() { db.Close() }
	case cfg.SeedFile != "":
		return source.WithDefaultLeave(source.NewFileSource(cfg.SeedFile, log)), func() {}
	default:
		log.Warn().Msg("DATABASE_URL e SEED_FILE vazios, base de conhecimento vazia")
		return source.WithDefaultLeave(source.Static{}), func() {}
	}
}

func newEngine(ctx context.Context, cfg config.Config, log zerolog.Logger) (*engine.Engine, func()) {
	src, closeFn := openSource(ctx, cfg, log)
	eng := engine.New(ctx, src, engine.Config{
		MinQueryLength:       cfg.MinQueryLength,
		FuzzyAcceptThreshold: cfg.FuzzyThreshold,
	}, log)
	return eng, closeFn
}
