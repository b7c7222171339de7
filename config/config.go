package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey e devolvido quando o servidor sobe sem API_KEY.
var ErrMissingAPIKey = errors.New("variavel de ambiente API_KEY nao encontrada")

type Config struct {
	ApiKey         string         `json:"apikey"`
	AdminToken     string         `json:"-"`
	DatabaseUrl    string         `json:"database_url"`
	SeedFile       string         `json:"seed_file"`
	Port           string         `json:"port"`
	UseNgrok       bool           `json:"use_ngrok"`
	MinQueryLength int            `json:"min_query_length"`
	FuzzyThreshold int            `json:"fuzzy_threshold"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
	Location       *time.Location `json:"-"`
}

// Load carrega as variaveis de ambiente, lendo antes o arquivo .env se ele existir.
func Load() (Config, error) {
	// .env e opcional; em producao as variaveis vem do ambiente.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("erro ao carregar .env: %w", err)
	}
	return FromEnv()
}

// FromEnv le a configuracao apenas das variaveis de ambiente.
func FromEnv() (Config, error) {
	cfg := Config{
		ApiKey:      os.Getenv("API_KEY"),
		AdminToken:  os.Getenv("ADMIN_TOKEN"),
		DatabaseUrl: os.Getenv("DATABASE_URL"),
		SeedFile:    os.Getenv("SEED_FILE"),
		Port:        getenv("PORT", "8080"),
		UseNgrok:    os.Getenv("USE_NGROK") == "true",
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFormat:   getenv("LOG_FORMAT", "console"),
		Location:    time.Local,
	}

	var err error
	if cfg.MinQueryLength, err = getenvInt("MIN_QUERY_LENGTH", 8); err != nil {
		return Config{}, err
	}
	if cfg.MinQueryLength < 0 {
		return Config{}, fmt.Errorf("MIN_QUERY_LENGTH nao pode ser negativo: %d", cfg.MinQueryLength)
	}
	if cfg.FuzzyThreshold, err = getenvInt("FUZZY_THRESHOLD", 70); err != nil {
		return Config{}, err
	}
	if cfg.FuzzyThreshold < 0 || cfg.FuzzyThreshold > 100 {
		return Config{}, fmt.Errorf("FUZZY_THRESHOLD deve estar entre 0 e 100: %d", cfg.FuzzyThreshold)
	}

	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("TIMEZONE invalido: %w", err)
		}
		cfg.Location = loc
	}

	return cfg, nil
}

// RequireAPIKey valida o que o servidor precisa para responder no WhatsApp.
func (c Config) RequireAPIKey() error {
	if c.ApiKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// Today devolve a data atual no fuso configurado.
func (c Config) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("variavel de ambiente %s invalida: %w", key, err)
	}
	return n, nil
}

// StartNgrok inicia o ngrok na porta informada e devolve a URL publica HTTPS do tunel.
func StartNgrok(ctx context.Context, port string) (string, error) {
	cmd := exec.CommandContext(ctx, "ngrok", "http", port)
	if err := cmd.Start(); err != nil {
		return "", err
	}

	time.Sleep(2 * time.Second)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://127.0.0.1:4040/api/tunnels", nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Tunnels []struct {
			Proto     string `json:"proto"`
			PublicURL string `json:"public_url"`
		} `json:"tunnels"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	for _, tunnel := range result.Tunnels {
		if tunnel.Proto == "https" {
			return tunnel.PublicURL, nil
		}
	}

	return "", errors.New("nenhum túnel HTTPS encontrado")
}
