// Package config charge la configuration du launcher.
//
// Priorité: variables PB2_* > pb2-launcher.toml > valeurs par défaut.
// Un fichier .env à côté de l'exécutable alimente les variables d'environnement
// sans écraser celles déjà définies.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	FileName    = "pb2-launcher.toml"
	EnvFileName = ".env"
)

type Endpoints struct {
	Website  string `toml:"website" validate:"required,url"`
	Loader   string `toml:"loader" validate:"required,url"`
	Marker   string `toml:"marker" validate:"required,url"`
	GameData string `toml:"game_data" validate:"required,url"`
}

type Config struct {
	Addr               string    `toml:"addr" validate:"required,hostname_port"`
	DataDir            string    `toml:"data_dir" validate:"required"`
	LogLevel           string    `toml:"log_level" validate:"oneof=trace debug info warn error"`
	LogPretty          bool      `toml:"log_pretty"`
	HTTPTimeoutSeconds int       `toml:"http_timeout_seconds" validate:"gte=1,lte=3600"`
	AllowedOrigins     []string  `toml:"allowed_origins" validate:"dive,url"`
	Endpoints          Endpoints `toml:"endpoints"`
}

func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// Default renvoie la configuration d'origine: tout vit dans dataDir
// (le dossier de l'exécutable en pratique).
func Default(dataDir string) Config {
	return Config{
		Addr:               "127.0.0.1:8765",
		DataDir:            dataDir,
		LogLevel:           "info",
		HTTPTimeoutSeconds: 30,
		Endpoints: Endpoints{
			Website:  "https://www.plazmaburst2.com/",
			Loader:   "https://www.plazmaburst2.com/pb2/server.php",
			Marker:   "https://www.plazmaburst2.com/launcher/time.php",
			GameData: "https://www.plazmaburst2.com/pb2/pb2_re34.swf",
		},
	}
}

// Load lit .env puis pb2-launcher.toml dans dir (tous deux optionnels),
// applique les variables PB2_* et valide le résultat.
func Load(dir string) (Config, error) {
	if err := godotenv.Load(filepath.Join(dir, EnvFileName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", EnvFileName, err)
	}

	cfg := Default(dir)
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(c *Config) {
	c.Addr = envOr("PB2_ADDR", c.Addr)
	c.DataDir = envOr("PB2_DATA_DIR", c.DataDir)
	c.LogLevel = strings.ToLower(envOr("PB2_LOG_LEVEL", c.LogLevel))
	if v, err := strconv.ParseBool(os.Getenv("PB2_LOG_PRETTY")); err == nil {
		c.LogPretty = v
	}
	if v, err := strconv.Atoi(os.Getenv("PB2_HTTP_TIMEOUT_SECONDS")); err == nil {
		c.HTTPTimeoutSeconds = v
	}
	if v := os.Getenv("PB2_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, o)
			}
		}
	}
	c.Endpoints.Website = envOr("PB2_WEBSITE_URL", c.Endpoints.Website)
	c.Endpoints.Loader = envOr("PB2_LOADER_URL", c.Endpoints.Loader)
	c.Endpoints.Marker = envOr("PB2_MARKER_URL", c.Endpoints.Marker)
	c.Endpoints.GameData = envOr("PB2_GAME_DATA_URL", c.Endpoints.GameData)
}

func Validate(c Config) error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ExecutableDir renvoie le dossier de l'exécutable, liens symboliques résolus.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
