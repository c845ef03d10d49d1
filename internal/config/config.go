package config

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr      string
		Port      string
		Env       string
		StaticDir string
	}
	Database struct {
		Path string
	}
	Build struct {
		ID     string
		Commit string
	}
	Auth struct {
		Username string
		Password string
	}
	News struct {
		FeedURL string
		Source  string
	}
	Weather struct {
		ForecastURL string
		GeocodeURL  string
	}
}

// Production reports whether the server runs with production hardening
// (currently only the Secure attribute on the session cookie).
func (c Config) Production() bool {
	return strings.EqualFold(c.Server.Env, "production")
}

// ListenAddr resolves the final listen address; a bare PORT override wins
// over the port baked into server.addr.
func (c Config) ListenAddr() string {
	if c.Server.Port == "" {
		return c.Server.Addr
	}
	host, _, err := net.SplitHostPort(c.Server.Addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, c.Server.Port)
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:3000")
	v.SetDefault("server.port", "")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.staticdir", "dist")
	v.SetDefault("database.path", "data/app.db")
	v.SetDefault("build.id", "")
	v.SetDefault("build.commit", "")
	v.SetDefault("auth.username", "juan")
	v.SetDefault("auth.password", "secret123")
	v.SetDefault("news.feedurl", "https://news.google.com/rss")
	v.SetDefault("news.source", "Google News")
	v.SetDefault("weather.forecasturl", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("weather.geocodeurl", "https://nominatim.openstreetmap.org/reverse")

	// deploy platforms (Render et al.) export these without our prefix
	_ = v.BindEnv("server.port", "DASHBOARD_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.env", "DASHBOARD_SERVER_ENV", "APP_ENV")
	_ = v.BindEnv("database.path", "DASHBOARD_DATABASE_PATH", "SQLITE_PATH")
	_ = v.BindEnv("build.commit", "DASHBOARD_BUILD_COMMIT", "RENDER_GIT_COMMIT")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
