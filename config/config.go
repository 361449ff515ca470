package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration resolved from the environment.
type Config struct {
	Mongo  MongoConfig
	Server ServerConfig
	Auth   AuthConfig
}

// MongoConfig holds the MongoDB connection settings.
type MongoConfig struct {
	Mode   string // auto | local | remote
	URI    string
	DBName string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port      string
	UploadDir string
}

// AuthConfig holds JWT settings.
type AuthConfig struct {
	Secret      string
	ExpireHours int
}

// Load reads .env (if present) and resolves the full configuration.
// Env precedence for the Mongo URI mirrors the connection modes:
// remote > explicit > local when MONGO_MODE=auto.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("config: loaded .env")
	}

	return &Config{
		Mongo:  resolveMongo(),
		Server: ServerConfig{
			Port:      getenv("PORT", "8000"),
			UploadDir: getenv("UPLOAD_DIR", "uploads"),
		},
		Auth: AuthConfig{
			Secret:      getenv("JWT_SECRET", "dev-secret-change-me"),
			ExpireHours: getenvInt("JWT_EXPIRE_HOURS", 12),
		},
	}
}

func resolveMongo() MongoConfig {
	mode := strings.ToLower(getenv("MONGO_MODE", "auto"))
	dbname := getenv("MONGO_DB", "hrm_db")

	explicit := strings.TrimSpace(os.Getenv("MONGO_URI"))
	local := getenv("MONGO_URI_LOCAL", "mongodb://localhost:27017")
	remote := strings.TrimSpace(os.Getenv("MONGO_URI_REMOTE"))

	switch mode {
	case "local":
		return MongoConfig{Mode: "local", URI: firstNonEmpty(explicit, local), DBName: dbname}
	case "remote":
		if remote != "" {
			return MongoConfig{Mode: "remote", URI: remote, DBName: dbname}
		}
		log.Printf("config: WARNING MONGO_MODE=remote but MONGO_URI_REMOTE empty; falling back to local")
		return MongoConfig{Mode: "local", URI: firstNonEmpty(explicit, local), DBName: dbname}
	default: // auto: remote > explicit > local
		if remote != "" {
			return MongoConfig{Mode: "remote", URI: remote, DBName: dbname}
		}
		if explicit != "" {
			return MongoConfig{Mode: "auto", URI: explicit, DBName: dbname}
		}
		return MongoConfig{Mode: "local", URI: local, DBName: dbname}
	}
}

// getenv returns env var value or default.
func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func firstNonEmpty(v1, v2 string) string {
	if strings.TrimSpace(v1) != "" {
		return v1
	}
	return v2
}
