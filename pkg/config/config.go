package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const knowledgeBaseFileName = "knowledge_base.json"

var defaultAllowedOrigins = []string{
	"https://feelori-admin-dashboard.onrender.com",
	"https://feelori.com",
	"http://localhost:5173",
}

type Config struct {
	Server        ServerConfig
	Shopify       ShopifyConfig
	KnowledgeBase KnowledgeBaseConfig
	Logger        LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

type ShopifyConfig struct {
	StoreName   string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
	MaxPages    int
}

// Configured reports whether both storefront credentials are present.
func (c ShopifyConfig) Configured() bool {
	return c.StoreName != "" && c.AccessToken != ""
}

type KnowledgeBaseConfig struct {
	DataDir string
}

// FilePath is the location of the persisted knowledge base document.
func (c KnowledgeBaseConfig) FilePath() string {
	return filepath.Join(c.DataDir, knowledgeBaseFileName)
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way.
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "5001"),
			ReadTimeout:    time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout:   time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaultAllowedOrigins),
		},
		Shopify: ShopifyConfig{
			StoreName:   getEnv("SHOPIFY_STORE_NAME", ""),
			AccessToken: getEnv("SHOPIFY_ADMIN_API_TOKEN", ""),
			APIVersion:  getEnv("SHOPIFY_API_VERSION", "2023-10"),
			Timeout:     time.Duration(getEnvInt("SHOPIFY_TIMEOUT_SECONDS", 30)) * time.Second,
			MaxPages:    getEnvInt("SHOPIFY_MAX_PAGES", 10),
		},
		KnowledgeBase: KnowledgeBaseConfig{
			DataDir: getEnv("KB_DATA_DIR", "data"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
