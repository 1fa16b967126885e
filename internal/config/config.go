package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port              string
	DBDSN             string
	LogFile           string
	APIKey            string // admin surface bearer key
	SecretKeyHex      string // 32-byte hex key for catalog-token encryption at rest
	CatalogTimeout    time.Duration
	CatalogCacheTTL   time.Duration
	CatalogAPIVersion string
	DevShop           string // optional: seed a shop + token on startup
	DevShopToken      string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "restockly.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./restockly.log"
	}
	ver := os.Getenv("CATALOG_API_VERSION")
	if ver == "" {
		ver = "2024-07"
	}

	cfg := Config{
		Port:              port,
		DBDSN:             dsn,
		LogFile:           logFile,
		APIKey:            os.Getenv("API_KEY"),
		SecretKeyHex:      os.Getenv("SECRET_KEY"),
		CatalogTimeout:    envMillis("CATALOG_TIMEOUT_MS", 5000),
		CatalogCacheTTL:   envMillis("CATALOG_CACHE_TTL_MS", 60000),
		CatalogAPIVersion: ver,
		DevShop:           os.Getenv("DEV_SHOP"),
		DevShopToken:      os.Getenv("DEV_SHOP_TOKEN"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s CATALOG_API_VERSION=%s catalog_timeout=%s", cfg.Port, cfg.DBDSN, cfg.CatalogAPIVersion, cfg.CatalogTimeout)
	return cfg
}

func envMillis(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return time.Duration(def) * time.Millisecond
}
