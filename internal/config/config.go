package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"partscout/internal/vendors"
)

type Config struct {
	Port           string
	DBDSN          string
	LogFile        string
	LogLevel       string
	VendorTimeout  time.Duration
	ProxyURL       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	CacheTTL       time.Duration
	VocabularyFile string
	Vendors        vendors.BaseURLs
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] %s=%q is not a duration, using %s", key, v, def)
		return def
	}
	return d
}

// Load reads the environment, after loading .env when one exists.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config] loaded .env")
	}

	urls := vendors.DefaultBaseURLs()
	urls.Scorptec = env("SCORPTEC_URL", urls.Scorptec)
	urls.MSY = env("MSY_URL", urls.MSY)
	urls.ComputerAlliance = env("COMPUTER_ALLIANCE_URL", urls.ComputerAlliance)
	urls.CentrecomAPI = env("CENTRECOM_API_URL", urls.CentrecomAPI)
	urls.CentrecomSite = env("CENTRECOM_SITE_URL", urls.CentrecomSite)
	urls.PCCaseGear = env("PCCASEGEAR_URL", urls.PCCaseGear)

	redisDB, err := strconv.Atoi(env("REDIS_DB", "0"))
	if err != nil {
		redisDB = 0
	}

	cfg := Config{
		Port:           env("PORT", "8080"),
		DBDSN:          env("DB_DSN", "partscout.db"), // sqlite file in project root
		LogFile:        env("LOG_FILE", "./partscout.log"),
		LogLevel:       env("LOG_LEVEL", "info"),
		VendorTimeout:  duration("VENDOR_TIMEOUT", 10*time.Second),
		ProxyURL:       os.Getenv("PROXY_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		CacheTTL:       duration("CACHE_TTL", 5*time.Minute),
		VocabularyFile: os.Getenv("VOCABULARY_FILE"),
		Vendors:        urls,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s LOG_LEVEL=%s VENDOR_TIMEOUT=%s CACHE_TTL=%s REDIS=%t PROXY=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.LogLevel, cfg.VendorTimeout, cfg.CacheTTL, cfg.RedisAddr != "", cfg.ProxyURL != "")
	return cfg
}
