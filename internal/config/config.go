package config

import (
    "log"
    "os"
    "strconv"
    "time"

    "github.com/joho/godotenv"
)

type Config struct {
    AppEnv   string
    TZ       string
    HTTPAddr string

    AsanaBaseURL string
    HTTPTimeout  time.Duration
    WorkersAsana int

    SessionTTL       time.Duration
    SessionSweepCron string

    OpenAIKey     string
    OpenAIModel   string
    OpenAITimeout time.Duration
}

func getenv(key, def string) string {
    v := os.Getenv(key)
    if v == "" { return def }
    return v
}

func atoi(key string, def int) int {
    v := os.Getenv(key)
    if v == "" { return def }
    i, err := strconv.Atoi(v)
    if err != nil { return def }
    return i
}

func dur(key string, def time.Duration) time.Duration {
    v := os.Getenv(key)
    if v == "" { return def }
    d, err := time.ParseDuration(v)
    if err != nil { return def }
    return d
}

func Load() Config {
    _ = godotenv.Load()

    cfg := Config{
        AppEnv:   getenv("APP_ENV", "dev"),
        TZ:       getenv("APP_TZ", "UTC"),
        HTTPAddr: getenv("HTTP_ADDR", ":8080"),

        AsanaBaseURL: getenv("ASANA_BASE_URL", "https://app.asana.com/api/1.0"),
        HTTPTimeout:  dur("HTTP_TIMEOUT", 15*time.Second),
        WorkersAsana: atoi("WORKERS_ASANA", 6),

        SessionTTL:       dur("SESSION_TTL", 8*time.Hour),
        SessionSweepCron: getenv("SESSION_SWEEP_CRON", "*/15 * * * *"),

        OpenAIKey:     getenv("OPENAI_API_KEY", ""),
        OpenAIModel:   getenv("OPENAI_MODEL", "o3-mini"),
        OpenAITimeout: dur("OPENAI_TIMEOUT", 15*time.Second),
    }

    // set global timezone if available
    if loc, err := time.LoadLocation(cfg.TZ); err == nil {
        time.Local = loc
    } else {
        log.Printf("warning: cannot load TZ %s: %v", cfg.TZ, err)
    }
    return cfg
}
