package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DBPath            string
	CalendarEnabled   bool
	CalendarName      string
	CredentialsPath   string
	TokenPath         string
	AdvisoryTimeoutMS int
	TraceScoring      bool
	ShowDone          bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:            "nextup.db",
		CalendarEnabled:   false,
		AdvisoryTimeoutMS: 2000,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("NEXTUP_DB_PATH")); v != "" {
		cfg.DBPath = v
	}
	if v, ok := getEnvBool("NEXTUP_CALENDAR_ENABLED"); ok {
		cfg.CalendarEnabled = v
	}
	if v := strings.TrimSpace(os.Getenv("NEXTUP_CALENDAR_NAME")); v != "" {
		cfg.CalendarName = v
	}
	if v := strings.TrimSpace(os.Getenv("NEXTUP_CREDENTIALS_PATH")); v != "" {
		cfg.CredentialsPath = v
	}
	if v := strings.TrimSpace(os.Getenv("NEXTUP_TOKEN_PATH")); v != "" {
		cfg.TokenPath = v
	}
	if v, ok := getEnvInt("NEXTUP_ADVISORY_TIMEOUT_MS"); ok && v > 0 {
		cfg.AdvisoryTimeoutMS = v
	}
	if v, ok := getEnvBool("NEXTUP_TRACE_SCORING"); ok {
		cfg.TraceScoring = v
	}
	if v, ok := getEnvBool("NEXTUP_SHOW_DONE"); ok {
		cfg.ShowDone = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
