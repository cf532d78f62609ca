package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string

	// DB
	Env    string // "dev" | "prod"
	DBPath string // e.g. "./data/grantly.db"

	// Policy
	Timezone string   // IANA name used to derive weekday/date, default UTC
	Holidays []string // restricted dates, yyyy-mm-dd

	// Audit retention
	AuditRetentionDays int // 0 = keep forever
	PruneIntervalHours int // how often the pruner runs (default 24)
}

func FromEnv() Config {
	addr := getenvDefault("GRANTLY_HTTP_ADDR", ":8080")

	env := strings.ToLower(getenvDefault("GRANTLY_ENV", "dev"))
	if env != "dev" && env != "prod" {
		// fail-soft: treat unknown as dev
		env = "dev"
	}

	dbPath := getenvDefault("GRANTLY_DB_PATH", "./data/grantly.db")

	tz := getenvDefault("GRANTLY_TIMEZONE", "UTC")

	// The reference scenario restricts 2025-06-01 and 2025-06-15; the set
	// itself carries no month/year scoping.
	holidays := splitCSV(getenvDefault("GRANTLY_HOLIDAYS", "2025-06-01,2025-06-15"))

	retentionDays := getenvInt("GRANTLY_AUDIT_RETENTION_DAYS", 0)
	pruneInterval := getenvInt("GRANTLY_PRUNE_INTERVAL_HOURS", 24)

	return Config{
		HTTPAddr: addr,
		Env:      env,
		DBPath:   dbPath,

		Timezone: tz,
		Holidays: holidays,

		AuditRetentionDays: retentionDays,
		PruneIntervalHours: pruneInterval,
	}
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func splitCSV(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
