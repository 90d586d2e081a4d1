package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/medroster/roster-backend-go/internal/domain/attendance"
	"github.com/medroster/roster-backend-go/internal/domain/roster"
	"github.com/medroster/roster-backend-go/internal/pkg/timeparse"
)

type Config struct {
	App        AppConfig
	Attendance AttendanceConfig
	Presence   PresenceConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// AttendanceConfig holds the reconciliation policy knobs
type AttendanceConfig struct {
	OvertimeThresholdHours float64
	StandardDayHours       float64
	StandardStart          string
	GraceMinutes           int
	StitchCutoff           string
}

// PresenceConfig holds roster presence resolution configuration
type PresenceConfig struct {
	DefaultShiftStart  string
	DefaultShiftEnd    string
	Mode               string
	SnapshotStaleAfter time.Duration
}

func Load() (*Config, error) {
	// .env is optional outside local development
	_ = godotenv.Load()

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// Attendance policy configuration
	overtimeThreshold, err := getEnvFloat("OVERTIME_THRESHOLD_HOURS", 9)
	if err != nil {
		return nil, err
	}
	standardDay, err := getEnvFloat("STANDARD_DAY_HOURS", 8)
	if err != nil {
		return nil, err
	}
	graceMinutes, err := strconv.Atoi(getEnv("LATE_GRACE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_GRACE_MINUTES: %w", err)
	}

	config.Attendance = AttendanceConfig{
		OvertimeThresholdHours: overtimeThreshold,
		StandardDayHours:       standardDay,
		StandardStart:          getEnv("STANDARD_DAY_START", "08:00"),
		GraceMinutes:           graceMinutes,
		StitchCutoff:           getEnv("STITCH_CUTOFF", "07:00"),
	}

	// Presence configuration
	staleAfter, err := time.ParseDuration(getEnv("SNAPSHOT_STALE_AFTER", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SNAPSHOT_STALE_AFTER: %w", err)
	}

	config.Presence = PresenceConfig{
		DefaultShiftStart:  getEnv("DEFAULT_SHIFT_START", "08:00"),
		DefaultShiftEnd:    getEnv("DEFAULT_SHIFT_END", "16:00"),
		Mode:               getEnv("PRESENCE_MODE", string(roster.FilterOnDuty)),
		SnapshotStaleAfter: staleAfter,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"STANDARD_DAY_START":  c.Attendance.StandardStart,
		"STITCH_CUTOFF":       c.Attendance.StitchCutoff,
		"DEFAULT_SHIFT_START": c.Presence.DefaultShiftStart,
		"DEFAULT_SHIFT_END":   c.Presence.DefaultShiftEnd,
	} {
		if _, ok := timeparse.Minutes(value); !ok {
			return fmt.Errorf("%s must be a valid HH:MM time, got %q", name, value)
		}
	}
	if c.Attendance.OvertimeThresholdHours <= 0 {
		return fmt.Errorf("OVERTIME_THRESHOLD_HOURS must be positive")
	}
	if c.Attendance.StandardDayHours <= 0 {
		return fmt.Errorf("STANDARD_DAY_HOURS must be positive")
	}
	if c.Attendance.GraceMinutes < 0 {
		return fmt.Errorf("LATE_GRACE_MINUTES must not be negative")
	}
	if c.Presence.Mode != string(roster.FilterOnDuty) && c.Presence.Mode != string(roster.FilterAll) {
		return fmt.Errorf("PRESENCE_MODE must be %q or %q", roster.FilterOnDuty, roster.FilterAll)
	}
	return nil
}

// Policy returns the attendance reconciliation policy.
func (c *Config) Policy() attendance.Policy {
	return attendance.Policy{
		OvertimeThresholdHours: c.Attendance.OvertimeThresholdHours,
		StandardDayHours:       c.Attendance.StandardDayHours,
		StandardStart:          c.Attendance.StandardStart,
		GraceMinutes:           c.Attendance.GraceMinutes,
		StitchCutoff:           c.Attendance.StitchCutoff,
	}
}

// DefaultShift returns the shift window assumed for schedule rows with no
// parseable times.
func (c *Config) DefaultShift() roster.ShiftWindow {
	return roster.ShiftWindow{
		Start: c.Presence.DefaultShiftStart,
		End:   c.Presence.DefaultShiftEnd,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getEnvSlice(key, fallback string) []string {
	return strings.Split(getEnv(key, fallback), ",")
}
