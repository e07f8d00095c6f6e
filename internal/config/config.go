package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	OAuth2Google OAuth2GoogleConfig
	Compliance   ComplianceConfig
	Fatigue      FatigueConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// ComplianceConfig holds the rule thresholds of the fatigue-management
// standard. The statutory values are the defaults; they are configuration
// because the governing standard's review notes flagged some constants as
// unconfirmed.
type ComplianceConfig struct {
	MaxShiftHours         float64 // shift-length breach above this
	MinRestHours          float64 // rest-gap breach below this
	WeeklyHoursLevel1     float64 // weekly-hours level1 above this
	WeeklyHoursLevel2     float64 // weekly-hours level2 above this
	WeeklyApproachHours   float64 // "approaching limit" warning at/above this
	RollingWindowDays     int     // trailing window for weekly hours
	ConsecutiveDaysWindow int     // trailing window for distinct worked days
	MaxConsecutiveDays    int     // breach above this many distinct days
	ConsecutiveNightsWarn int     // warning at this run length
	FRIBreachThreshold    float64 // fatigue-index breach above this

	// Raw fatigue-score tiers, split day/night. The good-practice values
	// are advisory; level1 requires a Fatigue Management Plan.
	ScoreDayGoodPractice   float64
	ScoreNightGoodPractice float64
	ScoreDayLevel1         float64
	ScoreNightLevel1       float64
}

// FatigueConfig holds system-default fatigue parameters applied when
// neither the assignment nor the pattern specifies a value.
type FatigueConfig struct {
	DefaultWorkload           int
	DefaultAttention          int
	DefaultCommuteMinutes     int
	DefaultBreakFrequencyMins int
	DefaultBreakLengthMins    int
}

func Load() (*Config, error) {
	// A missing .env is fine in production; env vars win either way.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "railsafe-roster"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES"),
	}

	compliance, err := loadComplianceConfig()
	if err != nil {
		return nil, err
	}
	config.Compliance = compliance

	fatigue, err := loadFatigueConfig()
	if err != nil {
		return nil, err
	}
	config.Fatigue = fatigue

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadRules loads only the compliance and fatigue rule configuration,
// with the same env overrides Load applies. Used by the offline checker,
// which has no database or server to configure.
func LoadRules() (ComplianceConfig, FatigueConfig, error) {
	_ = godotenv.Load()

	compliance, err := loadComplianceConfig()
	if err != nil {
		return ComplianceConfig{}, FatigueConfig{}, err
	}
	if compliance.WeeklyHoursLevel2 < compliance.WeeklyHoursLevel1 {
		return ComplianceConfig{}, FatigueConfig{}, fmt.Errorf("RULE_WEEKLY_HOURS_LEVEL2 must not be below RULE_WEEKLY_HOURS_LEVEL1")
	}

	fatigue, err := loadFatigueConfig()
	if err != nil {
		return ComplianceConfig{}, FatigueConfig{}, err
	}
	return compliance, fatigue, nil
}

func loadComplianceConfig() (ComplianceConfig, error) {
	cfg := DefaultComplianceConfig()

	floats := map[string]*float64{
		"RULE_MAX_SHIFT_HOURS":           &cfg.MaxShiftHours,
		"RULE_MIN_REST_HOURS":            &cfg.MinRestHours,
		"RULE_WEEKLY_HOURS_LEVEL1":       &cfg.WeeklyHoursLevel1,
		"RULE_WEEKLY_HOURS_LEVEL2":       &cfg.WeeklyHoursLevel2,
		"RULE_WEEKLY_APPROACH_HOURS":     &cfg.WeeklyApproachHours,
		"RULE_FRI_BREACH_THRESHOLD":      &cfg.FRIBreachThreshold,
		"RULE_SCORE_DAY_GOOD_PRACTICE":   &cfg.ScoreDayGoodPractice,
		"RULE_SCORE_NIGHT_GOOD_PRACTICE": &cfg.ScoreNightGoodPractice,
		"RULE_SCORE_DAY_LEVEL1":          &cfg.ScoreDayLevel1,
		"RULE_SCORE_NIGHT_LEVEL1":        &cfg.ScoreNightLevel1,
	}
	for key, dst := range floats {
		if raw := os.Getenv(key); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return ComplianceConfig{}, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = v
		}
	}

	ints := map[string]*int{
		"RULE_ROLLING_WINDOW_DAYS":     &cfg.RollingWindowDays,
		"RULE_CONSECUTIVE_DAYS_WINDOW": &cfg.ConsecutiveDaysWindow,
		"RULE_MAX_CONSECUTIVE_DAYS":    &cfg.MaxConsecutiveDays,
		"RULE_CONSECUTIVE_NIGHTS_WARN": &cfg.ConsecutiveNightsWarn,
	}
	for key, dst := range ints {
		if raw := os.Getenv(key); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return ComplianceConfig{}, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = v
		}
	}

	return cfg, nil
}

// DefaultComplianceConfig returns the statutory defaults.
func DefaultComplianceConfig() ComplianceConfig {
	return ComplianceConfig{
		MaxShiftHours:         12,
		MinRestHours:          12,
		WeeklyHoursLevel1:     60,
		WeeklyHoursLevel2:     72,
		WeeklyApproachHours:   66,
		RollingWindowDays:     7,
		ConsecutiveDaysWindow: 14,
		MaxConsecutiveDays:    13,
		ConsecutiveNightsWarn: 3,
		FRIBreachThreshold:    1.6,

		ScoreDayGoodPractice:   30,
		ScoreNightGoodPractice: 40,
		ScoreDayLevel1:         35,
		ScoreNightLevel1:       45,
	}
}

func loadFatigueConfig() (FatigueConfig, error) {
	cfg := DefaultFatigueConfig()

	ints := map[string]*int{
		"FATIGUE_DEFAULT_WORKLOAD": &cfg.DefaultWorkload,
		"FATIGUE_DEFAULT_ATTENTION": &cfg.DefaultAttention,
		"FATIGUE_DEFAULT_COMMUTE_MINUTES": &cfg.DefaultCommuteMinutes,
		"FATIGUE_DEFAULT_BREAK_FREQUENCY": &cfg.DefaultBreakFrequencyMins,
		"FATIGUE_DEFAULT_BREAK_LENGTH": &cfg.DefaultBreakLengthMins,
	}
	for key, dst := range ints {
		if raw := os.Getenv(key); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil {
				return FatigueConfig{}, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = v
		}
	}

	return cfg, nil
}

// DefaultFatigueConfig returns the system-default fatigue parameters.
func DefaultFatigueConfig() FatigueConfig {
	return FatigueConfig{
		DefaultWorkload:           3,
		DefaultAttention:          3,
		DefaultCommuteMinutes:     30,
		DefaultBreakFrequencyMins: 240,
		DefaultBreakLengthMins:    30,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Compliance.WeeklyHoursLevel2 < c.Compliance.WeeklyHoursLevel1 {
		return fmt.Errorf("RULE_WEEKLY_HOURS_LEVEL2 must not be below RULE_WEEKLY_HOURS_LEVEL1")
	}
	if c.Compliance.RollingWindowDays <= 0 || c.Compliance.ConsecutiveDaysWindow <= 0 {
		return fmt.Errorf("rolling window sizes must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
