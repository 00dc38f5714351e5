package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Password: "secret", MaxConns: 25, MinConns: 5},
		JWT:      JWTConfig{Secret: "jwt-secret"},
		App:      AppConfig{Timezone: "UTC", LogLevel: "info"},
		Schedule: ScheduleConfig{
			RequiredHours:    decimal.RequireFromString("8.00"),
			ExpectedCheckIn:  "08:00",
			ExpectedCheckOut: "17:00",
		},
		Cron: CronConfig{AbsenceHour: 23, Interval: time.Hour},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing db password", mutate: func(c *Config) { c.Database.Password = "" }, wantErr: "DB_PASSWORD"},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWT.Secret = "" }, wantErr: "JWT_SECRET_KEY"},
		{name: "bad timezone", mutate: func(c *Config) { c.App.Timezone = "Mars/Olympus" }, wantErr: "APP_TIMEZONE"},
		{name: "zero required hours", mutate: func(c *Config) { c.Schedule.RequiredHours = decimal.Zero }, wantErr: "WORK_REQUIRED_HOURS"},
		{name: "bad check-in time", mutate: func(c *Config) { c.Schedule.ExpectedCheckIn = "8am" }, wantErr: "WORK_EXPECTED_CHECK_IN"},
		{name: "bad cron hour", mutate: func(c *Config) { c.Cron.AbsenceHour = 24 }, wantErr: "CRON_ABSENCE_HOUR"},
		{name: "pool bounds", mutate: func(c *Config) { c.Database.MinConns = 30 }, wantErr: "DB_MIN_CONNS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_DatabaseURL(t *testing.T) {
	c := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "hr", Password: "pw", Name: "attendance", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://hr:pw@db:5433/attendance?sslmode=disable", c.DatabaseURL())
}

func TestConfig_Load_FromEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("APP_TIMEZONE", "UTC")
	t.Setenv("WORK_REQUIRED_HOURS", "7.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Schedule.RequiredHours.Equal(decimal.RequireFromString("7.5")))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.AllowedOrigins)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, 23, cfg.Cron.AbsenceHour)
}
