package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port" validate:"required"`
	Mode           string   `mapstructure:"mode"`
	Timezone       string   `mapstructure:"timezone"`
	BaseURL        string   `mapstructure:"base_url"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" validate:"required,oneof=sqlite mysql"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "sqlite" {
		return d.Database
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret" validate:"required"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
}

type AuthConfig struct {
	JWT JWTConfig `mapstructure:"jwt"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type EmailConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	FromAddress  string `mapstructure:"from_address"`
	FromName     string `mapstructure:"from_name"`
	TemplatePath string `mapstructure:"template_path"`

	// Recipients is the support-team inbox list notified on ticket activity.
	Recipients []string `mapstructure:"recipients"`
}

// TicketConfig holds the lifecycle and attachment policy for support tickets.
// Retention windows drive the archival sweep: resolved tickets older than
// ResolvedRetentionDays are closed, closed tickets older than
// ClosedRetentionDays are deleted, and deleted tickets older than
// PurgeRetentionDays are purged for good.
type TicketConfig struct {
	ResolvedRetentionDays int `mapstructure:"resolved_retention_days"`
	ClosedRetentionDays   int `mapstructure:"closed_retention_days"`
	PurgeRetentionDays    int `mapstructure:"purge_retention_days"`

	SweepIntervalMinutes int `mapstructure:"sweep_interval_minutes"`

	MaxAttachmentsPerMessage int      `mapstructure:"max_attachments_per_message"`
	MaxAttachmentSizeBytes   int64    `mapstructure:"max_attachment_size_bytes"`
	BlockedExtensions        []string `mapstructure:"blocked_extensions"`
	AttachmentDir            string   `mapstructure:"attachment_dir"`
}

func (t *TicketConfig) ResolvedRetention() time.Duration {
	return time.Duration(t.ResolvedRetentionDays) * 24 * time.Hour
}

func (t *TicketConfig) ClosedRetention() time.Duration {
	return time.Duration(t.ClosedRetentionDays) * 24 * time.Hour
}

func (t *TicketConfig) PurgeRetention() time.Duration {
	return time.Duration(t.PurgeRetentionDays) * 24 * time.Hour
}

func (t *TicketConfig) SweepInterval() time.Duration {
	return time.Duration(t.SweepIntervalMinutes) * time.Minute
}
