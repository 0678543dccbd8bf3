package config

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// PostgresConfig содержит настройки подключения к Postgres.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"NOTES_POSTGRES_HOST" env-default:"127.0.0.1"`
	Port     int    `yaml:"port" env:"NOTES_POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"NOTES_POSTGRES_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"NOTES_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `yaml:"database" env:"NOTES_POSTGRES_DB" env-default:"smart_notes"`
	SSLMode  string `yaml:"ssl_mode" env:"NOTES_POSTGRES_SSL_MODE" env-default:"disable"`
	MinConn  int    `yaml:"min_conn" env:"NOTES_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `yaml:"max_conn" env:"NOTES_POSTGRES_MAX_CONN" env-default:"10"`
	// MigrationsPath - каталог с SQL-миграциями на диске.
	// Пустое значение означает встроенные в бинарник миграции.
	MigrationsPath string `yaml:"migrations_path" env:"NOTES_POSTGRES_MIGRATIONS_PATH"`
}

// GetDSN возвращает строку подключения к Postgres в формате key=value.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// GetMigrationsURL возвращает источник миграций для golang-migrate
// или пустую строку, если используются встроенные миграции.
func (p *PostgresConfig) GetMigrationsURL() string {
	if p.MigrationsPath == "" {
		return ""
	}
	return "file://" + filepath.ToSlash(p.MigrationsPath)
}

// GetConnectionURL возвращает URL подключения, который понимает golang-migrate.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: "sslmode=" + url.QueryEscape(p.SSLMode),
	}
	return u.String()
}
