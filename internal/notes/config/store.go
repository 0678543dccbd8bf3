package config

import (
	"fmt"
	"strings"
)

// Поддерживаемые драйверы хранилища.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// StoreConfig выбирает хранилище заметок.
type StoreConfig struct {
	Driver string `yaml:"driver" env:"NOTES_STORE_DRIVER" env-default:"postgres"`
}

// Validate проверяет, что драйвер поддерживается, и приводит его к нижнему регистру.
func (s *StoreConfig) Validate() error {
	s.Driver = strings.ToLower(strings.TrimSpace(s.Driver))
	switch s.Driver {
	case DriverPostgres, DriverMongo:
		return nil
	default:
		return fmt.Errorf("%s: %q", ErrUnknownDriver, s.Driver)
	}
}
