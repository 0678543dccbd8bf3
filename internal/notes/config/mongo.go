package config

import "time"

// MongoConfig содержит настройки подключения к MongoDB.
type MongoConfig struct {
	URI            string        `yaml:"uri" env:"NOTES_MONGO_URI" env-default:"mongodb://127.0.0.1:27017"`
	Database       string        `yaml:"database" env:"NOTES_MONGO_DB" env-default:"smart-notes"`
	Collection     string        `yaml:"collection" env:"NOTES_MONGO_COLLECTION" env-default:"notes"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"NOTES_MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}
