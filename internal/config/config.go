package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	DatabasePath   string   `mapstructure:"DATABASE_PATH"`
	JWTSecret      string   `mapstructure:"JWT_SECRET"`
	ProtectedRooms []string `mapstructure:"PROTECTED_ROOMS"`
	LogLevel       string   `mapstructure:"LOG_LEVEL"`
	AdminUsername  string   `mapstructure:"ADMIN_USERNAME"`
	AdminPassword  string   `mapstructure:"ADMIN_PASSWORD"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "registration.db")
	viper.SetDefault("PROTECTED_ROOMS", []string{"A1", "A2", "B1", "B2", "T1"})
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ADMIN_USERNAME", "admin")

	viper.BindEnv("PORT")
	viper.BindEnv("DATABASE_PATH")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("PROTECTED_ROOMS")
	viper.BindEnv("LOG_LEVEL")
	viper.BindEnv("ADMIN_USERNAME")
	viper.BindEnv("ADMIN_PASSWORD")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}

// IsProtectedRoom reports whether a room number belongs to the protected
// subset that can never be deleted from the catalog.
func (c *Config) IsProtectedRoom(roomNo string) bool {
	for _, r := range c.ProtectedRooms {
		if r == roomNo {
			return true
		}
	}
	return false
}
