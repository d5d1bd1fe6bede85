package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *viper.Viper

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("debug", true)
	Conf.SetDefault("testMode", false)
	Conf.SetDefault("appName", "SmartSchedule")
	Conf.SetDefault("secretKey", "x3k$7fhj-29@dlqw(84hzn&v1!u+5pc_0m)ty6ebg^rs8aoi2d")
	Conf.SetDefault("defaultFromEmail", "noreply@slrtce.in")
	Conf.SetDefault("emailDomain", "slrtce.in")
	Conf.SetDefault("adminEmail", "admin@slrtce.in")
	Conf.SetDefault("adminPassword", "admin123")
	Conf.SetDefault("dataDir", "data")
	Conf.SetDefault("generationDelay", 1500*time.Millisecond)
	Conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	Conf.SetDefault("dbEngine", "") // "postgres" for the SQL store; snapshot store otherwise
	Conf.SetDefault("dbName", "smartschedule")
	Conf.SetDefault("dbHost", "localhost:5432")
	Conf.SetDefault("dbUser", "")
	Conf.SetDefault("dbPassword", "")
	Conf.SetDefault("dbDisableTLS", true)
	Conf.SetDefault("rollbarToken", "")
	Conf.SetDefault("sendgridApiKey", "")
	Conf.SetDefault("serverAddress", "127.0.0.1:8000")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		Conf.SetDefault("testMode", true)
		Conf.SetDefault("generationDelay", time.Duration(0))
	}
	Conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	Conf.AutomaticEnv()
}
