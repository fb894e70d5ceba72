package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver:     "mysql",
			Host:       "localhost",
			Port:       "3306",
			Database:   "metaraffle",
			User:       "root",
			SqlitePath: "metaraffle.db",
		},
		ApiServer: APIServerConfigs{
			ServerConfigs:  ServerConfigs{Host: "localhost", Port: "8080"},
			AllowedOrigins: []string{"*"},
		},
		Auth: AuthConfigs{
			AccessToken: TokenConfigs{
				Name:       "access_token",
				Expiration: 24 * time.Hour,
			},
		},
		Redis: RedisConfigs{
			PoolSize: 5,
			StatsTTL: 30 * time.Second,
		},
		Kafka: KafkaConfigs{
			Topic:   "settlement",
			GroupID: "settlement",
		},
		Raffle: RaffleConfigs{
			LeadWindow:     time.Hour,
			InitialPoints:  1000,
			MinEntryPoints: 100,
			MaxEntryPoints: 10000,
			MinWinners:     1,
			MaxWinners:     1000,
		},
		Reward: RewardConfigs{
			BasePoints:  50,
			BonusPoints: 450,
		},
	}
}

// Load reads the configurations from the toml file at path, if any, on top
// of the default values. Environment variables override both.
func Load(path string) (Configs, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, err
		}
	}

	if err := overrideFromEnv(&cfg); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

func overrideFromEnv(cfg *Configs) error {
	setString(&cfg.Env, "ENV")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.Database, "DB_NAME")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.SqlitePath, "DB_SQLITE_PATH")

	setString(&cfg.ApiServer.Host, "API_HOST")
	setString(&cfg.ApiServer.Port, "API_PORT")
	setString(&cfg.ApiServer.Cert, "API_CERT")
	setString(&cfg.ApiServer.Key, "API_KEY")
	if v, ok := os.LookupEnv("API_ALLOWED_ORIGINS"); ok {
		cfg.ApiServer.AllowedOrigins = strings.Split(v, ",")
	}

	setString(&cfg.Auth.TokenSecret, "TOKEN_SECRET")
	setString(&cfg.Auth.AccessToken.Name, "ACCESS_TOKEN_NAME")

	setString(&cfg.Redis.Addr, "REDIS_ADDRESS")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")

	setString(&cfg.Kafka.Addr, "KAFKA_ADDRESS")
	setString(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	setString(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")

	if err := setBool(&cfg.ApiServer.EnableTestingAPI, "ENABLE_TESTING_API"); err != nil {
		return err
	}

	if err := setBool(&cfg.Kafka.Enabled, "KAFKA_ENABLED"); err != nil {
		return err
	}

	if err := setDuration(&cfg.Auth.AccessToken.Expiration, "ACCESS_TOKEN_EXPIRATION"); err != nil {
		return err
	}

	if err := setDuration(&cfg.Redis.StatsTTL, "REDIS_STATS_TTL"); err != nil {
		return err
	}

	if err := setDuration(&cfg.Raffle.LeadWindow, "RAFFLE_LEAD_WINDOW"); err != nil {
		return err
	}

	if err := setUint(&cfg.Raffle.InitialPoints, "RAFFLE_INITIAL_POINTS"); err != nil {
		return err
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}

	*dst = b
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}

	*dst = d
	return nil
}

func setUint(dst *uint64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return err
	}

	*dst = n
	return nil
}
