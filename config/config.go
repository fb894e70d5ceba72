package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env      string
	LogLevel string

	Database  DatabaseConfigs
	ApiServer APIServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Raffle    RaffleConfigs
	Reward    RewardConfigs
}

type DatabaseConfigs struct {
	Driver   string
	Host     string
	Port     string
	Database string
	User     string
	Password string

	// SqlitePath is only used by the sqlite driver.
	SqlitePath string
}

// ConnectionString returns the mysql DSN. clientFoundRows makes an UPDATE
// report matched rows rather than changed rows.
func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

type APIServerConfigs struct {
	ServerConfigs

	AllowedOrigins []string

	// EnableTestingAPI exposes the administrative endpoints which award
	// points, refund entries and clear raffles.
	EnableTestingAPI bool
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type RedisConfigs struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
	StatsTTL time.Duration
}

type KafkaConfigs struct {
	Enabled bool
	Addr    string
	Topic   string
	GroupID string
}

type RaffleConfigs struct {
	// LeadWindow is how long before the event date the raffle stops
	// accepting entries.
	LeadWindow    time.Duration
	InitialPoints uint64

	MinEntryPoints uint64
	MaxEntryPoints uint64
	MinWinners     int
	MaxWinners     int
}

type RewardConfigs struct {
	BasePoints  uint64
	BonusPoints uint64
}
