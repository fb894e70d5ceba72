package main

import (
	"context"
	"strings"

	"github.com/metaraffle/backend/config"
	"github.com/metaraffle/backend/internal/domain"
	"github.com/metaraffle/backend/internal/domain/ledger"
	"github.com/metaraffle/backend/internal/domain/raffledraw"
	"github.com/metaraffle/backend/internal/domain/settlement"
	"github.com/metaraffle/backend/internal/repository"
	"github.com/metaraffle/backend/pkg/authenticator"
	"github.com/metaraffle/backend/pkg/kafka"
	"github.com/metaraffle/backend/pkg/logger"
	"github.com/metaraffle/backend/pkg/pubsub"
	"github.com/metaraffle/backend/pkg/router"
	"github.com/metaraffle/backend/pkg/xcontext"
	"github.com/metaraffle/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs

	publisher   pubsub.Publisher
	redisClient xredis.Client
	notifier    settlement.Notifier

	userRepo            repository.UserRepository
	eventRepo           repository.EventRepository
	raffleRepo          repository.RaffleRepository
	raffleEntryRepo     repository.RaffleEntryRepository
	eventCompletionRepo repository.EventCompletionRepository

	ledger ledger.Ledger

	userDomain      domain.UserDomain
	eventDomain     domain.EventDomain
	raffleDomain    domain.RaffleDomain
	pointDomain     domain.PointDomain
	rewardDomain    domain.RewardDomain
	statisticDomain domain.StatisticDomain

	router *router.Router
}

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}

	s.configs = &cfg
	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(logger.ParseLevel(cfg.LogLevel)))
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	return nil
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := s.configs.Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SqlitePath)
	default:
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	}

	gormLogLevel := gormlogger.Warn
	if logger.ParseLevel(s.configs.LogLevel) == logger.SILENCE {
		gormLogLevel = gormlogger.Silent
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

// loadPublisher falls back to a no-op publisher when kafka is disabled or
// unreachable. The settlement side channel is best-effort.
func (s *srv) loadPublisher() {
	cfg := s.configs.Kafka
	if !cfg.Enabled {
		s.publisher = pubsub.NewNopPublisher()
		return
	}

	publisher, err := kafka.NewPublisher("api", strings.Split(cfg.Addr, ","))
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to kafka, settlement is disabled: %v", err)
		s.publisher = pubsub.NewNopPublisher()
		return
	}

	s.publisher = publisher
}

func (s *srv) loadRedisClient() {
	if s.configs.Redis.Addr == "" {
		return
	}

	client, err := xredis.NewClient(s.ctx, s.configs.Redis)
	if err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot connect to redis, stats are not cached: %v", err)
		return
	}

	s.redisClient = client
}

func (s *srv) loadNotifier() {
	notifier, err := settlement.NewNotifier(s.publisher, s.configs.Kafka.Topic, 1)
	if err != nil {
		panic(err)
	}

	s.notifier = notifier
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.eventRepo = repository.NewEventRepository()
	s.raffleRepo = repository.NewRaffleRepository()
	s.raffleEntryRepo = repository.NewRaffleEntryRepository()
	s.eventCompletionRepo = repository.NewEventCompletionRepository()
}

func (s *srv) loadDomains() {
	s.ledger = ledger.New(s.userRepo)

	s.userDomain = domain.NewUserDomain(s.userRepo)
	s.eventDomain = domain.NewEventDomain(s.eventRepo, s.raffleRepo)
	s.raffleDomain = domain.NewRaffleDomain(s.eventRepo, s.raffleRepo, s.raffleEntryRepo,
		s.ledger, raffledraw.NewSelector(nil), s.notifier, s.redisClient)
	s.pointDomain = domain.NewPointDomain(s.userRepo, s.raffleEntryRepo, s.ledger, s.notifier)
	s.rewardDomain = domain.NewRewardDomain(s.eventRepo, s.eventCompletionRepo, s.ledger, s.notifier)
	s.statisticDomain = domain.NewStatisticDomain(s.userRepo, s.eventRepo, s.raffleEntryRepo, s.redisClient)
}
