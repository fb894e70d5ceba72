package main

import (
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/metaraffle/backend/internal/domain/settlement"
	"github.com/metaraffle/backend/pkg/kafka"
	"github.com/metaraffle/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startSettlement(*cli.Context) error {
	cfg := s.configs.Kafka
	if !cfg.Enabled {
		return errors.New("kafka is disabled")
	}

	subscriber, err := kafka.NewSubscriber(
		cfg.GroupID,
		strings.Split(cfg.Addr, ","),
		[]string{cfg.Topic},
		settlement.NewSubscribeHandler(nil),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	xcontext.Logger(s.ctx).Infof("Starting settlement consumer on topic %s", cfg.Topic)
	subscriber.Subscribe(ctx)

	if err := subscriber.Close(); err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot stop subscriber: %v", err)
	}

	xcontext.Logger(s.ctx).Infof("Settlement consumer stopped")
	return nil
}
