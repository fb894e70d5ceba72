package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metaraffle/backend/internal/common"
	"github.com/metaraffle/backend/internal/middleware"
	"github.com/metaraffle/backend/pkg/prometheus"
	"github.com/metaraffle/backend/pkg/router"
	"github.com/metaraffle/backend/pkg/xcontext"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadDatabase()
	s.loadPublisher()
	s.loadRedisClient()
	s.loadNotifier()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := s.configs.ApiServer
	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
		AllowCredentials: true,
	}).Handler(s.router.Handler())

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			xcontext.Logger(s.ctx).Errorf("Cannot shutdown server: %v", err)
		}
	}()

	xcontext.Logger(s.ctx).Infof("Starting server on %s", httpSrv.Addr)
	var err error
	if cfg.Cert != "" && cfg.Key != "" {
		err = httpSrv.ListenAndServeTLS(cfg.Cert, cfg.Key)
	} else {
		err = httpSrv.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if w, ok := s.notifier.(interface{ Wait() }); ok {
		w.Wait()
	}

	if err := s.publisher.Close(); err != nil {
		xcontext.Logger(s.ctx).Warnf("Cannot close publisher: %v", err)
	}

	xcontext.Logger(s.ctx).Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() {
	if s.configs.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = router.New(xcontext.DB(s.ctx), *s.configs, xcontext.Logger(s.ctx))
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle(http.MethodGet, "/metrics", prometheus.NewHandler(common.PromCollectors()...))

	authVerifier := middleware.NewAuthVerifier(s.userRepo)
	authRouter := s.router.Branch()
	authRouter.Before(authVerifier.Middleware())
	{
		// User API
		router.GET(authRouter, "/auth/user", s.userDomain.GetMe)

		// Event API
		router.POST(authRouter, "/events", s.eventDomain.Create)
		router.POST(authRouter, "/events/:eventId/complete", s.rewardDomain.CompleteEvent)
		router.GET(authRouter, "/dashboard/my-events", s.eventDomain.GetMyEvents)
		router.GET(authRouter, "/dashboard/my-entries", s.raffleDomain.GetMyEntries)

		// Raffle API
		router.POST(authRouter, "/raffles/:raffleId/enter", s.raffleDomain.Enter)
		router.POST(authRouter, "/raffle/:eventId/draw", s.raffleDomain.Draw)
		router.GET(authRouter, "/raffle/:eventId/winner", s.raffleDomain.GetWinnerStatus)

		// Reward API
		router.POST(authRouter, "/rewards/:completionId/claim", s.rewardDomain.Claim)
		router.GET(authRouter, "/rewards/unclaimed", s.rewardDomain.GetUnclaimed)
		router.GET(authRouter, "/rewards/history", s.rewardDomain.GetHistory)

		// Point API
		router.GET(authRouter, "/points/balance", s.pointDomain.GetBalance)
	}

	if s.configs.ApiServer.EnableTestingAPI {
		router.POST(authRouter, "/points/refund-entries", s.pointDomain.RefundEntries)
		router.POST(authRouter, "/points/award", s.pointDomain.Award)
		router.POST(authRouter, "/raffle/:eventId/make-winner", s.raffleDomain.MakeWinner)

		adminRouter := authRouter.Branch()
		adminRouter.Before(middleware.NewOnlyAdmin(s.userRepo).Middleware())
		router.POST(adminRouter, "/testing/clear-raffles", s.raffleDomain.Clear)
	}

	// Public API
	router.GET(s.router, "/events", s.eventDomain.GetList)
	router.GET(s.router, "/events/:eventId", s.eventDomain.Get)
	router.GET(s.router, "/raffles/active", s.raffleDomain.GetActive)
	router.GET(s.router, "/stats", s.statisticDomain.GetStats)
}
