package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/metaraffle/backend/config"
	"github.com/metaraffle/backend/pkg/authenticator"
	"github.com/metaraffle/backend/pkg/errorx"
	"github.com/metaraffle/backend/pkg/logger"
	"github.com/metaraffle/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may return a derived context
// which is passed to the next middlewares and the handler.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs after the response is written, even if the request
// failed. The error of the request can be got by xcontext.Error.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	inner  gin.IRouter

	db          *gorm.DB
	cfg         config.Configs
	logger      logger.Logger
	tokenEngine authenticator.TokenEngine

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	engine := gin.New()
	return &Router{
		engine:      engine,
		inner:       engine,
		db:          db,
		cfg:         cfg,
		logger:      logger,
		tokenEngine: authenticator.NewTokenEngine(cfg.Auth.TokenSecret),
	}
}

// Branch returns a router sharing the same routes. Middlewares added to the
// branch do not affect the parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = slices.Clone(r.befores)
	clone.afters = slices.Clone(r.afters)
	clone.closers = slices.Clone(r.closers)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

// Handle registers a raw http handler which bypasses every middleware.
func (r *Router) Handle(method, pattern string, handler http.Handler) {
	r.inner.Handle(method, pattern, gin.WrapH(handler))
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) newContext(c *gin.Context) context.Context {
	req := c.Request
	ctx := req.Context()
	ctx = xcontext.WithDB(ctx, r.db)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithTokenEngine(ctx, r.tokenEngine)
	ctx = xcontext.WithHTTPRequest(ctx, req)
	ctx = xcontext.WithRoutePath(ctx, c.FullPath())
	return ctx
}

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	befores := slices.Clone(router.befores)
	afters := slices.Clone(router.afters)
	closers := slices.Clone(router.closers)

	return func(c *gin.Context) {
		ctx := router.newContext(c)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		var err error
		for _, before := range befores {
			if ctx, err = runMiddleware(ctx, before); err != nil {
				break
			}
		}

		var resp *Response
		if err == nil {
			var req Request
			if err = bind(c, method, &req); err == nil {
				resp, err = handler(ctx, &req)
			}
		}

		if err == nil {
			for _, after := range afters {
				if ctx, err = runMiddleware(ctx, after); err != nil {
					break
				}
			}
		}

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			writeError(c, err)
			return
		}

		writeResponse(c, resp)
	}
}

func runMiddleware(ctx context.Context, middleware MiddlewareFunc) (context.Context, error) {
	newCtx, err := middleware(ctx)
	if newCtx == nil {
		newCtx = ctx
	}

	return newCtx, err
}

func bind(c *gin.Context, method string, req any) error {
	if len(c.Params) > 0 {
		if err := c.ShouldBindUri(req); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid path parameters: %v", err)
		}
	}

	switch method {
	case http.MethodGet:
		if err := c.ShouldBindQuery(req); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid query parameters: %v", err)
		}

	case http.MethodPost:
		if c.Request.Body == nil || c.Request.Body == http.NoBody || c.Request.ContentLength == 0 {
			return nil
		}

		if err := c.ShouldBindJSON(req); err != nil {
			return errorx.New(errorx.BadRequest, "Invalid request body: %v", err)
		}
	}

	return nil
}
