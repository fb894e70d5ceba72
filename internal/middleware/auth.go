package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/metaraffle/backend/internal/entity"
	"github.com/metaraffle/backend/internal/model"
	"github.com/metaraffle/backend/internal/repository"
	"github.com/metaraffle/backend/pkg/errorx"
	"github.com/metaraffle/backend/pkg/router"
	"github.com/metaraffle/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthVerifier struct {
	userRepo repository.UserRepository
}

func NewAuthVerifier(userRepo repository.UserRepository) *AuthVerifier {
	return &AuthVerifier{userRepo: userRepo}
}

// Middleware resolves the caller from the access token. The first request of
// an unknown user provisions its record with the initial balance.
func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx)
		if token == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
		}

		info := model.AccessToken{}
		if err := xcontext.TokenEngine(ctx).Verify(token, &info); err != nil || info.ID == "" {
			xcontext.Logger(ctx).Debugf("Invalid access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid access token")
		}

		user := &entity.User{
			Base:   entity.Base{ID: info.ID},
			Name:   info.Name,
			Role:   entity.UserRole,
			Points: xcontext.Configs(ctx).Raffle.InitialPoints,
		}
		if err := a.userRepo.CreateIfNotExists(ctx, user); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot provision user: %v", err)
			return nil, errorx.Unknown
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func getAccessToken(ctx context.Context) string {
	req := xcontext.HTTPRequest(ctx)
	authorization := req.Header.Get("Authorization")
	auth, token, found := strings.Cut(authorization, " ")
	if found {
		if auth == "Bearer" {
			return token
		}

		return ""
	}

	cookie, err := req.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// OnlyAdmin rejects callers which are not global admins. It must run after
// the AuthVerifier.
type OnlyAdmin struct {
	userRepo repository.UserRepository
}

func NewOnlyAdmin(userRepo repository.UserRepository) *OnlyAdmin {
	return &OnlyAdmin{userRepo: userRepo}
}

func (a *OnlyAdmin) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		user, err := a.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.Unauthenticated, "Not found user")
			}

			xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
			return nil, errorx.Unknown
		}

		if user.Role != entity.AdminRole {
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return nil, nil
	}
}
