package main

import (
	"errors"
	"fmt"

	"github.com/metaraffle/backend/internal/model"
	"github.com/metaraffle/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startToken(cctx *cli.Context) error {
	userID := cctx.Args().Get(0)
	if userID == "" {
		return errors.New("missing user id")
	}

	if s.configs.Auth.TokenSecret == "" {
		return errors.New("token secret is not configured")
	}

	expiration := cctx.Duration("expiration")
	if expiration == 0 {
		expiration = s.configs.Auth.AccessToken.Expiration
	}

	token, err := xcontext.TokenEngine(s.ctx).Generate(expiration, model.AccessToken{
		ID:   userID,
		Name: cctx.Args().Get(1),
	})
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
