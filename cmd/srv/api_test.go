package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metaraffle/backend/internal/model"
	"github.com/metaraffle/backend/pkg/errorx"
	"github.com/metaraffle/backend/pkg/pubsub"
	"github.com/metaraffle/backend/pkg/testutil"
	"github.com/metaraffle/backend/pkg/xcontext"
	"github.com/stretchr/testify/suite"
)

type envelope struct {
	Code  int64           `json:"code"`
	Error string          `json:"error"`
	Data  json.RawMessage `json:"data"`
}

type apiSuite struct {
	suite.Suite

	s       *srv
	handler http.Handler
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(apiSuite))
}

func (as *apiSuite) SetupTest() {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)

	cfg := xcontext.Configs(ctx)
	cfg.ApiServer.EnableTestingAPI = true

	as.s = &srv{ctx: ctx, configs: &cfg, publisher: pubsub.NewNopPublisher()}
	as.s.loadNotifier()
	as.s.loadRepos()
	as.s.loadDomains()
	as.s.loadRouter()
	as.handler = as.s.router.Handler()
}

func (as *apiSuite) token(userID string) string {
	token, err := xcontext.TokenEngine(as.s.ctx).Generate(time.Hour, model.AccessToken{ID: userID, Name: userID})
	as.Require().NoError(err)
	return token
}

func (as *apiSuite) do(method, path, userID string, body any, out any) (int, envelope) {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		as.Require().NoError(err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+as.token(userID))
	}

	w := httptest.NewRecorder()
	as.handler.ServeHTTP(w, req)

	var env envelope
	as.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if out != nil && env.Code == 0 {
		as.Require().NoError(json.Unmarshal(env.Data, out))
	}

	return w.Code, env
}

func (as *apiSuite) TestRaffleLifecycle() {
	// A brand new user gets the initial balance.
	var me model.GetMeResponse
	code, _ := as.do(http.MethodGet, "/auth/user", "newcomer", nil, &me)
	as.Equal(http.StatusOK, code)
	as.Equal(uint64(1000), me.Points)

	var created model.CreateEventResponse
	code, _ = as.do(http.MethodPost, "/events", "newcomer", model.CreateEventRequest{
		Title:       "Newcomer party",
		Description: "Welcome",
		Platform:    "meta-horizon",
		WorldURL:    "https://horizon.meta.com/world/party",
		EntryPoints: 500,
		MaxWinners:  1,
		EventDate:   time.Now().Add(2 * time.Hour),
	}, &created)
	as.Equal(http.StatusOK, code)

	enterPath := "/raffles/" + created.Raffle.ID + "/enter"
	var entered model.EnterRaffleResponse
	for i := 1; i <= 2; i++ {
		code, _ = as.do(http.MethodPost, enterPath, "newcomer", nil, &entered)
		as.Equal(http.StatusOK, code)
		as.Equal(i, entered.Entry.EntryCount)
	}
	as.Equal(uint64(0), entered.RemainingPoints)

	code, env := as.do(http.MethodPost, enterPath, "newcomer", nil, nil)
	as.Equal(http.StatusBadRequest, code)
	as.Equal(int64(errorx.InsufficientFunds), env.Code)

	var active model.GetActiveRafflesResponse
	code, _ = as.do(http.MethodGet, "/raffles/active", "", nil, &active)
	as.Equal(http.StatusOK, code)
	as.Len(active.Raffles, 4)

	var drawn model.DrawRaffleResponse
	code, _ = as.do(http.MethodPost, "/raffle/"+created.Event.ID+"/draw", "newcomer", nil, &drawn)
	as.Equal(http.StatusOK, code)
	as.Equal(model.DrawRaffleResponse{WinnersCount: 1, IsCallerWinner: true}, drawn)

	var status model.GetWinnerStatusResponse
	code, _ = as.do(http.MethodGet, "/raffle/"+created.Event.ID+"/winner", "newcomer", nil, &status)
	as.Equal(http.StatusOK, code)
	as.True(status.IsWinner)
	as.Equal("https://horizon.meta.com/world/party", status.WorldURL)

	var completion model.CompleteEventResponse
	code, _ = as.do(http.MethodPost, "/events/"+created.Event.ID+"/complete", "newcomer",
		map[string]any{"performanceScore": 60}, &completion)
	as.Equal(http.StatusOK, code)
	as.Equal(uint64(320), completion.SPAwarded)

	var claimed model.ClaimRewardResponse
	code, _ = as.do(http.MethodPost, "/rewards/"+completion.ID+"/claim", "newcomer", nil, &claimed)
	as.Equal(http.StatusOK, code)
	as.Equal(model.ClaimRewardResponse{Claimed: true, NewBalance: 320}, claimed)

	code, env = as.do(http.MethodPost, "/rewards/"+completion.ID+"/claim", "newcomer", nil, nil)
	as.Equal(http.StatusBadRequest, code)
	as.Equal(int64(errorx.AlreadyClaimed), env.Code)
}

func (as *apiSuite) TestRefundAndAward() {
	var awarded model.AwardPointsResponse
	code, _ := as.do(http.MethodPost, "/points/award", testutil.User3.ID, map[string]any{"amount": 250}, &awarded)
	as.Equal(http.StatusOK, code)
	as.Equal(uint64(300), awarded.Points)

	for i := 0; i < 3; i++ {
		code, _ = as.do(http.MethodPost, "/raffles/"+testutil.Raffle2.ID+"/enter", testutil.User3.ID, nil, nil)
		as.Equal(http.StatusOK, code)
	}

	var refunded model.RefundEntriesResponse
	code, _ = as.do(http.MethodPost, "/points/refund-entries", testutil.User3.ID, nil, &refunded)
	as.Equal(http.StatusOK, code)
	as.Equal(model.RefundEntriesResponse{Refunded: 300, NewBalance: 300}, refunded)

	var balance model.GetBalanceResponse
	code, _ = as.do(http.MethodGet, "/points/balance", testutil.User3.ID, nil, &balance)
	as.Equal(http.StatusOK, code)
	as.Equal(uint64(300), balance.Points)
}

func (as *apiSuite) TestErrors() {
	code, env := as.do(http.MethodGet, "/auth/user", "", nil, nil)
	as.Equal(http.StatusUnauthorized, code)
	as.Equal(int64(errorx.Unauthenticated), env.Code)

	// A completion without a score is rejected instead of awarding the base.
	code, env = as.do(http.MethodPost, "/events/"+testutil.Event1.ID+"/complete", testutil.User2.ID, nil, nil)
	as.Equal(http.StatusBadRequest, code)
	as.Equal(int64(errorx.BadRequest), env.Code)

	code, env = as.do(http.MethodPost, "/events/"+testutil.Event1.ID+"/complete", testutil.User2.ID,
		map[string]any{}, nil)
	as.Equal(http.StatusBadRequest, code)
	as.Equal(int64(errorx.BadRequest), env.Code)

	code, env = as.do(http.MethodPost, "/raffles/invalid-raffle/enter", testutil.User1.ID, nil, nil)
	as.Equal(http.StatusNotFound, code)
	as.Equal(int64(errorx.RaffleNotFound), env.Code)

	code, env = as.do(http.MethodGet, "/events/invalid-event", "", nil, nil)
	as.Equal(http.StatusNotFound, code)
	as.Equal(int64(errorx.EventNotFound), env.Code)

	code, env = as.do(http.MethodPost, "/raffle/"+testutil.Event2.ID+"/draw", testutil.User1.ID, nil, nil)
	as.Equal(http.StatusBadRequest, code)
	as.Equal(int64(errorx.NoEntries), env.Code)

	code, env = as.do(http.MethodPost, "/testing/clear-raffles", testutil.User1.ID, nil, nil)
	as.Equal(http.StatusForbidden, code)
	as.Equal(int64(errorx.PermissionDenied), env.Code)

	code, _ = as.do(http.MethodPost, "/testing/clear-raffles", testutil.Admin.ID, nil, nil)
	as.Equal(http.StatusOK, code)
}

func (as *apiSuite) TestStatsAndMetrics() {
	var stats model.GetStatsResponse
	code, _ := as.do(http.MethodGet, "/stats", "", nil, &stats)
	as.Equal(http.StatusOK, code)
	as.Equal(int64(len(testutil.Events)), stats.TotalEvents)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	as.handler.ServeHTTP(w, req)
	as.Equal(http.StatusOK, w.Code)
	as.Contains(w.Body.String(), "http_requests_total")
}
