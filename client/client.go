// Package client calls a running arena API server.
package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/sirupsen/logrus"
	"okinoko-blade_arena/contract"
	"okinoko-blade_arena/internal/conf"
	"okinoko-blade_arena/internal/httpapi"
	"okinoko-blade_arena/internal/log"
	"okinoko-blade_arena/internal/msgs"
	"okinoko-blade_arena/sdk"
)

type startCtxKey struct{}

type Client struct {
	rest *resty.Client
}

// New builds a client for the server at c.URL. The token, when set, is sent
// as a bearer token on every request.
func New(ctx context.Context, c *conf.ClientConfig) (*Client, error) {
	rawURL := strings.TrimSuffix(conf.StringNotEmpty(c.URL, *conf.ClientDefaults.URL), "/")
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, i18n.NewError(ctx, msgs.MsgClientInvalidURL, rawURL)
	}

	rest := resty.New().
		SetBaseURL(rawURL).
		SetTimeout(conf.DurationMin(c.RequestTimeout, 0, *conf.ClientDefaults.RequestTimeout)).
		SetHeader("Content-Type", "application/json")
	if token := conf.StringNotEmpty(c.Token, ""); token != "" {
		rest.SetAuthToken(token)
	}

	rest.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		rCtx := context.WithValue(req.Context(), startCtxKey{}, time.Now())
		req.SetContext(rCtx)
		log.L(rCtx).Debugf("==> %s %s%s", req.Method, rawURL, req.URL)
		return nil
	})
	rest.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		rCtx := res.Request.Context()
		level := logrus.DebugLevel
		if res.StatusCode() >= 300 {
			level = logrus.ErrorLevel
		}
		start, _ := rCtx.Value(startCtxKey{}).(time.Time)
		log.L(rCtx).Logf(level, "<== %s %s [%d] (%dms)", res.Request.Method, res.Request.URL, res.StatusCode(), time.Since(start).Milliseconds())
		return nil
	})

	log.L(ctx).Debugf("Created arena client to %s", rawURL)
	return &Client{rest: rest}, nil
}

// do sends the request and decodes a success body into result, if given.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var apiErr httpapi.ErrorResponse
	req := c.rest.R().SetContext(ctx).SetError(&apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	res, err := req.Execute(method, path)
	if err != nil {
		return i18n.WrapError(ctx, err, msgs.MsgClientRequestFailed, path, 0, err.Error())
	}
	if res.IsError() {
		msg := apiErr.Error
		if msg == "" {
			msg = strings.TrimSpace(res.String())
		}
		return i18n.NewError(ctx, msgs.MsgClientRequestFailed, path, res.StatusCode(), msg)
	}
	return nil
}

func playerPath(addr sdk.Address) string {
	return "/api/v1/players/" + url.PathEscape(addr.String())
}

func battlePath(name string) string {
	return "/api/v1/battles/" + url.PathEscape(name)
}

// ---------- players ----------

// Register registers the token's own address.
func (c *Client) Register(ctx context.Context) (p *contract.PlayerAttributes, err error) {
	err = c.do(ctx, resty.MethodPost, "/api/v1/players", nil, &p)
	return p, err
}

func (c *Client) ListPlayers(ctx context.Context) (players []sdk.Address, err error) {
	err = c.do(ctx, resty.MethodGet, "/api/v1/players", nil, &players)
	return players, err
}

func (c *Client) GetPlayer(ctx context.Context, addr sdk.Address) (p *contract.PlayerAttributes, err error) {
	err = c.do(ctx, resty.MethodGet, playerPath(addr), nil, &p)
	return p, err
}

func (c *Client) Equip(ctx context.Context, addr sdk.Address, class contract.EquipmentClass) (p *contract.PlayerAttributes, err error) {
	err = c.do(ctx, resty.MethodPost, playerPath(addr)+"/equip", &httpapi.EquipRequest{Class: uint64(class)}, &p)
	return p, err
}

func (c *Client) Unequip(ctx context.Context, addr sdk.Address) (p *contract.PlayerAttributes, err error) {
	err = c.do(ctx, resty.MethodPost, playerPath(addr)+"/unequip", nil, &p)
	return p, err
}

func (c *Client) BalanceOf(ctx context.Context, addr sdk.Address, class contract.EquipmentClass) (uint64, error) {
	var res httpapi.BalanceResponse
	err := c.do(ctx, resty.MethodGet, fmt.Sprintf("%s/balances/%d", playerPath(addr), class), nil, &res)
	return res.Balance, err
}

func (c *Client) EquipmentMetadata(ctx context.Context, class contract.EquipmentClass) (meta *contract.EquipmentMetadata, err error) {
	err = c.do(ctx, resty.MethodGet, fmt.Sprintf("/api/v1/equipment/%d", class), nil, &meta)
	return meta, err
}

// ---------- battles ----------

// CreateBattle opens a battle. With auto set the bot takes seat 2 at once.
func (c *Client) CreateBattle(ctx context.Context, name string, auto bool) (b *httpapi.BattleResponse, err error) {
	err = c.do(ctx, resty.MethodPost, "/api/v1/battles", &httpapi.CreateBattleRequest{Name: name, Auto: auto}, &b)
	return b, err
}

func (c *Client) ListBattles(ctx context.Context) (names []string, err error) {
	err = c.do(ctx, resty.MethodGet, "/api/v1/battles", nil, &names)
	return names, err
}

func (c *Client) GetBattle(ctx context.Context, name string) (b *httpapi.BattleResponse, err error) {
	err = c.do(ctx, resty.MethodGet, battlePath(name), nil, &b)
	return b, err
}

func (c *Client) JoinBattle(ctx context.Context, name string) (b *httpapi.BattleResponse, err error) {
	err = c.do(ctx, resty.MethodPost, battlePath(name)+"/join", nil, &b)
	return b, err
}

func (c *Client) ChallengeBot(ctx context.Context, name string) (b *httpapi.BattleResponse, err error) {
	err = c.do(ctx, resty.MethodPost, battlePath(name)+"/bot", nil, &b)
	return b, err
}

func (c *Client) SubmitMove(ctx context.Context, name string, move contract.Move) (b *httpapi.BattleResponse, err error) {
	err = c.do(ctx, resty.MethodPost, battlePath(name)+"/moves", &httpapi.MoveRequest{Choice: uint64(move)}, &b)
	return b, err
}
