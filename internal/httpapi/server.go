// Package httpapi exposes the arena contract as a JSON API. Callers
// authenticate with a bearer token whose subject is their address.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"okinoko-blade_arena/contract"
	"okinoko-blade_arena/internal/conf"
	"okinoko-blade_arena/internal/log"
	"okinoko-blade_arena/internal/msgs"
)

type Server interface {
	Start() error
	Stop()
	Addr() net.Addr
}

var _ Server = &httpServer{}

type httpServer struct {
	ctx            context.Context
	cancelCtx      func()
	listener       net.Listener
	httpServer     *http.Server
	httpServerDone chan error
	started        bool
}

// NewRouter builds the API routes. The metrics handler is optional.
func NewRouter(arena *contract.Contract, tokens *Tokens, metrics http.Handler) *mux.Router {
	h := &handlers{arena: arena}
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(tokens.authenticate)

	api.HandleFunc("/players", h.register).Methods(http.MethodPost)
	api.HandleFunc("/players", h.listPlayers).Methods(http.MethodGet)
	api.HandleFunc("/players/{address}", h.getPlayer).Methods(http.MethodGet)
	api.HandleFunc("/players/{address}/equip", h.equip).Methods(http.MethodPost)
	api.HandleFunc("/players/{address}/unequip", h.unequip).Methods(http.MethodPost)
	api.HandleFunc("/players/{address}/balances/{class}", h.balanceOf).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{class}", h.equipmentMetadata).Methods(http.MethodGet)

	api.HandleFunc("/battles", h.createBattle).Methods(http.MethodPost)
	api.HandleFunc("/battles", h.listBattles).Methods(http.MethodGet)
	api.HandleFunc("/battles/{name}", h.getBattle).Methods(http.MethodGet)
	api.HandleFunc("/battles/{name}/join", h.joinBattle).Methods(http.MethodPost)
	api.HandleFunc("/battles/{name}/bot", h.challengeBot).Methods(http.MethodPost)
	api.HandleFunc("/battles/{name}/moves", h.submitMove).Methods(http.MethodPost)

	if metrics != nil {
		r.Handle("/metrics", metrics).Methods(http.MethodGet)
	}
	return r
}

func NewServer(ctx context.Context, c *conf.HTTPConfig, handler http.Handler) (_ Server, err error) {
	s := &httpServer{
		httpServerDone: make(chan error),
	}
	s.ctx, s.cancelCtx = context.WithCancel(ctx)

	listenAddr := conf.StringNotEmpty(c.Address, *conf.HTTPDefaults.Address)
	if s.listener, err = net.Listen("tcp", listenAddr); err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgHTTPServerStart, listenAddr)
	}
	log.L(ctx).Infof("API server listening on %s", s.listener.Addr())

	readTimeout := conf.DurationMin(c.ReadTimeout, time.Second, *conf.HTTPDefaults.ReadTimeout)
	writeTimeout := conf.DurationMin(c.WriteTimeout, time.Second, *conf.HTTPDefaults.WriteTimeout)
	s.httpServer = &http.Server{
		Handler:           handler,
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readTimeout,
		WriteTimeout:      writeTimeout,
		BaseContext: func(net.Listener) context.Context {
			return s.ctx
		},
	}
	return s, nil
}

func (s *httpServer) runAPIServer() {
	err := s.httpServer.Serve(s.listener)
	s.httpServerDone <- err
}

func (s *httpServer) Start() error {
	go s.runAPIServer()
	s.started = true
	return nil
}

func (s *httpServer) Stop() {
	if s.started {
		s.started = false
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.L(s.ctx).Warnf("API server shutdown: %s", err)
		}
		if err := <-s.httpServerDone; err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.L(s.ctx).Errorf("API server exited: %s", err)
		}
	} else {
		_ = s.listener.Close()
	}
	s.cancelCtx()
}

func (s *httpServer) Addr() net.Addr {
	return s.listener.Addr()
}
