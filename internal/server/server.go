package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/vaultscope/vault-aggregator/internal/config"
	"github.com/vaultscope/vault-aggregator/internal/observability/tracing"
	"github.com/vaultscope/vault-aggregator/internal/types"
)

// Engine is the aggregation surface the HTTP layer exposes. All logic
// lives behind it; handlers only translate requests and responses.
type Engine interface {
	ResolveVault(ctx context.Context, chainID uint64, vaultID string) (*types.VaultRecord, error)
	ListVaults(ctx context.Context, chainIDs []uint64) ([]types.VaultRecord, error)
	BuildTransaction(ctx context.Context, vault *types.VaultRecord, action types.Action, amount, userAddress string) (*types.CallDescriptor, error)
}

type Server struct {
	cfg    *config.ServerConfig
	engine Engine
	// defaultChains is served when a list request names no chains.
	defaultChains []uint64
}

func New(cfg *config.ServerConfig, engine Engine, defaultChains []uint64) *Server {
	return &Server{
		cfg:           cfg,
		engine:        engine,
		defaultChains: defaultChains,
	}
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	log.Info().Str("addr", addr).Msg("starting vault aggregation server")
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(traceMiddleware)

	r.Get("/healthcheck", s.handleHealthcheck)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/vaults", s.handleListVaults)
		r.Get("/vaults/{chainID}/{vaultID}", s.handleGetVault)
		r.Post("/transactions", s.handleBuildTransaction)
	})
	return r
}

func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(tracing.InjectTraceID(r.Context())))
	})
}
