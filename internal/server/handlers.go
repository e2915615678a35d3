package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/vaultscope/vault-aggregator/internal/services"
	"github.com/vaultscope/vault-aggregator/internal/types"
)

type listVaultsResponse struct {
	Vaults      []types.VaultRecord `json:"vaults"`
	TotalTVLUSD string              `json:"totalTvlUsd"`
}

type buildTransactionRequest struct {
	ChainID     uint64 `json:"chainId"`
	VaultID     string `json:"vaultId"`
	Action      string `json:"action"`
	Amount      string `json:"amount"`
	UserAddress string `json:"userAddress"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListVaults(w http.ResponseWriter, r *http.Request) {
	chainIDs, err := parseChains(r.URL.Query().Get("chains"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(chainIDs) == 0 {
		chainIDs = s.defaultChains
	}

	records, err := s.engine.ListVaults(r.Context(), chainIDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if records == nil {
		records = []types.VaultRecord{}
	}
	writeJSON(w, http.StatusOK, listVaultsResponse{
		Vaults:      records,
		TotalTVLUSD: services.TotalTVL(records),
	})
}

func (s *Server) handleGetVault(w http.ResponseWriter, r *http.Request) {
	chainID, err := strconv.ParseUint(chi.URLParam(r, "chainID"), 10, 64)
	if err != nil {
		writeError(w, r, types.NewInvalidError("chain id must be a positive integer"))
		return
	}

	record, err := s.engine.ResolveVault(r.Context(), chainID, chi.URLParam(r, "vaultID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleBuildTransaction(w http.ResponseWriter, r *http.Request) {
	var req buildTransactionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, r, types.NewInvalidError("malformed request body: %v", err))
		return
	}

	vault, err := s.engine.ResolveVault(r.Context(), req.ChainID, req.VaultID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	call, err := s.engine.BuildTransaction(r.Context(), vault, types.Action(req.Action), req.Amount, req.UserAddress)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, call)
}

func parseChains(raw string) ([]uint64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	chainIDs := make([]uint64, 0, len(parts))
	for _, p := range parts {
		chainID, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, types.NewInvalidError("chain id %q is not a positive integer", p)
		}
		chainIDs = append(chainIDs, chainID)
	}
	return chainIDs, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case types.IsInvalidError(err):
		status = http.StatusBadRequest
	case types.IsNotFoundError(err):
		status = http.StatusNotFound
	case types.IsUnsupportedError(err):
		status = http.StatusBadRequest
	case types.IsUpstreamError(err):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
