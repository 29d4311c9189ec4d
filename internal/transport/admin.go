// Package transport exposes the operator HTTP and gRPC surfaces.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/marabu/internal/model"
	"github.com/goodnatureofminers/marabu/internal/storage"
)

// ChainTipResponse is returned by GET /v1/chaintip.
type ChainTipResponse struct {
	BlockID string `json:"blockid"`
	Height  uint64 `json:"height"`
}

// MempoolResponse is returned by GET /v1/mempool.
type MempoolResponse struct {
	TxIDs []string `json:"txids"`
}

// PeersResponse is returned by GET /v1/peers.
type PeersResponse struct {
	Connected []string `json:"connected"`
	Known     []string `json:"known"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// AdminHandler serves the read-only REST routes.
type AdminHandler struct {
	engine Engine
	peers  PeerLister
	logger *zap.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(engine Engine, peers PeerLister, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{engine: engine, peers: peers, logger: logger.Named("admin")}
}

// Mux registers the REST routes on a gateway mux.
func (h *AdminHandler) Mux() (*gwruntime.ServeMux, error) {
	gw := gwruntime.NewServeMux()
	routes := []struct {
		path    string
		handler gwruntime.HandlerFunc
	}{
		{"/v1/chaintip", h.chainTip},
		{"/v1/mempool", h.mempool},
		{"/v1/peers", h.peerList},
		{"/v1/objects/{id}", h.object},
	}
	for _, r := range routes {
		if err := gw.HandlePath(http.MethodGet, r.path, r.handler); err != nil {
			return nil, fmt.Errorf("register %s: %w", r.path, err)
		}
	}
	return gw, nil
}

// Handler returns the REST routes plus /metrics, wrapped with CORS.
func (h *AdminHandler) Handler() (http.Handler, error) {
	gw, err := h.Mux()
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/", gw)
	mux.Handle("/metrics", promhttp.Handler())
	return cors.Default().Handler(mux), nil
}

func (h *AdminHandler) chainTip(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	id, height := h.engine.ChainTip()
	h.writeJSON(w, http.StatusOK, ChainTipResponse{BlockID: id, Height: height})
}

func (h *AdminHandler) mempool(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	txids := h.engine.MempoolTxIDs()
	if txids == nil {
		txids = []string{}
	}
	h.writeJSON(w, http.StatusOK, MempoolResponse{TxIDs: txids})
}

func (h *AdminHandler) peerList(w http.ResponseWriter, _ *http.Request, _ map[string]string) {
	resp := PeersResponse{Connected: []string{}, Known: []string{}}
	if h.peers != nil {
		resp.Connected = append(resp.Connected, h.peers.Peers()...)
		resp.Known = append(resp.Known, h.peers.KnownPeers()...)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) object(w http.ResponseWriter, _ *http.Request, params map[string]string) {
	id := params["id"]
	if !model.IsHex(id, 64) {
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "object id must be 64 lowercase hex characters"})
		return
	}
	raw, err := h.engine.Object(id)
	if errors.Is(err, storage.ErrNotFound) {
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: "object not found"})
		return
	}
	if err != nil {
		h.logger.Error("load object", zap.String("id", id), zap.Error(err))
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (h *AdminHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Debug("write response", zap.Error(err))
	}
}
