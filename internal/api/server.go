package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"trackedkv/internal/engine"
	"trackedkv/internal/metrics"
	"trackedkv/internal/model"
)

const tracerName = "trackedkv"

// NewServer wires the generated handlers to a store and exposes health
// and metrics endpoints alongside the versioned API.
func NewServer(store *engine.Store) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	h := &kvHandler{
		store:  store,
		logger: slog.Default().With(slog.String("component", "api")),
	}
	return HandlerWithOptions(h, ChiServerOptions{
		BaseRouter: r,
		// Parameter binding failures answer with the same JSON envelope
		// as the handlers instead of codegen's text/plain default.
		ErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error())
		},
	})
}

type kvHandler struct {
	store  *engine.Store
	logger *slog.Logger
}

// (GET /v1/kv/{key})
func (h *kvHandler) GetKey(w http.ResponseWriter, r *http.Request, key string) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues("get_key"))
	defer timer.ObserveDuration()

	rawKey, ok := decodeBase64(w, "key", key)
	if !ok {
		return
	}

	_, span := otel.Tracer(tracerName).Start(r.Context(), "trackedkv.Store.Get",
		trace.WithAttributes(attribute.Int("key_bytes", len(rawKey))))
	defer span.End()

	value, found := h.store.Get(string(rawKey))
	if !found {
		writeError(w, http.StatusNotFound, "key not found")
		return
	}
	writeJSON(w, http.StatusOK, KeyValue{
		Key:   key,
		Value: base64.URLEncoding.EncodeToString(value),
	})
}

// (PUT /v1/kv/{key})
func (h *kvHandler) PutKey(w http.ResponseWriter, r *http.Request, key string) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues("put_key"))
	defer timer.ObserveDuration()

	rawKey, ok := decodeBase64(w, "key", key)
	if !ok {
		return
	}

	var req PutKeyJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rawValue, ok := decodeBase64(w, "value", req.Value)
	if !ok {
		return
	}

	_, span := otel.Tracer(tracerName).Start(r.Context(), "trackedkv.Store.Set",
		trace.WithAttributes(
			attribute.Int("key_bytes", len(rawKey)),
			attribute.Int("value_bytes", len(rawValue))))
	defer span.End()

	if err := h.store.Set(string(rawKey), rawValue); err != nil {
		h.logger.Error("set failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to store value")
		return
	}
	writeJSON(w, http.StatusOK, KeyValue{Key: key, Value: req.Value})
}

// (DELETE /v1/kv/{key})
func (h *kvHandler) DeleteKey(w http.ResponseWriter, r *http.Request, key string) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues("delete_key"))
	defer timer.ObserveDuration()

	rawKey, ok := decodeBase64(w, "key", key)
	if !ok {
		return
	}

	_, span := otel.Tracer(tracerName).Start(r.Context(), "trackedkv.Store.Delete",
		trace.WithAttributes(attribute.Int("key_bytes", len(rawKey))))
	defer span.End()

	if err := h.store.Delete(string(rawKey)); err != nil {
		if errors.Is(err, engine.ErrKeyNotFound) {
			writeError(w, http.StatusNotFound, "key not found")
			return
		}
		h.logger.Error("delete failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to delete key")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// (GET /v1/scan)
func (h *kvHandler) ScanRange(w http.ResponseWriter, r *http.Request, params ScanRangeParams) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues("scan"))
	defer timer.ObserveDuration()

	var from, end string
	if params.FromKey != nil {
		raw, ok := decodeBase64(w, "from_key", *params.FromKey)
		if !ok {
			return
		}
		from = string(raw)
	}
	if params.EndKey != nil {
		raw, ok := decodeBase64(w, "end_key", *params.EndKey)
		if !ok {
			return
		}
		end = string(raw)
	}

	_, span := otel.Tracer(tracerName).Start(r.Context(), "trackedkv.Store.Scan")
	defer span.End()

	pairs := h.store.Scan(from, end)
	span.SetAttributes(attribute.Int("pairs", len(pairs)))

	items := make([]KeyValue, 0, len(pairs))
	for _, p := range pairs {
		items = append(items, KeyValue{
			Key:   base64.URLEncoding.EncodeToString([]byte(p.Key)),
			Value: base64.URLEncoding.EncodeToString(p.Value),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// (GET /v1/history)
func (h *kvHandler) GetHistory(w http.ResponseWriter, r *http.Request, params GetHistoryParams) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues("history"))
	defer timer.ObserveDuration()

	if params.Limit != nil && *params.Limit < 0 {
		writeError(w, http.StatusBadRequest, "limit must not be negative")
		return
	}

	_, span := otel.Tracer(tracerName).Start(r.Context(), "trackedkv.Store.History")
	defer span.End()

	records := h.store.History()
	if params.Limit != nil && *params.Limit < len(records) {
		records = records[len(records)-*params.Limit:]
	}
	span.SetAttributes(attribute.Int("records", len(records)))

	entries := make([]ChangeEntry, 0, len(records))
	for _, rec := range records {
		entry := ChangeEntry{
			Id:        rec.ID,
			Seq:       int64(rec.Sequence),
			Op:        Set,
			Key:       base64.URLEncoding.EncodeToString([]byte(rec.Key)),
			Timestamp: rec.Timestamp,
		}
		if rec.Op == model.DELETE {
			entry.Op = Delete
		}
		if rec.OldExisted {
			old := base64.URLEncoding.EncodeToString(rec.OldValue)
			entry.OldValue = &old
		}
		if rec.Op == model.SET {
			val := base64.URLEncoding.EncodeToString(rec.NewValue)
			entry.NewValue = &val
		}
		entries = append(entries, entry)
	}
	writeJSON(w, http.StatusOK, entries)
}

// (POST /v1/revert)
func (h *kvHandler) RevertHistory(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(metrics.RequestDuration.WithLabelValues("revert"))
	defer timer.ObserveDuration()

	var req RevertHistoryJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	_, span := otel.Tracer(tracerName).Start(r.Context(), "trackedkv.Store.Revert",
		trace.WithAttributes(attribute.Int("steps", req.Steps)))
	defer span.End()

	reverted, err := h.store.Revert(req.Steps)
	if err != nil {
		h.logger.Error("revert failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "failed to revert")
		return
	}
	span.SetAttributes(attribute.Int("reverted", reverted))
	writeJSON(w, http.StatusOK, RevertResult{Reverted: reverted})
}

func decodeBase64(w http.ResponseWriter, field, s string) ([]byte, bool) {
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		writeError(w, http.StatusBadRequest, field+" is not valid base64")
		return nil, false
	}
	return raw, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Error{Message: msg})
}
