package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/yourusername/playersetup/setup"
)

// MaxBodySize is the largest accepted setup request body
const MaxBodySize = 1 << 20

// Cache stores rendered setup responses
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte)
	Stats() CacheStats
}

// CacheStats is a snapshot of the response cache counters
type CacheStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Size    int64 `json:"size"`
	Entries int   `json:"entries"`
}

// API serves the player setup endpoints
type API struct {
	Normalizer *setup.Normalizer
	Cache      Cache
	Logger     logrus.FieldLogger
}

// RegisterRoutes sets up the API routes
func RegisterRoutes(r *mux.Router, api *API) {
	r.HandleFunc("/api/setup", api.setupHandler).Methods("POST")
	r.HandleFunc("/api/defaults", api.defaultsHandler).Methods("GET")
	r.HandleFunc("/api/health", api.healthHandler).Methods("GET")
}

// setupHandler normalizes the options in the request body
func (api *API) setupHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
			return
		}
		api.Logger.WithError(err).Error("Failed to read setup request")
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	persisted := r.URL.Query().Get("persisted")
	contentType := r.Header.Get("Content-Type")

	key := requestKey(body, []byte(persisted), []byte(contentType))
	if api.Cache != nil {
		if data, ok := api.Cache.Get(key); ok {
			writeJSON(w, data)
			return
		}
	}

	raw := api.decodeOptions(body, contentType)
	var prefs interface{}
	if persisted != "" {
		prefs = api.decodeOptions([]byte(persisted), "application/json")
	}

	data, err := json.Marshal(api.Normalizer.NormalizeLayers(prefs, raw))
	if err != nil {
		api.Logger.WithError(err).Error("Failed to marshal configuration")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if api.Cache != nil {
		api.Cache.Set(key, data)
	}
	writeJSON(w, data)
}

// defaultsHandler returns the configuration for empty options
func (api *API) defaultsHandler(w http.ResponseWriter, r *http.Request) {
	data, err := json.Marshal(api.Normalizer.Normalize(nil))
	if err != nil {
		api.Logger.WithError(err).Error("Failed to marshal configuration")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, data)
}

// healthHandler reports liveness and cache counters
func (api *API) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{"status": "ok"}
	if api.Cache != nil {
		status["cache"] = api.Cache.Stats()
	}

	data, err := json.Marshal(status)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, data)
}

// decodeOptions decodes a JSON or YAML document. Undecodable input yields
// nil, which the normalizer treats as empty options.
func (api *API) decodeOptions(data []byte, contentType string) interface{} {
	if len(data) == 0 {
		return nil
	}

	var raw interface{}
	if strings.Contains(contentType, "yaml") {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			api.Logger.WithError(err).Debug("Ignoring undecodable YAML options")
			return nil
		}
		return raw
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		api.Logger.WithError(err).Debug("Ignoring undecodable JSON options")
		return nil
	}
	return raw
}

func requestKey(parts ...[]byte) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
