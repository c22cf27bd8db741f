package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aramroll/aramroll/internal/api/handler"
	"github.com/aramroll/aramroll/internal/api/middleware"
	"github.com/aramroll/aramroll/internal/services/catalog"
	"github.com/aramroll/aramroll/internal/services/room"
	"github.com/aramroll/aramroll/internal/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	RoomController room.ControllerInterface
	CatalogService *catalog.Service
	HubManager     *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.HubManager, cfg.Logger)
	catalogHandler := handler.NewCatalogHandler(cfg.CatalogService)

	// Create middleware
	identityMiddleware := middleware.Identity()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Catalog routes (no identity required for browsing)
	api.HandleFunc("/catalog", catalogHandler.Status).Methods(http.MethodGet)
	api.HandleFunc("/champions", catalogHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/champions/{champion_id}", catalogHandler.Get).Methods(http.MethodGet)

	// Room routes (all require a declared participant identity)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(identityMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}", roomHandler.Close).Methods(http.MethodDelete)
	rooms.HandleFunc("/{room_id}/info", roomHandler.Info).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/leave", roomHandler.Leave).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/heartbeat", roomHandler.Heartbeat).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/players/{player_id}", roomHandler.Kick).Methods(http.MethodDelete)
	rooms.HandleFunc("/{room_id}/players/{player_id}/team", roomHandler.ChangeTeam).Methods(http.MethodPatch)
	rooms.HandleFunc("/{room_id}/players/{player_id}/ban", roomHandler.SetBan).Methods(http.MethodPut)
	rooms.HandleFunc("/{room_id}/players/{player_id}/vote", roomHandler.Vote).Methods(http.MethodPut)
	rooms.HandleFunc("/{room_id}/votes", roomHandler.Votes).Methods(http.MethodGet)
	rooms.HandleFunc("/{room_id}/votes", roomHandler.ResetVotes).Methods(http.MethodDelete)
	rooms.HandleFunc("/{room_id}/votes/{team}", roomHandler.ClearTeamVotes).Methods(http.MethodDelete)
	rooms.HandleFunc("/{room_id}/roll", roomHandler.RollBoth).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/roll/{team}", roomHandler.RollTeam).Methods(http.MethodPost)
	rooms.HandleFunc("/{room_id}/events", roomHandler.Events).Methods(http.MethodGet)

	// Health check endpoint (no identity)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
