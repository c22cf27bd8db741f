package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aramroll/aramroll/internal/api/middleware"
	"github.com/aramroll/aramroll/internal/api/request"
	"github.com/aramroll/aramroll/internal/api/response"
	"github.com/aramroll/aramroll/internal/model"
	"github.com/aramroll/aramroll/internal/services/room"
	"github.com/aramroll/aramroll/internal/sse"
)

// RoomHandler handles room-related endpoints
type RoomHandler struct {
	rooms       room.ControllerInterface
	hubManager  *sse.HubManager
	broadcaster *sse.Broadcaster
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(rooms room.ControllerInterface, hubManager *sse.HubManager, logger *slog.Logger) *RoomHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &RoomHandler{
		rooms:       rooms,
		hubManager:  hubManager,
		broadcaster: broadcaster,
	}
}

// broadcastRoster pushes the current roster to SSE clients, best effort
func (h *RoomHandler) broadcastRoster(r *http.Request, roomID model.RoomID) {
	if h.broadcaster == nil {
		return
	}
	snap, err := h.rooms.Snapshot(r.Context(), roomID)
	if err != nil {
		return
	}
	h.broadcaster.BroadcastRosterUpdate(roomID, response.RosterFromModel(snap.Players, snap.Meta.HostID))
}

// broadcastVotes pushes the current vote standings to SSE clients, best effort
func (h *RoomHandler) broadcastVotes(r *http.Request, roomID model.RoomID) {
	if h.broadcaster == nil {
		return
	}
	status, err := h.rooms.VoteStatus(r.Context(), roomID)
	if err != nil {
		return
	}
	h.broadcaster.BroadcastVoteUpdate(roomID, response.VoteStatusFromModel(status))
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.HostName == "" {
		WriteError(w, NewInvalidRequestError("host_name is required"))
		return
	}

	meta, err := h.rooms.CreateRoom(r.Context(), room.CreateRoomParams{
		HostID:   participant,
		HostName: req.HostName,
		GameName: req.GameName,
		Password: req.Password,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	snap, err := h.rooms.Snapshot(r.Context(), meta.RoomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromSnapshot(snap))
}

// Info handles GET /api/v1/rooms/{room_id}/info
func (h *RoomHandler) Info(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	info, err := h.rooms.RoomInfo(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomInfoFromModel(info))
}

// Get handles GET /api/v1/rooms/{room_id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	snap, err := h.rooms.Snapshot(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromSnapshot(snap))
}

// Join handles POST /api/v1/rooms/{room_id}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	var req request.JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	if _, err := h.rooms.JoinRoom(r.Context(), roomID, participant, req.Name, req.Password); err != nil {
		WriteError(w, err)
		return
	}

	snap, err := h.rooms.Snapshot(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastRoster(r, roomID)
	response.JSON(w, http.StatusOK, response.RoomFromSnapshot(snap))
}

// Leave handles POST /api/v1/rooms/{room_id}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	if err := h.rooms.LeaveRoom(r.Context(), roomID, participant); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastRoster(r, roomID)
	response.NoContent(w)
}

// Kick handles DELETE /api/v1/rooms/{room_id}/players/{player_id}
func (h *RoomHandler) Kick(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	vars := mux.Vars(r)
	roomID := model.RoomID(vars["room_id"])
	target := model.PlayerID(vars["player_id"])

	if err := h.rooms.KickPlayer(r.Context(), roomID, participant, target); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastRoster(r, roomID)
	response.NoContent(w)
}

// ChangeTeam handles PATCH /api/v1/rooms/{room_id}/players/{player_id}/team
func (h *RoomHandler) ChangeTeam(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	vars := mux.Vars(r)
	roomID := model.RoomID(vars["room_id"])
	target := model.PlayerID(vars["player_id"])

	var req request.ChangeTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.rooms.ChangeTeam(r.Context(), roomID, participant, target, model.Team(req.Team)); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastRoster(r, roomID)
	h.broadcastVotes(r, roomID)
	response.NoContent(w)
}

// SetBan handles PUT /api/v1/rooms/{room_id}/players/{player_id}/ban
func (h *RoomHandler) SetBan(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	vars := mux.Vars(r)
	roomID := model.RoomID(vars["room_id"])
	target := model.PlayerID(vars["player_id"])

	var req request.SetBanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.rooms.SetBan(r.Context(), roomID, participant, target, model.ChampionID(req.ChampionID)); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastRoster(r, roomID)
	response.NoContent(w)
}

// Vote handles PUT /api/v1/rooms/{room_id}/players/{player_id}/vote
func (h *RoomHandler) Vote(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	vars := mux.Vars(r)
	roomID := model.RoomID(vars["room_id"])
	target := model.PlayerID(vars["player_id"])

	var req request.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.rooms.ToggleVote(r.Context(), roomID, participant, target, model.VoteChannel(req.Channel), req.Active); err != nil {
		WriteError(w, err)
		return
	}

	status, err := h.rooms.VoteStatus(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastVoteUpdate(roomID, response.VoteStatusFromModel(status))
	}
	response.JSON(w, http.StatusOK, response.VoteStatusFromModel(status))
}

// Votes handles GET /api/v1/rooms/{room_id}/votes
func (h *RoomHandler) Votes(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	status, err := h.rooms.VoteStatus(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.VoteStatusFromModel(status))
}

// ResetVotes handles DELETE /api/v1/rooms/{room_id}/votes
func (h *RoomHandler) ResetVotes(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	if err := h.rooms.ResetVotes(r.Context(), roomID, participant); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastVotes(r, roomID)
	response.NoContent(w)
}

// ClearTeamVotes handles DELETE /api/v1/rooms/{room_id}/votes/{team}
func (h *RoomHandler) ClearTeamVotes(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	vars := mux.Vars(r)
	roomID := model.RoomID(vars["room_id"])
	team := model.Team(vars["team"])

	if err := h.rooms.ClearTeamVotes(r.Context(), roomID, participant, team); err != nil {
		WriteError(w, err)
		return
	}

	h.broadcastVotes(r, roomID)
	response.NoContent(w)
}

// RollBoth handles POST /api/v1/rooms/{room_id}/roll
func (h *RoomHandler) RollBoth(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	pool, err := h.rooms.RollBoth(r.Context(), roomID, participant)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastPoolUpdate(roomID, response.PoolFromModel(pool))
	}
	h.broadcastVotes(r, roomID)
	response.JSON(w, http.StatusOK, response.PoolFromModel(pool))
}

// RollTeam handles POST /api/v1/rooms/{room_id}/roll/{team}
func (h *RoomHandler) RollTeam(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	vars := mux.Vars(r)
	roomID := model.RoomID(vars["room_id"])
	team := model.Team(vars["team"])

	pool, err := h.rooms.RollTeam(r.Context(), roomID, participant, team)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastPoolUpdate(roomID, response.PoolFromModel(pool))
	}
	h.broadcastVotes(r, roomID)
	response.JSON(w, http.StatusOK, response.PoolFromModel(pool))
}

// Close handles DELETE /api/v1/rooms/{room_id}
func (h *RoomHandler) Close(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	if err := h.rooms.CloseRoom(r.Context(), roomID, participant); err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.BroadcastRoomClosed(roomID)
	}
	response.NoContent(w)
}

// Heartbeat handles POST /api/v1/rooms/{room_id}/heartbeat
func (h *RoomHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	if err := h.rooms.Heartbeat(r.Context(), roomID, participant); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Events handles GET /api/v1/rooms/{room_id}/events (SSE stream)
func (h *RoomHandler) Events(w http.ResponseWriter, r *http.Request) {
	participant := middleware.MustGetParticipant(r.Context())
	roomID := model.RoomID(mux.Vars(r)["room_id"])

	// Verify the room exists before holding a stream open
	if _, err := h.rooms.RoomInfo(r.Context(), roomID); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(roomID)
	sse.ServeSSE(w, r, hub, participant)
}
