package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aramroll/aramroll/internal/api/apierr"
	"github.com/aramroll/aramroll/internal/model"
)

type contextKey string

const participantContextKey contextKey = "participant"

// ParticipantHeader carries the caller's self-declared participant id.
// Identities are client-generated and unauthenticated; the server trusts the
// declared id and gates privileged actions on it matching the room's host id.
const ParticipantHeader = "X-Participant-ID"

// Identity creates middleware requiring a participant id on every request
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := extractParticipant(r)
			if id == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), participantContextKey, model.PlayerID(id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractParticipant pulls the participant id from the header, falling back
// to a query parameter for EventSource clients that cannot set headers.
func extractParticipant(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(ParticipantHeader)); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL.Query().Get("participant_id"))
}

// GetParticipant returns the participant id from the request context
func GetParticipant(ctx context.Context) model.PlayerID {
	id, _ := ctx.Value(participantContextKey).(model.PlayerID)
	return id
}

// MustGetParticipant returns the participant id or panics
func MustGetParticipant(ctx context.Context) model.PlayerID {
	id := GetParticipant(ctx)
	if id == "" {
		panic("no participant in context - identity middleware not applied?")
	}
	return id
}
