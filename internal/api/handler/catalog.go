package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aramroll/aramroll/internal/api/response"
	"github.com/aramroll/aramroll/internal/model"
	"github.com/aramroll/aramroll/internal/services/catalog"
)

// CatalogHandler handles champion catalog endpoints
type CatalogHandler struct {
	catalog *catalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *catalog.Service) *CatalogHandler {
	return &CatalogHandler{catalog: catalogService}
}

// Status handles GET /api/v1/catalog
func (h *CatalogHandler) Status(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.CatalogStatus{
		Loaded:    h.catalog.IsLoaded(),
		Version:   h.catalog.Version(),
		Champions: h.catalog.Count(),
	})
}

// Search handles GET /api/v1/champions?q=
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	if !h.catalog.IsLoaded() {
		WriteError(w, model.ErrCatalogUnavailable)
		return
	}

	entries := h.catalog.Search(r.URL.Query().Get("q"))
	champions := make([]response.Champion, len(entries))
	for i, e := range entries {
		champions[i] = response.Champion{
			ID:      string(e.ID),
			Name:    e.Name,
			IconURL: h.catalog.ChampionIconURL(e),
		}
	}

	response.JSON(w, http.StatusOK, champions)
}

// Get handles GET /api/v1/champions/{champion_id}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !h.catalog.IsLoaded() {
		WriteError(w, model.ErrCatalogUnavailable)
		return
	}

	id := model.ChampionID(mux.Vars(r)["champion_id"])
	entry, ok := h.catalog.Get(id)
	if !ok {
		WriteError(w, NewChampionNotFoundError())
		return
	}

	response.JSON(w, http.StatusOK, response.Champion{
		ID:      string(entry.ID),
		Name:    entry.Name,
		IconURL: h.catalog.ChampionIconURL(entry),
	})
}
