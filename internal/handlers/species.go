package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/BISU-Projects/bamboo/internal/species"
)

// Stats summarizes the catalog for filter pickers
type Stats struct {
	Total           int                      `json:"total"`
	Categories      []species.Category       `json:"categories"`
	Rarities        []species.Rarity         `json:"rarities"`
	Origins         []string                 `json:"origins"`
	CountByCategory map[species.Category]int `json:"count_by_category"`
	CountByRarity   map[species.Rarity]int   `json:"count_by_rarity"`
}

func (h *Handler) HandleSpecies(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	filters := species.Filters{
		Origin:      query.Get("origin"),
		SearchQuery: query.Get("q"),
	}

	if v := query.Get("category"); v != "" {
		category, err := species.ParseCategory(v)
		if err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		filters.Category = category
	}
	if v := query.Get("rarity"); v != "" {
		rarity, err := species.ParseRarity(v)
		if err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
		filters.Rarity = rarity
	}

	h.writeJSON(w, h.catalog.Filter(filters))
}

func (h *Handler) HandleSpeciesDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/species/")

	switch id {
	case "random":
		count := 1
		if v := r.URL.Query().Get("count"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				h.writeError(w, "Invalid count: "+err.Error(), http.StatusBadRequest)
				return
			}
			count = n
		}
		h.writeJSON(w, h.catalog.Random(count))
	case "stats":
		h.writeJSON(w, Stats{
			Total:           h.catalog.Len(),
			Categories:      h.catalog.Categories(),
			Rarities:        h.catalog.Rarities(),
			Origins:         h.catalog.Origins(),
			CountByCategory: h.catalog.CountByCategory(),
			CountByRarity:   h.catalog.CountByRarity(),
		})
	default:
		record, ok := h.catalog.ByID(id)
		if !ok {
			h.writeError(w, "Species not found", http.StatusNotFound)
			return
		}
		h.writeJSON(w, record)
	}
}
