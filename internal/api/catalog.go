package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/genaidss/genaidss/pkg/catalog"
	"github.com/genaidss/genaidss/pkg/wizard"
)

type catalogResponse struct {
	Indicators        []catalog.Indicator  `json:"indicators"`
	Options           []catalog.Option     `json:"options"`
	Departments       []catalog.Department `json:"departments"`
	DefaultDepartment string               `json:"default_department,omitempty"`
	DefaultWeights    catalog.Weights      `json:"default_weights"`
}

// Catalog handles GET /api/catalog.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	cat := h.sess.Catalog()
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, catalogResponse{
		Indicators:        cat.Indicators,
		Options:           cat.Options,
		Departments:       cat.Departments,
		DefaultDepartment: h.defaultDepartment,
		DefaultWeights:    cat.DefaultWeights(),
	})
}

type attributesResponse struct {
	Indicator  catalog.Indicator   `json:"indicator"`
	Attributes []catalog.Attribute `json:"attributes"`
	Coverage   catalog.Coverage    `json:"coverage"`
}

// IndicatorAttributes handles GET /api/indicators/{id}/attributes.
func (h *Handler) IndicatorAttributes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	cat := h.sess.Catalog()
	h.mu.Unlock()

	ind, ok := cat.Indicator(id)
	if !ok {
		writeErr(w, fmt.Errorf("%w: %q", wizard.ErrUnknownIndicator, id))
		return
	}

	resp := attributesResponse{
		Indicator:  ind,
		Attributes: cat.AttributesByIndicator(id),
		Coverage:   catalog.Coverage{IndicatorID: id},
	}
	if resp.Attributes == nil {
		resp.Attributes = []catalog.Attribute{}
	}
	for _, c := range cat.SourceCoverage() {
		if c.IndicatorID == id {
			resp.Coverage = c
			break
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
