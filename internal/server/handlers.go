package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/benchtop-labs/teardown/internal/assets"
	"github.com/benchtop-labs/teardown/internal/catalog"
	"github.com/benchtop-labs/teardown/internal/session"
	"github.com/benchtop-labs/teardown/internal/workflow"
)

// partResponse is the API shape of a catalog part.
type partResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// stepResponse is the API shape of a sequenced step.
type stepResponse struct {
	Order       int      `json:"order"`
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty"`
	Elements    []string `json:"elements,omitempty"`
	Images      []string `json:"images,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// guideStepResponse is a sequenced step with its parts embedded, the shape
// the walkthrough needs in a single request.
type guideStepResponse struct {
	stepResponse
	Parts []partResponse `json:"parts,omitempty"`
}

func (s *Server) partToResponse(p catalog.Part) partResponse {
	resp := partResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Images:      p.Images,
	}
	if file, ok := assets.FirstExisting(s.partDir, p.Images); ok {
		resp.ImageURL = path.Join("/images/parts", path.Base(file))
	}
	return resp
}

func (s *Server) stepToResponse(order int, st workflow.Step) stepResponse {
	resp := stepResponse{
		Order:       order,
		ID:          st.ID,
		Title:       st.Title,
		Description: st.Description,
		DependsOn:   st.DependsOn,
		Elements:    st.Elements,
		Images:      st.Images,
	}
	if file, ok := assets.FirstExisting(s.stepDir, st.Images); ok {
		resp.ImageURL = path.Join("/images/steps", path.Base(file))
	}
	return resp
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParts(w http.ResponseWriter, _ *http.Request) {
	cat, err := s.session.Catalog()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	parts := make([]partResponse, 0, cat.Len())
	for _, p := range cat.Parts() {
		parts = append(parts, s.partToResponse(p))
	}
	writeJSON(w, http.StatusOK, parts)
}

func (s *Server) handlePart(w http.ResponseWriter, r *http.Request) {
	cat, err := s.session.Catalog()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	id := chi.URLParam(r, "id")
	p, ok := cat.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "part not found", "id": id})
		return
	}
	writeJSON(w, http.StatusOK, s.partToResponse(p))
}

func (s *Server) handleSteps(w http.ResponseWriter, _ *http.Request) {
	ordered, err := s.orderedOrEmpty()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	steps := make([]stepResponse, 0, len(ordered))
	for i, st := range ordered {
		steps = append(steps, s.stepToResponse(i+1, st))
	}
	writeJSON(w, http.StatusOK, steps)
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	ordered, err := s.orderedOrEmpty()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	id := chi.URLParam(r, "id")
	for i, st := range ordered {
		if st.ID == id {
			writeJSON(w, http.StatusOK, s.stepToResponse(i+1, st))
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "step not found", "id": id})
}

func (s *Server) handleGuide(w http.ResponseWriter, _ *http.Request) {
	ordered, err := s.orderedOrEmpty()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	cat, err := s.session.Catalog()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	steps := make([]guideStepResponse, 0, len(ordered))
	for i, st := range ordered {
		g := guideStepResponse{stepResponse: s.stepToResponse(i+1, st)}
		for _, eid := range st.Elements {
			p, _ := cat.Resolve(eid)
			g.Parts = append(g.Parts, s.partToResponse(p))
		}
		steps = append(steps, g)
	}
	writeJSON(w, http.StatusOK, steps)
}

// orderedOrEmpty maps the empty-collection sentinel to an empty list; an
// empty guide is a valid API state, not a server error.
func (s *Server) orderedOrEmpty() ([]workflow.Step, error) {
	ordered, err := s.session.OrderedSteps()
	if errors.Is(err, session.ErrNoSteps) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ordered, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
