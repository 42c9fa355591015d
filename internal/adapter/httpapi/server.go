package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/example/dme-recommend-service/internal/domain"
	"github.com/example/dme-recommend-service/internal/usecase"
)

type Server struct {
	Router    *mux.Router
	Recommend usecase.RecommendForOrder
	UCGet     usecase.GetRecommendation
	Roster    domain.RosterCache
	Log       zerolog.Logger
}

func NewServer(recommend usecase.RecommendForOrder, ucGet usecase.GetRecommendation, roster domain.RosterCache, log zerolog.Logger) *Server {
	s := &Server{
		Router:    mux.NewRouter(),
		Recommend: recommend,
		UCGet:     ucGet,
		Roster:    roster,
		Log:       log,
	}
	s.Router.Use(requestLogger(log))
	s.Router.HandleFunc("/api/recommendation", s.handleRecommend).Methods(http.MethodPost)
	s.Router.HandleFunc("/api/recommendation/{id}", s.handleGet).Methods(http.MethodGet)
	s.Router.HandleFunc("/api/partners", s.handlePartners).Methods(http.MethodGet)
	return s
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Order domain.Order `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid order payload")
		return
	}

	rec, err := s.Recommend.Execute(r.Context(), req.Order)
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "order has no products")
		return
	case errors.Is(err, domain.ErrNoEligiblePartners):
		writeError(w, http.StatusNotFound, "no eligible DME partners found after filtering")
		return
	case errors.Is(err, domain.ErrMalformedProposal):
		writeError(w, http.StatusBadGateway, "oracle returned a malformed proposal")
		return
	case err != nil:
		writeError(w, http.StatusBadGateway, "recommendation failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := s.UCGet.Execute(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handlePartners(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Roster.All())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
