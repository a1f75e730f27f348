package httpapi

import (
	"net/http"
	"strconv"

	"github.com/Guilhem-Bonnet/PB2-Launcher/internal/httpjson"
)

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpjson.WriteError(w, http.StatusBadRequest, "invalid page")
			return
		}
		page = n
	}

	out, err := s.svc.News.Page(r.Context(), page)
	if err != nil {
		writeAppError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, out)
}

func (s *Server) handleNewsPages(w http.ResponseWriter, r *http.Request) {
	n, err := s.svc.News.PageCount(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]int{"pages": n})
}
