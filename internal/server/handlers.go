package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/api"
	"github.com/nikbrunner/pouch/internal/model"
	"github.com/nikbrunner/pouch/internal/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	counts, err := s.source.TagCounts()
	if err != nil {
		s.logger.Error("tag counts failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, counts)
}

func (s *Server) handleAutocomplete(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	fragment := params.Get("q")
	exclude := api.NormalizeNames(params["exclude"])

	out := []api.TagSuggestion{}
	if fragment == "" {
		s.respondJSON(w, http.StatusOK, out)
		return
	}

	names, err := s.engine.Suggest(r.Context(), fragment, exclude)
	if err != nil {
		s.logger.Error("autocomplete failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, name := range names {
		out = append(out, api.TagSuggestion{Name: name})
	}
	s.logger.Debug("autocomplete", zap.String("q", fragment), zap.Strings("exclude", exclude), zap.Int("results", len(out)))
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleSearchPost(w http.ResponseWriter, r *http.Request) {
	var req api.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.search(w, r, req)
}

func (s *Server) handleSearchGet(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	req := api.SearchRequest{
		GeneralText: params.Get("q"),
		Tags:        api.NormalizeNames(params["tag"]),
	}
	s.search(w, r, req)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, req api.SearchRequest) {
	resp, err := s.engine.Search(r.Context(), req)
	if err != nil {
		s.logger.Error("search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Debug("search request", zap.String("query", resp.Query), zap.Int("results", len(resp.Bookmarks)))
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBookmark(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, err := s.source.Bookmark(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "bookmark not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, b)
}

func (s *Server) handleAddBookmark(store Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req api.AddBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if u, err := url.ParseRequestURI(req.URL); err != nil || u.Host == "" {
			s.respondError(w, http.StatusBadRequest, "invalid url")
			return
		}

		var added model.Bookmark
		err := store.Update(func(st *model.Store) error {
			var err error
			added, err = st.Insert(model.NewBookmarkParams{
				Title:       req.Title,
				URL:         req.URL,
				Description: req.Description,
				Tags:        req.Tags,
			}, req.Folder)
			return err
		})
		switch {
		case errors.Is(err, model.ErrDuplicateURL):
			s.respondError(w, http.StatusConflict, err.Error())
			return
		case err != nil:
			s.logger.Error("add bookmark failed", zap.String("url", req.URL), zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.logger.Info("bookmark added", zap.String("id", added.ID), zap.String("url", added.URL))
		s.respondJSON(w, http.StatusCreated, added)
	}
}

func (s *Server) handleDeleteBookmark(store Writer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		err := store.Update(func(st *model.Store) error {
			return st.RemoveBookmark(id)
		})
		switch {
		case errors.Is(err, model.ErrBookmarkNotFound):
			s.respondError(w, http.StatusNotFound, "bookmark not found")
			return
		case err != nil:
			s.logger.Error("delete bookmark failed", zap.String("id", id), zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.logger.Info("bookmark removed", zap.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, api.ErrorResponse{Error: message})
}
