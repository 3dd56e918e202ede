package web

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"kicker/internal/back"
	"kicker/internal/util"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"golang.org/x/time/rate"
)

type Server struct {
	http    *http.Server
	back    *back.Back
	submits *rate.Limiter
}

func NewServer(back *back.Back, addr string) *Server {
	s := &Server{
		back: back,
		// Nobody plays more than a handful of games per minute on a real
		// table, anything above that is a misbehaving client.
		submits: rate.NewLimiter(rate.Every(10*time.Second), 6),
	}

	s.http = &http.Server{
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  10 * time.Second,
		Handler:      s.setupRouter(),
	}

	return s
}

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/", noContent)

	r.Post("/kicker/score/submit", s.submitScore)

	r.Get("/app/json/dashboard/{playerID}", s.getDashboard)
	r.Get("/app/json/rankings", s.getRankings)
	r.Get("/app/json/community/{playerID}", s.getCommunity)
	r.Get("/app/json/player/{playerID}", s.getPlayerInfo)
	r.Get("/app/json/game/{gameID}", s.getGameInfo)
	r.Get("/app/json/players", s.getPlayers)
	r.Get("/app/json/kickers", s.getKickers)

	r.Get("/app/graph/wl/{playerID}", s.getWLChart)

	return r
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	log.Println("info: starting HTTP server")
	wg.Add(1)
	defer wg.Done()

	go func() {
		err := s.http.ListenAndServe()
		if err == http.ErrServerClosed {
			log.Println("info: HTTP server closed")
			return
		}

		log.Fatalf("webserver crashed: %s", err)
	}()

	<-done
	if err := s.http.Close(); err != nil {
		log.Printf("warning: unable to close webserver: %s", err)
	}
}

func (s *Server) response(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(data)
	if err != nil {
		log.Printf("error: unable to marshal response: %s", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)

	if _, err := w.Write(response); err != nil {
		log.Printf("error: unable to send response: %s", err)
	}
}

// error maps domain errors to status codes: public errors go back to the
// caller as structured JSON, missing rows are a 404, everything else is
// logged and hidden behind a 500.
func (s *Server) error(w http.ResponseWriter, err error) {
	if errors.Is(err, util.ErrPublic("")) {
		s.response(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if errors.Is(err, sql.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	log.Printf("error: %s", err)
	w.WriteHeader(http.StatusInternalServerError)
}

func (s *Server) cache(w http.ResponseWriter, scope string, d time.Duration) {
	w.Header().Set("Cache-Control", fmt.Sprintf("%s,max-age=%d", scope, d/time.Second))
}

func urlParamUUID(r *http.Request, name string) (util.UUIDAsBlob, error) {
	id, err := util.ParseUUIDAsBlob(chi.URLParam(r, name))
	if err != nil {
		return util.UUIDAsBlob{}, util.ErrPublic(fmt.Sprintf("invalid %s", name))
	}

	return id, nil
}
