package web

import (
	"encoding/json"
	"kicker/internal/back"
	"kicker/internal/util"
	"net/http"
	"time"
)

type submitScoreRequest struct {
	KickerID string   `json:"kicker_id"`
	Team1    []string `json:"team1"`
	Team2    []string `json:"team2"`
	Score1   int      `json:"score1"`
	Score2   int      `json:"score2"`
}

// parseTeam maps the 0-2 team slots to player IDs, an empty slot is the
// anonymous placeholder.
func parseTeam(slots []string) ([]util.UUIDAsBlob, error) {
	if len(slots) > 2 {
		return nil, util.ErrPublic("a team has at most two players")
	}

	ret := make([]util.UUIDAsBlob, 0, len(slots))
	for _, slot := range slots {
		if slot == "" {
			ret = append(ret, back.AnonymousPlayerID)
			continue
		}

		id, err := util.ParseUUIDAsBlob(slot)
		if err != nil {
			return nil, util.ErrPublic("invalid player ID in team composition")
		}

		ret = append(ret, id)
	}

	return ret, nil
}

func (s *Server) submitScore(w http.ResponseWriter, r *http.Request) {
	if !s.submits.Allow() {
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}

	var payload submitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.error(w, util.ErrPublic("invalid JSON payload"))
		return
	}

	kickerID, err := util.ParseUUIDAsBlob(payload.KickerID)
	if err != nil {
		s.error(w, util.ErrPublic("invalid kicker ID"))
		return
	}

	team1, err := parseTeam(payload.Team1)
	if err != nil {
		s.error(w, err)
		return
	}

	team2, err := parseTeam(payload.Team2)
	if err != nil {
		s.error(w, err)
		return
	}

	gameID, err := s.back.SubmitGame(kickerID, team1, team2, payload.Score1, payload.Score2)
	if err != nil {
		s.error(w, err)
		return
	}

	s.response(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"game_id": gameID,
	})
}

func (s *Server) getDashboard(w http.ResponseWriter, r *http.Request) {
	playerID, err := urlParamUUID(r, "playerID")
	if err != nil {
		s.error(w, err)
		return
	}

	dashboard, err := s.back.GetDashboard(playerID)
	if err != nil {
		s.error(w, err)
		return
	}

	s.response(w, http.StatusOK, dashboard)
}

func (s *Server) getRankings(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = string(back.PeriodMonth)
	}

	rankings, err := s.back.GetRankings(back.Period(period))
	if err != nil {
		s.error(w, err)
		return
	}

	s.cache(w, "public", 1*time.Minute)
	s.response(w, http.StatusOK, rankings)
}

func (s *Server) getCommunity(w http.ResponseWriter, r *http.Request) {
	playerID, err := urlParamUUID(r, "playerID")
	if err != nil {
		s.error(w, err)
		return
	}

	community, err := s.back.GetCommunity(playerID)
	if err != nil {
		s.error(w, err)
		return
	}

	s.response(w, http.StatusOK, community)
}

func (s *Server) getPlayerInfo(w http.ResponseWriter, r *http.Request) {
	playerID, err := urlParamUUID(r, "playerID")
	if err != nil {
		s.error(w, err)
		return
	}

	info, err := s.back.GetPlayerInfo(playerID)
	if err != nil {
		s.error(w, err)
		return
	}

	s.response(w, http.StatusOK, info)
}

func (s *Server) getGameInfo(w http.ResponseWriter, r *http.Request) {
	gameID, err := urlParamUUID(r, "gameID")
	if err != nil {
		s.error(w, err)
		return
	}

	info, err := s.back.GetGameInfo(gameID)
	if err != nil {
		s.error(w, err)
		return
	}

	s.response(w, http.StatusOK, info)
}

func (s *Server) getPlayers(w http.ResponseWriter, _ *http.Request) {
	players, err := s.back.GetPlayers()
	if err != nil {
		s.error(w, err)
		return
	}

	summaries := make([]map[string]interface{}, 0, len(players))
	for k := range players {
		summaries = append(summaries, map[string]interface{}{
			"id":   players[k].ID,
			"name": players[k].Name,
		})
	}

	s.response(w, http.StatusOK, map[string]interface{}{
		"players": summaries,
	})
}

func (s *Server) getKickers(w http.ResponseWriter, _ *http.Request) {
	kickers, err := s.back.GetKickers()
	if err != nil {
		s.error(w, err)
		return
	}

	summaries := make([]map[string]interface{}, 0, len(kickers))
	for k := range kickers {
		summaries = append(summaries, map[string]interface{}{
			"id":       kickers[k].ID,
			"name":     kickers[k].Name,
			"location": kickers[k].Location,
		})
	}

	s.response(w, http.StatusOK, map[string]interface{}{
		"kickers": summaries,
	})
}
