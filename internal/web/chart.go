package web

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/wcharczuk/go-chart"
	"github.com/wcharczuk/go-chart/drawing"
)

const emptySVG = `<svg xmlns="http://www.w3.org/2000/svg"/>`

// getWLChart serves the dashboard's win/loss pie as an SVG.
func (s *Server) getWLChart(w http.ResponseWriter, r *http.Request) {
	playerID, err := urlParamUUID(r, "playerID")
	if err != nil {
		s.error(w, err)
		return
	}

	stats, err := s.back.GetPlayerStats(playerID)
	if err != nil {
		s.error(w, err)
		return
	}

	svg, err := generateWLChart(float64(stats.Wins), float64(stats.Losses))
	if err != nil {
		s.error(w, err)
		return
	}

	s.cache(w, "public", 5*time.Minute)
	w.Header().Set("Content-Type", "image/svg+xml")
	if _, err := w.Write(svg); err != nil {
		s.error(w, err)
	}
}

func generateWLChart(wins, losses float64) ([]byte, error) {
	if wins+losses == 0 {
		// go-chart does not like it when all values are 0
		return []byte(emptySVG), nil
	}

	pie := chart.PieChart{
		Width:      200,
		Height:     200,
		Canvas:     chart.Style{FillColor: chart.ColorTransparent},
		Background: chart.Style{FillColor: chart.ColorTransparent},
		Values: []chart.Value{
			{
				Value: wins,
				Label: fmt.Sprintf("Wins (%.0f %%)", (wins/(losses+wins))*100.0),
				Style: chart.Style{FillColor: drawing.ColorFromHex("FDF1DC")},
			},
			{
				Value: losses,
				Label: fmt.Sprintf("Losses (%.0f %%)", (losses/(losses+wins))*100.0),
				Style: chart.Style{FillColor: drawing.ColorFromHex("F2E1D7")},
			},
		},
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.SVG, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
