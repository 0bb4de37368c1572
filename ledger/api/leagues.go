package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AntonStoeckl/steps-rewards-ledger-go/ledger/features/query/leaguestandings"
)

// leagueStandings handles GET /leagues/{period}, period is formatted YYYY-MM.
func (s *Server) leagueStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := s.handlers.LeagueStandings.Handle(
		r.Context(),
		leaguestandings.BuildQuery(chi.URLParam(r, "period")),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	type tierStandingsView struct {
		Tier      tierView       `json:"tier"`
		Standings []standingView `json:"standings"`
	}

	tiers := make([]tierStandingsView, 0, len(standings.Tiers))
	for _, t := range standings.Tiers {
		tiers = append(tiers, tierStandingsView{Tier: toTierView(t.Tier), Standings: toStandingViews(t.Standings)})
	}

	writeData(w, http.StatusOK, struct {
		Period       string              `json:"period"`
		Participants int                 `json:"participants"`
		Tiers        []tierStandingsView `json:"tiers"`
	}{
		Period:       standings.Period,
		Participants: standings.Participants,
		Tiers:        tiers,
	})
}
