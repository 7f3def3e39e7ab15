package report

import (
	"encoding/json"
	"io"

	"github.com/samber/lo"

	"github.com/yurukusa/cc-project-stats/pkg/models"
)

type jsonProject struct {
	Name      string  `json:"name"`
	MainHours float64 `json:"mainHours"`
	SubHours  float64 `json:"subHours"`
	Total     float64 `json:"total"`
	Sessions  int     `json:"sessions"`
}

type jsonReport struct {
	Period   string        `json:"period"`
	Cutoff   *string       `json:"cutoff"` // null in all-time mode
	Today    string        `json:"today"`
	Projects []jsonProject `json:"projects"`
}

// WriteJSON emits the structured form of the report.
func WriteJSON(w io.Writer, rep models.Report) error {
	out := jsonReport{
		Period: rep.Period,
		Today:  rep.Today,
		Projects: lo.Map(visibleProjects(rep), func(p models.ProjectStats, _ int) jsonProject {
			return jsonProject{
				Name:      p.Name,
				MainHours: p.HumanHours,
				SubHours:  p.AutonomousHours,
				Total:     p.TotalHours(),
				Sessions:  p.TotalSessions(),
			}
		}),
	}
	if rep.Cutoff != "" {
		cutoff := rep.Cutoff
		out.Cutoff = &cutoff
	}
	if out.Projects == nil {
		out.Projects = []jsonProject{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
