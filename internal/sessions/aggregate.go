package sessions

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/yurukusa/cc-project-stats/pkg/models"
)

const (
	// Files below this size cannot hold a real session record.
	minSessionFileSize = 50

	// Sessions spanning a week or more are placeholder or clock-skewed data.
	maxSessionDuration = 7 * 24 * time.Hour

	// Anything shorter than ~3.6s is noise.
	minSessionHours = 0.001

	dateLayout = "2006-01-02"
)

// Filters is the date window applied to a scan. Dates are compared as
// zero-padded YYYY-MM-DD strings in the machine-local zone, which sorts the
// same as chronological order.
type Filters struct {
	AllTime bool
	Days    int
	Cutoff  time.Time // local midnight of the earliest included date
	Today   time.Time
}

// NewFilters builds the window for a days-long lookback ending today.
// days=1 means "today only"; allTime disables the window entirely.
func NewFilters(days int, allTime bool, now time.Time) Filters {
	local := now.Local()
	f := Filters{AllTime: allTime, Days: days, Today: local}
	if !allTime {
		midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
		f.Cutoff = midnight.AddDate(0, 0, -(days - 1))
	}
	return f
}

// Period returns the human label for the window.
func (f Filters) Period() string {
	if f.AllTime {
		return "all time"
	}
	if f.Days == 1 {
		return "today"
	}
	return fmt.Sprintf("last %d days", f.Days)
}

// CutoffDate returns the earliest included date, or "" in all-time mode.
func (f Filters) CutoffDate() string {
	if f.AllTime {
		return ""
	}
	return f.Cutoff.Format(dateLayout)
}

// TodayDate returns the latest included date.
func (f Filters) TodayDate() string {
	return f.Today.Format(dateLayout)
}

// includesDate reports whether a session start date falls inside the window.
func (f Filters) includesDate(start time.Time) bool {
	if f.AllTime {
		return true
	}
	day := start.Local().Format(dateLayout)
	return day >= f.CutoffDate() && day <= f.TodayDate()
}

// Aggregator folds qualifying session files into per-project buckets. It is
// a plain value threaded through the scan, not shared state; create one per
// run and read the Report when done.
type Aggregator struct {
	filters Filters
	buckets map[string]*models.ProjectStats
}

// NewAggregator creates an empty aggregator for the given window.
func NewAggregator(filters Filters) *Aggregator {
	return &Aggregator{
		filters: filters,
		buckets: make(map[string]*models.ProjectStats),
	}
}

// Add applies the filter chain to one session file and, if it qualifies,
// adds its duration to the project bucket. Files that fail any check are
// dropped silently; a single bad file never aborts the run.
func (a *Aggregator) Add(file SessionFile) {
	if file.Size < minSessionFileSize {
		return
	}
	// Cheap pre-filter: a file untouched since before the cutoff cannot hold
	// an in-window session. Modification time is never the authoritative date.
	if !a.filters.AllTime && file.ModTime.Before(a.filters.Cutoff) {
		return
	}

	lines, ok := ReadEdgeLines(file.Path)
	if !ok {
		return
	}
	start, ok := LineTimestamp(lines.First)
	if !ok {
		return
	}
	end, ok := LineTimestamp(lines.Last)
	if !ok {
		return
	}

	record := models.SessionRecord{Start: start, End: end, Autonomous: file.Autonomous}
	a.addRecord(file.Project, record)
}

func (a *Aggregator) addRecord(project string, record models.SessionRecord) {
	if !a.filters.includesDate(record.Start) {
		return
	}
	dur := record.Duration()
	if dur < 0 || dur >= maxSessionDuration {
		return
	}
	hours := dur.Hours()
	if hours < minSessionHours {
		return
	}

	bucket, ok := a.buckets[project]
	if !ok {
		bucket = &models.ProjectStats{Name: project}
		a.buckets[project] = bucket
	}
	if record.Autonomous {
		bucket.AutonomousHours += hours
		bucket.AutonomousSessions++
	} else {
		bucket.HumanHours += hours
		bucket.HumanSessions++
	}
}

// Report snapshots the buckets, ranked by total hours descending.
func (a *Aggregator) Report() models.Report {
	projects := lo.Map(lo.Values(a.buckets), func(p *models.ProjectStats, _ int) models.ProjectStats {
		return *p
	})
	sort.Slice(projects, func(i, j int) bool {
		if projects[i].TotalHours() != projects[j].TotalHours() {
			return projects[i].TotalHours() > projects[j].TotalHours()
		}
		return projects[i].Name < projects[j].Name
	})

	return models.Report{
		Period:   a.filters.Period(),
		Cutoff:   a.filters.CutoffDate(),
		Today:    a.filters.TodayDate(),
		Projects: projects,
	}
}

// Scan runs the whole pipeline once: discover session files under root,
// aggregate the ones that pass the filters, and return the ranked report.
func Scan(root string, filters Filters) (models.Report, error) {
	files, err := DiscoverSessionFiles(root)
	if err != nil {
		return models.Report{}, err
	}

	agg := NewAggregator(filters)
	for _, file := range files {
		agg.Add(file)
	}
	return agg.Report(), nil
}
