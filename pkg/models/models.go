package models

import "time"

// SessionRecord is the timing information recovered from one session log file.
type SessionRecord struct {
	Start      time.Time
	End        time.Time
	Autonomous bool // true for sub-agent transcripts, false for interactive sessions
}

// Duration returns the wall-clock span of the session.
func (s SessionRecord) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// ProjectStats accumulates session time for one project.
type ProjectStats struct {
	Name               string
	HumanHours         float64
	AutonomousHours    float64
	HumanSessions      int
	AutonomousSessions int
}

// TotalHours returns combined human and autonomous time.
func (p ProjectStats) TotalHours() float64 {
	return p.HumanHours + p.AutonomousHours
}

// TotalSessions returns the combined session count.
func (p ProjectStats) TotalSessions() int {
	return p.HumanSessions + p.AutonomousSessions
}

// Report is the outcome of one scan: per-project stats ranked by total time,
// plus the date window they were computed over.
type Report struct {
	Period   string // e.g. "last 7 days" or "all time"
	Cutoff   string // YYYY-MM-DD, empty in all-time mode
	Today    string // YYYY-MM-DD
	Projects []ProjectStats
}
