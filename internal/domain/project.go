package domain

import (
	"fmt"
	"time"
)

type Project struct {
	ID          string
	ClientID    string
	Title       string
	Status      ProjectStatus
	Priority    Priority
	Type        string
	Owner       string
	Description string
	Deadline    time.Time
	Progress    int // 0-100; 100 with a non-done status is valid data
	Tasks       []Task
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Task struct {
	ID    string
	Title string
	Done  bool
}

// IsDone reports whether the project reached its terminal status.
func (p *Project) IsDone() bool {
	return p.Status == ProjectDone
}

// IsInFlight reports whether work is actively happening on the project.
func (p *Project) IsInFlight() bool {
	return p.Status == ProjectInProgress || p.Status == ProjectReview
}

// IsOverdue reports whether an unfinished project's deadline date is strictly
// before the calendar date of now. Both are compared as dates in now's
// location.
func (p *Project) IsOverdue(now time.Time) bool {
	if p.IsDone() || p.Deadline.IsZero() {
		return false
	}
	return DateOf(p.Deadline, now.Location()).Before(DateOf(now, now.Location()))
}

func (p *Project) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("project title is required")
	}
	if _, err := ParseProjectStatus(string(p.Status)); err != nil {
		return err
	}
	if p.Progress < 0 || p.Progress > 100 {
		return fmt.Errorf("project progress %d out of range 0-100", p.Progress)
	}
	return nil
}

// DateOf truncates t to midnight of its calendar date in loc.
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
