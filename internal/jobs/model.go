package jobs

import "time"

// JobRecord is one job posting available for matching.
type JobRecord struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Company        string     `json:"company"`
	Location       string     `json:"location"`
	Description    string     `json:"description"`
	Requirements   []string   `json:"requirements,omitempty"`
	Skills         []string   `json:"skills,omitempty"`
	EmploymentType string     `json:"employmentType,omitempty"`
	Salary         string     `json:"salary,omitempty"`
	Link           string     `json:"link,omitempty"`
	PostedDate     *time.Time `json:"postedDate,omitempty"`
}
