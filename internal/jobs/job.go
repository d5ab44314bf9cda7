// Package jobs reads the latest public job postings shown by /jobs.
package jobs

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Job is a posting as stored by the HustleX platform.
type Job struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	Company   string    `db:"company"`
	Category  string    `db:"category"`
	JobType   string    `db:"job_type"`
	JobSector string    `db:"job_sector"`
	City      string    `db:"city"`
	Budget    string    `db:"budget"`
	CreatedAt time.Time `db:"created_at"`
}

// Link returns the public job page on the platform at baseURL.
func (j Job) Link(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/job-details/" + j.ID.String()
}

// Sectors are the job sectors advertised in the jobs message.
var Sectors = []string{
	"👨‍💻 Software Development",
	"🎨 Design & Creative",
	"📊 Marketing & Sales",
	"✍️ Writing & Translation",
	"📂 Admin & Support",
}
