package jobrecord

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/job-gap-analyzer/internal/textproc"
)

// Item is one entry of the search API result list: the job record plus its
// company wrapper.
type Item struct {
	Job     Record `json:"job"`
	Company Record `json:"company"`
}

// Summary is a flattened, display-ready view of one posting. Description and
// Requirements are plain text with markup stripped.
type Summary struct {
	JobID          string   `json:"job_id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	NearestMRT     string   `json:"nearest_mrt"`
	SalaryRange    string   `json:"salary_range"`
	MinSalary      int      `json:"min_salary,omitempty"`
	EmploymentType string   `json:"employment_type"`
	MinEducation   string   `json:"min_education"`
	MinExperience  string   `json:"min_experience"`
	Skills         []string `json:"skills"`
	Description    string   `json:"description"`
	Requirements   string   `json:"requirements"`
	URL            string   `json:"url"`
}

var salaryNumber = regexp.MustCompile(`\d[\d,]*`)

// Summarize flattens one result item. index is the item's position in the
// result page and seeds the synthetic job id when the record has none.
func Summarize(item Item, index int) Summary {
	job := item.Job
	if job == nil {
		job = Record{}
	}

	id := job.ID()
	if id == "" {
		id = fmt.Sprintf("job-%d", index)
	}

	company := ""
	if item.Company != nil {
		company = item.Company.stringField("CompanyName", "company_name", "company")
	}
	if company == "" {
		company = job.stringField("CompanyName", "company_name", "company")
	}

	salaryRange, minSalary := salaryDisplay(job)

	return Summary{
		JobID:          id,
		Title:          job.Title(),
		Company:        company,
		NearestMRT:     joinCaptions(job["id_Job_NearestMRTStation"]),
		SalaryRange:    salaryRange,
		MinSalary:      minSalary,
		EmploymentType: joinCaptions(job["EmploymentType"]),
		MinEducation:   caption(job["MinimumEducationLevel"]),
		MinExperience:  caption(job["MinimumYearsofExperience"]),
		Skills:         job.Skills(),
		Description:    textproc.StripMarkup(job.Description()),
		Requirements:   textproc.StripMarkup(job.Requirements()),
		URL:            job.stringField("JobURL", "JobUrl", "url"),
	}
}

// salaryDisplay builds the human-readable salary range string and extracts a
// numeric minimum for client-side filtering. Respects the do-not-display
// flag.
func salaryDisplay(job Record) (string, int) {
	if truthy(job["id_Job_Donotdisplaysalary"]) {
		return "", 0
	}

	currency := captionDefault(job["id_Job_Currency"], "SGD")
	interval := captionDefault(job["id_Job_Interval"], "Month")

	if sr := caption(job["Salaryrange"]); sr != "" {
		display := fmt.Sprintf("%s %s per %s", currency, sr, interval)
		if nums := salaryNumber.FindString(sr); nums != "" {
			return display, parseSalary(nums)
		}
		return display, 0
	}

	minSal := strings.TrimSpace(coerceString(job["id_Job_Salary"]))
	maxSal := strings.TrimSpace(coerceString(job["id_Job_MaxSalary"]))
	minVal := parseSalary(minSal)

	switch {
	case minSal != "" && maxSal != "":
		return fmt.Sprintf("%s %s-%s per %s", currency, minSal, maxSal, interval), minVal
	case minSal != "":
		return fmt.Sprintf("%s %s+ per %s", currency, minSal, interval), minVal
	case maxSal != "":
		return fmt.Sprintf("%s up to %s per %s", currency, maxSal, interval), 0
	}
	return "", 0
}

// joinCaptions extracts "caption" values from a list of wrapper maps and
// joins them with ", ".
func joinCaptions(val any) string {
	list, ok := val.([]any)
	if !ok {
		return ""
	}
	var captions []string
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			if c, ok := m["caption"].(string); ok && strings.TrimSpace(c) != "" {
				captions = append(captions, strings.TrimSpace(c))
			}
		}
	}
	return strings.Join(captions, ", ")
}

// caption unwraps the "caption" field of a wrapper map, or "" for anything
// else.
func caption(val any) string {
	if m, ok := val.(map[string]any); ok {
		if c, ok := m["caption"].(string); ok {
			return strings.TrimSpace(c)
		}
	}
	return ""
}

func captionDefault(val any, fallback string) string {
	if c := caption(val); c != "" {
		return c
	}
	return fallback
}

// truthy interprets the loose boolean encodings the backend uses for flags.
func truthy(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != "" && v != "0" && !strings.EqualFold(v, "false")
	}
	return false
}

// parseSalary pulls the integer value out of a salary figure like "3,500".
func parseSalary(s string) int {
	s = strings.ReplaceAll(s, ",", "")
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
