package narrative

import "strings"

// CourseRule maps trigger keywords to a fixed recommendation. Rules are
// evaluated in slice order and the first hit wins, so a posting mentioning
// both "data" and "sales" gets the data recommendation.
type CourseRule struct {
	Keywords       []string
	Recommendation string
}

// defaultCourseRules is the built-in rule table. The order is part of the
// contract.
var defaultCourseRules = []CourseRule{
	{
		Keywords:       []string{"support", "helpdesk", "customer service", "call centre"},
		Recommendation: "'Customer Service Excellence' - NTUC LearningHub (Singapore, classroom/online)",
	},
	{
		Keywords:       []string{"data", "analytics", "excel"},
		Recommendation: "'Excel Skills for Business' - Coursera (online, SkillsFuture claimable)",
	},
	{
		Keywords:       []string{"admin", "executive", "coordinator"},
		Recommendation: "'Digital Office Skills with Microsoft 365' - Singapore Polytechnic PACE (short course)",
	},
	{
		Keywords:       []string{"it", "network", "technician"},
		Recommendation: "'CompTIA A+ Certification Training' - NTUC LearningHub (Singapore, blended)",
	},
	{
		Keywords:       []string{"sales", "marketing", "account manager"},
		Recommendation: "'Professional Selling Skills' - SMU Academy (short executive programme)",
	},
}

// defaultCourse is returned when no rule matches.
const defaultCourse = "'Career Resilience & Future Skills' - SkillsFuture Singapore (online options available)"

// CourseRecommender picks a canned course suggestion from job text. The rule
// table is injected so tests and callers can substitute their own.
type CourseRecommender struct {
	rules    []CourseRule
	fallback string
}

// NewCourseRecommender builds a recommender. A nil rule slice uses the
// built-in table.
func NewCourseRecommender(rules []CourseRule, fallback string) *CourseRecommender {
	if rules == nil {
		rules = defaultCourseRules
	}
	if fallback == "" {
		fallback = defaultCourse
	}
	return &CourseRecommender{rules: rules, fallback: fallback}
}

// Recommend concatenates and lowercases the job title, skills text,
// requirements text and gap keywords, then returns the first rule whose
// keywords appear in that blob. Falls back to the generic recommendation.
func (c *CourseRecommender) Recommend(jobTitle, skillsText, requirementsText string, gaps []string) string {
	blob := strings.ToLower(strings.Join([]string{
		jobTitle, skillsText, requirementsText, strings.Join(gaps, " "),
	}, " "))

	for _, rule := range c.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(blob, kw) {
				return rule.Recommendation
			}
		}
	}
	return c.fallback
}
