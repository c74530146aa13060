package types

// JobRequirements is the job-side input to match scoring. Missing fields are
// interpolated into the prompt as empty strings; they degrade prompt quality but
// never fail the call.
type JobRequirements struct {
	Title           string `json:"title"`
	Requirements    string `json:"requirements"`
	ExperienceLevel string `json:"experience_level"`
}

// CandidateProfile is the candidate-side input to match scoring.
type CandidateProfile struct {
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	CurrentPosition string   `json:"current_position"`
	Education       string   `json:"education"`
}

// MatchAnalysis holds the free-text portion of a match score.
type MatchAnalysis struct {
	Strengths      []string `json:"strengths"`
	Gaps           []string `json:"gaps"`
	Recommendation string   `json:"recommendation"`
}

// MatchScoreResult is the structured compatibility estimate returned by the
// model. All four scores lie in [0,100].
type MatchScoreResult struct {
	OverallScore    int           `json:"overall_score"`
	SkillsMatch     int           `json:"skills_match"`
	ExperienceMatch int           `json:"experience_match"`
	EducationMatch  int           `json:"education_match"`
	Analysis        MatchAnalysis `json:"analysis"`
}

// ZeroMatchScore returns the degraded-mode result used when no inference
// credential is configured: all-zero scores with empty, non-nil analysis slices.
func ZeroMatchScore() *MatchScoreResult {
	return &MatchScoreResult{
		Analysis: MatchAnalysis{
			Strengths: []string{},
			Gaps:      []string{},
		},
	}
}

// ParsedResume is the structured extraction of a free-text resume.
type ParsedResume struct {
	PersonalInfo         PersonalInfo      `json:"personal_info"`
	Skills               []string          `json:"skills"`
	Experience           []ExperienceEntry `json:"experience"`
	Education            []EducationEntry  `json:"education"`
	TotalExperienceYears float64           `json:"total_experience_years"`
}

// PersonalInfo holds contact fields extracted from a resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// ExperienceEntry is one position extracted from a resume.
type ExperienceEntry struct {
	Position         string   `json:"position"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
}

// EducationEntry is one education record extracted from a resume.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// EmptyParsedResume returns the degraded-mode skeleton used when no inference
// credential is configured.
func EmptyParsedResume() *ParsedResume {
	return &ParsedResume{
		Skills:     []string{},
		Experience: []ExperienceEntry{},
		Education:  []EducationEntry{},
	}
}
