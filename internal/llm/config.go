// Package llm provides the inference client abstraction used for match scoring,
// job-description generation and resume extraction.
package llm

// Task identifies a category of inference work. Each task maps to a model; the
// cheap flash models are enough for extraction and scoring, description
// generation gets the standard model for better prose.
type Task string

const (
	// TaskScoring is structured candidate/job compatibility scoring.
	TaskScoring Task = "scoring"
	// TaskExtraction is structured data extraction (resume parsing).
	TaskExtraction Task = "extraction"
	// TaskDescription is free-text job description generation.
	TaskDescription Task = "description"
)

// Config holds the model selection for the application.
type Config struct {
	Models map[Task]string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[Task]string{
			TaskScoring:     "gemini-2.5-flash-lite",
			TaskExtraction:  "gemini-2.5-flash-lite",
			TaskDescription: "gemini-2.5-flash",
		},
	}
}

// Model returns the model name for a task, falling back to the scoring model
// when the task has no explicit entry.
func (c *Config) Model(task Task) string {
	if model, ok := c.Models[task]; ok {
		return model
	}
	return c.Models[TaskScoring]
}

// WithModel returns a copy of the config with one task remapped.
func (c *Config) WithModel(task Task, model string) *Config {
	next := &Config{Models: make(map[Task]string, len(c.Models))}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[task] = model
	return next
}
