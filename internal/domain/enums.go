package domain

import "strings"

type ProjectType string

const (
	ProjectInterim ProjectType = "interim"
	ProjectThesis  ProjectType = "thesis"
)

type InstructorRank string

const (
	RankFaculty   InstructorRank = "faculty"
	RankAssistant InstructorRank = "assistant"
)

type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// projectTypeAliases maps the mixed source vocabulary onto the canonical
// pair. "ara" is the interim defense, "bitirme" the final thesis defense.
var projectTypeAliases = map[string]ProjectType{
	"interim": ProjectInterim,
	"ara":     ProjectInterim,
	"thesis":  ProjectThesis,
	"final":   ProjectThesis,
	"bitirme": ProjectThesis,
}

// NormalizeProjectType resolves a raw project type string to its canonical
// form. The second return is false for unknown vocabulary.
func NormalizeProjectType(raw string) (ProjectType, bool) {
	t, ok := projectTypeAliases[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}
