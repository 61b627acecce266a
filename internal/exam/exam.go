package exam

import (
	"errors"
	"fmt"
	"strings"
)

// OptionCount is the number of alternatives every question carries (A-E).
const OptionCount = 5

// MaxQuestionCount bounds a single quiz request.
const MaxQuestionCount = 50

// DefaultQuestionCount is the count preselected on the setup screen.
const DefaultQuestionCount = 10

// ErrConfigurationInvalid is returned when a QuizConfig cannot start a quiz.
var ErrConfigurationInvalid = errors.New("invalid quiz configuration")

// Subject is one of the exam disciplines.
type Subject int

const (
	SubjectLicitacoes Subject = iota + 1
	SubjectExecucaoFinanceira
	SubjectAdministracaoPublica
)

var subjectLabels = map[Subject]string{
	SubjectLicitacoes:           "Licitações e Contratos",
	SubjectExecucaoFinanceira:   "Execução Financeira",
	SubjectAdministracaoPublica: "Administração Pública",
}

var subjectSlugs = map[Subject]string{
	SubjectLicitacoes:           "licitacoes",
	SubjectExecucaoFinanceira:   "execucao-financeira",
	SubjectAdministracaoPublica: "administracao-publica",
}

// AllSubjects returns every subject in display order.
func AllSubjects() []Subject {
	return []Subject{SubjectLicitacoes, SubjectExecucaoFinanceira, SubjectAdministracaoPublica}
}

// String returns the Portuguese display label.
func (s Subject) String() string {
	if l, ok := subjectLabels[s]; ok {
		return l
	}
	return fmt.Sprintf("Subject(%d)", int(s))
}

// Slug returns the URL-safe identifier used by the HTTP API and bank files.
func (s Subject) Slug() string {
	return subjectSlugs[s]
}

// Valid reports whether s is a known subject.
func (s Subject) Valid() bool {
	_, ok := subjectLabels[s]
	return ok
}

// ParseSubject accepts a display label or a slug.
func ParseSubject(v string) (Subject, error) {
	v = strings.TrimSpace(v)
	for _, s := range AllSubjects() {
		if strings.EqualFold(v, subjectLabels[s]) || strings.EqualFold(v, subjectSlugs[s]) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown subject %q", v)
}

func (s Subject) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown subject %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Subject) UnmarshalText(b []byte) error {
	parsed, err := ParseSubject(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Difficulty is the self-reported difficulty of a generated question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Fácil"
	DifficultyMedium Difficulty = "Média"
	DifficultyHard   Difficulty = "Difícil"
)

// AllDifficulties lists the accepted difficulty labels.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Valid reports whether d is one of the known labels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty maps a label to a Difficulty.
func ParseDifficulty(v string) (Difficulty, error) {
	d := Difficulty(strings.TrimSpace(v))
	if !d.Valid() {
		return "", fmt.Errorf("unknown difficulty %q", v)
	}
	return d, nil
}

// Question is a single multiple-choice item.
type Question struct {
	ID           int        `json:"id"`
	Subject      Subject    `json:"subject"`
	Difficulty   Difficulty `json:"difficulty"`
	Statement    string     `json:"statement"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctIndex"`
	Explanation  string     `json:"explanation"`
}

// Validate checks the structural invariants of a question.
func (q Question) Validate() error {
	switch {
	case q.ID <= 0:
		return fmt.Errorf("question id must be positive, got %d", q.ID)
	case !q.Subject.Valid():
		return fmt.Errorf("question %d: unknown subject", q.ID)
	case !q.Difficulty.Valid():
		return fmt.Errorf("question %d: unknown difficulty %q", q.ID, q.Difficulty)
	case strings.TrimSpace(q.Statement) == "":
		return fmt.Errorf("question %d: statement is empty", q.ID)
	case len(q.Options) != OptionCount:
		return fmt.Errorf("question %d: expected %d options, got %d", q.ID, OptionCount, len(q.Options))
	case q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options):
		return fmt.Errorf("question %d: correct index %d out of range", q.ID, q.CorrectIndex)
	case strings.TrimSpace(q.Explanation) == "":
		return fmt.Errorf("question %d: explanation is empty", q.ID)
	}
	for i, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			return fmt.Errorf("question %d: option %s is empty", q.ID, OptionLabel(i))
		}
	}
	return nil
}

// OptionLabel returns the letter shown next to option i ("A".."E").
func OptionLabel(i int) string {
	if i < 0 || i >= 26 {
		return "?"
	}
	return string(rune('A' + i))
}

// QuizConfig is the user's choice on the setup screen.
type QuizConfig struct {
	Subjects      []Subject `json:"subjects"`
	QuestionCount int       `json:"questionCount"`
}

// Validate returns an error wrapping ErrConfigurationInvalid when the
// configuration cannot start a quiz.
func (c QuizConfig) Validate() error {
	if len(c.Subjects) == 0 {
		return fmt.Errorf("%w: select at least one subject", ErrConfigurationInvalid)
	}
	seen := make(map[Subject]bool, len(c.Subjects))
	for _, s := range c.Subjects {
		if !s.Valid() {
			return fmt.Errorf("%w: unknown subject %d", ErrConfigurationInvalid, int(s))
		}
		if seen[s] {
			return fmt.Errorf("%w: duplicate subject %q", ErrConfigurationInvalid, s)
		}
		seen[s] = true
	}
	if c.QuestionCount <= 0 {
		return fmt.Errorf("%w: question count must be positive", ErrConfigurationInvalid)
	}
	if c.QuestionCount > MaxQuestionCount {
		return fmt.Errorf("%w: at most %d questions per quiz", ErrConfigurationInvalid, MaxQuestionCount)
	}
	return nil
}

// Includes reports whether s was requested.
func (c QuizConfig) Includes(s Subject) bool {
	for _, cs := range c.Subjects {
		if cs == s {
			return true
		}
	}
	return false
}

// SubjectLabels returns the display labels of the requested subjects.
func (c QuizConfig) SubjectLabels() []string {
	out := make([]string, len(c.Subjects))
	for i, s := range c.Subjects {
		out[i] = s.String()
	}
	return out
}
