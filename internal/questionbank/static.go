package questionbank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/abhisek/simulado/internal/exam"
)

// bankFile is the on-disk bank format, the same shape the LLM returns.
type bankFile struct {
	Questions []exam.Question `json:"questions"`
}

// Load reads a bank from r and validates every question.
func Load(r io.Reader) ([]exam.Question, error) {
	var f bankFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, fmt.Errorf("bank has no questions")
	}
	for _, q := range f.Questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("invalid bank: %w", err)
		}
	}
	return f.Questions, nil
}

// LoadFile reads a bank from the JSON file at path.
func LoadFile(path string) ([]exam.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Export writes questions in the bank file format.
func Export(w io.Writer, questions []exam.Question) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(bankFile{Questions: questions})
}

// StaticProvider serves quizzes from a fixed bank, for offline practice.
type StaticProvider struct {
	questions []exam.Question
}

// NewStaticProvider creates a provider over a loaded bank.
func NewStaticProvider(questions []exam.Question) *StaticProvider {
	return &StaticProvider{questions: append([]exam.Question(nil), questions...)}
}

// Generate picks questions round-robin across the requested subjects,
// keeping bank order within each subject.
func (p *StaticProvider) Generate(ctx context.Context, cfg exam.QuizConfig) ([]exam.Question, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fail("canceled", err)
	}

	pools := make(map[exam.Subject][]exam.Question, len(cfg.Subjects))
	for _, q := range p.questions {
		if cfg.Includes(q.Subject) {
			pools[q.Subject] = append(pools[q.Subject], q)
		}
	}

	picked := make([]exam.Question, 0, cfg.QuestionCount)
	for len(picked) < cfg.QuestionCount {
		progressed := false
		for _, s := range cfg.Subjects {
			if len(picked) == cfg.QuestionCount {
				break
			}
			if pool := pools[s]; len(pool) > 0 {
				picked = append(picked, pool[0])
				pools[s] = pool[1:]
				progressed = true
			}
		}
		if !progressed {
			return nil, fail("insufficient", fmt.Errorf("bank has %d matching questions, %d requested", len(picked), cfg.QuestionCount))
		}
	}
	return renumber(picked), nil
}
