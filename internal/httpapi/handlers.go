package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/simulado/internal/events"
	"github.com/abhisek/simulado/internal/exam"
	"github.com/abhisek/simulado/internal/questionbank"
	"github.com/abhisek/simulado/internal/report"
	"github.com/abhisek/simulado/internal/session"
)

type subjectDTO struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}

func ListSubjectsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := make([]subjectDTO, 0, 3)
		for _, s := range exam.AllSubjects() {
			out = append(out, subjectDTO{Slug: s.Slug(), Label: s.String()})
		}
		respondJSON(w, http.StatusOK, out)
	}
}

type createQuizRequest struct {
	Subjects      []string `json:"subjects"`
	QuestionCount int      `json:"questionCount"`
}

func CreateQuizHandler(provider questionbank.Provider, reg *Registry, rec *events.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createQuizRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		cfg := exam.QuizConfig{QuestionCount: req.QuestionCount}
		for _, v := range req.Subjects {
			s, err := exam.ParseSubject(v)
			if err != nil {
				respondError(w, http.StatusUnprocessableEntity, err.Error())
				return
			}
			cfg.Subjects = append(cfg.Subjects, s)
		}
		if err := cfg.Validate(); err != nil {
			respondErr(w, err)
			return
		}

		questions, err := provider.Generate(r.Context(), cfg)
		if err != nil {
			respondErr(w, err)
			return
		}
		s, err := session.New(questions)
		if err != nil {
			respondErr(w, &questionbank.ProviderFailure{Reason: "validation", Err: err})
			return
		}
		reg.Add(s, "")
		rec.Record(r.Context(), events.Started(s.ID(), questions))

		respondJSON(w, http.StatusCreated, report.NewSessionView(s))
	}
}

func GetSessionHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		var body any
		err := reg.With(id, func(s *session.Session) error {
			if res, ok := s.Result(); ok {
				rv := report.NewResultView(s.Questions(), res)
				rv.SessionID = s.ID()
				body = rv
				return nil
			}
			body = report.NewSessionView(s)
			return nil
		})
		if err != nil {
			respondErr(w, err)
			return
		}
		respondJSON(w, http.StatusOK, body)
	}
}

type answerRequest struct {
	OptionIndex *int `json:"optionIndex"`
}

func SelectAnswerHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questionID, err := strconv.Atoi(chi.URLParam(r, "questionID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid question id")
			return
		}
		var req answerRequest
		if err := decodeJSON(r, &req); err != nil || req.OptionIndex == nil {
			respondError(w, http.StatusBadRequest, "optionIndex is required")
			return
		}
		mutate(w, reg, chi.URLParam(r, "sessionID"), func(s *session.Session) error {
			return s.Select(questionID, *req.OptionIndex)
		})
	}
}

func ToggleFlagHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questionID, err := strconv.Atoi(chi.URLParam(r, "questionID"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid question id")
			return
		}
		mutate(w, reg, chi.URLParam(r, "sessionID"), func(s *session.Session) error {
			return s.ToggleFlag(questionID)
		})
	}
}

type navigateRequest struct {
	Direction string `json:"direction"`
}

func NavigateHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req navigateRequest
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		dir, err := session.ParseDirection(req.Direction)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		mutate(w, reg, chi.URLParam(r, "sessionID"), func(s *session.Session) error {
			if s.Finished() {
				return session.ErrFinished
			}
			s.Navigate(dir)
			return nil
		})
	}
}

type jumpRequest struct {
	Index *int `json:"index"`
}

func JumpHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req jumpRequest
		if err := decodeJSON(r, &req); err != nil || req.Index == nil {
			respondError(w, http.StatusBadRequest, "index is required")
			return
		}
		mutate(w, reg, chi.URLParam(r, "sessionID"), func(s *session.Session) error {
			return s.JumpTo(*req.Index)
		})
	}
}

// mutate applies fn and responds with the resulting session view.
func mutate(w http.ResponseWriter, reg *Registry, id string, fn func(s *session.Session) error) {
	var view report.SessionView
	err := reg.With(id, func(s *session.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		view = report.NewSessionView(s)
		return nil
	})
	if err != nil {
		respondErr(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func FinishHandler(reg *Registry, rec *events.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		var (
			view      report.ResultView
			event     events.QuizEvent
			firstCall bool
		)
		err := reg.With(id, func(s *session.Session) error {
			firstCall = !s.Finished()
			res := s.Finish()
			questions := s.Questions()
			view = report.NewResultView(questions, res)
			view.SessionID = s.ID()
			event = events.Finished(s.ID(), questions, res)
			return nil
		})
		if err != nil {
			respondErr(w, err)
			return
		}
		// The clock's tick takes the session lock, so stop it outside With.
		_ = reg.StopClock(id)
		if firstCall {
			event.ParentID = reg.ParentID(id)
			rec.Record(r.Context(), event)
		}
		respondJSON(w, http.StatusOK, view)
	}
}

func RetryHandler(reg *Registry, rec *events.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		parentID := chi.URLParam(r, "sessionID")
		var next *session.Session
		err := reg.With(parentID, func(s *session.Session) error {
			var err error
			next, err = session.Retry(s)
			return err
		})
		if err != nil {
			respondErr(w, err)
			return
		}
		reg.Add(next, parentID)
		rec.Record(r.Context(), events.Retried(next.ID(), parentID, next.Questions()))

		respondJSON(w, http.StatusCreated, report.NewSessionView(next))
	}
}

func DeleteSessionHandler(reg *Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := reg.Remove(chi.URLParam(r, "sessionID")); err != nil {
			respondErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
