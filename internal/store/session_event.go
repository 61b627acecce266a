package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const sessionEventsTable = "session_events"

var sessionEventColumns = []string{
	"id", "sequence", "created_at", "session_id", "parent_id", "action",
	"subjects", "questions", "answered", "correct_answers", "net_score",
	"duration_secs",
}

// subjectSep joins subject labels in a single column.
const subjectSep = "|"

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.sql().Insert(sessionEventsTable).
		Columns(sessionEventColumns[1:]...).
		Values(
			seqNum,
			time.Now().UnixMilli(),
			data.SessionID,
			data.ParentID,
			data.Action,
			strings.Join(data.Subjects, subjectSep),
			data.Questions,
			data.Answered,
			data.CorrectAnswers,
			data.NetScore,
			data.DurationSecs,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	sel := r.sql().Select(sessionEventColumns...).
		From(entsql.Table(sessionEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEvent
	for rows.Next() {
		var (
			e         SessionEvent
			createdAt int64
			subjects  string
		)
		err := rows.Scan(
			&e.ID, &e.Sequence, &createdAt, &e.SessionID, &e.ParentID, &e.Action,
			&subjects, &e.Questions, &e.Answered, &e.CorrectAnswers, &e.NetScore,
			&e.DurationSecs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		e.Timestamp = time.UnixMilli(createdAt)
		if subjects != "" {
			e.Subjects = strings.Split(subjects, subjectSep)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ EventRepo = (*eventRepo)(nil)
