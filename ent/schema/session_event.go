package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// SessionEvent records quiz lifecycle transitions (start, finish, retry).
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("UUID of the quiz session"),
		field.String("parent_id").
			Default("").
			Comment("Session a retry was built from"),
		field.String("action").
			NotEmpty().
			Comment("start, finish or retry"),
		field.String("subjects").
			Default("").
			Comment("Subject labels joined with |"),
		field.Int("questions").
			Default(0),
		field.Int("answered").
			Default(0).
			Comment("Non-blank answers (on finish only)"),
		field.Int("correct_answers").
			Default(0).
			Comment("Total correct (on finish only)"),
		field.Float("net_score").
			Default(0).
			Comment("Correct minus the wrong-answer penalty (on finish only)"),
		field.Int("duration_secs").
			Default(0).
			Comment("Elapsed seconds (on finish only)"),
	}
}

func (SessionEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
	}
}
