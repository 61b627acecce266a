package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequestEvent is one call to a question generation model, successful
// or not. `simulado llm` reads these for debugging and cost estimates.
type LLMRequestEvent struct {
	ent.Schema
}

func (LLMRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (LLMRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").NotEmpty().
			Comment("gemini, openai, openrouter, anthropic or mock"),
		field.String("model").
			Comment("Model ID reported by the vendor, else the configured one"),
		field.String("purpose").NotEmpty(),
		field.Int("input_tokens").NonNegative().Default(0),
		field.Int("output_tokens").NonNegative().Default(0),
		field.Int64("latency_ms").NonNegative().Default(0),
		field.Bool("success"),
		field.String("error_message").Default(""),
		field.Text("request_body").Default("").
			Comment("System prompt, messages and schema as plain text"),
		field.Text("response_body").Default("").
			Comment("Model output, kept on schema and truncation failures too"),
	}
}

func (LLMRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("purpose"),
	}
}
