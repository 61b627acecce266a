package store

import (
	"testing"

	"entgo.io/ent"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/simulado/ent/schema"
)

// entColumns lists the columns an ent schema declares, in table order.
func entColumns(mixins []ent.Mixin, fields []ent.Field) []string {
	cols := []string{"id"}
	for _, m := range mixins {
		for _, f := range m.Fields() {
			cols = append(cols, f.Descriptor().Name)
		}
	}
	for _, f := range fields {
		cols = append(cols, f.Descriptor().Name)
	}
	return cols
}

func TestColumnsMatchEntSchema(t *testing.T) {
	assert.Equal(t,
		entColumns(schema.LLMRequestEvent{}.Mixin(), schema.LLMRequestEvent{}.Fields()),
		llmEventColumns)
	assert.Equal(t,
		entColumns(schema.SessionEvent{}.Mixin(), schema.SessionEvent{}.Fields()),
		sessionEventColumns)
}

func TestMigrationHasEveryColumn(t *testing.T) {
	s := openTestStore(t)
	for table, cols := range map[string][]string{
		llmEventsTable:     llmEventColumns,
		sessionEventsTable: sessionEventColumns,
	} {
		rows, err := s.DB().Query("SELECT name FROM pragma_table_info(?)", table)
		if err != nil {
			t.Fatalf("table info %s: %v", table, err)
		}
		var got []string
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				t.Fatal(err)
			}
			got = append(got, name)
		}
		rows.Close()
		assert.Equal(t, cols, got, table)
	}
}

func TestMigrationHasEntIndexes(t *testing.T) {
	s := openTestStore(t)
	indexed := func(table string) map[string]bool {
		rows, err := s.DB().Query(
			"SELECT ii.name FROM pragma_index_list(?) il, pragma_index_info(il.name) ii", table)
		if err != nil {
			t.Fatalf("index list %s: %v", table, err)
		}
		defer rows.Close()
		cols := map[string]bool{}
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				t.Fatal(err)
			}
			cols[name] = true
		}
		return cols
	}

	for table, indexes := range map[string][]ent.Index{
		llmEventsTable:     append(schema.EventMixin{}.Indexes(), schema.LLMRequestEvent{}.Indexes()...),
		sessionEventsTable: append(schema.EventMixin{}.Indexes(), schema.SessionEvent{}.Indexes()...),
	} {
		have := indexed(table)
		for _, idx := range indexes {
			for _, col := range idx.Descriptor().Fields {
				assert.True(t, have[col], "%s: no index on %s", table, col)
			}
		}
	}
}
