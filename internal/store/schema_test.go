package store

import (
	"sort"
	"testing"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/edupath/ent/schema"
)

// entColumns flattens an ent schema into column name to type, the way
// the code generator lays out its table.
func entColumns(s ent.Interface) map[string]field.Type {
	cols := map[string]field.Type{}
	var fields []ent.Field
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	fields = append(fields, s.Fields()...)

	hasID := false
	for _, f := range fields {
		d := f.Descriptor()
		name := d.Name
		if d.StorageKey != "" {
			name = d.StorageKey
		}
		if d.Name == "id" {
			hasID = true
		}
		cols[name] = d.Info.Type
	}
	if !hasID {
		cols["id"] = field.TypeInt
	}
	return cols
}

func TestTablesMatchEntSchema(t *testing.T) {
	pairs := []struct {
		schema ent.Interface
		table  *schema.Table
	}{
		{entschema.LearningPath{}, learningPathsTable},
		{entschema.DailyProgress{}, dailyProgressesTable},
		{entschema.PathCursor{}, pathCursorsTable},
		{entschema.LLMRequestEvent{}, llmRequestEventsTable},
	}

	for _, p := range pairs {
		t.Run(p.table.Name, func(t *testing.T) {
			want := entColumns(p.schema)
			got := map[string]field.Type{}
			for _, c := range p.table.Columns {
				got[c.Name] = c.Type
			}

			if len(got) != len(want) {
				t.Errorf("columns = %v, want %v", keys(got), keys(want))
			}
			for name, typ := range want {
				gt, ok := got[name]
				if !ok {
					t.Errorf("missing column %q", name)
					continue
				}
				if gt != typ {
					t.Errorf("column %q type = %v, want %v", name, gt, typ)
				}
			}
		})
	}
}

func keys(m map[string]field.Type) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
