package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"
)

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestTableFormatter_Table(t *testing.T) {
	table := &Table{}
	table.SetHeaders("NAME", "COUNT")
	table.AddRow("Garment Upper body", "120")
	table.AddRow("Shoes", "12")

	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	got := lines(buf.String())
	if len(got) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(got), buf.String())
	}
	if !strings.HasPrefix(got[0], "NAME") || !strings.HasPrefix(got[2], "Shoes") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
	// Columns are aligned.
	if strings.Index(got[0], "COUNT") != strings.Index(got[1], "120") {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}

	buf.Reset()
	if err := (&TableFormatter{NoHeaders: true}).Format(&buf, *table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.Contains(buf.String(), "NAME") {
		t.Error("NoHeaders still printed headers")
	}
}

func TestTableFormatter_StructSlice(t *testing.T) {
	data := []product{
		{ArticleID: "0108775015", Name: "Strap top", Price: 8.25, Group: "Garment Upper body", ImagePath: "images/010/0108775015.jpg"},
	}

	var narrow, wide bytes.Buffer
	if err := (&TableFormatter{}).Format(&narrow, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if err := (&TableFormatter{Wide: true}).Format(&wide, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	head := lines(narrow.String())[0]
	for _, col := range []string{"ARTICLE_ID", "NAME", "PRICE"} {
		if !strings.Contains(head, col) {
			t.Errorf("header %q missing %s", head, col)
		}
	}
	if strings.Contains(head, "PRODUCT_GROUP_NAME") {
		t.Error("wide column shown in narrow output")
	}
	if !strings.Contains(wide.String(), "PRODUCT_GROUP_NAME") {
		t.Error("wide column missing in wide output")
	}
	for _, out := range []string{narrow.String(), wide.String()} {
		if strings.Contains(out, "IMAGE_PATH") || strings.Contains(out, "images/") {
			t.Error(`table:"-" column shown`)
		}
	}
	if !strings.Contains(narrow.String(), "8.25") {
		t.Error("price not formatted")
	}
}

func TestTableFormatter_PointerSliceAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	f := &TableFormatter{}

	if err := f.Format(&buf, []*product{{Name: "Sneaker"}, nil}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got := lines(buf.String()); len(got) != 2 {
		t.Errorf("nil elements should be skipped, got:\n%s", buf.String())
	}

	buf.Reset()
	if err := f.Format(&buf, []product{}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("empty slice output = %q", buf.String())
	}

	buf.Reset()
	if err := f.Format(&buf, nil); err != nil || buf.Len() != 0 {
		t.Errorf("Format(nil) = %q, %v", buf.String(), err)
	}
}

func TestTableFormatter_MapSorted(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{"mode": "development", "api.url": "http://localhost:8000", "log.level": "debug"}
	if err := (&TableFormatter{}).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	got := lines(buf.String())
	if len(got) != 4 {
		t.Fatalf("got %d lines", len(got))
	}
	if !strings.HasPrefix(got[1], "api.url") || !strings.HasPrefix(got[3], "mode") {
		t.Errorf("rows not sorted:\n%s", buf.String())
	}
}

func TestTableFormatter_SingleStruct(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, &product{ArticleID: "1", Name: "Tee"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "FIELD") || !strings.Contains(out, "article_id") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "product_group_name") {
		t.Error("wide field shown for single struct")
	}
}

func TestTableFormatter_FallbackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TableFormatter{}).Format(&buf, "plain"); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != `"plain"` {
		t.Errorf("output = %q", buf.String())
	}
}

func TestFormatValue(t *testing.T) {
	s := "pointer"
	var nilPtr *string
	var nilIface any

	tests := []struct {
		name  string
		input reflect.Value
		want  string
	}{
		{"string", reflect.ValueOf("hello"), "hello"},
		{"empty string", reflect.ValueOf(""), "-"},
		{"int", reflect.ValueOf(42), "42"},
		{"uint", reflect.ValueOf(uint(99)), "99"},
		{"float", reflect.ValueOf(3.14159), "3.14"},
		{"bool", reflect.ValueOf(true), "true"},
		{"string slice", reflect.ValueOf([]string{"Black", "White"}), "Black, White"},
		{"int slice", reflect.ValueOf([]int{1, 2, 3}), "[3 items]"},
		{"empty slice", reflect.ValueOf([]int{}), "-"},
		{"map", reflect.ValueOf(map[string]int{"a": 1}), "{1 keys}"},
		{"pointer", reflect.ValueOf(&s), "pointer"},
		{"nil pointer", reflect.ValueOf(nilPtr), "-"},
		{"nil interface", reflect.ValueOf(&nilIface).Elem(), "-"},
		{"invalid", reflect.Value{}, "-"},
		{"time", reflect.ValueOf(time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)), "2026-10-01 09:30"},
		{"zero time", reflect.ValueOf(time.Time{}), "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.input); got != tt.want {
				t.Errorf("formatValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Name":          "name",
		"PrimaryColor":  "primary_color",
		"already_snake": "already_snake",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
