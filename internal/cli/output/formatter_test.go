package output

import (
	"bytes"
	"strings"
	"testing"
)

type product struct {
	ArticleID string  `json:"article_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Group     string  `json:"product_group_name" table:"wide"`
	ImagePath string  `json:"image_path" table:"-"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{" JSON ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"wide", FormatWide, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("json format should give a JSONFormatter")
	}
	if _, ok := NewFormatter(FormatYAML).(*YAMLFormatter); !ok {
		t.Error("yaml format should give a YAMLFormatter")
	}
	if f, ok := NewFormatter(FormatWide).(*TableFormatter); !ok || !f.Wide {
		t.Error("wide format should give a wide TableFormatter")
	}
	if f, ok := NewFormatter("").(*TableFormatter); !ok || f.Wide {
		t.Error("default should be a narrow TableFormatter")
	}
	if !FormatJSON.Structured() || FormatWide.Structured() {
		t.Error("Structured() misclassifies formats")
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, product{ArticleID: "0108775015", Price: 8.25}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"article_id": "0108775015"`) {
		t.Errorf("output = %s", out)
	}
	if !strings.Contains(out, "\n  ") {
		t.Error("JSON output should be indented")
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	f := &YAMLFormatter{}

	t.Run("uses json names in order", func(t *testing.T) {
		var buf bytes.Buffer
		err := f.Format(&buf, []product{{ArticleID: "0108775015", Name: "Strap top", Price: 8.25}})
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		out := buf.String()

		want := "- article_id: \"0108775015\"\n  name: Strap top\n  price: 8.25\n"
		if !strings.HasPrefix(out, want) {
			t.Errorf("output =\n%s\nwant prefix\n%s", out, want)
		}
		if strings.Contains(out, "{") {
			t.Error("output should use block style")
		}
	})

	t.Run("nil", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, nil); err != nil {
			t.Fatalf("Format(nil) error = %v", err)
		}
		if strings.TrimSpace(buf.String()) != "null" {
			t.Errorf("Format(nil) = %q", buf.String())
		}
	})

	t.Run("unencodable", func(t *testing.T) {
		var buf bytes.Buffer
		if err := f.Format(&buf, make(chan int)); err == nil {
			t.Error("Format(chan) should fail")
		}
	})
}
