package ux

import (
	"bytes"
	"strings"
	"testing"
)

type testData struct {
	Name  string `json:"name" yaml:"name"`
	Value int    `json:"value" yaml:"value"`
}

func sampleTable() *Table {
	return &Table{
		Title:   "员工",
		Headers: []string{"ID", "姓名", "部门"},
		Rows: [][]string{
			{"1", "张三", "研发部"},
			{"2", "李四", "市场部"},
		},
		Footer: "第 1/1 页，共 2 条",
		Source: []testData{{Name: "张三", Value: 1}, {Name: "李四", Value: 2}},
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"json format", "json", false},
		{"yaml format", "yaml", false},
		{"text format", "text", false},
		{"empty format defaults to text", "", false},
		{"unknown format", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFormatter(tt.format, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewFormatter() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter, err := NewFormatter("json", &FormatterOptions{Writer: &buf})
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}

	data := testData{Name: "test", Value: 42}
	if err := formatter.Format(data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, `"name": "test"`) {
		t.Errorf("JSON output missing expected field: %s", output)
	}
	if !strings.Contains(output, `"value": 42`) {
		t.Errorf("JSON output missing expected field: %s", output)
	}
}

func TestJSONFormatterCompact(t *testing.T) {
	var buf bytes.Buffer
	formatter, err := NewFormatter("json", &FormatterOptions{
		Writer:  &buf,
		Compact: true,
	})
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}

	data := testData{Name: "test", Value: 42}
	if err := formatter.Format(data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	// Compact JSON should be single line (no indentation)
	if strings.Count(output, "\n") > 1 {
		t.Errorf("Compact JSON should be single line, got: %s", output)
	}
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter, err := NewFormatter("yaml", &FormatterOptions{Writer: &buf})
	if err != nil {
		t.Fatalf("NewFormatter() error = %v", err)
	}

	data := testData{Name: "test", Value: 42}
	if err := formatter.Format(data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "name: test") {
		t.Errorf("YAML output missing expected field: %s", output)
	}
	if !strings.Contains(output, "value: 42") {
		t.Errorf("YAML output missing expected field: %s", output)
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		data    interface{}
		want    string
		wantErr bool
	}{
		{
			name: "string data",
			data: "hello world",
			want: "hello world",
		},
		{
			name:    "complex type without String method",
			data:    testData{Name: "test", Value: 42},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			formatter, err := NewFormatter("text", &FormatterOptions{Writer: &buf})
			if err != nil {
				t.Fatalf("NewFormatter() error = %v", err)
			}

			err = formatter.Format(tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("Format() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				output := strings.TrimSpace(buf.String())
				if output != tt.want {
					t.Errorf("Format() output = %q, want %q", output, tt.want)
				}
			}
		})
	}
}

func TestTableText(t *testing.T) {
	var buf bytes.Buffer
	formatter, _ := NewFormatter("text", &FormatterOptions{Writer: &buf, NoColor: true})

	if err := formatter.Format(sampleTable()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"员工", "姓名", "张三", "市场部", "第 1/1 页"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestTableEmpty(t *testing.T) {
	tbl := &Table{Headers: []string{"ID"}}
	if got := tbl.Render(true); !strings.Contains(got, "(empty)") {
		t.Errorf("Render() = %q, want empty marker", got)
	}
}

func TestTableStructuredUsesSource(t *testing.T) {
	var buf bytes.Buffer
	formatter, _ := NewFormatter("json", &FormatterOptions{Writer: &buf, Compact: true})

	if err := formatter.Format(sampleTable()); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"name":"张三"`) {
		t.Errorf("json output should encode Source, got %s", buf.String())
	}
	if strings.Contains(buf.String(), "研发部") {
		t.Errorf("json output should not contain rendered rows, got %s", buf.String())
	}
}

func TestDetail(t *testing.T) {
	d := &Detail{
		Title: "当前用户",
		Fields: []Field{
			{Label: "用户名", Value: "admin"},
			{Label: "角色", Value: "系统管理员"},
		},
	}

	text := d.Render(true)
	if !strings.Contains(text, "当前用户") || !strings.Contains(text, "系统管理员") {
		t.Errorf("Render() = %q", text)
	}

	var buf bytes.Buffer
	formatter, _ := NewFormatter("yaml", &FormatterOptions{Writer: &buf})
	if err := formatter.Format(d); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "用户名: admin") {
		t.Errorf("yaml output = %q", buf.String())
	}
}
