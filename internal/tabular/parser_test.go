package tabular

import (
	"errors"
	"testing"
)

var commentColumns = []string{"commentId", "videoId", "textOriginal", "authorDisplayName", "likeCount", "publishedAt"}

func TestParseCommaSeparated(t *testing.T) {
	input := "commentId,videoId,textOriginal\nc1,v1,hello\nc2,v1,world\n"

	table, err := Parse(input, commentColumns)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if table.Delimiter != ',' {
		t.Fatalf("delimiter = %q, want ','", table.Delimiter)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[0]["textOriginal"] != "hello" {
		t.Fatalf("row value = %q, want hello", table.Rows[0]["textOriginal"])
	}
}

func TestParseDelimiterDetection(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  rune
	}{
		{"semicolon", "commentId;videoId;textOriginal\nc1;v1;hi\n", ';'},
		{"pipe", "commentId|videoId|textOriginal\nc1|v1|hi\n", '|'},
		{"tab", "commentId\tvideoId\ttextOriginal\nc1\tv1\thi\n", '\t'},
		{"tie keeps comma", "nothing here\nstill nothing\n", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Parse(tt.input, commentColumns)
			if err != nil {
				t.Fatalf("Parse error: %v", err)
			}
			if table.Delimiter != tt.want {
				t.Fatalf("delimiter = %q, want %q", table.Delimiter, tt.want)
			}
		})
	}
}

func TestParseQuotedFields(t *testing.T) {
	input := "commentId,videoId,textOriginal\nc1,v1,\"hello, world\"\nc2,v1,\"she said \"\"hi\"\"\"\n"

	table, err := Parse(input, commentColumns)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if got := table.Rows[0]["textOriginal"]; got != "hello, world" {
		t.Fatalf("quoted delimiter field = %q", got)
	}
	if got := table.Rows[1]["textOriginal"]; got != `she said "hi"` {
		t.Fatalf("escaped quote field = %q", got)
	}
}

func TestParseDropsMalformedRows(t *testing.T) {
	input := "commentId,videoId,textOriginal\nc1,v1,ok\nc2,v1\nc3,v1,ok,extra\nc4,v1,fine\n"

	table, err := Parse(input, commentColumns)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if table.Dropped != 2 {
		t.Fatalf("dropped = %d, want 2", table.Dropped)
	}
}

func TestParseEmptyInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "  \n\n \t \n"},
		{"header only", "commentId,videoId,textOriginal\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.input, commentColumns); !errors.Is(err, ErrEmptyInput) {
				t.Fatalf("err = %v, want ErrEmptyInput", err)
			}
		})
	}
}

func TestParseSkipsBlankLines(t *testing.T) {
	input := "commentId,videoId,textOriginal\n\nc1,v1,hello\n\n\nc2,v1,world\n"

	table, err := Parse(input, commentColumns)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(table.Rows) != 2 || table.Dropped != 0 {
		t.Fatalf("rows = %d dropped = %d, want 2/0", len(table.Rows), table.Dropped)
	}
}

func TestSplitFieldsUnclosedQuote(t *testing.T) {
	fields := SplitFields(`a,"broken,b`, ',')
	if len(fields) != 2 {
		t.Fatalf("fields = %v, want trailing content folded into quoted field", fields)
	}
	if fields[1] != "broken,b" {
		t.Fatalf("fields[1] = %q", fields[1])
	}
}
