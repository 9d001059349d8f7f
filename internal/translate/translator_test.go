package translate

import (
	"context"
	"reflect"
	"testing"

	"github.com/pricelens/pricelens/internal/model"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      model.TranslateConfig
		wantName string
		wantErr  bool
	}{
		{name: "empty provider is a noop", cfg: model.TranslateConfig{}, wantName: "noop"},
		{name: "openai needs a key", cfg: model.TranslateConfig{Provider: "openai"}, wantErr: true},
		{name: "openai with key", cfg: model.TranslateConfig{Provider: "openai", APIKey: "sk-test"}, wantName: "openai"},
		{name: "unknown provider", cfg: model.TranslateConfig{Provider: "babelfish"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if tr.Name() != tt.wantName {
				t.Errorf("name = %q, want %q", tr.Name(), tt.wantName)
			}
		})
	}
}

func TestNoop_Passthrough(t *testing.T) {
	texts := []string{"Max video duration: 30 minutes", "Videos are private by default"}
	got, err := Noop{}.Translate(context.Background(), texts)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if !reflect.DeepEqual(got, texts) {
		t.Errorf("noop should pass texts through, got %v", got)
	}
}

func TestParseNumberedLine(t *testing.T) {
	tests := []struct {
		line     string
		wantIdx  int
		wantText string
		wantOK   bool
	}{
		{"3. some text", 3, "some text", true},
		{"12.  padded  ", 12, "padded", true},
		{"1.", 1, "", true},
		{"no number", 0, "", false},
		{". leading dot", 0, "", false},
		{"3a. mixed", 0, "", false},
		{"", 0, "", false},
	}
	for _, tt := range tests {
		idx, text, ok := parseNumberedLine(tt.line)
		if idx != tt.wantIdx || text != tt.wantText || ok != tt.wantOK {
			t.Errorf("parseNumberedLine(%q) = (%d, %q, %v), want (%d, %q, %v)",
				tt.line, idx, text, ok, tt.wantIdx, tt.wantText, tt.wantOK)
		}
	}
}
