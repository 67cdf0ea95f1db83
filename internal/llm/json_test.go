package llm

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain object", `{"a": 1}`, `{"a": 1}`, false},
		{"json fence", "Here you go:\n```json\n{\"a\": 1}\n```\n", `{"a": 1}`, false},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`, false},
		{"surrounding prose", `The answer is {"a": 1} as requested.`, `{"a": 1}`, false},
		{"no json", "sorry, I cannot help with that", "", true},
		{"broken json", `{"a": `, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
