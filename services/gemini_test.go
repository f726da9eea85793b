package services

import "testing"

func TestCleanModelOutput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"uppercase fence", "```JSON\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n  ", `{"a": 1}`},
	}
	for _, tc := range cases {
		if got := cleanModelOutput(tc.in); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDecodeModelJSON(t *testing.T) {
	var parsed struct {
		Title string `json:"title"`
	}
	if err := decodeModelJSON("```json\n{\"title\": \"Photosynthesis\"}\n```", &parsed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Title != "Photosynthesis" {
		t.Errorf("got %q", parsed.Title)
	}

	if err := decodeModelJSON("I cannot help with that.", &parsed); err == nil {
		t.Error("expected non-JSON output to fail decoding")
	}
}
