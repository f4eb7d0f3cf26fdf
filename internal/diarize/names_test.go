package diarize

import "testing"

func TestSelfIntroducedName(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     string
		wantBool bool
	}{
		{name: "this is", text: "Thanks for calling. This is Fania.", want: "Fania", wantBool: true},
		{name: "my name is", text: "Sure, my name is Gina, one moment.", want: "Gina", wantBool: true},
		{name: "case insensitive cue", text: "THIS IS Anthony", want: "Anthony", wantBool: true},
		{name: "lowercase word is not a name", text: "this is great news", wantBool: false},
		{name: "no cue", text: "Let me check on that for you.", wantBool: false},
		{name: "empty", text: "", wantBool: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelfIntroducedName(tt.text)
			if ok != tt.wantBool || got != tt.want {
				t.Fatalf("SelfIntroducedName(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantBool)
			}
		})
	}
}

func TestAddressedName(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		want     string
		wantBool bool
	}{
		{name: "hi", text: "Hi Anthony, thanks for holding.", want: "Anthony", wantBool: true},
		{name: "hello with comma", text: "Hello, Tania.", want: "Tania", wantBool: true},
		{name: "hey lowercase cue", text: "hey Sam, quick question", want: "Sam", wantBool: true},
		{name: "greeting without name", text: "They said hi to everyone.", wantBool: false},
		{name: "cue inside a word", text: "Highway traffic was terrible.", wantBool: false},
		{name: "empty", text: "", wantBool: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AddressedName(tt.text)
			if ok != tt.wantBool || got != tt.want {
				t.Fatalf("AddressedName(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantBool)
			}
		})
	}
}

func TestIsSyntheticLabel(t *testing.T) {
	tests := []struct {
		label string
		want  bool
	}{
		{label: "Speaker 1", want: true},
		{label: "Speaker 12", want: true},
		{label: "Anthony", want: false},
		{label: "Speaker", want: false},
		{label: "speaker 1", want: false},
		{label: "Speaker one", want: false},
	}

	for _, tt := range tests {
		if got := IsSyntheticLabel(tt.label); got != tt.want {
			t.Errorf("IsSyntheticLabel(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}
