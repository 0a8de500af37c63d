package domain

import "testing"

func TestNewMoodQuery(t *testing.T) {
	tests := []struct {
		name      string
		mood      string
		genre     string
		wantErr   bool
		wantGenre string
	}{
		{name: "valid with genre", mood: "nostalgic summer nights", genre: "rock", wantGenre: "rock"},
		{name: "missing genre defaults", mood: "calm", genre: "", wantGenre: DefaultGenre},
		{name: "whitespace genre defaults", mood: "calm", genre: "   ", wantGenre: DefaultGenre},
		{name: "empty mood rejected", mood: "", wantErr: true},
		{name: "whitespace mood rejected", mood: "   ", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := NewMoodQuery(tc.mood, tc.genre)
			if (err != nil) != tc.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if tc.wantErr {
				return
			}
			if q.Genre != tc.wantGenre {
				t.Fatalf("expected genre %q, got %q", tc.wantGenre, q.Genre)
			}
		})
	}
}

func TestThemeValid(t *testing.T) {
	tests := []struct {
		name  string
		theme Theme
		want  bool
	}{
		{name: "valid dark color", theme: Theme{MoodName: "Calm", HexColor: "#1f2937"}, want: true},
		{name: "uppercase hex", theme: Theme{MoodName: "Calm", HexColor: "#ABCDEF"}, want: true},
		{name: "missing hash", theme: Theme{MoodName: "Calm", HexColor: "1f2937"}, want: false},
		{name: "short hex", theme: Theme{MoodName: "Calm", HexColor: "#fff"}, want: false},
		{name: "named color", theme: Theme{MoodName: "Calm", HexColor: "blue"}, want: false},
		{name: "empty mood name", theme: Theme{MoodName: "", HexColor: "#1f2937"}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.theme.Valid(); got != tc.want {
				t.Fatalf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNeutralTheme(t *testing.T) {
	if !NeutralTheme().Valid() {
		t.Fatal("neutral theme must be valid")
	}
}
