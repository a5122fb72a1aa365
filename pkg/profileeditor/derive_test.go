package profileeditor

import (
	"strings"
	"testing"
)

func TestTruncateDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"short unchanged", "I help out on weekends", "I help out on weekends"},
		{"exactly max unchanged", strings.Repeat("a", 500), strings.Repeat("a", 500)},
		{"over max truncated", strings.Repeat("a", 501), strings.Repeat("a", 500)},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateDescription(tt.input)
			if got != tt.want {
				t.Errorf("length = %d, want %d", len(got), len(tt.want))
			}
		})
	}
}

func TestTruncateDescription_MultibyteRunes(t *testing.T) {
	input := strings.Repeat("é", 600)
	got := TruncateDescription(input)
	if runeCount := len([]rune(got)); runeCount != 500 {
		t.Errorf("rune count = %d, want 500", runeCount)
	}
}

func TestParseSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"spec example", "Teaching, , First Aid,,", []string{"Teaching", "First Aid"}},
		{"single", "Teaching", []string{"Teaching"}},
		{"duplicates kept", "Teaching,Teaching", []string{"Teaching", "Teaching"}},
		{"order preserved", "Zumba, Admin, Cooking", []string{"Zumba", "Admin", "Cooking"}},
		{"whitespace only", "  ,  , ", []string{}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSkills(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSkills(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSkills(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestJoinSkillsRoundTrip(t *testing.T) {
	skills := []string{"Teaching", "First Aid", "Teaching"}
	got := ParseSkills(JoinSkills(skills))
	if len(got) != 3 || got[0] != "Teaching" || got[1] != "First Aid" || got[2] != "Teaching" {
		t.Errorf("round trip = %v", got)
	}
}

func TestGenderLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"male", "Male"},
		{"female", "Female"},
		{"other", "Other"},
		{"nonbinary", "Nonbinary"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := GenderLabel(tt.input); got != tt.want {
			t.Errorf("GenderLabel(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenderBadge(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"male", "badge-male"},
		{"female", "badge-female"},
		{"other", "badge-other"},
		{"unspecified", "badge-neutral"},
	}

	for _, tt := range tests {
		if got := GenderBadge(tt.input); got != tt.want {
			t.Errorf("GenderBadge(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Jane Doe", "JD"},
		{"jane doe smith", "JD"},
		{"Jane", "J"},
		{"", ""},
		{"  jane   doe  ", "JD"},
	}

	for _, tt := range tests {
		if got := Initials(tt.input); got != tt.want {
			t.Errorf("Initials(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatBirthDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1990-06-02", "2 June 1990"},
		{"1990-04-21T00:00:00Z", "21 April 1990"},
		{"not-a-date", "not-a-date"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FormatBirthDate(tt.input); got != tt.want {
			t.Errorf("FormatBirthDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
