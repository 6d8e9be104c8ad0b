package media

import "testing"

func TestSubtitleTrackCode(t *testing.T) {
	tests := []struct {
		name  string
		track SubtitleTrack
		want  string
	}{
		{"iso639", SubtitleTrack{Language: "fre", LanguageIETF: "fr-CA"}, "fre"},
		{"ietf fallback", SubtitleTrack{LanguageIETF: "pt-BR"}, "pt"},
		{"empty", SubtitleTrack{Name: "Forced"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.Code(); got != tt.want {
				t.Fatalf("Code() = %q, want %q", got, tt.want)
			}
		})
	}
}
