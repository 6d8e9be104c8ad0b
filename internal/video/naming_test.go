package video

import (
	"errors"
	"testing"
)

func TestFormatPattern(t *testing.T) {
	fields := map[string]any{
		"serie_name":   "Lost",
		"season":       2,
		"episode":      5,
		"episode_name": "Pilot",
	}
	tests := []struct {
		pattern string
		want    string
		wantErr bool
	}{
		{DefaultEpisodePattern, "Lost S02E05 Pilot", false},
		{"{serie_name}.{season}x{episode:03d}", "Lost.2x005", false},
		{"{{{serie_name}}}", "{Lost}", false},
		{"{episode_name:s}", "Pilot", false},
		{"{serie_name:02d}", "", true},
		{"{season:x}", "", true},
		{"{unknown}", "", true},
		{"{serie_name", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := formatPattern(tt.pattern, fields)
			if (err != nil) != tt.wantErr {
				t.Fatalf("formatPattern error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("formatPattern = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNameScopeOverrideRestores(t *testing.T) {
	scope := NewNameScope(DefaultNaming())
	custom := "{serie_name} {season}x{episode:02d}"

	err := scope.Override(custom, false, func(n Naming) error {
		if n.Pattern != custom || n.Underscore {
			t.Fatalf("active naming = %+v", n)
		}
		if got := scope.Naming(); got.Pattern != custom || got.Underscore {
			t.Fatalf("scope naming during override = %+v", got)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := scope.Naming(); got.Pattern != DefaultEpisodePattern || !got.Underscore {
		t.Fatalf("naming after override = %+v", got)
	}
}

func TestNameScopeOverrideRestoresOnError(t *testing.T) {
	scope := NewNameScope(Naming{Pattern: DefaultEpisodePattern, Underscore: false})
	boom := errors.New("boom")

	err := scope.Override("{serie_name}", false, func(Naming) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want boom", err)
	}
	if got := scope.Naming(); got.Pattern != DefaultEpisodePattern || !got.Underscore {
		t.Fatalf("naming after failed override = %+v", got)
	}
}

func TestNameScopeOverrideRestoresOnPanic(t *testing.T) {
	scope := NewNameScope(DefaultNaming())
	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = scope.Override("{serie_name}", false, func(Naming) error { panic("boom") })
	}()
	if got := scope.Naming(); got.Pattern != DefaultEpisodePattern || !got.Underscore {
		t.Fatalf("naming after panic = %+v", got)
	}
}

func TestNameScopeEmptyPatternKeepsCurrent(t *testing.T) {
	scope := NewNameScope(Naming{})
	_ = scope.Override("", false, func(n Naming) error {
		if n.Pattern != DefaultEpisodePattern {
			t.Fatalf("pattern = %q", n.Pattern)
		}
		return nil
	})
}
