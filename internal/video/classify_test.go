package video

import (
	"errors"
	"path/filepath"
	"testing"

	"sublime/internal/identification"
	"sublime/internal/language"
	"sublime/internal/media/signature"
	"sublime/internal/services"
)

func newTestFactory() *Factory {
	probe := &fakeProbe{signatures: map[string]signature.Signature{
		"Lost.S02E05.Pilot.mkv": signature.Matroska,
		"The.Matrix.1999.mp4":   "video/mp4",
		"holiday.avi":           "video/x-msvideo",
		"heat.avi":              "video/x-msvideo",
	}}
	guesser := &fakeGuesser{results: map[string]identification.Result{
		"Lost.S02E05.Pilot.mkv": {Kind: identification.KindEpisode, Title: "Lost", Season: 2, Episode: 5, EpisodeTitle: "Pilot"},
		"The.Matrix.1999.mp4":   {Kind: identification.KindMovie, Title: "The Matrix", Year: 1999},
		"heat.avi":              {Kind: identification.KindUnknown, Title: "Heat", Season: 1, Episode: 4},
	}}
	return NewFactory(probe, guesser, nil)
}

func TestClassifyKinds(t *testing.T) {
	dir := t.TempDir()
	factory := newTestFactory()

	tests := []struct {
		name string
		kind Kind
		sig  signature.Signature
	}{
		{"Lost.S02E05.Pilot.mkv", KindEpisode, signature.Matroska},
		{"The.Matrix.1999.mp4", KindMovie, "video/mp4"},
		{"holiday.avi", KindVideo, "video/x-msvideo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeVideo(t, dir, tt.name)
			v, err := factory.Classify(path)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if v.Kind() != tt.kind {
				t.Fatalf("kind = %v, want %v", v.Kind(), tt.kind)
			}
			if v.Signature() != tt.sig {
				t.Fatalf("signature = %q, want %q", v.Signature(), tt.sig)
			}
			if v.Path() != path || v.Size() != int64(len("video-bytes")) {
				t.Fatalf("unexpected path/size %q/%d", v.Path(), v.Size())
			}
		})
	}
}

func TestClassifyMergesGuessedFields(t *testing.T) {
	dir := t.TempDir()
	factory := newTestFactory()

	episode, err := factory.Classify(writeVideo(t, dir, "Lost.S02E05.Pilot.mkv"))
	if err != nil {
		t.Fatal(err)
	}
	got := *episode.Episode()
	want := Episode{SeriesName: "Lost", Season: 2, Number: 5, Title: "Pilot"}
	if got != want {
		t.Fatalf("episode = %+v, want %+v", got, want)
	}
	if episode.Movie() != nil {
		t.Fatal("episode must not expose movie fields")
	}

	movie, err := factory.Classify(writeVideo(t, dir, "The.Matrix.1999.mp4"))
	if err != nil {
		t.Fatal(err)
	}
	if m := movie.Movie(); m == nil || m.Name != "The Matrix" || m.Year != 1999 {
		t.Fatalf("movie = %+v", m)
	}
}

func TestClassifyMissingPath(t *testing.T) {
	factory := newTestFactory()
	missing := filepath.Join(t.TempDir(), "gone.mkv")

	v, err := factory.Classify(missing)
	if v != nil || err != nil {
		t.Fatalf("Classify(missing) = %v, %v; want nil, nil", v, err)
	}
	if _, err := factory.ClassifyStrict(missing); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("ClassifyStrict error = %v, want ErrNotFound", err)
	}
}

func TestClassifyUnrecognized(t *testing.T) {
	factory := newTestFactory()
	path := writeVideo(t, t.TempDir(), "notes.txt")

	v, err := factory.Classify(path)
	if v != nil {
		t.Fatalf("expected no video, got %v", v)
	}
	if !errors.Is(err, services.ErrUnrecognizedFormat) {
		t.Fatalf("error = %v, want ErrUnrecognizedFormat", err)
	}
	if !services.Skippable(err) {
		t.Fatal("unrecognized files must be skippable")
	}
}

func TestRetype(t *testing.T) {
	dir := t.TempDir()
	factory := newTestFactory()

	bare, err := factory.Classify(writeVideo(t, dir, "holiday.avi"))
	if err != nil {
		t.Fatal(err)
	}
	bare.AddPending(language.MustParse("fr"))

	movie := factory.Retype(bare, KindMovie)
	if movie == bare {
		t.Fatal("retyping a bare video must build a new value")
	}
	if movie.Kind() != KindMovie || movie.Movie().Name != UnknownMovie {
		t.Fatalf("unexpected retyped video %v", movie)
	}
	if !movie.Equal(bare) {
		t.Fatal("retype must preserve identity")
	}
	if movie.Signature() != bare.Signature() || movie.Path() != bare.Path() || movie.Size() != bare.Size() {
		t.Fatal("retype must carry signature, path and size")
	}
	if pending := movie.Pending(); len(pending) != 1 || !pending[0].Equal(language.MustParse("fra")) {
		t.Fatalf("pending = %v", pending)
	}

	again := factory.Retype(movie, KindMovie)
	if again != movie {
		t.Fatal("retyping a movie must return it unchanged")
	}
	if factory.Retype(movie, KindEpisode) != movie {
		t.Fatal("retyping a movie to another kind must be a no-op")
	}
	if factory.Retype(bare, KindVideo) != bare {
		t.Fatal("retyping to a bare video must be a no-op")
	}
}

func TestRetypeMergesGuessedFields(t *testing.T) {
	dir := t.TempDir()
	factory := newTestFactory()

	bare, err := factory.Classify(writeVideo(t, dir, "heat.avi"))
	if err != nil {
		t.Fatal(err)
	}
	if bare.Kind() != KindVideo {
		t.Fatalf("kind = %v, want video", bare.Kind())
	}

	movie := factory.Retype(bare, KindMovie)
	if got := movie.Movie().Name; got != "Heat" {
		t.Fatalf("movie name = %q, want guessed title", got)
	}

	episode := factory.Retype(bare, KindEpisode)
	ep := episode.Episode()
	if ep.SeriesName != "Heat" || ep.Season != 1 || ep.Number != 4 || ep.Title != UnknownEpisode {
		t.Fatalf("episode = %+v", ep)
	}
}

func TestVideoEqualityIgnoresPath(t *testing.T) {
	dir := t.TempDir()
	a, err := New(writeVideo(t, dir, "a.mkv"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(a.Path())
	if err != nil {
		t.Fatal(err)
	}
	if a.Equal(b) {
		t.Fatal("distinct constructions must not be equal")
	}
	if !a.Equal(a) {
		t.Fatal("video must equal itself")
	}
}

func TestVideoString(t *testing.T) {
	dir := t.TempDir()
	factory := newTestFactory()
	v, err := factory.Classify(writeVideo(t, dir, "Lost.S02E05.Pilot.mkv"))
	if err != nil {
		t.Fatal(err)
	}
	if got := v.String(); got != `Episode("Lost", 2, 5, "Pilot")` {
		t.Fatalf("String() = %s", got)
	}
}
