// SPDX-License-Identifier: EPL-2.0

package discover

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

var quiet = WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func makeDir(t *testing.T, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func names(fs *FileSet) []string {
	var out []string
	for _, f := range fs.Files() {
		out = append(out, f.Name())
	}
	return out
}

func TestDiscover_Scenario(t *testing.T) {
	t.Parallel()

	dir := makeDir(t, "a.wav", "b.mp3", "c.txt")

	fs, err := Discover(dir, []string{"WAV", "MP3"}, WithFoldCase(true), quiet)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if got, want := names(fs), []string{"a.wav", "b.mp3"}; !slices.Equal(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
	want := []ExtCount{{"WAV", 1}, {"MP3", 1}}
	if got := fs.Counts(); !slices.Equal(got, want) {
		t.Errorf("Counts() = %v, want %v", got, want)
	}
	if fs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", fs.Len())
	}
	if fs.Files()[0].Ext != "WAV" {
		t.Errorf("Ext = %q, want the configured spelling WAV", fs.Files()[0].Ext)
	}
}

func TestDiscover_CaseSensitiveByDefault(t *testing.T) {
	t.Parallel()

	dir := makeDir(t, "a.wav", "b.WAV", "c.Wav")

	fs, err := Discover(dir, []string{"WAV", "wav"}, quiet)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []ExtCount{{"WAV", 1}, {"wav", 1}}
	if got := fs.Counts(); !slices.Equal(got, want) {
		t.Errorf("Counts() = %v, want %v", got, want)
	}
	if got, want := names(fs), []string{"b.WAV", "a.wav"}; !slices.Equal(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
}

func TestDiscover_CountMatchesSuffix(t *testing.T) {
	t.Parallel()

	dir := makeDir(t, "z.wav", "a.wav", "m.wav", "x.mp3", "wav", ".wav", "y.wav.bak", "song.flac")
	if err := os.Mkdir(filepath.Join(dir, "folder.wav"), 0o755); err != nil {
		t.Fatal(err)
	}

	fs, err := Discover(dir, []string{"wav", "mp3", "ogg"}, quiet)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	want := []ExtCount{{"wav", 3}, {"mp3", 1}, {"ogg", 0}}
	if got := fs.Counts(); !slices.Equal(got, want) {
		t.Errorf("Counts() = %v, want %v", got, want)
	}
	if got, want := names(fs), []string{"a.wav", "m.wav", "z.wav", "x.mp3"}; !slices.Equal(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
}

func TestFileSet_DiscoverTwiceDoubles(t *testing.T) {
	t.Parallel()

	dir := makeDir(t, "a.wav", "b.wav", "c.mp3")
	exts := []string{"wav", "mp3"}

	var fs FileSet
	if err := fs.Discover(dir, exts, quiet); err != nil {
		t.Fatal(err)
	}
	once := fs.Len()
	if err := fs.Discover(dir, exts, quiet); err != nil {
		t.Fatal(err)
	}

	if fs.Len() != 2*once {
		t.Errorf("Len() after two calls = %d, want %d", fs.Len(), 2*once)
	}
	want := []ExtCount{{"wav", 4}, {"mp3", 2}}
	if got := fs.Counts(); !slices.Equal(got, want) {
		t.Errorf("Counts() = %v, want %v", got, want)
	}
}

func TestDiscover_FreshSetEachCall(t *testing.T) {
	t.Parallel()

	dir := makeDir(t, "a.wav")

	first, _ := Discover(dir, []string{"wav"}, quiet)
	second, _ := Discover(dir, []string{"wav"}, quiet)

	if first.Len() != 1 || second.Len() != 1 {
		t.Errorf("Len() = %d, %d; want 1, 1", first.Len(), second.Len())
	}
}

func TestDiscover_MissingDirectory(t *testing.T) {
	t.Parallel()

	fs, err := Discover(filepath.Join(t.TempDir(), "nope"), []string{"wav", "mp3"}, quiet)
	if err != nil {
		t.Fatalf("Discover() error = %v, want nil", err)
	}

	want := []ExtCount{{"wav", 0}, {"mp3", 0}}
	if got := fs.Counts(); !slices.Equal(got, want) {
		t.Errorf("Counts() = %v, want %v", got, want)
	}
	if fs.Len() != 0 {
		t.Errorf("Len() = %d, want 0", fs.Len())
	}
}

func TestDiscover_InvalidExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := Discover(dir, nil, quiet); !errors.Is(err, ErrNoExtensions) {
		t.Errorf("Discover(nil) error = %v, want ErrNoExtensions", err)
	}
	if _, err := Discover(dir, []string{"wav", ""}, quiet); !errors.Is(err, ErrEmptyExtension) {
		t.Errorf("Discover(empty ext) error = %v, want ErrEmptyExtension", err)
	}
}

func TestFileSet_AddAndFilesCopy(t *testing.T) {
	t.Parallel()

	var fs FileSet
	fs.Add(File{Path: "x/a.wav", Ext: "wav"}, File{Path: "x/b.flac", Ext: "flac"})

	files := fs.Files()
	files[0].Path = "changed"

	if fs.Files()[0].Path != "x/a.wav" {
		t.Error("Files() returned the internal slice")
	}
	want := []ExtCount{{"wav", 1}, {"flac", 1}}
	if got := fs.Counts(); !slices.Equal(got, want) {
		t.Errorf("Counts() = %v, want %v", got, want)
	}

	var nilSet *FileSet
	if nilSet.Len() != 0 || nilSet.Files() != nil || nilSet.Counts() != nil {
		t.Error("nil FileSet is not empty")
	}
}
