package assets

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
	"time"
)

const testManifestYAML = `
bundles:
  - name: preload
    assets:
      - alias: logo
        src: images/logo.png
  - name: game-screen
    assets:
      - alias: bubble
        src: images/bubble.png
      - alias: land
        src: audio/land.wav
`

func testLoader(t *testing.T) (*Loader, fstest.MapFS) {
	t.Helper()
	m, err := LoadYAML(strings.NewReader(testManifestYAML))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	fsys := fstest.MapFS{
		"images/logo.png":   {Data: []byte("logo")},
		"images/bubble.png": {Data: []byte("bubble")},
		"audio/land.wav":    {Data: []byte("land")},
	}
	return NewLoader(fsys, m, nil), fsys
}

func waitLoad(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("load did not finish")
		return nil
	}
}

func TestLoadCachesBundle(t *testing.T) {
	l, _ := testLoader(t)
	if l.Loaded("game-screen") {
		t.Fatal("Loaded before Load")
	}
	if err := waitLoad(t, l.Load(context.Background(), "game-screen")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !l.Loaded("game-screen") {
		t.Error("Loaded = false after Load")
	}
	if l.Loaded("preload") || l.Loaded("game-screen", "preload") {
		t.Error("unrelated bundle reported loaded")
	}
	if data, ok := l.Bytes("land"); !ok || string(data) != "land" {
		t.Errorf("Bytes(land) = %q, %v", data, ok)
	}
}

func TestLoadedEmptyAndUnknown(t *testing.T) {
	l, _ := testLoader(t)
	if !l.Loaded() {
		t.Error("Loaded() with no bundles should be true")
	}
	if l.Loaded("nope") {
		t.Error("unknown bundle reported loaded")
	}
}

func TestLoadUnknownBundle(t *testing.T) {
	l, _ := testLoader(t)
	err := waitLoad(t, l.Load(context.Background(), "nope"))
	if !errors.Is(err, ErrUnknownBundle) {
		t.Errorf("err = %v, want ErrUnknownBundle", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	l, fsys := testLoader(t)
	delete(fsys, "audio/land.wav")
	err := waitLoad(t, l.Load(context.Background(), "game-screen"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
	if l.Loaded("game-screen") {
		t.Error("bundle loaded despite missing file")
	}
}

func TestLoadSkipsCachedAssets(t *testing.T) {
	l, fsys := testLoader(t)
	if err := l.LoadSync(context.Background(), "preload"); err != nil {
		t.Fatal(err)
	}
	delete(fsys, "images/logo.png")
	if err := l.LoadSync(context.Background(), "preload"); err != nil {
		t.Errorf("reload touched the filesystem: %v", err)
	}
}

func TestLoadCanceled(t *testing.T) {
	l, _ := testLoader(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := waitLoad(t, l.Load(ctx, "game-screen"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestLoadChannelClosed(t *testing.T) {
	l, _ := testLoader(t)
	ch := l.Load(context.Background(), "preload")
	waitLoad(t, ch)
	if _, open := <-ch; open {
		t.Error("channel left open after result")
	}
}

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		wantErr bool
		bundles int
	}{
		{name: "yaml", file: "m.yaml", data: testManifestYAML, bundles: 2},
		{name: "json", file: "m.json", data: `{"bundles":[{"name":"a","assets":[{"alias":"x","src":"x.png"}]}]}`, bundles: 1},
		{name: "bad extension", file: "m.toml", data: "", wantErr: true},
		{name: "duplicate", file: "m.json", data: `{"bundles":[{"name":"a"},{"name":"a"}]}`, wantErr: true},
		{name: "missing src", file: "m.json", data: `{"bundles":[{"name":"a","assets":[{"alias":"x"}]}]}`, wantErr: true},
		{name: "syntax", file: "m.json", data: `{`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest(tt.file, []byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(m.Bundles) != tt.bundles {
				t.Errorf("bundles = %d, want %d", len(m.Bundles), tt.bundles)
			}
		})
	}
}
