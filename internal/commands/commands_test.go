package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ytget/ytdl-desktop/internal/bridge"
	"github.com/ytget/ytdl-desktop/internal/chunk"
)

type fakeOpener struct {
	urls     []string
	opened   []string
	revealed []string
	err      error
}

func (f *fakeOpener) OpenURL(u *url.URL) error {
	f.urls = append(f.urls, u.String())
	return f.err
}

func (f *fakeOpener) OpenPath(path string) error {
	f.opened = append(f.opened, path)
	return f.err
}

func (f *fakeOpener) RevealPath(path string) error {
	f.revealed = append(f.revealed, path)
	return f.err
}

func newRegistry(t *testing.T, opener Opener) *bridge.Registry {
	t.Helper()
	registry := bridge.NewRegistry()
	if err := Register(registry, opener); err != nil {
		t.Fatalf("Failed to register commands: %v", err)
	}
	return registry
}

func invoke(t *testing.T, registry *bridge.Registry, name string, args any) error {
	t.Helper()
	raw, err := json.Marshal(args)
	if err != nil {
		t.Fatalf("Failed to marshal args: %v", err)
	}
	_, _, err = registry.Invoke(context.Background(), name, raw)
	return err
}

func TestRegister(t *testing.T) {
	registry := newRegistry(t, &fakeOpener{})

	expected := []string{AppendChunkToFile, OpenPath, OpenURL, RevealPath}
	commands := registry.Commands()
	if len(commands) != len(expected) {
		t.Fatalf("Expected %v, got %v", expected, commands)
	}
	for i := range expected {
		if commands[i] != expected[i] {
			t.Errorf("Command %d: expected %s, got %s", i, expected[i], commands[i])
		}
	}

	if err := Register(registry, nil); err == nil {
		t.Error("Registering twice should fail")
	}
}

func TestRegister_WithoutOpener(t *testing.T) {
	registry := newRegistry(t, nil)

	commands := registry.Commands()
	if len(commands) != 1 || commands[0] != AppendChunkToFile {
		t.Errorf("Expected only %s, got %v", AppendChunkToFile, commands)
	}
}

func TestGreetIsNotRegistered(t *testing.T) {
	registry := newRegistry(t, nil)

	err := invoke(t, registry, "greet", map[string]string{"name": "x"})
	if !errors.Is(err, bridge.ErrUnknownCommand) {
		t.Errorf("Expected ErrUnknownCommand for greet, got %v", err)
	}
}

func TestAppendChunkToFile(t *testing.T) {
	registry := newRegistry(t, nil)
	path := filepath.Join(t.TempDir(), "a.bin")

	if err := invoke(t, registry, AppendChunkToFile, AppendChunkArgs{Path: path, Base64: "aGVsbG8="}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := invoke(t, registry, AppendChunkToFile, AppendChunkArgs{Path: path, Base64: "IHdvcmxk"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("Expected 'hello world', got %q", data)
	}

	recent := registry.Recent()
	if recent[0].Target != path {
		t.Errorf("Expected invocation target %s, got %s", path, recent[0].Target)
	}
}

func TestAppendChunkToFile_Errors(t *testing.T) {
	registry := newRegistry(t, nil)
	dir := t.TempDir()

	err := invoke(t, registry, AppendChunkToFile, AppendChunkArgs{Path: filepath.Join(dir, "b.bin"), Base64: "!!notbase64!!"})
	var decodeErr *chunk.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Errorf("Expected DecodeError, got %v", err)
	}

	err = invoke(t, registry, AppendChunkToFile, AppendChunkArgs{Path: filepath.Join(dir, "missing", "x"), Base64: "AAAA"})
	var ioErr *chunk.IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("Expected IOError, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Failed calls should create nothing, found %d entries", len(entries))
	}
}

func TestAppendChunkToFile_OverHTTP(t *testing.T) {
	registry := newRegistry(t, nil)
	ts := httptest.NewServer(bridge.NewServer(registry, bridge.Options{}).Handler())
	defer ts.Close()

	path := filepath.Join(t.TempDir(), "stream.bin")
	payload := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef}, 4096)

	for _, part := range [][]byte{payload[:1000], payload[1000:]} {
		body, _ := json.Marshal(AppendChunkArgs{Path: path, Base64: base64.StdEncoding.EncodeToString(part)})
		resp, err := http.Post(ts.URL+bridge.InvokePathPrefix+AppendChunkToFile, "application/json", bytes.NewReader(body))
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected 200, got %d", resp.StatusCode)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Error("File contents should equal the uploaded payload")
	}

	body := strings.NewReader(`{"path":"` + filepath.Join(t.TempDir(), "bad.bin") + `","base64":"!!notbase64!!"}`)
	resp, err := http.Post(ts.URL+bridge.InvokePathPrefix+AppendChunkToFile, "application/json", body)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422 for malformed base64, got %d", resp.StatusCode)
	}

	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !strings.HasPrefix(out.Error, "decode chunk:") {
		t.Errorf("Expected decode diagnostic, got %q", out.Error)
	}
}

func TestOpenerCommands(t *testing.T) {
	opener := &fakeOpener{}
	registry := newRegistry(t, opener)

	if err := invoke(t, registry, OpenURL, URLArgs{URL: "https://youtube.com/watch?v=abc"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := invoke(t, registry, OpenPath, PathArgs{Path: "/tmp/video.mp4"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := invoke(t, registry, RevealPath, PathArgs{Path: "/tmp/video.mp4"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(opener.urls) != 1 || opener.urls[0] != "https://youtube.com/watch?v=abc" {
		t.Errorf("Unexpected opened urls: %v", opener.urls)
	}
	if len(opener.opened) != 1 || len(opener.revealed) != 1 {
		t.Errorf("Expected one open and one reveal, got %v %v", opener.opened, opener.revealed)
	}
}

func TestOpenURL_RejectsScheme(t *testing.T) {
	opener := &fakeOpener{}
	registry := newRegistry(t, opener)

	if err := invoke(t, registry, OpenURL, URLArgs{URL: "file:///etc/passwd"}); err == nil {
		t.Error("Expected error for file scheme")
	}
	if len(opener.urls) != 0 {
		t.Errorf("Opener should not be called, got %v", opener.urls)
	}
}

func TestOpenerErrorsPropagate(t *testing.T) {
	opener := &fakeOpener{err: errors.New("no suitable file manager found")}
	registry := newRegistry(t, opener)

	err := invoke(t, registry, RevealPath, PathArgs{Path: "/tmp/x"})
	if err == nil || err.Error() != "no suitable file manager found" {
		t.Errorf("Expected opener error, got %v", err)
	}
}
