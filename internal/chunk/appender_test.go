package chunk

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return data
}

func TestAppend_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bin")

	if err := Append(path, "aGVsbG8="); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := readFile(t, path); string(got) != "hello" {
		t.Errorf("Expected contents 'hello', got %q", got)
	}
}

func TestAppend_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.bin")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	if err := Append(path, "IHdvcmxk"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := readFile(t, path)
	if string(got) != "hello world" {
		t.Errorf("Expected contents 'hello world', got %q", got)
	}
	if len(got) != 11 {
		t.Errorf("Expected 11 bytes, got %d", len(got))
	}
}

func TestAppend_MalformedBase64(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		payload string
	}{
		{"garbage", "!!notbase64!!"},
		{"missing padding", "aGVsbG8"},
		{"url alphabet", "-_-_"},
		{"non-zero trailing bits", "aGVsbG9="},
		{"embedded space", "aGVs bG8="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "b.bin")

			err := Append(path, tt.payload)
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("Expected DecodeError, got %v", err)
			}
			if !strings.Contains(err.Error(), "decode chunk") {
				t.Errorf("Expected decode diagnostic, got %q", err.Error())
			}

			if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
				t.Errorf("File should not exist after decode failure, stat err: %v", statErr)
			}
		})
	}
}

func TestAppend_MalformedBase64LeavesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.bin")
	if err := os.WriteFile(path, []byte("keep"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	if err := Append(path, "!!notbase64!!"); err == nil {
		t.Fatal("Expected error for malformed base64, got nil")
	}

	if got := readFile(t, path); string(got) != "keep" {
		t.Errorf("Existing file should be unchanged, got %q", got)
	}
}

func TestAppend_EmptyPayload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.bin")

	if err := Append(path, ""); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("File should exist after empty append: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("Expected size 0, got %d", info.Size())
	}

	// A second empty append keeps existing contents.
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}
	if err := Append(path, ""); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got := readFile(t, path); string(got) != "x" {
		t.Errorf("Empty append should not change contents, got %q", got)
	}
}

func TestAppend_MissingParentDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nonexistent-dir")
	path := filepath.Join(dir, "x")

	err := Append(path, "AAAA")
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Expected IOError, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected error to wrap fs.ErrNotExist, got %v", err)
	}
	if ioErr.Path != path {
		t.Errorf("Expected IOError path %s, got %s", path, ioErr.Path)
	}

	if _, statErr := os.Stat(dir); !os.IsNotExist(statErr) {
		t.Errorf("Parent directory should not be created, stat err: %v", statErr)
	}
}

func TestAppend_PathIsDirectory(t *testing.T) {
	dir := t.TempDir()

	err := Append(dir, "AAAA")
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Expected IOError for directory path, got %v", err)
	}
}

func TestAppend_RelativePath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := Append("rel.bin", "aGVsbG8="); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := readFile(t, filepath.Join(dir, "rel.bin")); string(got) != "hello" {
		t.Errorf("Expected relative path to resolve against working dir, got %q", got)
	}
}

func TestAppend_SerialChunksConcatenate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.bin")
	const chunkSize = 1 << 20

	first := make([]byte, chunkSize)
	second := make([]byte, chunkSize)
	if _, err := rand.Read(first); err != nil {
		t.Fatalf("Failed to generate data: %v", err)
	}
	if _, err := rand.Read(second); err != nil {
		t.Fatalf("Failed to generate data: %v", err)
	}

	appender := NewAppender()
	for i, data := range [][]byte{first, second} {
		n, err := appender.Append(context.Background(), path, base64.StdEncoding.EncodeToString(data))
		if err != nil {
			t.Fatalf("Chunk %d: expected no error, got %v", i, err)
		}
		if n != len(data) {
			t.Errorf("Chunk %d: expected %d bytes appended, got %d", i, len(data), n)
		}
	}

	got := readFile(t, path)
	if len(got) != 2*chunkSize {
		t.Fatalf("Expected %d bytes, got %d", 2*chunkSize, len(got))
	}
	if !bytes.Equal(got, append(first, second...)) {
		t.Error("File contents should equal the concatenation of both chunks")
	}
}

func TestAppend_ManySmallChunks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.bin")
	chunks := [][]byte{{0x00}, {0x01, 0x02}, {}, []byte("abc"), {0xff, 0xfe, 0xfd, 0xfc}}

	var expected []byte
	for _, c := range chunks {
		if err := Append(path, base64.StdEncoding.EncodeToString(c)); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		expected = append(expected, c...)
	}

	if got := readFile(t, path); !bytes.Equal(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestAppend_CanceledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "canceled.bin")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAppender().Append(ctx, path, "aGVsbG8=")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("File should not be created for a canceled call")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		payload string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"aGVsbG8=", "hello", false},
		{"IHdvcmxk", " world", false},
		{"AAAA", "\x00\x00\x00", false},
		{"aGVsbG8", "", true},
		{"!!!!", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.payload, func(t *testing.T) {
			got, err := Decode(tt.payload)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode(%q) error = %v, wantErr %v", tt.payload, err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("Decode(%q) = %q, expected %q", tt.payload, got, tt.want)
			}
		})
	}
}
