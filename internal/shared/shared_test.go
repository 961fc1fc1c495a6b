package shared

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateID(t *testing.T) {
	first := GenerateID()
	second := GenerateID()

	if first == "" || second == "" {
		t.Fatal("expected non-empty ids")
	}

	if first == second {
		t.Error("expected distinct ids")
	}

	if len(first) != 36 {
		t.Errorf("expected UUID string length 36, got %d", len(first))
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(buf)

	logger.Info("hello")
	if buf.Len() == 0 {
		t.Error("expected log output in the buffer")
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}

	logger.Info("hello")

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("log file should exist: %v", err)
	}

	if info.Size() == 0 {
		t.Error("expected log lines in the file")
	}
}

func TestJSONHelpers(t *testing.T) {
	t.Run("MarshalJSON pretty", func(t *testing.T) {
		data, err := MarshalJSON(map[string]int{"n": 1}, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !bytes.Contains(data, []byte(`"n": 1`)) {
			t.Errorf("expected indented output, got %s", data)
		}
	})

	t.Run("ValidateJSON accepts valid input", func(t *testing.T) {
		if err := ValidateJSON([]byte(`{"ok":true}`)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("ValidateJSON rejects malformed input", func(t *testing.T) {
		err := ValidateJSON([]byte(`{not json`))
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestVerifyAndReadFile(t *testing.T) {
	t.Run("reads a regular file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data.json")
		if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		data, err := VerifyAndReadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if string(data) != `{}` {
			t.Errorf("unexpected contents %q", data)
		}
	})

	t.Run("rejects an empty path", func(t *testing.T) {
		if _, err := VerifyAndReadFile(""); !errors.Is(err, ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("rejects a directory", func(t *testing.T) {
		if _, err := VerifyAndReadFile(t.TempDir()); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})
}
