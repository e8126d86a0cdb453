package errors

import (
	"errors"
	"testing"
)

func TestTransientDocumentError(t *testing.T) {
	cause := errors.New("invalid charset")
	err := NewTransientDocumentError(42, "http://example.com/a", cause)

	expectedMsg := "document 42 (http://example.com/a): invalid charset"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrTransientDocument) {
		t.Error("Expected error to match ErrTransientDocument sentinel")
	}

	if errors.Is(err, ErrBucket) {
		t.Error("Error should not match ErrBucket")
	}

	if !errors.Is(err, cause) {
		t.Error("Expected Unwrap to expose the underlying cause")
	}
}

func TestBucketError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewBucketError(1000, 2000, cause)

	expectedMsg := "bucket [1000, 2000): disk full"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrBucket) {
		t.Error("Expected error to match ErrBucket sentinel")
	}
}

func TestMergeError(t *testing.T) {
	err := NewMergeError(errors.New("corrupt partial index"))

	if !errors.Is(err, ErrMerge) {
		t.Error("Expected error to match ErrMerge sentinel")
	}
}

func TestResourceExhaustionError(t *testing.T) {
	err := NewResourceExhaustionError(2048, 2100)

	expectedMsg := "memory usage 2100MB exceeds ceiling 2048MB"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrResourceExhaustion) {
		t.Error("Expected error to match ErrResourceExhaustion sentinel")
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("memory_mb", "must be positive")

	expectedMsg := "config error for field 'memory_mb': must be positive"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrConfig) {
		t.Error("Expected error to match ErrConfig sentinel")
	}
}

func TestQueryError(t *testing.T) {
	err := NewQueryError("cachorro gato", errors.New("empty after preprocessing"))

	if !errors.Is(err, ErrQuery) {
		t.Error("Expected error to match ErrQuery sentinel")
	}
}

func TestJobNotFoundError(t *testing.T) {
	err := NewJobNotFoundError("abc-123")

	expectedMsg := "job with ID 'abc-123' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrJobNotFound) {
		t.Error("Expected error to match ErrJobNotFound sentinel")
	}
}
