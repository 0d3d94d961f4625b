package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrapPreservesChain(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "attempt %d", 3)

	assert.Contains(t, wrapped.Error(), "attempt 3")
	assert.Contains(t, wrapped.Error(), "original")
}

type pathError struct {
	path string
}

func (e *pathError) Error() string {
	return "bad path: " + e.path
}

func TestAs(t *testing.T) {
	original := &pathError{path: "/tmp/x"}
	wrapped := Wrap(original, "reading prompt")

	var target *pathError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "/tmp/x", target.path)
}

func TestHintsSurviveWrapping(t *testing.T) {
	err := New("prompt not found")
	err = WithHint(err, "run 'prx list' to see available prompts")
	err = Wrap(err, "get failed")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "run 'prx list' to see available prompts", hints[0])
}

func TestDetailsSurviveWrapping(t *testing.T) {
	err := New("command failed")
	err = WithDetail(err, "stderr: permission denied")
	err = Wrap(err, "resolve")

	details := GetAllDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "stderr: permission denied", details[0])
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")

	detailed := fmt.Sprintf("%+v", err)
	assert.Contains(t, detailed, "errors_test.go")
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
	assert.Nil(t, WithDetail(nil, "detail"))
}

func TestSentinelIdentity(t *testing.T) {
	tests := []struct {
		name     string
		sentinel error
	}{
		{"not found", ErrNotFound},
		{"invalid name", ErrInvalidName},
		{"duplicate name", ErrDuplicateName},
		{"not regular file", ErrNotRegularFile},
		{"command failed", ErrCommandFailed},
		{"invalid config", ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrapf(tt.sentinel, "while doing %s", "something")
			assert.True(t, Is(wrapped, tt.sentinel))
			assert.Contains(t, wrapped.Error(), tt.sentinel.Error())
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(Wrap(ErrNotFound, "loading greeting")))
	assert.True(t, IsNotFound(NewNotFoundf("prompt %q", "greeting")))
	assert.False(t, IsNotFound(New("something else")))
	assert.False(t, IsNotFound(nil))
}

func TestIsDuplicateName(t *testing.T) {
	assert.True(t, IsDuplicateName(Wrap(ErrDuplicateName, "saving")))
	assert.False(t, IsDuplicateName(ErrNotFound))
	assert.False(t, IsDuplicateName(nil))
}

func TestWrapNotFound(t *testing.T) {
	underlying := New("stat /vault/prompts/x.md: no such file")
	err := WrapNotFound(underlying, "loading prompt x")

	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "loading prompt x")
	assert.Contains(t, err.Error(), "no such file")
}

func TestNewNotFoundf(t *testing.T) {
	err := NewNotFoundf("prompt %q not found", "greeting")
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), `prompt "greeting" not found`)
}

func TestNewInvalidConfigf(t *testing.T) {
	err := NewInvalidConfigf("max_depth must be positive, got %d", -1)
	assert.True(t, Is(err, ErrInvalidConfig))
	assert.Contains(t, err.Error(), "max_depth must be positive, got -1")
}

func ExampleWrap() {
	baseErr := New("connection failed")
	err := Wrap(baseErr, "failed to open database")
	fmt.Println(err)
	// Output: failed to open database: connection failed
}

func ExampleWithHint() {
	err := New("prompt not found")
	err = WithHint(err, "run 'prx list' to see available prompts")

	hints := GetAllHints(err)
	fmt.Println(hints[0])
	// Output: run 'prx list' to see available prompts
}
