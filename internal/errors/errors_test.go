package errors

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestAsType(t *testing.T) {
	err := Wrap(&codedError{code: "E1"}, "loading snapshot")

	coded, ok := AsType[*codedError](err)
	require.True(t, ok)
	assert.Equal(t, "E1", coded.code)

	_, ok = AsType[*fs.PathError](err)
	assert.False(t, ok)
}

func TestWrapKeepsCause(t *testing.T) {
	base := New("boom")
	err := Wrapf(base, "step %d", 2)

	assert.True(t, Is(err, base))
	assert.Equal(t, base, Cause(err))
	assert.Equal(t, "step 2: boom", err.Error())
}
