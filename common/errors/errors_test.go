package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

var errTest = New("test/errors", 1, "test: something failed")

func TestCode(t *testing.T) {
	require := require.New(t)

	module, code := Code(errTest)
	require.Equal("test/errors", module)
	require.EqualValues(1, code)

	module, code = Code(fmt.Errorf("wrapped: %w", errTest))
	require.Equal("test/errors", module, "wrapped errors keep their code")
	require.EqualValues(1, code)

	module, code = Code(fmt.Errorf("plain"))
	require.Equal(UnknownModule, module)
	require.EqualValues(1, code)

	module, code = Code(nil)
	require.Equal("", module)
	require.EqualValues(CodeNoError, code)
}

func TestWithContext(t *testing.T) {
	require := require.New(t)

	require.Equal(errTest, WithContext(errTest, ""), "empty context is a no-op")

	err := WithContext(errTest, "extra")
	require.True(Is(err, errTest))
	require.Equal("test: something failed: extra", err.Error())
	require.Equal("extra", Context(err))
	require.Equal("", Context(errTest))
}

func TestNewPanics(t *testing.T) {
	require := require.New(t)

	require.Panics(func() { _ = New("test/errors", CodeNoError, "reserved") })
	require.Panics(func() { _ = New("test/errors", 1, "duplicate") })
}
