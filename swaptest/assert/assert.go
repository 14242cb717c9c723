// Package assert holds the checks shared by the swapper tests. A failed
// check stops the test immediately.
package assert

import (
	testify "github.com/stretchr/testify/assert"
)

// Tester is implemented by *testing.T and *testing.B.
type Tester interface {
	Helper()
	Errorf(format string, args ...interface{})
	FailNow()
}

// Nil stops the test unless value is nil or a nil pointer, map, slice or
// channel. Errors are printed with their stack trace.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if testify.Nil(t, value) {
		return
	}
	if err, ok := value.(error); ok {
		t.Errorf("%+v", err)
	}
	t.FailNow()
}

func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !testify.Equal(t, want, got) {
		t.FailNow()
	}
}

func Panics(t Tester, fn func()) {
	t.Helper()
	if !testify.Panics(t, fn) {
		t.FailNow()
	}
}

// IsErr stops the test unless got is want or, when want is an error kind,
// wraps it.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if !matches(want, got) {
		t.Errorf("want %q, got %+v", want, got)
		t.FailNow()
	}
}

func matches(want, got error) bool {
	if want == got {
		return true
	}
	kind, ok := want.(interface{ Is(error) bool })
	return ok && kind.Is(got)
}
