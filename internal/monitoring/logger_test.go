package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *[]string {
	t.Helper()
	original := Logf
	t.Cleanup(func() { Logf = original })

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	return &lines
}

func TestSetLogger(t *testing.T) {
	lines := capture(t)
	Logf("zeroed at %d yd", 100)
	assert.Equal(t, []string{"zeroed at 100 yd"}, *lines)

	SetLogger(nil)
	Logf("dropped")
	assert.Len(t, *lines, 1, "nil installs a no-op logger")
}

func TestPrefixed(t *testing.T) {
	lines := capture(t)
	logf := Prefixed("migrate")
	logf("applied %d migrations", 2)

	// Swapping the logger afterwards still takes effect.
	var later []string
	SetLogger(func(format string, v ...interface{}) {
		later = append(later, fmt.Sprintf(format, v...))
	})
	logf("done")

	assert.Equal(t, []string{"[migrate] applied 2 migrations"}, *lines)
	assert.Equal(t, []string{"[migrate] done"}, later)
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}
}
