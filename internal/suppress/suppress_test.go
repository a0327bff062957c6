package suppress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcquireRelease(t *testing.T) {
	f := New()
	assert.False(t, f.Active())

	release := f.Acquire()
	assert.True(t, f.Active())

	release()
	assert.False(t, f.Active())
}

func TestReleaseIsIdempotent(t *testing.T) {
	f := New()
	first := f.Acquire()
	second := f.Acquire()

	first()
	first()
	assert.True(t, f.Active(), "second holder still active")

	second()
	assert.False(t, f.Active())
}

func TestTransitionsNotified(t *testing.T) {
	f := New()
	var got []bool
	h := f.Subscribe(func(active bool) { got = append(got, active) })

	r1 := f.Acquire()
	r2 := f.Acquire()
	r1()
	r2()

	assert.Equal(t, []bool{true, false}, got)

	f.Unsubscribe(h)
	f.Acquire()()
	assert.Len(t, got, 2)
}
