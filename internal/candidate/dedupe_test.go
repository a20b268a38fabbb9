package candidate

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Deduper:
// - Same test with different trailing whitespace is admitted once
// - Tests differing in assertion values are both admitted
// - Filter keeps first occurrences in order across batches
// - Concurrent Admit of one form succeeds exactly once
// - Non-positive capacity falls back to the default

func newTestDeduper(t *testing.T) *Deduper {
	t.Helper()
	d, err := NewDeduper(100)
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d
}

func candidateFor(source string) Candidate {
	return Candidate{Fragment: TestFragment{Source: source}, Normalized: Normalize(source)}
}

func TestDeduper_TrailingWhitespaceIsDuplicate(t *testing.T) {
	t.Parallel()

	d := newTestDeduper(t)

	assert.True(t, d.Admit(candidateFor("def test_a():\n    assert 1 == 1\n")))
	assert.False(t, d.Admit(candidateFor("def test_a():  \r\n    assert 1 == 1   \r\n\r\n")))
}

func TestDeduper_DifferentAssertionsAreKept(t *testing.T) {
	t.Parallel()

	d := newTestDeduper(t)

	assert.True(t, d.Admit(candidateFor("def test_a():\n    assert 1 == 1\n")))
	assert.True(t, d.Admit(candidateFor("def test_a():\n    assert 1 == 2\n")))
}

func TestDeduper_FilterAcrossRuns(t *testing.T) {
	t.Parallel()

	d := newTestDeduper(t)

	first, err := Prepare(context.Background(), "def test_a():\n    assert True\n\ndef test_b():\n    assert 2 == 2\n")
	require.NoError(t, err)
	second, err := Prepare(context.Background(), "def test_b():\n    assert 2 == 2   \n\n\n\ndef test_c():\n    assert 3 == 3\n")
	require.NoError(t, err)

	keptFirst := d.Filter(first)
	keptSecond := d.Filter(second)

	require.Len(t, keptFirst, 2)
	require.Len(t, keptSecond, 1)
	assert.Equal(t, "test_c", keptSecond[0].Name)
}

func TestDeduper_ConcurrentAdmit(t *testing.T) {
	t.Parallel()

	d := newTestDeduper(t)
	c := candidateFor("def test_same():\n    pass\n")

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if d.Admit(c) {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), admitted.Load())
}

func TestNewDeduper_DefaultCapacity(t *testing.T) {
	t.Parallel()

	d, err := NewDeduper(0)
	require.NoError(t, err)
	defer d.Close()

	assert.True(t, d.Admit(candidateFor("def test_x():\n    pass\n")))
}
