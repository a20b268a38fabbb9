package candidate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// Test Plan for Prepare:
// - Candidates keep fragment order and carry name, fragment and normalized form
// - Every candidate gets a distinct ID
// - Segmentation errors pass through unchanged
// - Functions whose names the extractor cannot recover are skipped, not fatal
// - A cancelled context fails the batch
// - The fan-out leaves no goroutines behind

const realisticOutput = `
def test_calculator_divide_by_zero(self):
    with pytest.raises(ValueError, match="Cannot divide by zero"):
        self.calc.divide(10, 0)

def test_calculator_history_tracking(self):
    self.calc.add(1, 2)
    self.calc.subtract(5, 3)

    history = self.calc.get_history()
    assert len(history) == 2
    assert "add(1, 2) = 3" in history
    assert "subtract(5, 3) = 2" in history

def test_calculator_clear_history(self):
    self.calc.add(1, 1)
    assert len(self.calc.get_history()) == 1

    self.calc.clear_history()
    assert len(self.calc.get_history()) == 0
        `

func TestPrepare_BuildsCandidatesInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	candidates, err := Prepare(context.Background(), realisticOutput)

	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, "test_calculator_divide_by_zero", candidates[0].Name)
	assert.Equal(t, "test_calculator_history_tracking", candidates[1].Name)
	assert.Equal(t, "test_calculator_clear_history", candidates[2].Name)

	ids := make(map[string]bool)
	for _, c := range candidates {
		assert.NotEmpty(t, c.ID)
		ids[c.ID] = true
		assert.Equal(t, Normalize(c.Fragment.Source), c.Normalized)
		assert.Contains(t, c.Fragment.Source, "def "+c.Name+"(")
	}
	assert.Len(t, ids, 3)

	assert.Less(t, candidates[0].Fragment.StartLine, candidates[1].Fragment.StartLine)
	assert.Less(t, candidates[1].Fragment.StartLine, candidates[2].Fragment.StartLine)
}

func TestPrepare_SegmentErrors(t *testing.T) {
	t.Parallel()

	_, err := Prepare(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyOutput)

	_, err = Prepare(context.Background(), "def test_broken(:\n    pass\n")
	assert.ErrorIs(t, err, ErrSyntax)

	_, err = Prepare(context.Background(), "def helper():\n    return 1\n")
	assert.ErrorIs(t, err, ErrNoTestFunctions)
}

func TestPrepare_IrregularTestNamesAreSkipped(t *testing.T) {
	t.Parallel()

	text := "def test_ok():\n    pass\n\ndef test_():\n    pass\n\ndef test_also_ok():\n    assert True\n"

	candidates, err := Prepare(context.Background(), text)

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "test_ok", candidates[0].Name)
	assert.Equal(t, "test_also_ok", candidates[1].Name)
}

func TestPrepare_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	candidates, err := Prepare(ctx, realisticOutput)

	assert.Nil(t, candidates)
	assert.ErrorIs(t, err, context.Canceled)
}
