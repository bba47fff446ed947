package authoring

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPointsParsesBullets(t *testing.T) {
	l := NewDescriptionBlockList()

	l, err := l.SetPoints(0, "• Point 1 • Point 2 • ")
	require.NoError(t, err)

	b, err := l.At(0)
	require.NoError(t, err)
	assert.Equal(t, []string{"Point 1", "Point 2"}, b.Points)
	assert.Equal(t, "Point 1 • Point 2", FormatPoints(b.Points))
}

func TestNewListHasOneEmptyBlock(t *testing.T) {
	l := NewDescriptionBlockList()
	require.Equal(t, 1, l.Len())
	b, _ := l.At(0)
	assert.False(t, b.HasText())
	assert.False(t, b.HasPoints())
	assert.Equal(t, DescriptionBudget, l.Remaining())
}

func TestFirstBlockIsNotRemovable(t *testing.T) {
	l := NewDescriptionBlockList()
	l, err := l.AddBlock()
	require.NoError(t, err)

	_, err = l.RemoveBlock(0)
	assert.ErrorIs(t, err, ErrFirstBlockRemoval)

	l, err = l.RemoveBlock(1)
	require.NoError(t, err)
	assert.Equal(t, 1, l.Len())

	_, err = l.RemoveBlock(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestBudgetCountsBulletsWithoutDelimiters(t *testing.T) {
	l := NewDescriptionBlockList()
	l, _ = l.SetHeadline(0, "abc")
	l, _ = l.AddText(0)
	l, _ = l.SetText(0, "hello")
	l, _ = l.SetPoints(0, "ab • cd")

	assert.Equal(t, 3+5+4, l.TotalConsumed())
	assert.Equal(t, DescriptionBudget-12, l.Remaining())
}

func TestEditOverBudgetIsRejected(t *testing.T) {
	l := NewDescriptionBlockList()
	l, err := l.SetText(0, strings.Repeat("x", DescriptionBudget-10))
	require.NoError(t, err)

	before, _ := l.At(0)
	next, err := l.SetHeadline(0, strings.Repeat("h", 11))
	assert.ErrorIs(t, err, ErrBudgetExceeded)
	after, _ := next.At(0)
	assert.Equal(t, before, after)

	next, err = l.SetHeadline(0, strings.Repeat("h", 10))
	require.NoError(t, err)
	assert.Equal(t, DescriptionBudget, next.TotalConsumed())

	_, err = next.AddBlock()
	assert.ErrorIs(t, err, ErrBudgetExceeded)
}

func TestReplacingFieldOnlyCountsDifference(t *testing.T) {
	l := NewDescriptionBlockList()
	l, err := l.SetText(0, strings.Repeat("x", DescriptionBudget))
	require.NoError(t, err)

	// shrinking a full field is always allowed
	l, err = l.SetText(0, strings.Repeat("y", DescriptionBudget-1))
	require.NoError(t, err)
	assert.Equal(t, 1, l.Remaining())
}

func TestHeadlineLengthLimit(t *testing.T) {
	l := NewDescriptionBlockList()
	_, err := l.SetHeadline(0, strings.Repeat("a", HeadlineMaxLength+1))
	assert.ErrorIs(t, err, ErrHeadlineTooLong)

	_, err = l.SetHeadline(0, strings.Repeat("é", HeadlineMaxLength))
	assert.NoError(t, err)
}

func TestAddTextAndPointsOnlyWhenUndefined(t *testing.T) {
	l := NewDescriptionBlockList()
	l, err := l.AddText(0)
	require.NoError(t, err)
	l, _ = l.SetText(0, "kept")

	l, err = l.AddText(0)
	require.NoError(t, err)
	b, _ := l.At(0)
	require.NotNil(t, b.Text)
	assert.Equal(t, "kept", *b.Text)

	l, err = l.AddPoints(0)
	require.NoError(t, err)
	b, _ = l.At(0)
	assert.NotNil(t, b.Points)
	assert.Empty(t, b.Points)
}

func TestEditsDoNotMutatePreviousValue(t *testing.T) {
	l := NewDescriptionBlockList()
	l, _ = l.SetPoints(0, "a • b")
	snapshot, _ := l.At(0)

	next, err := l.SetPoints(0, "c")
	require.NoError(t, err)

	old, _ := l.At(0)
	assert.Equal(t, snapshot, old)
	nb, _ := next.At(0)
	assert.Equal(t, []string{"c"}, nb.Points)
}

func TestBudgetHoldsUnderRandomEdits(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	l := NewDescriptionBlockList()
	text := func() string { return strings.Repeat("z", r.Intn(900)) }

	for i := 0; i < 2000; i++ {
		idx := r.Intn(l.Len() + 1)
		switch r.Intn(7) {
		case 0:
			l, _ = l.AddBlock()
		case 1:
			l, _ = l.RemoveBlock(idx)
		case 2:
			l, _ = l.SetHeadline(idx, strings.Repeat("h", r.Intn(HeadlineMaxLength+1)))
		case 3:
			l, _ = l.SetText(idx, text())
		case 4:
			l, _ = l.SetPoints(idx, text()+" • "+text())
		case 5:
			l, _ = l.AddText(idx)
		case 6:
			l, _ = l.AddPoints(idx)
		}
		require.LessOrEqual(t, l.TotalConsumed(), DescriptionBudget)
	}
}

func TestHydratedOverBudgetDescriptionCanShrink(t *testing.T) {
	text := strings.Repeat("x", 5000)
	d, err := FromRecord("legacy", CourseRecord{
		Price:       "Free",
		Description: []DescriptionBlockRecord{{Headline: "H", Text: &text}},
	})
	require.NoError(t, err)
	assert.Equal(t, 5001, d.Description().TotalConsumed())

	// 仍超出预算，但在缩减
	d, err = d.SetBlockText(0, strings.Repeat("x", 4500))
	require.NoError(t, err)
	assert.Equal(t, 4501, d.Description().TotalConsumed())

	// 增长仍被拒绝
	_, err = d.SetBlockText(0, strings.Repeat("x", 4600))
	assert.ErrorIs(t, err, ErrBudgetExceeded)
	_, err = d.SetBlockHeadline(0, "Longer")
	assert.ErrorIs(t, err, ErrBudgetExceeded)
	_, err = d.AddDescriptionBlock()
	assert.ErrorIs(t, err, ErrBudgetExceeded)

	d, err = d.SetBlockText(0, strings.Repeat("x", 3000))
	require.NoError(t, err)
	assert.Equal(t, DescriptionBudget-3001, d.Description().Remaining())
}
