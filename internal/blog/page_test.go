package blog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i + 1
	}
	return s
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		items      []int
		pageSize   int
		number     string
		wantItems  []int
		wantNumber int
		wantPages  int
	}{
		{"DefaultsToFirstPage", seq(15), 10, "", seq(10), 1, 2},
		{"SecondPageHoldsRemainder", seq(15), 10, "2", []int{11, 12, 13, 14, 15}, 2, 2},
		{"PastLastPageIsClamped", seq(15), 10, "99", []int{11, 12, 13, 14, 15}, 2, 2},
		{"ExactMultiple", seq(20), 10, "2", seq(20)[10:], 2, 2},
		{"EmptyInputYieldsEmptyFirstPage", nil, 10, "3", []int{}, 1, 1},
		{"NonPositiveSizeUsesDefault", seq(12), 0, "1", seq(10), 1, 2},
		{"SurroundingSpacesAreIgnored", seq(15), 10, " 2 ", []int{11, 12, 13, 14, 15}, 2, 2},
		{"OverflowingNumberIsClamped", seq(15), 10, "99999999999999999999", []int{11, 12, 13, 14, 15}, 2, 2},
		{"OverflowingNumberWithPlusSign", seq(15), 10, "+99999999999999999999", []int{11, 12, 13, 14, 15}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Paginate(tt.items, tt.pageSize, tt.number)
			require.NoError(t, err)

			assert.ElementsMatch(t, tt.wantItems, page.Items)
			assert.Equal(t, tt.wantNumber, page.Number)
			assert.Equal(t, tt.wantPages, page.NumPages)
			assert.Equal(t, len(tt.items), page.Count)
			assert.LessOrEqual(t, len(page.Items), page.Size)
		})
	}
}

func TestPaginate_InvalidPage(t *testing.T) {
	for _, number := range []string{"0", "-1", "abc", "1.5", "2a", "-99999999999999999999", "99999999999999999999x"} {
		t.Run(number, func(t *testing.T) {
			_, err := Paginate(seq(15), 10, number)
			assert.ErrorIs(t, err, ErrInvalidPage)
		})
	}
}

func TestPage_Navigation(t *testing.T) {
	first, err := Paginate(seq(25), 10, "1")
	require.NoError(t, err)
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())
	assert.Equal(t, 2, first.NextNumber())

	last, err := Paginate(seq(25), 10, "3")
	require.NoError(t, err)
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrevious())
	assert.Equal(t, 2, last.PreviousNumber())
}
