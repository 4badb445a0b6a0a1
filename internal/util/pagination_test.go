package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                          string
		page, size                    int
		wantPage, wantOffset, wantLim int
	}{
		{name: "defaults", page: 0, size: 0, wantPage: 1, wantOffset: 0, wantLim: DefaultPageSize},
		{name: "second page", page: 2, size: 9, wantPage: 2, wantOffset: 9, wantLim: 9},
		{name: "negative page", page: -3, size: 5, wantPage: 1, wantOffset: 0, wantLim: 5},
		{name: "size capped", page: 1, size: 1000, wantPage: 1, wantOffset: 0, wantLim: MaxPageSize},
		{name: "page capped", page: math.MaxInt, size: 1000, wantPage: MaxPage, wantOffset: (MaxPage - 1) * MaxPageSize, wantLim: MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			page, offset, limit := Calculate(tt.page, tt.size)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantOffset, offset)
			assert.Equal(t, tt.wantLim, limit)
		})
	}
}

func TestTotalPages(t *testing.T) {
	t.Parallel()
	assert.EqualValues(t, 0, TotalPages(0, 9))
	assert.EqualValues(t, 1, TotalPages(9, 9))
	assert.EqualValues(t, 2, TotalPages(10, 9))
}

func TestParseIntDefault(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 7, ParseIntDefault("", 7))
	assert.Equal(t, 7, ParseIntDefault("abc", 7))
	assert.Equal(t, 3, ParseIntDefault(" 3 ", 7))
}
