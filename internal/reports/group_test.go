package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukydev/garage/internal/models"
)

type line struct {
	key    string
	amount int64
}

func TestSumBy(t *testing.T) {
	rows := []line{{"a", 1}, {"b", 2}, {"a", 3}}
	got := sumBy(rows,
		func(l line) string { return l.key },
		func(l line) models.Money { return models.Cents(l.amount) },
	)
	assert.Equal(t, map[string]models.Money{"a": 4, "b": 2}, got)
}

func TestGroupBy_PreservesOrder(t *testing.T) {
	type acc struct{ seen []int }
	got := groupBy([]int{1, 2, 3, 4}, func(n int) string {
		if n%2 == 0 {
			return "even"
		}
		return "odd"
	}, func(a *acc, n int) { a.seen = append(a.seen, n) })

	assert.Equal(t, []int{1, 3}, got["odd"].seen)
	assert.Equal(t, []int{2, 4}, got["even"].seen)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 100.0, average(models.Cents(30000), 3))
	assert.Equal(t, 0.0, average(models.Cents(500), 0))
}
