package reports

import "github.com/ukydev/garage/internal/models"

// sumBy adds amount(row) into the bucket named by key(row).
func sumBy[T any](rows []T, key func(T) string, amount func(T) models.Money) map[string]models.Money {
	out := make(map[string]models.Money)
	for _, row := range rows {
		out[key(row)] += amount(row)
	}
	return out
}

// groupBy folds rows into one accumulator per key, in row order.
func groupBy[T any, A any](rows []T, key func(T) string, fold func(*A, T)) map[string]*A {
	out := make(map[string]*A)
	for _, row := range rows {
		k := key(row)
		acc, ok := out[k]
		if !ok {
			acc = new(A)
			out[k] = acc
		}
		fold(acc, row)
	}
	return out
}
