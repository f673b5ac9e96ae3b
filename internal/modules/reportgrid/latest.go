package reportgrid

// pickBy keeps one row per key: the row for which better reports true
// against every other row of that key. Keys come out in first-encounter
// order.
func pickBy[K comparable, T any](rows []T, key func(T) K, better func(a, b T) bool) []T {
	index := make(map[K]int, len(rows))
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		k := key(row)
		i, ok := index[k]
		if !ok {
			index[k] = len(out)
			out = append(out, row)
			continue
		}
		if better(row, out[i]) {
			out[i] = row
		}
	}
	return out
}

// groupBy buckets rows by key, keeping input order inside each bucket.
func groupBy[K comparable, T any](rows []T, key func(T) K) map[K][]T {
	out := make(map[K][]T)
	for _, row := range rows {
		k := key(row)
		out[k] = append(out[k], row)
	}
	return out
}
