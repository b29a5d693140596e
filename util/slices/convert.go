package slices

// Partition splits items into the elements of type T and all others, both
// in their original order.
func Partition[T any](items []interface{}) (matching []T, rest []interface{}) {
	for _, item := range items {
		if v, ok := item.(T); ok {
			matching = append(matching, v)
			continue
		}
		rest = append(rest, item)
	}

	return matching, rest
}
