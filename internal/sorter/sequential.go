package sorter

import "cmp"

// Merge merges two sorted slices into a new sorted slice.
// Ties take the left element first, so the merge is stable.
func Merge[T cmp.Ordered](left, right []T) []T {
	result := make([]T, 0, len(left)+len(right))

	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			result = append(result, left[i])
			i++
		} else {
			result = append(result, right[j])
			j++
		}
	}

	result = append(result, left[i:]...)
	result = append(result, right[j:]...)
	return result
}

// MergeSort sorts s in place with a top-down merge sort
func MergeSort[T cmp.Ordered](s []T) {
	if len(s) <= 1 {
		return
	}

	mid := len(s) / 2
	MergeSort(s[:mid])
	MergeSort(s[mid:])

	copy(s, Merge(s[:mid], s[mid:]))
}

// IsSorted reports whether s is in non-decreasing order
func IsSorted[T cmp.Ordered](s []T) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}
