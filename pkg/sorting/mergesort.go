package sorting

// Mergesort sorts arr with top-down merge sort. After each merge it records
// one step whose compared list holds every index of the merged range.
func Mergesort(arr []float64, rec *Recorder) {
	mergesort(arr, 0, len(arr)-1, rec)
}

func mergesort(arr []float64, l, r int, rec *Recorder) {
	if l >= r {
		return
	}
	m := l + (r-l)/2
	mergesort(arr, l, m, rec)
	mergesort(arr, m+1, r, rec)
	merge(arr, l, m, r)
	rec.Record(arr, nil, indexRange(l, r)...)
}

// merge combines the sorted ranges [l, m] and [m+1, r]. Ties take from the
// left range, which keeps the sort stable.
func merge(arr []float64, l, m, r int) {
	left := append([]float64(nil), arr[l:m+1]...)
	right := append([]float64(nil), arr[m+1:r+1]...)

	i, j, k := 0, 0, l
	for i < len(left) && j < len(right) {
		if left[i] <= right[j] {
			arr[k] = left[i]
			i++
		} else {
			arr[k] = right[j]
			j++
		}
		k++
	}
	k += copy(arr[k:], left[i:])
	copy(arr[k:], right[j:])
}

func indexRange(l, r int) []int {
	idx := make([]int, 0, r-l+1)
	for i := l; i <= r; i++ {
		idx = append(idx, i)
	}
	return idx
}
