package sorting

// Quicksort sorts arr with recursive Lomuto partitioning. The pivot of each
// range is its last element. One step is recorded per partition, carrying
// the pivot's final index and the bounds of the partitioned range.
func Quicksort(arr []float64, rec *Recorder) {
	quicksort(arr, 0, len(arr)-1, rec)
}

func quicksort(arr []float64, low, high int, rec *Recorder) {
	if low >= high {
		return
	}
	p := partition(arr, low, high)
	rec.Record(arr, &p, low, high)
	quicksort(arr, low, p-1, rec)
	quicksort(arr, p+1, high, rec)
}

// partition places arr[high] at its sorted position within [low, high] and
// returns that position. Elements <= pivot end up on its left.
func partition(arr []float64, low, high int) int {
	pivot := arr[high]
	i := low - 1
	for j := low; j < high; j++ {
		if arr[j] <= pivot {
			i++
			arr[i], arr[j] = arr[j], arr[i]
		}
	}
	arr[i+1], arr[high] = arr[high], arr[i+1]
	return i + 1
}
