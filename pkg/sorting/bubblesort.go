package sorting

// Bubblesort sorts arr with repeated adjacent-pair passes. A step is
// recorded for every swap and never for a comparison alone, so an already
// sorted input produces an empty log. All n passes always run.
func Bubblesort(arr []float64, rec *Recorder) {
	n := len(arr)
	for i := 0; i < n; i++ {
		for j := 0; j < n-i-1; j++ {
			if arr[j] > arr[j+1] {
				arr[j], arr[j+1] = arr[j+1], arr[j]
				rec.Record(arr, nil, j, j+1)
			}
		}
	}
}
