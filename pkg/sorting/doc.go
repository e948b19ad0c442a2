// Package sorting implements the instrumented sorting algorithms.
//
// Each algorithm sorts a working array in place and reports its progress
// to a [Recorder]. The recorder takes an independent copy of the array on
// every Record call, so later mutations never alter earlier steps.
//
// The algorithms differ in when they record:
//   - [Quicksort] records once per partition, with the pivot index and the
//     [low, high] bounds of the partitioned range.
//   - [Bubblesort] records only when an adjacent pair is swapped.
//   - [Mergesort] records once per merge, listing every index of the merged range.
//
// A Func never shares state between calls; callers own both the working
// array and the recorder.
package sorting
