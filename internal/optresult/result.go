// Package optresult holds the value types shared by the tabu search and
// memetic callers, mirroring the role of internal/opt in the teacher
// repository but extended with the time-stamped improvement history
// required by the time-bounded entry points (TabuSearch.optimize_time,
// Memetic.optimize).
package optresult

import "time"

// Point is one (elapsed_sec, makespan) sample of the improvement history.
type Point struct {
	ElapsedSec float64
	Makespan   int
}

// Result is returned by the time-bounded entry points of internal/tabu and
// internal/memetic.
type Result struct {
	Machines    [][]int
	Makespan    int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	History     []Point
	Meta        map[string]any
}
