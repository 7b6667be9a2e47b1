package blurhash

import (
	"math"
	"runtime"
	"sync"
)

// serialWork is the per-call work size (pixels × cells) below which
// goroutine start-up costs more than it saves.
const serialWork = 1 << 14

// parallelRange splits [0, n) into contiguous bands and calls fn once per
// band.  Bands never overlap, so fn may write to index-owned output
// without locking.  Results do not depend on the number of bands.
func parallelRange(n, work int, fn func(lo, hi int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 || work < serialWork {
		fn(0, n)
		return
	}

	step := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += step {
		hi := min(lo+step, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}

// cosTable returns cos(pi*k*i/size) for k in [0, n), i in [0, size),
// laid out as table[k*size+i].
func cosTable(n, size int) []float64 {
	t := make([]float64, n*size)
	for k := 0; k < n; k++ {
		base := k * size
		for i := 0; i < size; i++ {
			t[base+i] = math.Cos(math.Pi * float64(k) * float64(i) / float64(size))
		}
	}
	return t
}
