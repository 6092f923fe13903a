package citymesh

import "sync"

// task calls fn for every element of data, spread over contiguous chunks,
// one per worker. fn receives the position of the element so that results
// can be stored in input order. A single worker runs on the calling
// goroutine.
func task[T any](workersCount int, data []T, fn func(i int, data T)) {
	if workersCount <= 1 || len(data) <= 1 {
		for i, d := range data {
			fn(i, d)
		}
		return
	}

	var wg sync.WaitGroup
	dataSize := len(data)
	workersCount = min(workersCount, dataSize)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i, data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}
