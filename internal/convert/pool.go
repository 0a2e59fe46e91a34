package convert

import (
	"context"
	"fmt"
	"sync"
)

// Task is one unit of transcoding work. Index correlates the result back to
// the originating archive entry.
type Task struct {
	Index int
	Path  string
	Data  []byte
}

type result struct {
	index int
	data  []byte
}

// runPool executes fn for every task on a fixed set of workers and returns
// results keyed by task index. Completion order is unconstrained. The first
// failure cancels outstanding work and fails the pool; every worker has
// exited by the time runPool returns.
func runPool(ctx context.Context, workers int, tasks []Task, fn func(Task) ([]byte, error), done func()) (map[int][]byte, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(tasks) && len(tasks) > 0 {
		workers = len(tasks)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	taskCh := make(chan Task)
	resultCh := make(chan result)
	errCh := make(chan error, workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				data, err := fn(task)
				if err != nil {
					errCh <- &CodecError{Index: task.Index, Path: task.Path, Err: err}
					cancel()
					return
				}
				select {
				case resultCh <- result{index: task.Index, data: data}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(taskCh)
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make(map[int][]byte, len(tasks))
	for res := range resultCh {
		if _, dup := results[res.index]; dup {
			cancel()
			for range resultCh {
			}
			return nil, fmt.Errorf("duplicate result for entry %d", res.index)
		}
		results[res.index] = res.data
		if done != nil {
			done()
		}
	}

	select {
	case err := <-errCh:
		return nil, err
	default:
	}
	if err := context.Cause(ctx); err != nil && len(results) != len(tasks) {
		return nil, err
	}
	if len(results) != len(tasks) {
		return nil, fmt.Errorf("worker pool returned %d results for %d tasks", len(results), len(tasks))
	}
	return results, nil
}
