package async

import "context"

// AwaitContext waits for a or for ctx to end, whichever comes first.
func AwaitContext[R any](ctx context.Context, a <-chan R) (R, error) {
	select {
	case r := <-a:
		return r, nil
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// AwaitAll waits for every result and returns the values in order, or the
// first error in order.
func AwaitAll[R any](ctx context.Context, a <-chan []Result[R]) ([]R, error) {
	results, err := AwaitContext(ctx, a)
	if err != nil {
		return nil, err
	}
	values := make([]R, len(results))
	for i, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}
		values[i] = r.Value
	}
	return values, nil
}
