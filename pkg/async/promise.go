package async

// Result is the outcome of a fallible promise.
type Result[R any] struct {
	Value R
	Err   error
}

func Promise[R any](f func() R) <-chan R {
	out := make(chan R, 1)
	go func() {
		out <- f()
	}()
	return out
}

// Try runs f in its own goroutine and delivers its value and error together.
func Try[R any](f func() (R, error)) <-chan Result[R] {
	return Promise(func() Result[R] {
		v, err := f()
		return Result[R]{v, err}
	})
}
