package async

// GatherN collects the values of cs in the order the channels were given,
// regardless of the order they complete in.
func GatherN[R any](cs ...<-chan R) <-chan []R {
	return Promise(func() []R {
		results := make([]R, len(cs))
		for i, f := range cs {
			results[i] = <-f
		}
		return results
	})
}
