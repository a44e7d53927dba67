package selector

type number interface {
	~int | ~int64 | ~float32 | ~float64
}

func findMax[T any, N number](list []T, value func(elem T) N) (min, max N, maxIndex int) {
	for i, elem := range list {
		v := value(elem)
		if i == 0 || v < min {
			min = v
		}
		if i == 0 || v > max {
			max = v
			maxIndex = i
		}
	}
	return
}
