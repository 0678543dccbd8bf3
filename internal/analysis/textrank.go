package analysis

import "math"

// rank вычисляет оценки предложений итерациями PageRank
// по взвешенному графу сходства.
func rank(sentences [][]string, opts Options) []float64 {
	n := len(sentences)
	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
	}
	outSum := make([]float64, n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := similarity(sentences[i], sentences[j])
			weights[i][j] = w
			weights[j][i] = w
			outSum[i] += w
			outSum[j] += w
		}
	}

	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1 / float64(n)
	}

	base := (1 - opts.Damping) / float64(n)
	for iter := 0; iter < opts.MaxIterations; iter++ {
		next := make([]float64, n)
		delta := 0.0

		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				if weights[j][i] == 0 {
					continue
				}
				sum += weights[j][i] / outSum[j] * scores[j]
			}
			next[i] = base + opts.Damping*sum
			delta = math.Max(delta, math.Abs(next[i]-scores[i]))
		}

		scores = next
		if delta < opts.Epsilon {
			break
		}
	}

	return scores
}

// similarity - число общих слов, нормированное на логарифмы длин предложений.
func similarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	inB := make(map[string]struct{}, len(b))
	for _, w := range b {
		inB[w] = struct{}{}
	}

	common := 0
	counted := make(map[string]struct{}, len(a))
	for _, w := range a {
		if _, ok := inB[w]; !ok {
			continue
		}
		if _, ok := counted[w]; ok {
			continue
		}
		counted[w] = struct{}{}
		common++
	}

	denominator := math.Log(float64(len(a))) + math.Log(float64(len(b)))
	if common == 0 || denominator <= 0 {
		return 0
	}
	return float64(common) / denominator
}
