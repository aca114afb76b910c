package corrector

// levenshtein is the unit-cost insert/delete/substitute distance over runes.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			x := prev[j] + 1
			if y := curr[j-1] + 1; y < x {
				x = y
			}
			if z := prev[j-1] + cost; z < x {
				x = z
			}
			curr[j] = x
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

// better reports whether (d, w) beats the current best: smaller distance
// first, then lexicographic order.
func better(d int, w string, bestD int, bestW string) bool {
	return d < bestD || (d == bestD && w < bestW)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
