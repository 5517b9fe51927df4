package dice

// RollDice rolls count independent sides-sided dice and returns each result.
//
// Precondition: count >= 1, sides >= 2, src non-nil.
// Postcondition: len(result) == count and every value is in [1, sides].
func RollDice(count, sides int, src Source) []int {
	rolled := make([]int, count)
	for i := range rolled {
		rolled[i] = src.Intn(sides) + 1
	}
	return rolled
}

// RollTotal rolls count sides-sided dice and returns the summed total.
//
// Postcondition: result is in [count, count*sides].
func RollTotal(count, sides int, src Source) int {
	total := 0
	for _, d := range RollDice(count, sides, src) {
		total += d
	}
	return total
}

// D20 rolls a single twenty-sided die.
//
// Postcondition: result is in [1, 20].
func D20(src Source) int {
	return src.Intn(20) + 1
}

// WithAdvantage rolls a sides-sided die twice and returns the higher result.
//
// Postcondition: result is in [1, sides].
func WithAdvantage(sides int, src Source) int {
	a := src.Intn(sides) + 1
	b := src.Intn(sides) + 1
	if a >= b {
		return a
	}
	return b
}

// WithDisadvantage rolls a sides-sided die twice and returns the lower result.
//
// Postcondition: result is in [1, sides].
func WithDisadvantage(sides int, src Source) int {
	a := src.Intn(sides) + 1
	b := src.Intn(sides) + 1
	if a <= b {
		return a
	}
	return b
}
