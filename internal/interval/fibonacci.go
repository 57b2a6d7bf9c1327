// Package interval holds the fixed Fibonacci ladder every card interval
// lives on. Review choices and overdue decay move a card up and down the
// ladder by index; lookups clamp at both ends so stepping past a boundary
// holds there instead of erroring.
package interval

// Fibonacci is the canonical interval sequence, indexed 0..12.
var Fibonacci = []int{1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233, 377}

// IndexOf returns the ladder index of an exact interval value. Values not in
// the sequence resolve to index 1 (value 2): externally supplied intervals
// must still land on some valid rung.
func IndexOf(value int) int {
	for i, v := range Fibonacci {
		if v == value {
			return i
		}
	}
	return 1
}

// ValueAt returns the interval value at the given index, clamped to the
// sequence bounds.
func ValueAt(index int) int {
	if index < 0 {
		return Fibonacci[0]
	}
	if index >= len(Fibonacci) {
		return Fibonacci[len(Fibonacci)-1]
	}
	return Fibonacci[index]
}

// StepUp returns the next longer interval, saturating at the top rung.
func StepUp(value int) int {
	return ValueAt(IndexOf(value) + 1)
}

// StepDown returns the next shorter interval, saturating at the bottom rung.
func StepDown(value int) int {
	return ValueAt(IndexOf(value) - 1)
}
