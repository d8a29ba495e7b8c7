package tower

// FloorCost is the energy needed to leave floor.
func FloorCost(floor int) int {
	switch {
	case floor <= 3:
		return 4
	case floor <= 6:
		return 6
	}
	return 8
}

// LoreRequirement is the lore needed to enter target.
func LoreRequirement(target int) int {
	switch {
	case target <= 1:
		return 0
	case target <= 3:
		return 4
	case target <= 6:
		return 6
	case target <= 10:
		return 8
	}
	extra := target - 10
	return 8 + 2*((extra+2)/3)
}

// TopFloor is the summit of tempo; reaching it advances the tempo.
func TopFloor(tempo int) int {
	return 10 * (tempo + 1)
}
