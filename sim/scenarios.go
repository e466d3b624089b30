package sim

// Built-in scenario presets.
// Each call returns fresh values; callers may modify them freely.

// BuiltinScenarios returns the comprehensive-analysis scenario set.
func BuiltinScenarios() []Scenario {
	return []Scenario{
		{
			Name:        "Basic Test Case",
			References:  IntReferences(7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1),
			FrameCounts: []int{3, 4, 5},
		},
		{
			Name:        "Sequential Access Pattern",
			References:  IntReferences(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 1, 2, 3, 4, 5),
			FrameCounts: []int{3, 4, 5},
		},
		{
			Name:        "Repeated Pattern",
			References:  IntReferences(1, 2, 3, 1, 2, 3, 1, 2, 3, 1, 2, 3),
			FrameCounts: []int{2, 3, 4},
		},
		{
			Name:        "Random Access Pattern",
			References:  IntReferences(3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 3, 2, 3, 8, 4),
			FrameCounts: []int{3, 4, 5},
		},
		{
			Name:        "Locality of Reference",
			References:  IntReferences(1, 1, 1, 2, 2, 3, 3, 3, 1, 1, 4, 4, 2, 2, 5, 5, 5),
			FrameCounts: []int{3, 4},
		},
	}
}

// QuickScenarios returns the three predefined quick tests, one frame count each.
func QuickScenarios() []Scenario {
	return []Scenario{
		{
			Name:        "Predefined Test 1",
			References:  IntReferences(1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5),
			FrameCounts: []int{3},
		},
		{
			Name:        "Predefined Test 2",
			References:  IntReferences(7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1),
			FrameCounts: []int{4},
		},
		{
			Name:        "Predefined Test 3",
			References:  IntReferences(1, 2, 3, 1, 4, 2, 5, 1, 2, 3, 4, 5),
			FrameCounts: []int{3},
		},
	}
}

// ScenarioSet returns a named preset set: "builtin" or "quick".
// The second return value is false for unknown names.
func ScenarioSet(name string) ([]Scenario, bool) {
	switch name {
	case "", "builtin":
		return BuiltinScenarios(), true
	case "quick":
		return QuickScenarios(), true
	default:
		return nil, false
	}
}
