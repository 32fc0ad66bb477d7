package scoring

type band struct {
	min    float64
	letter string
}

// bands are checked from the top; the first minimum reached wins.
var bands = []band{
	{95, "A+"},
	{90, "A"},
	{85, "A-"},
	{80, "B+"},
	{75, "B"},
	{70, "B-"},
	{67, "C+"},
	{63, "C"},
	{60, "C-"},
}

// LetterGrade maps a course percentage to its letter grade.
func LetterGrade(pct float64) string {
	for _, b := range bands {
		if pct >= b.min {
			return b.letter
		}
	}
	return "F"
}
