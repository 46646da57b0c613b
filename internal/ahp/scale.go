package ahp

// ScaleEntry is one step of the 1-9 preference scale.
type ScaleEntry struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Scale is the Saaty preference scale offered to users. It is presentation
// metadata only: Update accepts any positive finite value.
var Scale = []ScaleEntry{
	{1, "Equal importance"},
	{2, "Intermediate value between 1 and 3"},
	{3, "Moderate importance of one over another"},
	{4, "Intermediate value between 3 and 5"},
	{5, "Essential or strong importance"},
	{6, "Intermediate value between 5 and 7"},
	{7, "Very strong importance"},
	{8, "Intermediate value between 7 and 9"},
	{9, "Extreme importance"},
}

// ScaleLabel returns the label for an integer scale value, or "" if v is off the scale.
func ScaleLabel(v int) string {
	if v < 1 || v > len(Scale) {
		return ""
	}
	return Scale[v-1].Label
}
