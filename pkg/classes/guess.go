package classes

import "strings"

// keyword families for the automatic mapping guess. Order matters: the
// finals family is checked first so labels like "Wolf Finals" resolve to the
// finals tier rather than the den.
var guessFamilies = []struct {
	class    Name
	keywords []string
}{
	{GrandFinals, []string{"grand final", "grand-final", "final", "championship", "champion"}},
	{ArrowOfLight, []string{"arrow of light", "arrow", "aol"}},
	{Lion, []string{"lion"}},
	{Tiger, []string{"tiger"}},
	{Wolf, []string{"wolf", "wolves"}},
	{Bear, []string{"bear"}},
	{Webelos, []string{"webelos", "webelo", "webes"}},
}

// Guess suggests a standard class for a raw label by case-insensitive
// substring match against known keyword families. The suggestion is advisory
// only: the merge precondition still requires an explicit mapping entry for
// every observed label, so a guess never silently stands in for one.
func Guess(label string) (Name, bool) {
	lower := strings.ToLower(label)
	for _, family := range guessFamilies {
		for _, kw := range family.keywords {
			if strings.Contains(lower, kw) {
				return family.class, true
			}
		}
	}
	return "", false
}
