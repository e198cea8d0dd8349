package nahw

import "fmt"

// Aggregate evaluates categories, then special, against every word and
// returns one MatchResult per match: words in order, categories in request
// order, the special match last for its word. Duplicate categories are
// evaluated again and yield duplicate results.
//
// An empty special means no special request. Bags are built once per word;
// a bag that cannot be built fails the whole call.
func Aggregate(words []Word, categories []string, special string) ([]MatchResult, error) {
	var results []MatchResult
	for i, w := range words {
		bag, err := Adapt(w.Top())
		if err != nil {
			return nil, fmt.Errorf("token %d (%q): %w", i, w.Word, err)
		}
		for _, label := range categories {
			if Match(label, w.Word, bag) {
				results = append(results, newResult(label, w.Word, bag))
			}
		}
		if special != "" && MatchSpecial(special, w.Word, bag) {
			results = append(results, newResult(special, w.Word, bag))
		}
	}
	return results, nil
}

func newResult(label, token string, bag AttributeBag) MatchResult {
	primary, secondary := Render(label, bag)
	return MatchResult{
		Token:             token,
		Type:              label,
		Details:           primary,
		AdditionalDetails: secondary,
	}
}
