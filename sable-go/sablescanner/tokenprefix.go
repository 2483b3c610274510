package sablescanner

// KeywordPrefixes is a set containing all the
// possible prefixes for any sable keyword.
var KeywordPrefixes map[string]struct{}

func init() {
	KeywordPrefixes = make(map[string]struct{})
	for word := range Keywords {
		for i := 1; i <= len(word); i++ {
			prefix := word[0:i]
			KeywordPrefixes[prefix] = struct{}{}
		}
	}
}
