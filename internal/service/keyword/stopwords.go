package keyword

var stopWords = buildStopWords(
	// short function words
	"the", "and", "for", "are", "but", "not", "you", "all", "can", "had", "her", "was",
	"one", "our", "out", "day", "get", "has", "him", "his", "how", "man", "new", "now",
	"old", "see", "two", "way", "who", "boy", "did", "its", "let", "put", "say", "she",
	"too", "use", "any", "may", "own", "yes", "yet", "why", "got", "off", "per",
	// longer common words
	"this", "that", "with", "from", "have", "they", "them", "then", "than", "there",
	"their", "what", "when", "where", "which", "while", "will", "would", "could",
	"should", "about", "into", "over", "just", "like", "also", "been", "being", "were",
	"your", "yours", "some", "such", "only", "very", "more", "most", "much", "many",
	"each", "every", "other", "these", "those", "here", "after", "before", "again",
	"because", "does", "doing", "done", "until", "upon", "even", "ever", "really",
	"still", "well", "make", "made", "know", "want", "going", "thing", "things",
)

func buildStopWords(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func isStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
