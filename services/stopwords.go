package services

// englishStopWords are excluded from the similarity vector space. The
// list covers the common English function words; catalog descriptions
// are English text.
var englishStopWords = map[string]bool{}

func init() {
	words := []string{
		"a", "about", "above", "across", "after", "afterwards", "again",
		"against", "all", "almost", "alone", "along", "already", "also",
		"although", "always", "am", "among", "amongst", "an", "and",
		"another", "any", "anyhow", "anyone", "anything", "anyway",
		"anywhere", "are", "around", "as", "at", "back", "be", "became",
		"because", "become", "becomes", "becoming", "been", "before",
		"behind", "being", "below", "beside", "besides", "between",
		"beyond", "both", "bottom", "but", "by", "call", "can", "cannot",
		"could", "did", "do", "does", "doing", "done", "down", "during",
		"each", "either", "else", "elsewhere", "empty", "enough", "even",
		"ever", "every", "everyone", "everything", "everywhere", "except",
		"few", "first", "for", "former", "formerly", "from", "front",
		"full", "further", "get", "give", "go", "had", "has", "have", "he",
		"hence", "her", "here", "hereafter", "hereby", "herein", "hers",
		"herself", "him", "himself", "his", "how", "however", "i", "if",
		"in", "indeed", "into", "is", "it", "its", "itself", "just",
		"last", "latter", "latterly", "least", "less", "made", "many",
		"may", "me", "meanwhile", "might", "mine", "more", "moreover",
		"most", "mostly", "much", "must", "my", "myself", "namely",
		"neither", "never", "nevertheless", "next", "no", "nobody", "none",
		"noone", "nor", "not", "nothing", "now", "nowhere", "of", "off",
		"often", "on", "once", "one", "only", "onto", "or", "other",
		"others", "otherwise", "our", "ours", "ourselves", "out", "over",
		"own", "per", "perhaps", "please", "rather", "re", "same", "see",
		"seem", "seemed", "seeming", "seems", "several", "she", "should",
		"since", "so", "some", "somehow", "someone", "something",
		"sometime", "sometimes", "somewhere", "still", "such", "than",
		"that", "the", "their", "them", "themselves", "then", "thence",
		"there", "thereafter", "thereby", "therefore", "therein",
		"thereupon", "these", "they", "third", "this", "those", "though",
		"through", "throughout", "thru", "thus", "to", "together", "too",
		"top", "toward", "towards", "under", "until", "up", "upon", "us",
		"very", "via", "was", "we", "well", "were", "what", "whatever",
		"when", "whence", "whenever", "where", "whereafter", "whereas",
		"whereby", "wherein", "whereupon", "wherever", "whether", "which",
		"while", "whither", "who", "whoever", "whole", "whom", "whose",
		"why", "will", "with", "within", "without", "would", "yet", "you",
		"your", "yours", "yourself", "yourselves",
	}
	for _, w := range words {
		englishStopWords[w] = true
	}
}
