package articleservice

const SummaryLength = 500

// GenerateSummary returns content unchanged when it has at most SummaryLength
// characters, otherwise its first SummaryLength characters followed by "...".
func GenerateSummary(content string) string {
	runes := []rune(content)
	if len(runes) <= SummaryLength {
		return content
	}

	return string(runes[:SummaryLength]) + "..."
}
