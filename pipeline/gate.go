package pipeline

import "strings"

const gateMinLength = 200

var gateKeywords = []string{"important", "because", "therefore", "summary"}

// ShouldEmbed is a cheap lexical proxy for whether an assistant response
// carries retrievable information. Short turns are conversational filler;
// longer ones must show at least one high-signal marker before we commit
// an embedding call for them.
func ShouldEmbed(text string) bool {
	if len(text) < gateMinLength {
		return false
	}

	if strings.Contains(text, "```") {
		return true
	}

	if strings.ContainsAny(text, "{}") {
		return true
	}

	if strings.Contains(text, "1.") || strings.Contains(text, "* ") {
		return true
	}

	lower := strings.ToLower(text)
	for _, keyword := range gateKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return false
}
