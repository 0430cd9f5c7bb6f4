package segment

import "strings"

// Split greedily accumulates whitespace-delimited tokens into chunks and
// closes a chunk once its joined length reaches the character budget.
// Boundaries never fall inside a token, so chunk lengths vary around the
// budget instead of matching it exactly; a single token longer than the
// budget becomes its own chunk. Joining the output with single spaces
// reproduces the whitespace-normalized input.
//
// Pure and deterministic - no state is carried between calls.
func Split(text string, budget int) []string {
	if budget <= 0 {
		budget = 1
	}

	var chunks []string
	var current []string
	currentLen := 0

	for _, token := range strings.Fields(text) {
		current = append(current, token)
		currentLen += len(token) + 1 //joining space

		if currentLen >= budget {
			chunks = append(chunks, strings.Join(current, " "))
			current = nil
			currentLen = 0
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
