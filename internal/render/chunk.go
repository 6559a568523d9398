package render

import "unicode/utf8"

// MaxMessageLength is the longest text Telegram accepts in one message.
const MaxMessageLength = 4096

// Chunk joins header and entries into as few messages as possible, none
// longer than limit characters. An entry is never split; an entry longer
// than limit gets a message of its own.
func Chunk(header string, entries []string, limit int) []string {
	var chunks []string
	current := header

	for _, entry := range entries {
		if current != "" && utf8.RuneCountInString(current)+utf8.RuneCountInString(entry) > limit {
			chunks = append(chunks, current)
			current = entry
			continue
		}
		current += entry
	}

	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}
