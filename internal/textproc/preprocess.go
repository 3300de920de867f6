package textproc

import (
	"strings"
)

// emojiRanges mirrors the character classes stripped before any other
// normalization: emoticons, pictographs, transport symbols, flags, dingbats
// and the enclosed-character block.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2702, 0x27B0},
	{0x24C2, 0x1F251},
}

func isEmoji(r rune) bool {
	for _, rng := range emojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// RemoveSpecialCharacters drops emoji runes and collapses every remaining
// run of non-ASCII runes into a single space.
func RemoveSpecialCharacters(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	inNonASCII := false
	for _, r := range text {
		if isEmoji(r) {
			continue
		}
		if r > 0x7F {
			if !inNonASCII {
				b.WriteByte(' ')
				inNonASCII = true
			}
			continue
		}
		inNonASCII = false
		b.WriteRune(r)
	}
	return b.String()
}

// section header keywords recognized during re-segmentation. A line starting
// with one of these (any case) switches the current bucket; the keyword line
// itself is consumed.
var sectionKeywords = []string{"experience", "skills", "projects", "extracurricular"}

// Preprocess normalizes extracted resume text: strips emoji and non-ASCII
// content, then re-segments it into the fixed order header, experience,
// skills, projects, extracurricular by scanning line prefixes. Resumes with
// unrecognized headings keep everything in the header bucket. Idempotent.
func Preprocess(text string) string {
	text = RemoveSpecialCharacters(text)

	lines := strings.Split(text, "\n")
	buckets := map[string][]string{}
	current := "header"
	for _, line := range lines {
		if section, ok := matchSection(line); ok {
			current = section
			continue
		}
		buckets[current] = append(buckets[current], line)
	}

	result := strings.Join(buckets["header"], "\n") + "\n\n" +
		strings.Join(buckets["experience"], "\n") + "\n\n" + "\n\n" +
		strings.Join(buckets["skills"], "\n") + "\n\n" +
		strings.Join(buckets["projects"], "\n") + "\n\n" +
		strings.Join(buckets["extracurricular"], "\n") + "\n\n"
	return strings.TrimSpace(result)
}

func matchSection(line string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(line))
	for _, kw := range sectionKeywords {
		if strings.HasPrefix(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
