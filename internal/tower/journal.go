package tower

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

// JournalLine formats one journal entry:
// [YYYYMMDDHHMMSSNN][xxxxxxxx] text, where NN are the first two digits of
// the milliseconds and x is a random hex digit.
func JournalLine(at time.Time, text string) string {
	ms := fmt.Sprintf("%03d", at.Nanosecond()/int(time.Millisecond))
	return fmt.Sprintf("[%s%s][%08x] %s", at.Format("20060102150405"), ms[:2], rand.Uint32(), text)
}

// JournalStamp extracts the second-resolution timestamp of an entry, or ""
// for entries that do not start with one.
func JournalStamp(line string) string {
	if len(line) < 15 || line[0] != '[' {
		return ""
	}
	return line[1:15]
}

// JournalText strips the stamp and tag from an entry.
func JournalText(line string) string {
	if len(line) < 28 || line[0] != '[' || line[17] != ']' || line[27] != ']' {
		return line
	}
	return strings.TrimPrefix(line[28:], " ")
}

// NormalizeJournal returns history newest first. Histories written oldest
// first (by older saves) are detected from the first two stamps and
// reversed.
func NormalizeJournal(history []string) []string {
	out := make([]string, len(history))
	copy(out, history)
	if len(out) > 1 && JournalStamp(out[0]) < JournalStamp(out[1]) {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}
