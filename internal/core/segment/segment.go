// Package segment cuts flattened document text into per-page windows.
package segment

import (
	"math"

	"github.com/joseph-ayodele/docsplit/internal/entity"
)

// Proportional partitions text into pageCount windows of roughly equal
// length. Page i covers runes [floor(i*avg), floor((i+1)*avg)) where
// avg = runes/pageCount; the last window always ends at the end of the text.
// Windows are contiguous and never overlap. pageCount must be positive.
func Proportional(text string, pageCount int) []entity.PageWindow {
	if pageCount <= 0 {
		return nil
	}
	runes := []rune(text)
	total := len(runes)
	avg := float64(total) / float64(pageCount)

	windows := make([]entity.PageWindow, pageCount)
	for i := 0; i < pageCount; i++ {
		start := clamp(int(math.Floor(float64(i)*avg)), total)
		end := clamp(int(math.Floor(float64(i+1)*avg)), total)
		if i == pageCount-1 {
			end = total
		}
		windows[i] = entity.PageWindow{PageIndex: i, Text: string(runes[start:end])}
	}
	return windows
}

// FromPages wraps text that is already known per page.
func FromPages(pages []string) []entity.PageWindow {
	windows := make([]entity.PageWindow, len(pages))
	for i, p := range pages {
		windows[i] = entity.PageWindow{PageIndex: i, Text: p}
	}
	return windows
}

// Windows prefers exact per-page text when its length matches pageCount and
// falls back to Proportional over the full text otherwise.
func Windows(fullText string, pages []string, pageCount int) (windows []entity.PageWindow, exact bool) {
	if pageCount > 0 && len(pages) == pageCount {
		return FromPages(pages), true
	}
	return Proportional(fullText, pageCount), false
}

func clamp(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}
