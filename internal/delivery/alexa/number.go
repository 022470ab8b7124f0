package alexa

import (
	"strconv"
	"strings"

	"github.com/sunnykeerthi/service-center-user/internal/domain"
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
}

// parseSpokenNumber resolves the spoken ordinal, preferring the word-form slot
// over the digit-form slot when both arrived.
func parseSpokenNumber(wordSlot, digitSlot string) (int, error) {
	for _, raw := range []string{wordSlot, digitSlot} {
		value := strings.ToLower(strings.TrimSpace(raw))
		if value == "" {
			continue
		}
		if number, err := strconv.Atoi(value); err == nil {
			return number, nil
		}
		if number, ok := numberWords[value]; ok {
			return number, nil
		}
	}
	return 0, domain.ErrInvalidSelection
}
