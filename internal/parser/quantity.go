package parser

import (
	"strconv"
	"strings"
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"a": 1, "an": 1, "single": 1,
}

// leadingQuantity reads a quantity expression off the front of a token list
// and returns the quantity plus how many tokens it consumed. Quantity words
// normalize before anything else looks at the text: "a dozen" is 12, "half a
// dozen" is 6, "a couple" is 2.
func leadingQuantity(tokens []string) (int, int) {
	if len(tokens) == 0 {
		return 1, 0
	}

	if tokens[0] == "half" {
		rest := tokens[1:]
		if len(rest) > 0 && rest[0] == "a" {
			rest = rest[1:]
		}
		if len(rest) > 0 && rest[0] == "dozen" {
			return 6, len(tokens) - len(rest) + 1
		}
	}

	if n, err := strconv.Atoi(tokens[0]); err == nil && n > 0 {
		return n, 1
	}

	n, ok := numberWords[tokens[0]]
	if !ok {
		return 1, 0
	}
	consumed := 1

	if len(tokens) > consumed {
		switch tokens[consumed] {
		case "dozen":
			return n * 12, consumed + 1
		case "couple":
			n, consumed = 2, consumed+1
		case "few":
			n, consumed = 3, consumed+1
		}
	}
	// "a couple of bagels"
	if len(tokens) > consumed && tokens[consumed] == "of" {
		consumed++
	}
	return n, consumed
}

// quantityOf normalizes a whole fragment to (quantity, remaining text)
func quantityOf(text string) (int, string) {
	tokens := strings.Fields(text)
	qty, consumed := leadingQuantity(tokens)
	return qty, strings.Join(tokens[consumed:], " ")
}
