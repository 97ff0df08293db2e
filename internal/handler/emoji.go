package handler

import (
	"math/rand"
	"strings"
	"unicode"
)

// Decorative only; never part of any tested contract.
var emojiList = []string{
	"😭", "😄", "😌", "🤓", "😎", "😤", "🤖", "😶‍🌫️", "🌏", "📸", "💿", "👋", "🌊", "✨",
}

func randomEmoji() string {
	return emojiList[rand.Intn(len(emojiList))]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
