package valueobjects

import (
	"fmt"
	"strings"
)

type Language string

const (
	English Language = "en"
	Persian Language = "fa"
)

type Direction string

const (
	LeftToRight Direction = "ltr"
	RightToLeft Direction = "rtl"
)

// SupportedLanguages lists the languages that have a translation table.
var SupportedLanguages = []Language{English, Persian}

func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, nil
	case Persian:
		return Persian, nil
	default:
		return "", fmt.Errorf("unsupported language: %q", s)
	}
}

func (l Language) Direction() Direction {
	if l == Persian {
		return RightToLeft
	}
	return LeftToRight
}

// Toggle flips between the two supported languages.
func (l Language) Toggle() Language {
	if l == Persian {
		return English
	}
	return Persian
}

func (l Language) String() string {
	return string(l)
}
