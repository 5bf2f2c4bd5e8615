package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxSheetNameLength is the longest worksheet name Excel accepts.
const MaxSheetNameLength = 31

// BaseName returns the part of a file name before its first dot.
// "Admin.profile-meta.xml" becomes "Admin". A name without a dot is
// returned unchanged.
func BaseName(fileName string) string {
	if i := strings.IndexByte(fileName, '.'); i >= 0 {
		return fileName[:i]
	}
	return fileName
}

// SheetName makes name usable as a worksheet name: characters Excel rejects
// become '_', surrounding apostrophes are dropped and the result is cut to
// MaxSheetNameLength runes. An empty result becomes "Sheet".
func SheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, "'")
	name = truncateRunes(name, MaxSheetNameLength)
	if name == "" {
		return "Sheet"
	}
	return name
}

// UniqueSheetName returns name, or name with a " (n)" suffix, such that
// taken reports false for it. Excel compares sheet names case-insensitively,
// so taken should too.
func UniqueSheetName(name string, taken func(string) bool) string {
	if !taken(name) {
		return name
	}
	for n := 2; ; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		candidate := truncateRunes(name, MaxSheetNameLength-len(suffix)) + suffix
		if !taken(candidate) {
			return candidate
		}
	}
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
