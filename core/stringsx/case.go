package stringsx

import (
	"strings"
	"unicode/utf8"
)

// LowerFirstChar takes a string and returns a new string with the first character converted to lowercase.
func LowerFirstChar(s string) string {
	return mapFirstChar(s, strings.ToLower)
}

// UpperFirstChar takes a string and returns a new string with the first character converted to uppercase.
// This is the form an identifier must have to be exported.
func UpperFirstChar(s string) string {
	return mapFirstChar(s, strings.ToUpper)
}

func mapFirstChar(s string, fn func(string) string) string {
	if s == "" {
		return ""
	}

	firstRune, size := utf8.DecodeRuneInString(s)

	return fn(string(firstRune)) + s[size:]
}
