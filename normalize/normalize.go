// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package normalize canonicalizes restaurant names, menu descriptions and
// free-text prices scraped from menu pages.
//
// Name is the only key used to match restaurants. Callers must normalize
// both sides of a comparison before testing equality.
package normalize

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var nameReplacer = strings.NewReplacer("-", " ", "_", " ")

// Name lowercases s and folds hyphens and underscores into spaces.
func Name(s string) string {
	if s == "" {
		return ""
	}
	return nameReplacer.Replace(strings.ToLower(s))
}

// Loose is a punctuation-insensitive variant of Name. It drops every rune
// that is not a letter, digit or space and collapses runs of whitespace.
func Loose(s string) string {
	s = Name(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Clean lowercases text, removes parentheses and newlines, drops runes
// outside the allowed set and collapses whitespace. Clean is idempotent.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r':
			return ' '
		case r == '(' || r == ')':
			return -1
		case allowed(r):
			return r
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// allowed reports whether r survives Clean: word characters, whitespace,
// currency symbols and the separators . , -
func allowed(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
		return true
	}
	switch r {
	case '₹', '$', '€', '£', '.', ',', '-':
		return true
	}
	return false
}

// Price extracts the first run of ASCII digits in s. It returns 0 when s is
// empty or holds no digits. Decimals and ranges are not interpreted: for
// "₹199 - ₹249" the result is 199.
func Price(s string) float64 {
	start := strings.IndexFunc(s, isASCIIDigit)
	if start < 0 {
		return 0
	}
	end := start
	for end < len(s) && isASCIIDigit(rune(s[end])) {
		end++
	}
	v, err := strconv.ParseFloat(s[start:end], 64)
	if err != nil {
		return 0
	}
	return v
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// Title upper-cases the first letter of each word in s.
func Title(s string) string {
	return cases.Title(language.English).String(s)
}
