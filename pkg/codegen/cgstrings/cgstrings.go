// Copyright 2016-2024, Pulumi Corporation.
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

// Package cgstrings holds the casing rules shared by every language emitter. All emitters split identifiers into
// words with Words and case each word through the same acronym table, so a token cases identically in every SDK.
package cgstrings

import (
	"strings"
	"unicode"
)

// acronyms maps the lower-case form of a known acronym to its canonical cased form.
var acronyms = map[string]string{
	"api":  "Api",
	"arn":  "Arn",
	"az":   "Az",
	"cidr": "Cidr",
	"cpu":  "Cpu",
	"dns":  "Dns",
	"ec2":  "Ec2",
	"ecr":  "Ecr",
	"ecs":  "Ecs",
	"efs":  "Efs",
	"eip":  "Eip",
	"http": "Http",
	"iam":  "Iam",
	"id":   "Id",
	"ip":   "Ip",
	"ipv4": "Ipv4",
	"ipv6": "Ipv6",
	"json": "Json",
	"kms":  "Kms",
	"lb":   "Lb",
	"nat":  "Nat",
	"s3":   "S3",
	"tcp":  "Tcp",
	"tls":  "Tls",
	"url":  "Url",
	"vpc":  "Vpc",
}

// longestAcronym is the length of the longest key in acronyms.
const longestAcronym = 4

// Words splits an identifier into words. Any character that is not a letter or digit separates words; a word also
// ends before an upper-case letter that follows a lower-case letter or digit, and before the last letter of an
// upper-case run that is followed by a lower-case letter ("VPCEndpoint" is "VPC", "Endpoint"). A lone "s" after an
// upper-case run stays with the run ("SubnetIDs" is "Subnet", "IDs"). Digits stay with the preceding word.
func Words(s string) []string {
	runes := []rune(s)
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0:0]
		}
	}

	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			flush()
			continue
		}
		if unicode.IsUpper(c) && len(current) > 0 {
			prev := current[len(current)-1]
			switch {
			case unicode.IsLower(prev) || unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				if !(runes[i+1] == 's' && (i+2 == len(runes) || !unicode.IsLower(runes[i+2]))) {
					flush()
				}
			}
		}
		current = append(current, c)
		// Keep a plural "s" with the acronym it follows.
		if unicode.IsUpper(c) && len(current) > 1 && i+1 < len(runes) && runes[i+1] == 's' &&
			(i+2 == len(runes) || !unicode.IsLower(runes[i+2])) && isUpperRun(current) {
			current = append(current, 's')
			i++
		}
	}
	flush()
	return words
}

func isUpperRun(word []rune) bool {
	for _, c := range word {
		if !unicode.IsUpper(c) && !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

func isAllCaps(word string) bool {
	hasLetter := false
	for _, c := range word {
		if unicode.IsLower(c) {
			return false
		}
		if unicode.IsLetter(c) {
			hasLetter = true
		}
	}
	return hasLetter
}

func title(word string) string {
	if word == "" {
		return ""
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// splitAcronyms decomposes an all-caps word into known acronyms by longest match. It fails unless the whole word is
// consumed.
func splitAcronyms(lower string) ([]string, bool) {
	var parts []string
	for len(lower) > 0 {
		matched := false
		for n := longestAcronym; n > 0; n-- {
			if n > len(lower) {
				continue
			}
			if canonical, ok := acronyms[lower[:n]]; ok {
				parts = append(parts, canonical)
				lower = lower[n:]
				matched = true
				break
			}
		}
		if !matched {
			return nil, false
		}
	}
	return parts, true
}

// canonicalWords returns the cased form of a single word, which may expand into several words when the word is a run
// of acronyms.
func canonicalWords(word string) []string {
	lower := strings.ToLower(word)
	if canonical, ok := acronyms[lower]; ok {
		return []string{canonical}
	}
	if !isAllCaps(strings.TrimSuffix(word, "s")) {
		return []string{title(word)}
	}

	plural := ""
	if strings.HasSuffix(word, "s") {
		plural, lower = "s", strings.TrimSuffix(lower, "s")
		if canonical, ok := acronyms[lower]; ok {
			return []string{canonical + plural}
		}
	}
	if parts, ok := splitAcronyms(lower); ok && len(parts) > 1 {
		parts[len(parts)-1] += plural
		return parts
	}
	return []string{title(word)}
}

// CasedWords splits s into words and cases each one through the acronym table.
func CasedWords(s string) []string {
	var words []string
	for _, w := range Words(s) {
		words = append(words, canonicalWords(w)...)
	}
	return words
}

// Pascal converts an identifier to PascalCase: "EC2Service" becomes "Ec2Service" and "vpcId" becomes "VpcId".
func Pascal(s string) string {
	return strings.Join(CasedWords(s), "")
}

// Camel converts an identifier to camelCase: "EC2Service" becomes "ec2Service".
func Camel(s string) string {
	words := CasedWords(s)
	if len(words) == 0 {
		return ""
	}
	words[0] = strings.ToLower(words[0])
	return strings.Join(words, "")
}

// Snake converts an identifier to snake_case: "ipv4NetmaskLength" becomes "ipv4_netmask_length".
func Snake(s string) string {
	words := CasedWords(s)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}

// UpperSnake converts an identifier to UPPER_SNAKE_CASE: "OnePerAz" becomes "ONE_PER_AZ".
func UpperSnake(s string) string {
	return strings.ToUpper(Snake(s))
}

// Kebab converts an identifier to kebab-case: "ApplicationLoadBalancer" becomes "application-load-balancer".
func Kebab(s string) string {
	return strings.ReplaceAll(Snake(s), "_", "-")
}

// UppercaseFirst uppercases the first character of s and leaves the rest unchanged.
func UppercaseFirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// LowercaseFirst lowercases the first character of s and leaves the rest unchanged.
func LowercaseFirst(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
