// Package keywords extracts stopword-filtered keyword vocabularies from text
// and computes overlap/gap sets between a job posting and a resume.
package keywords

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DefaultMinLength is the minimum token length for a keyword.
const DefaultMinLength = 3

// defaultStopwords lists conjunctions and generic HR words that add noise to
// lexical matching.
var defaultStopwords = []string{
	"and", "the", "with", "for", "to", "of", "in", "on", "a", "an", "or",
	"be", "as", "by", "is", "are", "will", "able", "etc", "any", "all",
	"job", "role", "responsible", "responsibilities", "requirement",
	"requirements", "candidate", "candidates", "ability", "strong", "good",
	"skills", "experience", "experiences", "year", "years",
}

// DefaultStopwords returns a copy of the built-in stopword list.
func DefaultStopwords() []string {
	out := make([]string, len(defaultStopwords))
	copy(out, defaultStopwords)
	return out
}

// Set is a set of lowercase keywords.
type Set map[string]struct{}

// Contains reports whether kw is in the set.
func (s Set) Contains(kw string) bool {
	_, ok := s[kw]
	return ok
}

// Sorted returns the keywords in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for kw := range s {
		out = append(out, kw)
	}
	sort.Strings(out)
	return out
}

// Extractor tokenizes text into keywords. The stopword table and minimum
// token length are injected so the extractor stays a pure function of its
// configuration.
type Extractor struct {
	stopwords map[string]struct{}
	minLen    int
	pattern   *regexp.Regexp
}

// NewExtractor builds an Extractor. A nil stopword slice uses the default
// table; minLen values below 1 use DefaultMinLength.
func NewExtractor(stopwords []string, minLen int) *Extractor {
	if stopwords == nil {
		stopwords = defaultStopwords
	}
	if minLen < 1 {
		minLen = DefaultMinLength
	}
	stop := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &Extractor{
		stopwords: stop,
		minLen:    minLen,
		pattern:   regexp.MustCompile(`[a-z]{` + strconv.Itoa(minLen) + `,}`),
	}
}

// Extract lowercases text, pulls out runs of alphabetic characters of length
// >= the configured minimum, and drops stopwords. Identical input always
// yields an identical set.
func (e *Extractor) Extract(text string) Set {
	set := make(Set)
	for _, tok := range e.pattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := e.stopwords[tok]; stop {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// Overlap computes the sorted intersection (overlap) and difference (gaps)
// of job keywords against resume keywords.
func Overlap(job, resume Set) (overlap, gaps []string) {
	overlap = make([]string, 0, len(job))
	gaps = make([]string, 0, len(job))
	for kw := range job {
		if resume.Contains(kw) {
			overlap = append(overlap, kw)
		} else {
			gaps = append(gaps, kw)
		}
	}
	sort.Strings(overlap)
	sort.Strings(gaps)
	return overlap, gaps
}
