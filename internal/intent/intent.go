package intent

import (
	"fmt"
	"regexp"
	"strings"
)

type Intent string

const (
	Courtesy  Intent = "courtesy"
	Technical Intent = "technical"
)

// DefaultCourtesyPhrases are regular-expression fragments, matched as whole
// (trimmed) queries with optional trailing punctuation.
var DefaultCourtesyPhrases = []string{
	"hi",
	"hello",
	"hey",
	"thanks",
	"thank you",
	"good (morning|afternoon|evening|night)",
	"bye",
	"goodbye",
	"see you",
	"how are you",
	"what's up",
	"sup",
	"yo",
	"greetings",
	"nice to meet you",
	"good to see you",
	"good day",
}

type Classifier struct {
	pattern *regexp.Regexp
}

func NewClassifier(phrases []string) (*Classifier, error) {
	items := make([]string, 0, len(phrases))
	for _, p := range phrases {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		items = append(items, p)
	}
	if len(items) == 0 {
		items = DefaultCourtesyPhrases
	}
	expr := `(?i)^(` + strings.Join(items, "|") + `)[.!\s]*$`
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile courtesy phrases: %w", err)
	}
	return &Classifier{pattern: pattern}, nil
}

func (c *Classifier) Classify(query string) Intent {
	if c.pattern.MatchString(strings.TrimSpace(query)) {
		return Courtesy
	}
	return Technical
}
