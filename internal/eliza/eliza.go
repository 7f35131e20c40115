// Package eliza is the built-in reply engine: classic keyword-ranked pattern
// matching with pronoun reflection, driven by an embedded rule script.
package eliza

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"strings"

	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed script.yaml
var defaultScript []byte

type script struct {
	Reflections map[string]string `yaml:"reflections"`
	Defaults    []string          `yaml:"defaults"`
	Greetings   []string          `yaml:"greetings"`
	Keywords    []scriptKeyword   `yaml:"keywords"`
}

type scriptKeyword struct {
	Keyword string       `yaml:"keyword"`
	Rank    int          `yaml:"rank"`
	Rules   []scriptRule `yaml:"rules"`
}

type scriptRule struct {
	Pattern   string   `yaml:"pattern"`
	Responses []string `yaml:"responses"`
}

type rule struct {
	re        *regexp.Regexp
	responses []string
}

type keyword struct {
	word  string
	rank  int
	rules []rule
}

// Engine holds the compiled script. It is immutable after construction and
// safe for concurrent use; each Generate call is independent.
type Engine struct {
	reflections map[string]string
	defaults    []string
	greetings   []string
	keywords    []keyword
}

// New compiles the embedded default script.
func New() (*Engine, error) {
	return NewFromScript(defaultScript)
}

// NewFromScript compiles a YAML rule script.
func NewFromScript(raw []byte) (*Engine, error) {
	var sc script
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("eliza: parse script: %w", err)
	}
	if len(sc.Defaults) == 0 {
		return nil, fmt.Errorf("eliza: script has no default responses")
	}

	e := &Engine{
		reflections: sc.Reflections,
		defaults:    sc.Defaults,
		greetings:   sc.Greetings,
	}
	for _, kw := range sc.Keywords {
		k := keyword{word: strings.ToLower(kw.Keyword), rank: kw.Rank}
		for _, r := range kw.Rules {
			re, err := regexp.Compile("(?i)^" + r.Pattern + "$")
			if err != nil {
				return nil, fmt.Errorf("eliza: keyword %q: %w", kw.Keyword, err)
			}
			if len(r.Responses) == 0 {
				return nil, fmt.Errorf("eliza: keyword %q: rule has no responses", kw.Keyword)
			}
			k.rules = append(k.rules, rule{re: re, responses: r.Responses})
		}
		e.keywords = append(e.keywords, k)
	}
	// Highest rank first; equal ranks keep script order.
	sort.SliceStable(e.keywords, func(i, j int) bool {
		return e.keywords[i].rank > e.keywords[j].rank
	})
	return e, nil
}

// Generate produces a reply for a single utterance. It never fails on text
// input; the error return exists for the Generator contract.
func (e *Engine) Generate(_ context.Context, utterance string) (string, error) {
	return clean(e.respond(utterance)), nil
}

func (e *Engine) respond(utterance string) string {
	text := normalize(utterance)
	if text == "" && len(e.greetings) > 0 {
		return e.greetings[0]
	}

	for _, kw := range e.keywords {
		// Multi-word keywords ("i am") may appear contracted ("i'm"); let
		// their patterns decide instead of the literal word gate.
		if !strings.Contains(kw.word, " ") && !containsWord(text, kw.word) {
			continue
		}
		for _, r := range kw.rules {
			m := r.re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			resp := pick(r.responses, text)
			if len(m) > 1 {
				for i, frag := range m[1:] {
					ph := fmt.Sprintf("{%d}", i+1)
					resp = strings.ReplaceAll(resp, ph, e.reflect(frag))
				}
			}
			return resp
		}
	}
	return pick(e.defaults, text)
}

// reflect rewrites a captured fragment from the caller's point of view to
// the engine's (I <-> you and so on), token by token.
func (e *Engine) reflect(fragment string) string {
	words := strings.Fields(fragment)
	for i, w := range words {
		if r, ok := e.reflections[strings.ToLower(w)]; ok {
			words[i] = r
		}
	}
	return strings.Join(words, " ")
}

// pick selects a response variant deterministically from the utterance, so
// identical inputs give identical replies without any cross-call state.
func pick(responses []string, text string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(text))
	return responses[int(h.Sum32())%len(responses)]
}

func normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimRight(s, ".!?")
	return strings.TrimSpace(s)
}

func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordChar(text[start-1])
		afterOK := end == len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '\''
}

// clean strips prompt artifacts some scripts embed in their templates.
func clean(s string) string {
	s = strings.ReplaceAll(s, "Eliza: ", "")
	s = strings.ReplaceAll(s, "\nYou: ", "")
	return s
}
