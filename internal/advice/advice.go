// Package advice produces the personalized action guide of a chart.
//
// The text itself comes from an external Generator. The Gateway owns the prompt,
// the response parsing and the fallback: it never returns an error to its caller.
package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/go-saju/internal/analysis"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/cycle"
	"github.com/tartampluch/go-saju/internal/pillar"
)

// Fallback is returned whenever no usable advice could be produced.
const Fallback = "맞춤형 행동 가이드를 생성할 수 없습니다. 나중에 다시 시도해주세요."

const (
	maxKeywords = 5
	maxDo       = 3
	maxAvoid    = 3

	keyKeywords    = "keywords"
	keyShouldDo    = "shouldDo"
	keyShouldAvoid = "shouldAvoid"
)

var (
	fencedJSON = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")
	fencedAny  = regexp.MustCompile("```\\s*([\\s\\S]*?)\\s*```")
)

// Generator turns a prompt into raw model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Request is the chart data the prompt is built from.
type Request struct {
	Gender   pillar.Gender
	Pillars  pillar.FourPillars
	Elements analysis.ElementCounts
	YinYang  analysis.YinYangCounts
	Year     int
	Saeun    cycle.Pillar
}

// Advice is the structured model answer.
type Advice struct {
	Keywords    []string `json:"keywords"`
	ShouldDo    []string `json:"shouldDo"`
	ShouldAvoid []string `json:"shouldAvoid"`
}

// Gateway calls the generator under a timeout and formats the result.
type Gateway struct {
	gen     Generator
	timeout time.Duration
}

// NewGateway returns a gateway. A nil generator always yields Fallback; a
// non-positive timeout uses config.AdviceTimeout.
func NewGateway(gen Generator, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = config.AdviceTimeout
	}
	return &Gateway{gen: gen, timeout: timeout}
}

type result struct {
	text string
	err  error
}

// Advise returns the formatted guide, or Fallback on any failure.
func (g *Gateway) Advise(ctx context.Context, req Request) string {
	log := slog.With(slog.String(config.LogKeyComponent, config.CompAdvice))

	if g == nil || g.gen == nil {
		log.Debug(config.MsgAdviceDisabled)
		return Fallback
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan result, config.ChannelBufferSize)
	go func() {
		text, err := g.gen.Generate(ctx, BuildPrompt(req))
		done <- result{text: text, err: err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		res.err = ctx.Err()
	}

	if res.err != nil {
		log.Warn(config.MsgAdviceFallback,
			slog.Duration(config.LogKeyTimeout, g.timeout),
			slog.Any(config.LogKeyError, res.err),
		)
		return Fallback
	}

	adv, err := Parse(res.text)
	if err != nil {
		log.Warn(config.MsgAdviceFallback, slog.Any(config.LogKeyError, err))
		return Fallback
	}

	log.Debug(config.MsgAdviceDone, slog.Int64(config.LogKeyDuration, time.Since(start).Milliseconds()))
	return adv.Format()
}

// Parse extracts the JSON object from raw model text. All three arrays must be
// present; their lengths are not checked here.
func Parse(text string) (Advice, error) {
	raw := extractJSON(text)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return Advice{}, fmt.Errorf("%s: %w", config.ErrAdviceParse, err)
	}

	var adv Advice
	targets := []struct {
		name string
		dst  *[]string
	}{
		{keyKeywords, &adv.Keywords},
		{keyShouldDo, &adv.ShouldDo},
		{keyShouldAvoid, &adv.ShouldAvoid},
	}
	for _, tgt := range targets {
		v, ok := fields[tgt.name]
		if !ok {
			return Advice{}, fmt.Errorf("%s: %s", config.ErrAdviceKeys, tgt.name)
		}
		if err := json.Unmarshal(v, tgt.dst); err != nil {
			return Advice{}, fmt.Errorf("%s: %s: %w", config.ErrAdviceParse, tgt.name, err)
		}
	}
	return adv, nil
}

// extractJSON strips code fences, then falls back to the first balanced object
// that mentions all three keys.
func extractJSON(text string) string {
	s := strings.TrimSpace(text)

	if strings.Contains(s, "```json") {
		if m := fencedJSON.FindStringSubmatch(s); m != nil {
			s = strings.TrimSpace(m[1])
		}
	} else if strings.Contains(s, "```") {
		if m := fencedAny.FindStringSubmatch(s); m != nil {
			s = strings.TrimSpace(m[1])
		}
	}

	if strings.HasPrefix(s, "{") {
		return s
	}
	if obj, ok := firstObjectWithKeys(s); ok {
		return obj
	}
	return s
}

func firstObjectWithKeys(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end := matchBrace(s, start); end > start {
			obj := s[start : end+1]
			if hasAllKeys(obj) {
				return obj, true
			}
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return "", false
}

// matchBrace returns the index of the brace closing the one at open, skipping
// braces inside JSON strings, or -1.
func matchBrace(s string, open int) int {
	depth := 0
	inString, escaped := false, false
	for i := open; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func hasAllKeys(obj string) bool {
	for _, k := range []string{keyKeywords, keyShouldDo, keyShouldAvoid} {
		if !strings.Contains(obj, strconv.Quote(k)) {
			return false
		}
	}
	return true
}

// Format renders the guide, truncating to 5 keywords and 3 items per list.
func (a Advice) Format() string {
	var b strings.Builder

	b.WriteString("🔑 핵심 키워드:\n")
	tags := make([]string, 0, maxKeywords)
	for _, k := range truncate(a.Keywords, maxKeywords) {
		tags = append(tags, "#"+k)
	}
	b.WriteString(strings.Join(tags, " "))

	b.WriteString("\n\n✅ 해야 할 일:\n")
	b.WriteString(numbered(truncate(a.ShouldDo, maxDo)))

	b.WriteString("\n\n⚠️ 피해야 할 일:\n")
	b.WriteString(numbered(truncate(a.ShouldAvoid, maxAvoid)))

	return b.String()
}

func truncate(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func numbered(items []string) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
	}
	return strings.Join(lines, "\n")
}
