package narrative

import (
	"regexp"
	"strings"
)

type replacement struct {
	pattern *regexp.Regexp
	with    string
}

// glossary maps English words models tend to leak into Korean output.
// Order matters: earlier entries are applied first.
var glossary = func() []replacement {
	pairs := [][2]string{
		{"VIP", "프리미엄"},
		{"premium", "프리미엄"},
		{"package", "패키지"},
		{"cost", "비용"},
		{"risk", "위험"},
		{"marketing", "홍보"},
		{"branding", "브랜딩"},
		{"target", "대상"},
		{"feedback", "피드백"},
		{"service", "서비스"},
		{"system", "시스템"},
		{"stress", "스트레스"},
		{"clinic", "한의원"},
		{"patient", "환자"},
		{"revenue", "매출"},
		{"profit", "수익"},
		{"break-even", "손익분기"},
		{"differentiate", "차별화"},
		{"positioning", "포지셔닝"},
		{"consulting", "컨설팅"},
		{"idea", "방안"},
		{"solution", "해결책"},
		{"option", "방안"},
		{"recommend", "추천"},
	}
	out := make([]replacement, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, replacement{
			pattern: regexp.MustCompile("(?i)" + regexp.QuoteMeta(p[0])),
			with:    p[1],
		})
	}
	return out
}()

var (
	hanChars     = regexp.MustCompile(`[\x{4e00}-\x{9fff}]`)
	latinWord    = regexp.MustCompile(`\b[a-zA-Z]{4,}\b`)
	multiSpace   = regexp.MustCompile(`  +`)
	extraNewline = regexp.MustCompile(`\n{3,}`)
)

// markdownMarkers protect a following word from the Latin word filter.
const markdownMarkers = "#*-[]()"

// PostProcess strips Han characters and stray English from generated text,
// then normalizes whitespace.
func PostProcess(text string) string {
	out := hanChars.ReplaceAllString(text, "")
	for _, r := range glossary {
		out = r.pattern.ReplaceAllString(out, r.with)
	}
	out = dropLatinWords(out)
	out = multiSpace.ReplaceAllString(out, " ")
	out = extraNewline.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

// dropLatinWords removes ASCII words of four or more letters unless the
// byte right before the word is a markdown marker.
func dropLatinWords(s string) string {
	matches := latinWord.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > 0 && strings.IndexByte(markdownMarkers, s[start-1]) >= 0 {
			continue
		}
		b.WriteString(s[last:start])
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}
