package advice

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-saju/internal/cycle"
)

const unknownTime = "미상"

// BuildPrompt writes the Korean instruction sent to the generator. The output is
// a pure function of the request.
func BuildPrompt(req Request) string {
	fp := req.Pillars
	day := fp.Day.Stem
	yearStem := req.Saeun.Stem

	timePillar := unknownTime
	if fp.Time != nil {
		timePillar = fp.Time.String()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "당신은 한국의 전문 사주 명리학자입니다. 다음 사주 정보를 바탕으로 %d년 올해의 구체적인 행동 가이드를 JSON 형식으로 작성해주세요.\n\n", req.Year)

	b.WriteString("**사주 정보:**\n")
	fmt.Fprintf(&b, "- 성별: %s\n", req.Gender)
	fmt.Fprintf(&b, "- 일간(日干): %s (%s)\n", day, day.Element())
	fmt.Fprintf(&b, "- 년주(年柱): %s\n", fp.Year)
	fmt.Fprintf(&b, "- 월주(月柱): %s\n", fp.Month)
	fmt.Fprintf(&b, "- 일주(日柱): %s\n", fp.Day)
	fmt.Fprintf(&b, "- 시주(時柱): %s\n", timePillar)
	fmt.Fprintf(&b, "- 오행 분포: 목=%d, 화=%d, 토=%d, 금=%d, 수=%d\n",
		req.Elements.Wood, req.Elements.Fire, req.Elements.Earth, req.Elements.Metal, req.Elements.Water)
	fmt.Fprintf(&b, "- 음양 분포: 음=%d, 양=%d\n", req.YinYang.Yin, req.YinYang.Yang)
	fmt.Fprintf(&b, "- %d년 천간: %s (%s)\n", req.Year, yearStem, yearStem.Element())
	fmt.Fprintf(&b, "- %d년 지지: %s\n", req.Year, req.Saeun.Branch)
	fmt.Fprintf(&b, "- 오행 관계: %s\n\n", cycle.RelationOfStems(day, yearStem))

	b.WriteString(`**중요: 반드시 아래 JSON 형식으로만 응답하세요. 다른 텍스트는 포함하지 마세요:**

{
  "keywords": ["키워드1", "키워드2", "키워드3", "키워드4", "키워드5"],
  "shouldDo": ["해야 할 일 1", "해야 할 일 2", "해야 할 일 3"],
  "shouldAvoid": ["피해야 할 일 1", "피해야 할 일 2", "피해야 할 일 3"]
}

**주의사항:**
- keywords는 정확히 5개만 작성하세요.
- keywords는 띄어쓰기 없이 작성하세요.
- shouldDo는 정확히 3개만 작성하세요.
- shouldAvoid는 정확히 3개만 작성하세요.
- 각 항목은 구체적이고 실천 가능한 내용으로 작성하세요.`)

	return b.String()
}
