// Package interpret selects the Korean narrative texts of a chart.
//
// Every function is a pure lookup in the message catalog followed by string
// composition. Lookups never fail: a missing message resolves to the field's
// fallback sentence.
package interpret

import (
	"math"
	"strings"

	"github.com/tartampluch/go-saju/internal/analysis"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/cycle"
	"github.com/tartampluch/go-saju/internal/pillar"
)

// Last-resort texts, used when neither the specific message nor the catalog
// fallback is available.
const (
	fallbackPersonality  = "균형잡힌 성격으로 다양한 상황에 잘 적응합니다."
	fallbackOverall      = "올해는 전반적으로 균형잡힌 해입니다. 무리하지 않고 꾸준히 노력하면 좋은 결과를 얻을 수 있습니다."
	fallbackYearlyWealth = "안정적인 재정 관리가 필요한 해입니다. 꾸준한 저축과 계획적인 소비를 권장합니다. 큰 투자보다는 안전한 자산 관리에 집중하세요."
	fallbackYearlyHealth = "전반적인 건강 관리가 필요합니다."
	fallbackHealth       = "규칙적인 생활과 적절한 휴식이 필요합니다."
	fallbackElements     = "오행이 고르게 분포되어 있습니다."
	fallbackGeneric      = "꾸준함과 성실함이 좋은 결과로 이어집니다."

	// balanceThreshold is the yin/yang percentage gap under which a chart is balanced.
	balanceThreshold = 10.0
)

// loveStars are the year branches that raise charm (도화).
var loveStars = map[cycle.Branch]bool{
	cycle.Ja:  true,
	cycle.O:   true,
	cycle.Myo: true,
	cycle.Yu:  true,
}

// Request carries what the composition needs. Saeun is the pillar of the
// current calendar year.
type Request struct {
	Gender   pillar.Gender
	Pillars  pillar.FourPillars
	Elements analysis.ElementCounts
	YinYang  analysis.YinYangCounts
	Saeun    cycle.Pillar
}

// Timely groups the current-year readings.
type Timely struct {
	Overall string `json:"overall" yaml:"overall"`
	Love    string `json:"love" yaml:"love"`
	Wealth  string `json:"wealth" yaml:"wealth"`
	Health  string `json:"health" yaml:"health"`
	Advice  string `json:"advice" yaml:"advice"`
}

// Interpretation is the text bundle attached to a chart.
type Interpretation struct {
	Personality        string `json:"personality" yaml:"personality"`
	Career             string `json:"career" yaml:"career"`
	Relationship       string `json:"relationship" yaml:"relationship"`
	Wealth             string `json:"wealth" yaml:"wealth"`
	Health             string `json:"health" yaml:"health"`
	Fortune            string `json:"fortune" yaml:"fortune"`
	SocialRelationship string `json:"socialRelationship" yaml:"socialRelationship"`
	ElementBalance     string `json:"elementBalance" yaml:"elementBalance"`
	YinYangBalance     string `json:"yinYangBalance" yaml:"yinYangBalance"`
	Timely             Timely `json:"timely" yaml:"timely"`
}

// Interpreter renders texts from a catalog.
type Interpreter struct {
	cat *Catalog
}

// New wraps a catalog. A nil catalog is allowed and yields fallback texts only.
func New(cat *Catalog) *Interpreter {
	return &Interpreter{cat: cat}
}

// pick resolves id, then the catalog fallback fallbackID, then last.
func (in *Interpreter) pick(id, fallbackID, last string) string {
	return in.cat.Text(id, in.cat.Text(fallbackID, last))
}

// Personality describes the day master: base sentence, strength and weakness.
func (in *Interpreter) Personality(dayStem cycle.Stem) string {
	fallback := in.cat.Text(key(config.TKeyPersonality, config.TKeyFallback), fallbackPersonality)

	k := dayStem.Key()
	if k == "" {
		return fallback
	}
	basic := in.cat.Text(key(config.TKeyPersonality, k, config.TKeyPersonalityBasic), "")
	strength := in.cat.Text(key(config.TKeyPersonality, k, config.TKeyPersonalityStr), "")
	weakness := in.cat.Text(key(config.TKeyPersonality, k, config.TKeyPersonalityWeak), "")
	if basic == "" || strength == "" || weakness == "" {
		return fallback
	}

	return basic + "\n" +
		in.cat.Text(config.TKeyLabelStrength, "강점") + ": " + strength + "\n" +
		in.cat.Text(config.TKeyLabelWeakness, "약점") + ": " + weakness
}

// YinYangNarrative reports the yin/yang ratio. Charts whose percentages differ by
// less than ten points are balanced, otherwise the stronger side is named.
func (in *Interpreter) YinYangNarrative(yy analysis.YinYangCounts) string {
	total := yy.Total()
	var yinRatio, yangRatio float64
	if total > 0 {
		yinRatio = float64(yy.Yin) / float64(total) * 100
		yangRatio = float64(yy.Yang) / float64(total) * 100
	}

	data := map[string]any{
		"Yin":  int(math.Round(yinRatio)),
		"Yang": int(math.Round(yangRatio)),
	}

	balanced := in.cat.Render(config.TKeyYinYangBalanced, data, fallbackGeneric)
	switch {
	case math.Abs(yinRatio-yangRatio) < balanceThreshold:
		return balanced
	case yangRatio > yinRatio:
		return in.cat.Render(config.TKeyYinYangYang, data, balanced)
	default:
		return in.cat.Render(config.TKeyYinYangYin, data, balanced)
	}
}

// ElementNarrative summarizes the distribution, the dominant element and the
// missing ones.
func (in *Interpreter) ElementNarrative(ec analysis.ElementCounts) string {
	if ec.Total() == 0 {
		return in.cat.Text(key(config.TKeyElement, config.TKeyFallback), fallbackElements)
	}

	lines := []string{
		in.cat.Render(config.TKeyElementDist, map[string]any{
			"Wood":  ec.Wood,
			"Fire":  ec.Fire,
			"Earth": ec.Earth,
			"Metal": ec.Metal,
			"Water": ec.Water,
		}, fallbackElements),
	}

	if s := in.cat.Text(key(config.TKeyElementStrong, ec.Strongest().Key()), ""); s != "" {
		lines = append(lines, s)
	}

	missing := ec.Missing()
	if len(missing) == 0 {
		if s := in.cat.Text(config.TKeyElementComplete, ""); s != "" {
			lines = append(lines, s)
		}
	}
	for _, e := range missing {
		if s := in.cat.Text(key(config.TKeyElementMissing, e.Key()), ""); s != "" {
			lines = append(lines, s)
		}
	}

	return strings.Join(lines, "\n")
}

// YearlyOverall picks the ten-god paragraph for the year stem and appends a
// suffix when the two stems are directly productive or destructive.
func (in *Interpreter) YearlyOverall(dayStem, yearStem cycle.Stem) string {
	god := cycle.TenGodOfStems(dayStem, yearStem)
	text := in.pick(
		key(config.TKeyYearlyOverall, god.Key()),
		key(config.TKeyYearlyOverall, config.TKeyDefault),
		fallbackOverall,
	)

	switch cycle.RelationOfStems(dayStem, yearStem) {
	case cycle.Conflicting:
		if s := in.cat.Text(config.TKeySuffixConflicting, ""); s != "" {
			text += " " + s
		}
	case cycle.Supportive:
		if s := in.cat.Text(config.TKeySuffixSupportive, ""); s != "" {
			text += " " + s
		}
	}
	return text
}

// Love returns exactly one of the charm and stable paragraphs.
func (in *Interpreter) Love(yearBranch cycle.Branch) string {
	body := config.TKeyLoveStable
	if loveStars[yearBranch] {
		body = config.TKeyLoveCharm
	}
	return in.cat.Text(config.TKeyLovePrefix, "💕 연애운") + ": " + in.cat.Text(body, fallbackGeneric)
}

// YearlyWealth selects the wealth paragraph by ten god. Resource has no text of
// its own and uses the default.
func (in *Interpreter) YearlyWealth(dayStem, yearStem cycle.Stem) string {
	god := cycle.TenGodOfStems(dayStem, yearStem)
	id := key(config.TKeyYearlyWealth, god.Key())
	if god == cycle.Resource {
		id = key(config.TKeyYearlyWealth, config.TKeyDefault)
	}

	body := in.pick(id, key(config.TKeyYearlyWealth, config.TKeyDefault), fallbackYearlyWealth)
	return in.cat.Text(config.TKeyYearlyWealthPrefix, "💰 재물운") + ": " + body
}

// YearlyHealth gives the advice for the weakest element.
func (in *Interpreter) YearlyHealth(ec analysis.ElementCounts) string {
	body := in.pick(
		key(config.TKeyYearlyHealth, ec.Weakest().Key()),
		key(config.TKeyYearlyHealth, config.TKeyDefault),
		fallbackYearlyHealth,
	)
	return in.cat.Text(config.TKeyYearlyHealthPrefix, "🏥 건강운") + ": " + body
}

// Career is keyed by day stem.
func (in *Interpreter) Career(dayStem cycle.Stem) string {
	return in.pick(key(config.TKeyCareer, dayStem.Key()), key(config.TKeyCareer, config.TKeyFallback), fallbackGeneric)
}

// Relationship is keyed by gender and day stem.
func (in *Interpreter) Relationship(g pillar.Gender, dayStem cycle.Stem) string {
	return in.pick(
		key(config.TKeyRelationship, g.Key(), dayStem.Key()),
		key(config.TKeyRelationship, config.TKeyFallback),
		fallbackGeneric,
	)
}

// Social is keyed by day stem.
func (in *Interpreter) Social(dayStem cycle.Stem) string {
	return in.pick(key(config.TKeySocial, dayStem.Key()), key(config.TKeySocial, config.TKeyFallback), fallbackGeneric)
}

// Wealth is the lifelong wealth reading keyed by day stem.
func (in *Interpreter) Wealth(dayStem cycle.Stem) string {
	return in.pick(key(config.TKeyWealth, dayStem.Key()), key(config.TKeyWealth, config.TKeyFallback), fallbackGeneric)
}

// Health warns about the dominant element.
func (in *Interpreter) Health(ec analysis.ElementCounts) string {
	fallback := in.cat.Text(key(config.TKeyHealth, config.TKeyFallback), fallbackHealth)
	if ec.Total() == 0 {
		return fallback
	}
	return in.cat.Text(key(config.TKeyHealth, ec.Strongest().Key()), fallback)
}

// Interpret composes the full bundle. Timely.Advice is left empty; the advice
// block is produced separately.
func (in *Interpreter) Interpret(req Request) Interpretation {
	day := req.Pillars.Day.Stem
	yearStem := req.Saeun.Stem
	yearBranch := req.Saeun.Branch

	yinYang := in.YinYangNarrative(req.YinYang)
	timely := Timely{
		Overall: in.YearlyOverall(day, yearStem),
		Love:    in.Love(yearBranch),
		Wealth:  in.YearlyWealth(day, yearStem),
		Health:  in.YearlyHealth(req.Elements),
	}

	return Interpretation{
		Personality:        in.Personality(day) + "\n\n" + yinYang,
		Career:             in.Career(day),
		Relationship:       in.Relationship(req.Gender, day) + "\n\n" + timely.Love,
		Wealth:             in.Wealth(day) + "\n\n" + timely.Wealth,
		Health:             strings.TrimSpace(in.Health(req.Elements)) + "\n\n" + timely.Health,
		Fortune:            timely.Overall,
		SocialRelationship: in.Social(day),
		ElementBalance:     in.ElementNarrative(req.Elements),
		YinYangBalance:     yinYang,
		Timely:             timely,
	}
}
