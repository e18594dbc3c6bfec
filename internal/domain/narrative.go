package domain

import (
	"fmt"
	"strings"
)

// Locale selects the language for narratives and recommendations.
type Locale string

const (
	LocaleEnglish  Locale = "en"
	LocaleJapanese Locale = "ja"
)

// DefaultLocale is used when a caller does not ask for a supported locale.
const DefaultLocale = LocaleEnglish

// ParseLocale maps a language code such as "ja", "ja-JP" or "EN" to a Locale,
// falling back to DefaultLocale.
func ParseLocale(s string) Locale {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "ja" || strings.HasPrefix(s, "ja-") || strings.HasPrefix(s, "ja_"):
		return LocaleJapanese
	case s == "en" || strings.HasPrefix(s, "en-") || strings.HasPrefix(s, "en_"):
		return LocaleEnglish
	default:
		return DefaultLocale
	}
}

// Text renders the message for key in the given locale. Messages missing from
// the locale fall back to English, and unknown keys render as the key itself.
func Text(loc Locale, key string, args ...any) string {
	tmpl, ok := messages[loc][key]
	if !ok {
		tmpl, ok = messages[LocaleEnglish][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// categoryKey builds a message key such as "depth.narrative.high".
func categoryKey(prefix string, c Category) string {
	return prefix + "." + string(c)
}

var messages = map[Locale]map[string]string{
	LocaleEnglish: {
		"category.low":    "Low",
		"category.medium": "Medium",
		"category.high":   "High",

		"label.depth":     "Depth Analysis",
		"label.time":      "Time Analysis",
		"label.magnitude": "Magnitude Analysis",
		"label.combined":  "Overall Risk Assessment",

		"depth.narrative.high":        "Shallow depth of %gkm can cause significant surface impact",
		"depth.narrative.medium":      "Moderate depth of %gkm may cause noticeable shaking",
		"depth.narrative.low":         "Deep depth of %gkm reduces surface impact",
		"depth.recommendation.high":   "Secure heavy objects immediately",
		"depth.recommendation.medium": "Review structural safety and emergency plans",
		"depth.recommendation.low":    "Continue standard earthquake preparedness",

		"time.narrative.recent":           "Recent earthquake activity (%d days ago) indicates ongoing stress",
		"time.narrative.detected":         "Recent earthquake activity (%d days ago) has been detected",
		"time.narrative.quiet":            "Long quiet period (%d days) may indicate energy buildup",
		"time.narrative.normal":           "%d days since last earthquake - normal interval",
		"time.recommendation.recent":      "Stay alert and prepare for potential aftershocks",
		"time.recommendation.detected":    "Pay attention to recent regional activity",
		"time.recommendation.quiet":       "Consider increasing preparedness level",
		"time.recommendation.normal":      "Maintain routine preparedness",
		"magnitude.narrative.high":        "Magnitude %g indicates potential for severe damage",
		"magnitude.narrative.medium":      "Magnitude %g may cause noticeable effects",
		"magnitude.narrative.low":         "Magnitude %g represents minor impact level",
		"magnitude.recommendation.high":   "Check building safety and prepare evacuation plans",
		"magnitude.recommendation.medium": "Secure loose items and check emergency supplies",
		"magnitude.recommendation.low":    "Maintain basic earthquake preparedness",

		"combined.narrative.high":        "Combined score %.1f - Multiple high-risk factors detected",
		"combined.narrative.medium":      "Combined score %.1f - Moderate risk level identified",
		"combined.narrative.low":         "Combined score %.1f - Current conditions show low risk",
		"combined.recommendation.high":   "IMMEDIATE ACTION REQUIRED - Implement all safety measures",
		"combined.recommendation.medium": "CAUTION REQUIRED - Review and update emergency preparations",
		"combined.recommendation.low":    "MAINTAIN BASIC AWARENESS",

		"refine.reference":          "Nearest reference city: %s (%.1fkm away). ",
		"refine.reference_category": "City risk category: %s. ",
		"refine.reference_far":      "Nearest reference city %s is %.1fkm away, too far to weigh in. ",
		"refine.no_reference":       "No reference location available. ",
		"refine.depth.shallow":      "Shallow depth increases surface impact risk. ",
		"refine.depth.moderate":     "Moderate depth with significant surface impact potential. ",
		"refine.depth.deep":         "Deep earthquake with reduced surface impact. ",
		"refine.magnitude.high":     "High magnitude indicates potential for severe damage. ",
		"refine.magnitude.moderate": "Moderate magnitude with noticeable effects. ",
		"refine.magnitude.low":      "Low magnitude with minimal effects. ",
		"refine.time.recent":        "Recent seismic activity indicates ongoing geological stress. ",
		"refine.time.regional":      "Recent earthquake activity in the region. ",
		"refine.time.quiet":         "Extended quiet period may indicate accumulated stress. ",

		"validation.invalid_input.title":       "Invalid Input",
		"validation.invalid_input.description": "Please enter valid numeric values for all fields",
		"validation.location.title":            "Location Error",
		"validation.location.description":      "Please enter coordinates within Japan's boundaries",
		"validation.range.title":               "Range Error",
		"validation.range.description":         "Input values are outside valid range",

		"region.kanto":    "Kanto Region",
		"region.kansai":   "Kansai Region",
		"region.chubu":    "Chubu Region",
		"region.tohoku":   "Tohoku Region",
		"region.kyushu":   "Kyushu Region",
		"region.chugoku":  "Chugoku Region",
		"region.shikoku":  "Shikoku Region",
		"region.hokkaido": "Hokkaido Region",
		"region.okinawa":  "Okinawa Region",
		"region.japan":    "Japan",
	},
	LocaleJapanese: {
		"category.low":    "低",
		"category.medium": "中",
		"category.high":   "高",

		"label.depth":     "深度分析",
		"label.time":      "時間分析",
		"label.magnitude": "マグニチュード分析",
		"label.combined":  "総合リスク評価",

		"depth.narrative.high":        "%gkm の浅い深度は地表に大きな影響を与える可能性があります",
		"depth.narrative.medium":      "%gkm の中程度の深度で体感できる揺れが予想されます",
		"depth.narrative.low":         "%gkm の深い深度により地表への影響は軽減されます",
		"depth.recommendation.high":   "重い物体を直ちに固定してください",
		"depth.recommendation.medium": "構造安全性と緊急計画を確認してください",
		"depth.recommendation.low":    "標準的な地震対策を継続してください",

		"time.narrative.recent":           "最近の地震活動（%d日前）は継続的なストレスを示しています",
		"time.narrative.detected":         "最近の地震活動（%d日前）が検出されています",
		"time.narrative.quiet":            "長期間の静穏期（%d日）はエネルギー蓄積の可能性があります",
		"time.narrative.normal":           "最後の地震から%d日経過 - 正常な間隔です",
		"time.recommendation.recent":      "警戒を継続し、余震に備えてください",
		"time.recommendation.detected":    "最近の地域活動に注意を払ってください",
		"time.recommendation.quiet":       "準備レベルを強化することを検討してください",
		"time.recommendation.normal":      "日常的な準備を維持してください",
		"magnitude.narrative.high":        "マグニチュード %g は深刻な被害の可能性を示します",
		"magnitude.narrative.medium":      "マグニチュード %g で体感できる影響が予想されます",
		"magnitude.narrative.low":         "マグニチュード %g は軽微な影響レベルです",
		"magnitude.recommendation.high":   "建物の安全性を確認し、避難計画を準備してください",
		"magnitude.recommendation.medium": "緩い物を固定し、緊急用品を確認してください",
		"magnitude.recommendation.low":    "基本的な地震対策を維持してください",

		"combined.narrative.high":        "総合スコア %.1f - 複数の高リスク要因が検出されました",
		"combined.narrative.medium":      "総合スコア %.1f - 中程度のリスクレベルです",
		"combined.narrative.low":         "総合スコア %.1f - 現在の条件は低リスクを示しています",
		"combined.recommendation.high":   "即座の行動が必要です - すべての安全対策を実施してください",
		"combined.recommendation.medium": "注意が必要です - 緊急準備を確認・更新してください",
		"combined.recommendation.low":    "基本的な注意を維持してください",

		"refine.reference":          "最寄りの参照都市: %s（%.1fkm）。",
		"refine.reference_category": "都市リスク区分: %s。",
		"refine.reference_far":      "最寄りの参照都市 %s は %.1fkm 離れており、評価に反映されません。",
		"refine.no_reference":       "参照地点がありません。",
		"refine.depth.shallow":      "浅い深度は地表への影響リスクを高めます。",
		"refine.depth.moderate":     "中程度の深度で地表への影響の可能性があります。",
		"refine.depth.deep":         "深い地震のため地表への影響は軽減されます。",
		"refine.magnitude.high":     "高いマグニチュードは深刻な被害の可能性を示します。",
		"refine.magnitude.moderate": "中程度のマグニチュードで体感できる影響があります。",
		"refine.magnitude.low":      "低いマグニチュードで影響は最小限です。",
		"refine.time.recent":        "最近の地震活動は継続的な地質的ストレスを示しています。",
		"refine.time.regional":      "地域で最近の地震活動があります。",
		"refine.time.quiet":         "長期の静穏期は蓄積されたストレスを示す可能性があります。",

		"validation.invalid_input.title":       "入力エラー",
		"validation.invalid_input.description": "すべての項目に有効な数値を入力してください",
		"validation.location.title":            "位置エラー",
		"validation.location.description":      "日本国内の座標を入力してください",
		"validation.range.title":               "範囲エラー",
		"validation.range.description":         "入力値が有効範囲外です",

		"region.kanto":    "関東地方",
		"region.kansai":   "関西地方",
		"region.chubu":    "中部地方",
		"region.tohoku":   "東北地方",
		"region.kyushu":   "九州地方",
		"region.chugoku":  "中国地方",
		"region.shikoku":  "四国地方",
		"region.hokkaido": "北海道地方",
		"region.okinawa":  "沖縄地方",
		"region.japan":    "日本",
	},
}
