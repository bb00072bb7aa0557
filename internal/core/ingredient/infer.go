package ingredient

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// InferCategory 推測食材類別，無規則命中時回傳 "Other"
func InferCategory(name string) string {
	return inferLabel(categoryRules, Normalize(name), CategoryOther)
}

// InferUnit 推測計量單位，無規則命中時回傳 "each"
func InferUnit(name string) string {
	return inferLabel(unitRules, Normalize(name), UnitEach)
}

// InferDraft 產生建立新食材表單的預填值
func InferDraft(name string) InferredDraft {
	normalized := Normalize(name)
	return InferredDraft{
		SuggestedName:     suggestName(normalized),
		SuggestedCategory: inferLabel(categoryRules, normalized, CategoryOther),
		SuggestedUnit:     inferLabel(unitRules, normalized, UnitEach),
	}
}

func inferLabel(rules []keywordRule, name NormalizedName, fallback string) string {
	if name.IsEmpty() {
		return fallback
	}
	for _, rule := range rules {
		if rule.matches(name.Tokens) {
			return rule.label
		}
	}
	return fallback
}

// suggestName 以正規化後的名稱（去修飾詞、單數）轉為標題大小寫，避免預填出重複的寫法
func suggestName(name NormalizedName) string {
	if name.IsEmpty() {
		return ""
	}
	return cases.Title(language.English).String(name.Text)
}
