package ingredient

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// minSingularLen 去除複數字尾後至少需保留的字元數
const minSingularLen = 3

// NormalizedName 正規化後的食材名稱
type NormalizedName struct {
	Text   string   // 清理後的字串，保留單字內部的連字號
	Tokens []string // 以空白與連字號切分的詞
}

// Len 以 rune 計算的長度
func (n NormalizedName) Len() int {
	return utf8.RuneCountInString(n.Text)
}

// IsEmpty 是否為空
func (n NormalizedName) IsEmpty() bool {
	return n.Text == ""
}

// Normalize 將原始食材名稱轉為可比較的形式
//
// 處理順序：NFKC 相容字元折疊、ASCII 大小寫折疊、去除標點（保留內部連字號）、
// 合併空白、移除不影響食材身分的修飾詞、去除複數字尾。
// 非拉丁文字只做位元組比對，不做語系相關的折疊。
func Normalize(raw string) NormalizedName {
	s := norm.NFKC.String(raw)
	s = strings.Map(foldASCII, s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\'' || r == '’':
			// 所有格與縮寫直接去掉撇號
		case r == '-':
			b.WriteRune('-')
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	words := make([]string, 0, 4)
	for _, field := range strings.Fields(b.String()) {
		if w := cleanHyphens(field); w != "" {
			words = append(words, w)
		}
	}

	words = stripStopwords(words)
	for i, w := range words {
		words[i] = singularize(w)
	}

	text := strings.Join(words, " ")
	return NormalizedName{
		Text:   text,
		Tokens: tokenize(text),
	}
}

// foldASCII 只折疊 A-Z
func foldASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// cleanHyphens 合併連續連字號並去除首尾連字號
func cleanHyphens(word string) string {
	if !strings.Contains(word, "-") {
		return word
	}
	parts := strings.FieldsFunc(word, func(r rune) bool { return r == '-' })
	return strings.Join(parts, "-")
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == ' ' || r == '-'
	})
}

// stripStopwords 以整詞方式移除修飾詞；若全部都是修飾詞則保留原樣
func stripStopwords(words []string) []string {
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); {
		if n := matchStopPhrase(words[i:]); n > 0 {
			i += n
			continue
		}
		if _, ok := stopwords[words[i]]; ok {
			i++
			continue
		}
		out = append(out, words[i])
		i++
	}
	if len(out) == 0 {
		return words
	}
	return out
}

func matchStopPhrase(words []string) int {
	for _, phrase := range stopPhrases {
		if hasTokenPrefix(words, phrase) {
			return len(phrase)
		}
	}
	return 0
}

// singularize 去除英文複數字尾
func singularize(word string) string {
	if !isAlphaWord(word) {
		return word
	}
	if singular, ok := irregularPlurals[word]; ok {
		return singular
	}
	for _, keep := range []string{"ss", "us", "is"} {
		if strings.HasSuffix(word, keep) {
			return word
		}
	}

	n := len(word)
	switch {
	case strings.HasSuffix(word, "ies"):
		// 字根太短時（ties）交給下方的 -s 規則
		if stem := word[:n-3] + "y"; runeLen(stem) >= minSingularLen {
			return stem
		}
	case strings.HasSuffix(word, "es"):
		base := word[:n-2]
		if esBase(base) {
			if runeLen(base) >= minSingularLen {
				return base
			}
			return word
		}
	}
	if strings.HasSuffix(word, "s") {
		if base := word[:n-1]; runeLen(base) >= minSingularLen {
			return base
		}
	}
	return word
}

// esBase 以 o/ch/sh/x/z/ss 結尾的字根才會以 -es 構成複數
func esBase(base string) bool {
	for _, suffix := range []string{"o", "ch", "sh", "x", "z", "ss"} {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

func isAlphaWord(word string) bool {
	for _, r := range word {
		if !unicode.IsLetter(r) && r != '-' {
			return false
		}
	}
	return word != ""
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// hasTokenPrefix words 是否以 prefix 開頭
func hasTokenPrefix(words, prefix []string) bool {
	if len(prefix) == 0 || len(words) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if words[i] != p {
			return false
		}
	}
	return true
}

// containsSequence needle 是否為 haystack 中連續的一段
func containsSequence(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if hasTokenPrefix(haystack[i:], needle) {
			return true
		}
	}
	return false
}
