package ingredient

// 靜態規則表：修飾詞、同義詞、類別與單位關鍵字。
// 套件載入時編譯一次，之後只讀。

// stopwords 不改變食材身分的修飾詞
var stopwords = map[string]struct{}{
	"fresh":    {},
	"organic":  {},
	"chopped":  {},
	"diced":    {},
	"frozen":   {},
	"raw":      {},
	"whole":    {},
	"large":    {},
	"small":    {},
	"medium":   {},
	"sliced":   {},
	"minced":   {},
	"peeled":   {},
	"finely":   {},
	"roughly":  {},
	"boneless": {},
	"skinless": {},
}

// irregularPlurals 字尾規則處理不了的複數（-ie 單數、-ves、看似複數的單數）
var irregularPlurals = map[string]string{
	"pies":      "pie",
	"cookies":   "cookie",
	"brownies":  "brownie",
	"calories":  "calorie",
	"smoothies": "smoothie",
	"veggies":   "veggie",
	"hoagies":   "hoagie",
	"chillies":  "chilli",
	"leaves":    "leaf",
	"loaves":    "loaf",
	"halves":    "half",
	"molasses":  "molasses",
}

// stopPhrases 需整段移除的多字修飾詞
var stopPhrases = [][]string{
	{"extra", "virgin"},
}

// synonymGroups 常見地區/料理同義詞，組內任兩者互為別名
var synonymGroups = [][]string{
	{"capsicum", "bell pepper", "sweet pepper"},
	{"coriander", "cilantro", "chinese parsley"},
	{"scallion", "green onion", "spring onion"},
	{"eggplant", "aubergine", "brinjal"},
	{"zucchini", "courgette"},
	{"arugula", "rocket"},
	{"chickpea", "garbanzo bean"},
	{"prawn", "shrimp"},
	{"squid", "calamari"},
	{"beet", "beetroot"},
	{"rutabaga", "swede"},
	{"snow pea", "mangetout"},
	{"fava bean", "broad bean"},
	{"lima bean", "butter bean"},
	{"green bean", "string bean", "french bean"},
	{"romaine", "cos lettuce"},
	{"chili", "chilli", "chile"},
	{"yogurt", "yoghurt"},
	{"heavy cream", "double cream", "whipping cream"},
	{"ground beef", "beef mince"},
	{"canola oil", "rapeseed oil"},
	{"cornstarch", "cornflour", "corn starch"},
	{"powdered sugar", "icing sugar", "confectioners sugar"},
	{"caster sugar", "superfine sugar"},
	{"all-purpose flour", "all purpose flour", "plain flour"},
	{"baking soda", "bicarbonate of soda", "bicarb soda"},
	{"molasses", "treacle"},
	{"sultana", "golden raisin"},
	{"ketchup", "catsup"},
}

// keywordRule 關鍵字規則，任一關鍵字（整詞連續比對）命中即成立
type keywordRule struct {
	label    string
	keywords [][]string
}

func newRule(label string, keywords ...string) keywordRule {
	r := keywordRule{label: label}
	for _, kw := range keywords {
		if n := Normalize(kw); len(n.Tokens) > 0 {
			r.keywords = append(r.keywords, n.Tokens)
		}
	}
	return r
}

func (r keywordRule) matches(tokens []string) bool {
	for _, kw := range r.keywords {
		if containsSequence(tokens, kw) {
			return true
		}
	}
	return false
}

// categoryRules 由最具體到最一般排列，第一條命中的規則勝出
var categoryRules = []keywordRule{
	newRule(CategoryPantry, "fish sauce", "oyster sauce", "soy sauce", "hot sauce", "worcestershire", "sauce"),
	newRule(CategorySeafood, "salmon", "tuna", "cod", "shrimp", "prawn", "crab", "lobster", "scallop", "mussel",
		"clam", "oyster", "squid", "calamari", "octopus", "anchovy", "sardine", "halibut", "trout", "tilapia",
		"mackerel", "snapper", "barramundi", "fish", "seafood"),
	newRule(CategoryProduce, "bell pepper", "capsicum", "sweet pepper", "green onion", "spring onion",
		"sweet potato", "cherry tomato", "chili pepper", "garlic clove", "water chestnut"),
	newRule(CategoryPantry, "egg noodle", "oil", "vinegar", "stock", "broth", "baking powder", "baking soda",
		"peanut butter", "coconut milk", "coconut cream", "tomato paste"),
	newRule(CategoryBeverages, "almond milk", "oat milk", "soy milk", "juice", "coffee", "tea", "water", "soda",
		"wine", "beer", "kombucha", "lemonade", "cola", "cider"),
	newRule(CategorySpices, "black pepper", "white pepper", "peppercorn", "cumin", "paprika", "turmeric",
		"cinnamon", "nutmeg", "clove", "cardamom", "oregano", "cayenne", "saffron", "coriander seed",
		"curry powder", "chili powder", "chilli powder", "chili flake", "chilli flake", "garam masala",
		"allspice", "star anise", "bay leaf",
		"salt", "spice", "seasoning", "powder"),
	newRule(CategoryProtein, "chicken", "beef", "pork", "lamb", "turkey", "duck", "veal", "venison", "bacon",
		"ham", "sausage", "chorizo", "prosciutto", "egg", "tofu", "tempeh", "mince", "steak"),
	newRule(CategoryDairy, "milk", "buttermilk", "cheese", "cream", "butter", "yogurt", "yoghurt", "parmesan",
		"mozzarella", "cheddar", "feta", "ricotta", "mascarpone", "brie", "ghee", "creme fraiche"),
	newRule(CategoryBakery, "bread", "baguette", "bun", "croissant", "tortilla", "pita", "brioche",
		"sourdough", "bagel", "muffin", "cake", "pastry", "focaccia", "ciabatta", "pie", "cookie", "brownie"),
	newRule(CategoryFruit, "apple", "banana", "orange", "lemon", "lime", "berry", "strawberry", "blueberry",
		"raspberry", "blackberry", "grape", "mango", "pineapple", "peach", "pear", "plum", "cherry", "melon",
		"watermelon", "kiwi", "fig", "coconut", "apricot", "pomegranate", "passionfruit", "papaya", "grapefruit"),
	newRule(CategoryProduce, "tomato", "onion", "garlic", "potato", "carrot", "celery", "lettuce", "spinach",
		"kale", "cabbage", "broccoli", "cauliflower", "cucumber", "zucchini", "courgette", "eggplant",
		"aubergine", "mushroom", "chili", "chilli", "chile", "ginger", "basil", "parsley", "cilantro",
		"coriander", "mint", "dill", "thyme", "rosemary", "sage", "tarragon", "chive", "scallion", "leek", "shallot", "pea", "bean", "corn",
		"asparagus", "beet", "beetroot", "radish", "squash", "pumpkin", "avocado", "herb", "arugula", "rocket",
		"sprout", "fennel", "okra", "artichoke", "turnip", "parsnip"),
	newRule(CategoryPantry, "flour", "sugar", "rice", "pasta", "spaghetti", "noodle", "oat", "lentil",
		"chickpea", "honey", "syrup", "yeast", "cornstarch", "breadcrumb", "cereal", "nut", "almond", "walnut",
		"cashew", "peanut", "pecan", "pistachio", "seed", "chocolate", "cocoa", "jam", "mustard", "ketchup",
		"mayonnaise", "canned", "paste", "quinoa", "couscous", "molasses", "gelatin", "extract"),
}

// unitRules 與類別規則相互獨立，同樣是第一條命中者勝出
var unitRules = []keywordRule{
	newRule(UnitGram, "cheese", "butter", "yeast", "gelatin", "egg noodle", "water chestnut"),
	newRule(UnitLiter, "stock", "broth", "milk", "buttermilk", "juice", "water", "soda", "beer"),
	newRule(UnitMilliliter, "oil", "vinegar", "sauce", "extract", "syrup", "wine", "cream", "essence",
		"dressing", "honey"),
	newRule(UnitKilogram, "chicken", "beef", "pork", "lamb", "turkey", "duck", "veal", "mince", "steak",
		"salmon", "fish", "fillet", "brisket", "shrimp", "prawn", "flour", "sugar", "rice", "potato"),
	newRule(UnitGram, "dried", "ground", "powder", "flake", "seed", "spice", "seasoning", "paste"),
	newRule(UnitBunch, "basil", "parsley", "cilantro", "coriander", "mint", "dill", "thyme", "rosemary", "sage",
		"tarragon", "chive", "scallion", "green onion", "spring onion", "kale", "chard", "watercress", "herb"),
	newRule(UnitEach, "egg", "bell pepper", "capsicum", "lemon", "lime", "avocado", "onion", "garlic", "tomato",
		"apple", "orange", "banana", "cucumber", "zucchini", "eggplant", "lettuce", "cabbage", "cauliflower",
		"broccoli", "bread", "baguette", "tortilla", "bun", "croissant", "pineapple", "mango"),
	newRule(UnitGram, "salt", "pepper", "peppercorn", "cumin", "paprika", "turmeric", "cinnamon", "nutmeg",
		"clove", "cardamom", "oregano", "cayenne", "saffron", "nut", "almond", "walnut", "cashew", "chocolate",
		"cocoa", "pasta", "noodle", "lentil", "oat"),
}

// synonymIndex 正規化名稱 -> 同組其他正規化名稱
var synonymIndex = buildSynonymIndex(synonymGroups)

func buildSynonymIndex(groups [][]string) map[string]map[string]struct{} {
	index := make(map[string]map[string]struct{})
	for _, group := range groups {
		normalized := make([]string, 0, len(group))
		for _, name := range group {
			if n := Normalize(name); !n.IsEmpty() {
				normalized = append(normalized, n.Text)
			}
		}
		for _, a := range normalized {
			for _, b := range normalized {
				if a == b {
					continue
				}
				if index[a] == nil {
					index[a] = make(map[string]struct{})
				}
				index[a][b] = struct{}{}
			}
		}
	}
	return index
}

// areSynonyms 兩個正規化名稱是否列在同一個同義詞組
func areSynonyms(a, b string) bool {
	_, ok := synonymIndex[a][b]
	return ok
}
