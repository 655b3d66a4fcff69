package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/pageza/greenmeal/backend/internal/metrics"
	"go.uber.org/zap"
)

// Ingredient validation failures. Each is a user-facing reason.
var (
	ErrIngredientRequired     = errors.New("please enter an ingredient")
	ErrIngredientInvalidChars = errors.New("please enter only letters, spaces and hyphens")
	ErrIngredientTooShort     = errors.New("ingredient name is too short")
	ErrIngredientTooLong      = errors.New("ingredient name is too long")
	ErrIngredientDuplicate    = errors.New("this ingredient is already in the list")
	ErrNotRecognizedWord      = errors.New("not a recognized word")
	ErrNotFoodRelated         = errors.New("not food-related")
	ErrUnableToVerify         = errors.New("unable to verify ingredient, please try again")
)

var validationErrors = []error{
	ErrIngredientRequired, ErrIngredientInvalidChars, ErrIngredientTooShort,
	ErrIngredientTooLong, ErrIngredientDuplicate, ErrNotRecognizedWord,
	ErrNotFoodRelated, ErrUnableToVerify,
}

// ValidationReason returns the user-facing reason when err is an ingredient
// rejection.
func ValidationReason(err error) (string, bool) {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return target.Error(), true
		}
	}
	return "", false
}

var ingredientPattern = regexp.MustCompile(`^[a-zA-Z\s-]+$`)

// normalizeName folds every Unicode space to an ASCII space, then trims and
// lowercases s.
func normalizeName(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\ufeff' {
			return ' '
		}
		return r
	}, s)
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultAllowList holds common ingredients accepted without a dictionary lookup.
var DefaultAllowList = []string{
	// Vegetables
	"tomato", "onion", "garlic", "potato", "carrot", "bell pepper", "broccoli", "spinach", "lettuce", "cucumber",
	"zucchini", "eggplant", "mushroom", "celery", "green beans", "peas", "corn", "asparagus", "cauliflower",
	// Fruits
	"apple", "banana", "orange", "lemon", "lime", "strawberry", "blueberry", "raspberry", "grape", "peach",
	"pear", "plum", "cherry", "pineapple", "mango", "kiwi", "melon", "watermelon",
	// Herbs and spices
	"basil", "oregano", "thyme", "rosemary", "parsley", "cilantro", "mint", "dill", "sage", "cumin",
	"coriander", "paprika", "turmeric", "ginger", "cinnamon", "nutmeg", "cloves", "cardamom",
	// Proteins
	"chicken", "beef", "pork", "fish", "salmon", "tuna", "shrimp", "egg", "tofu", "tempeh",
	"lentils", "beans", "chickpeas", "quinoa", "rice", "pasta", "bread", "flour",
	// Dairy and alternatives
	"milk", "cheese", "yogurt", "butter", "cream", "sour cream", "cottage cheese", "almond milk", "soy milk",
	// Nuts and seeds
	"almond", "walnut", "cashew", "peanut", "sunflower seeds", "pumpkin seeds", "chia seeds", "flax seeds",
	// Oils and condiments
	"olive oil", "vegetable oil", "coconut oil", "vinegar", "soy sauce", "mustard", "ketchup", "mayonnaise",
	// Grains and legumes
	"oats", "barley", "black beans", "kidney beans",
	// Other
	"salt", "pepper", "sugar", "honey", "maple syrup", "chocolate", "cocoa powder", "vanilla extract",
}

// ValidatorConfig tunes the ingredient checks.
type ValidatorConfig struct {
	AllowList    []string
	FoodKeywords []string
	MinLength    int
	MaxLength    int
}

// IngredientValidator decides whether free text names a food ingredient.
type IngredientValidator struct {
	allowed   map[string]struct{}
	allowList []string
	keywords  []string
	minLen    int
	maxLen    int
	dict      WordLookup
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// NewIngredientValidator builds a validator. Zero config values fall back to
// the defaults.
func NewIngredientValidator(cfg ValidatorConfig, dict WordLookup, log *zap.Logger, m *metrics.Metrics) *IngredientValidator {
	if cfg.AllowList == nil {
		cfg.AllowList = DefaultAllowList
	}
	if len(cfg.FoodKeywords) == 0 {
		cfg.FoodKeywords = []string{"food", "ingredient", "cooking", "recipe"}
	}
	if cfg.MinLength == 0 {
		cfg.MinLength = 2
	}
	if cfg.MaxLength == 0 {
		cfg.MaxLength = 50
	}

	v := &IngredientValidator{
		allowed: make(map[string]struct{}, len(cfg.AllowList)),
		minLen:  cfg.MinLength,
		maxLen:  cfg.MaxLength,
		dict:    dict,
		log:     log,
		metrics: m,
	}
	for _, item := range cfg.AllowList {
		key := strings.ToLower(item)
		if _, dup := v.allowed[key]; dup {
			continue
		}
		v.allowed[key] = struct{}{}
		v.allowList = append(v.allowList, key)
	}
	for _, k := range cfg.FoodKeywords {
		v.keywords = append(v.keywords, strings.ToLower(k))
	}
	return v
}

// Validate checks raw against the rules in order and returns the normalized
// name. current holds the names already in the user's list.
func (v *IngredientValidator) Validate(ctx context.Context, raw string, current []string) (string, error) {
	name, err := v.Check(ctx, raw, current)
	v.Record(err)
	return name, err
}

// Record counts the final outcome of a validation.
func (v *IngredientValidator) Record(err error) {
	if err != nil {
		v.metrics.Validation("rejected")
		return
	}
	v.metrics.Validation("accepted")
}

// Check runs the same rules as Validate without recording the outcome, for
// callers that may still reject the name afterwards.
func (v *IngredientValidator) Check(ctx context.Context, raw string, current []string) (string, error) {
	name := normalizeName(raw)
	if name == "" {
		return "", ErrIngredientRequired
	}
	if !ingredientPattern.MatchString(name) {
		return "", ErrIngredientInvalidChars
	}
	if len(name) < v.minLen {
		return "", ErrIngredientTooShort
	}
	if len(name) > v.maxLen {
		return "", ErrIngredientTooLong
	}
	for _, existing := range current {
		if normalizeName(existing) == name {
			return "", ErrIngredientDuplicate
		}
	}
	if _, ok := v.allowed[name]; ok {
		return name, nil
	}

	entries, err := v.dict.Lookup(ctx, name)
	if errors.Is(err, ErrWordNotFound) {
		return "", ErrNotRecognizedWord
	}
	if err != nil {
		v.log.Warn("error checking word validity", zap.String("word", name), zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnableToVerify, err)
	}
	if !v.mentionsFood(entries) {
		return "", ErrNotFoodRelated
	}
	return name, nil
}

func (v *IngredientValidator) mentionsFood(entries []DictionaryEntry) bool {
	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, def := range meaning.Definitions {
				text := strings.ToLower(def.Definition)
				for _, k := range v.keywords {
					if strings.Contains(text, k) {
						return true
					}
				}
			}
		}
	}
	return false
}

// Suggestions returns up to limit allow-list entries containing q. Queries of
// one character or less return nothing.
func (v *IngredientValidator) Suggestions(q string, limit int) []string {
	q = normalizeName(q)
	if len(q) <= 1 {
		return []string{}
	}
	out := []string{}
	for _, item := range v.allowList {
		if strings.Contains(item, q) {
			out = append(out, item)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
