package valueobjects

import "fmt"

type Category string

const (
	CategoryBug         Category = "bug"
	CategorySupport     Category = "support"
	CategoryQuestion    Category = "question"
	CategoryFeature     Category = "feature"
	CategoryEnhancement Category = "enhancement"
)

var validCategories = map[Category]bool{
	CategoryBug:         true,
	CategorySupport:     true,
	CategoryQuestion:    true,
	CategoryFeature:     true,
	CategoryEnhancement: true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

// NewCategory parses s; an empty string yields the default, support.
func NewCategory(s string) (Category, error) {
	if s == "" {
		return CategorySupport, nil
	}
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
