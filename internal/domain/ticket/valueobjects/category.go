package valueobjects

import "fmt"

type Category string

const (
	CategoryOrdinary      Category = "ordinary"
	CategoryExtraordinary Category = "extraordinary"
)

var validCategories = map[Category]bool{
	CategoryOrdinary:      true,
	CategoryExtraordinary: true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func (c Category) IsOrdinary() bool {
	return c == CategoryOrdinary
}

func (c Category) IsExtraordinary() bool {
	return c == CategoryExtraordinary
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
