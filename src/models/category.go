package models

import "fmt"

type CategoryKind string

const (
	CategoryKindIn   CategoryKind = "IN"
	CategoryKindOut  CategoryKind = "OUT"
	CategoryKindBoth CategoryKind = "BOTH"
)

func (k CategoryKind) Valid() bool {
	switch k {
	case CategoryKindIn, CategoryKindOut, CategoryKindBoth:
		return true
	}
	return false
}

type Category struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Kind CategoryKind `json:"kind"`
}

func (c Category) GetID() string { return c.ID }

func (c Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("category id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("invalid category kind: %q", c.Kind)
	}
	return nil
}
