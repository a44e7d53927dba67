package storage

import (
	"fmt"
	"path/filepath"

	"github.com/RacoonMediaServer/rms-covers/internal/config"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
)

// Folder is a single tier folder of a category
type Folder struct {
	Category model.Category
	Tier     model.Tier
	Rel      string
	Dir      string
	Suffix   string
}

// CategoryLayout is a category with all of its tier folders
type CategoryLayout struct {
	Name      model.Category
	Kind      model.CategoryKind
	Required  bool
	Landscape bool
	Sizes     []model.Size
	Folders   []Folder
}

// Derived reports whether the category is regenerated from primary assets
func (c CategoryLayout) Derived() bool {
	return c.Kind == model.KindDerivedIcon
}

// Folder returns folder of the tier
func (c CategoryLayout) Folder(t model.Tier) (Folder, bool) {
	for _, f := range c.Folders {
		if f.Tier == t {
			return f, true
		}
	}
	return Folder{}, false
}

// Layout is the table of categories and folders enumerated once at startup
type Layout struct {
	Root       string
	Categories []CategoryLayout
}

// NewLayout validates the configured table and resolves folders against the root
func NewLayout(root string, categories []config.Category) (*Layout, error) {
	l := &Layout{Root: root}
	names := map[model.Category]bool{}
	dirs := map[string]string{}

	if len(categories) == 0 {
		return nil, fmt.Errorf("layout has no categories")
	}

	for _, c := range categories {
		if c.Name == "" {
			return nil, fmt.Errorf("layout has category without name")
		}
		name := model.Category(c.Name)
		if names[name] {
			return nil, fmt.Errorf("category '%s' defined twice", c.Name)
		}
		names[name] = true

		kind, ok := config.CategoryKind(c.Kind)
		if !ok {
			return nil, fmt.Errorf("category '%s': unknown kind '%s'", c.Name, c.Kind)
		}

		cl := CategoryLayout{
			Name:      name,
			Kind:      kind,
			Required:  c.Required,
			Landscape: c.Landscape,
		}
		for _, s := range c.Sizes {
			cl.Sizes = append(cl.Sizes, model.Size{Width: s.Width, Height: s.Height})
		}

		tiers := map[model.Tier]bool{}
		for _, t := range c.Tiers {
			tier, ok := config.TierKind(t.Kind)
			if !ok {
				return nil, fmt.Errorf("category '%s': unknown tier '%s'", c.Name, t.Kind)
			}
			if tiers[tier] {
				return nil, fmt.Errorf("category '%s': tier '%s' defined twice", c.Name, tier)
			}
			tiers[tier] = true
			if t.Dir == "" {
				return nil, fmt.Errorf("category '%s': tier '%s' has no directory", c.Name, tier)
			}

			dir := t.Dir
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(root, dir)
			}
			dir = filepath.Clean(dir)
			if owner, exist := dirs[dir]; exist {
				return nil, fmt.Errorf("directory '%s' used by both %s and %s/%s", t.Dir, owner, c.Name, tier)
			}
			dirs[dir] = fmt.Sprintf("%s/%s", c.Name, tier)

			cl.Folders = append(cl.Folders, Folder{
				Category: name,
				Tier:     tier,
				Rel:      filepath.ToSlash(t.Dir),
				Dir:      dir,
				Suffix:   t.Suffix,
			})
		}
		if len(cl.Folders) == 0 {
			return nil, fmt.Errorf("category '%s' has no folders", c.Name)
		}

		l.Categories = append(l.Categories, cl)
	}

	return l, nil
}

// Category returns layout of the category
func (l *Layout) Category(name model.Category) (CategoryLayout, bool) {
	for _, c := range l.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryLayout{}, false
}

// Folders returns all folders in table order
func (l *Layout) Folders() []Folder {
	var result []Folder
	for _, c := range l.Categories {
		result = append(result, c.Folders...)
	}
	return result
}

// Required returns categories every title must have
func (l *Layout) Required() []CategoryLayout {
	var result []CategoryLayout
	for _, c := range l.Categories {
		if c.Required {
			result = append(result, c)
		}
	}
	return result
}

// Primary returns names of categories which are not derived
func (l *Layout) Primary() []model.Category {
	var result []model.Category
	for _, c := range l.Categories {
		if !c.Derived() {
			result = append(result, c.Name)
		}
	}
	return result
}

// Derived returns categories regenerated from primary assets
func (l *Layout) Derived() []CategoryLayout {
	var result []CategoryLayout
	for _, c := range l.Categories {
		if c.Derived() {
			result = append(result, c)
		}
	}
	return result
}
