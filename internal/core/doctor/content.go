package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"

	"github.com/sharo-jef/checklist-sub001/internal/core/checklist"
	"github.com/sharo-jef/checklist-sub001/internal/core/config"
)

// ContentCheck loads checklist content from scratch so it can report problems
// even when the running app fell back to the builtin library.
type ContentCheck struct {
	Config *config.Config
}

func (c *ContentCheck) Name() string { return "Content" }

func (c *ContentCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	library, err := checklist.Load(checklist.LoadOptions{
		IncludeBuiltin: !c.Config.Content.DisableBuiltin,
		Paths:          c.Config.Content.Paths,
	})
	if err != nil {
		result.Items = append(result.Items, contentErrorItems(err)...)
		return result
	}

	categories := len(library.Categories)
	checklists := 0
	items := 0
	for _, cat := range library.Categories {
		checklists += len(cat.Checklists)
		for _, cl := range cat.Checklists {
			items += len(cl.Items)
		}
	}

	if categories == 0 {
		result.Items = append(result.Items, warn("library", "no checklist content loaded"))
		return result
	}

	result.Items = append(result.Items, pass("library",
		fmt.Sprintf("%d categories, %d checklists, %d items", categories, checklists, items)))
	return result
}

// contentErrorItems unpacks validation failures into one line per field so
// the report points at the offending entry instead of dumping a joined blob.
func contentErrorItems(err error) []CheckItem {
	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []CheckItem{fail("library", err.Error())}
	}

	items := make([]CheckItem, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		items = append(items, fail(fe.Field, fe.Err.Error()))
	}
	return items
}
