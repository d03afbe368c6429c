package checklist

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// Validate checks structural soundness of the loaded content: IDs present
// and unique at every level, display names present, and no empty checklists.
// State records key off these IDs, so a malformed library would silently
// orphan persisted statuses.
func (l *Library) Validate() error {
	var errs criterio.FieldErrorsBuilder

	seenCategories := map[string]bool{}
	for i, cat := range l.Categories {
		field := fmt.Sprintf("categories[%d]", i)

		switch {
		case strings.TrimSpace(cat.ID) == "":
			errs = errs.Append(field+".id", fmt.Errorf("id is required"))
		case seenCategories[cat.ID]:
			errs = errs.Append(field+".id", fmt.Errorf("duplicate category id %q", cat.ID))
		default:
			seenCategories[cat.ID] = true
		}

		if strings.TrimSpace(cat.Name) == "" {
			errs = errs.Append(field+".name", fmt.Errorf("name is required"))
		}
		if len(cat.Checklists) == 0 {
			errs = errs.Append(field+".checklists", fmt.Errorf("category has no checklists"))
		}

		seenChecklists := map[string]bool{}
		for j, list := range cat.Checklists {
			listField := fmt.Sprintf("%s.checklists[%d]", field, j)

			switch {
			case strings.TrimSpace(list.ID) == "":
				errs = errs.Append(listField+".id", fmt.Errorf("id is required"))
			case seenChecklists[list.ID]:
				errs = errs.Append(listField+".id", fmt.Errorf("duplicate checklist id %q", list.ID))
			default:
				seenChecklists[list.ID] = true
			}

			if strings.TrimSpace(list.Name) == "" {
				errs = errs.Append(listField+".name", fmt.Errorf("name is required"))
			}
			if len(list.Items) == 0 {
				errs = errs.Append(listField+".items", fmt.Errorf("checklist has no items"))
			}

			seenItems := map[string]bool{}
			for k, item := range list.Items {
				itemField := fmt.Sprintf("%s.items[%d]", listField, k)

				switch {
				case strings.TrimSpace(item.ID) == "":
					errs = errs.Append(itemField+".id", fmt.Errorf("id is required"))
				case seenItems[item.ID]:
					errs = errs.Append(itemField+".id", fmt.Errorf("duplicate item id %q", item.ID))
				default:
					seenItems[item.ID] = true
				}

				if strings.TrimSpace(item.Text) == "" {
					errs = errs.Append(itemField+".text", fmt.Errorf("text is required"))
				}
			}
		}
	}

	return errs.ToError()
}
