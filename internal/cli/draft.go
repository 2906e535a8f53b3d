package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"go-quote-desk/internal/quote"

	"gopkg.in/yaml.v3"
)

// Draft is the YAML file "quotes new -f" reads. Amounts are strings so they
// go through the same input rule as typed values.
type Draft struct {
	Customer           map[string]string `yaml:"customer"`
	ProjectDescription string            `yaml:"project_description"`
	Location           string            `yaml:"location"`
	Notes              string            `yaml:"notes"`
	Items              []DraftItem       `yaml:"items"`
}

type DraftItem struct {
	Description string `yaml:"description"`
	Quantity    string `yaml:"quantity"`
	Unit        string `yaml:"unit"`
	UnitPrice   string `yaml:"unit_price"`
}

// LoadDraft reads a draft file.
func LoadDraft(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}
	var d Draft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}
	return &d, nil
}

// Form fills a new quote form from the draft.
func (d *Draft) Form() (*quote.Form, error) {
	f := quote.NewForm()

	keys := make([]string, 0, len(d.Customer))
	for k := range d.Customer {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := f.SetCustomer(k, d.Customer[k]); err != nil {
			return nil, usagef("draft: %v", err)
		}
	}
	f.SetProjectDescription(d.ProjectDescription)
	f.SetLocation(d.Location)
	f.SetNotes(d.Notes)

	for i, item := range d.Items {
		if i > 0 {
			f.AddItem()
		}
		fields := []struct{ name, value string }{
			{"description", item.Description},
			{"quantity", item.Quantity},
			{"unit", item.Unit},
			{"unit_price", item.UnitPrice},
		}
		for _, field := range fields {
			// empty keeps the new row's default
			if field.value == "" {
				continue
			}
			if err := f.EditItem(i, field.name, field.value); err != nil {
				return nil, usagef("draft item %d: %v", i+1, err)
			}
		}
	}
	return f, nil
}

// Edits are the changes "quotes edit" applies, in this order: removals
// (numbered as listed by "quotes show"), additions, then field edits
// (numbered after removals and additions).
type Edits struct {
	Remove   []int
	Add      int
	Set      []string // "N.field=value", N counted from 1
	Customer []string // "field=value"
	Project  *string
	Location *string
	Notes    *string
}

func (e *Edits) Apply(f *quote.Form) error {
	remove := append([]int(nil), e.Remove...)
	sort.Sort(sort.Reverse(sort.IntSlice(remove)))
	for i, n := range remove {
		if i > 0 && remove[i-1] == n {
			continue
		}
		if !f.RemoveItem(n - 1) {
			return usagef("cannot remove item %d: it does not exist or is the only item", n)
		}
	}

	for i := 0; i < e.Add; i++ {
		f.AddItem()
	}

	for _, s := range e.Set {
		n, field, value, err := parseItemEdit(s)
		if err != nil {
			return err
		}
		if err := f.EditItem(n-1, field, value); err != nil {
			return usagef("--set %s: %v", s, err)
		}
	}

	for _, s := range e.Customer {
		field, value, ok := strings.Cut(s, "=")
		if !ok {
			return usagef("--customer %q: want field=value", s)
		}
		if err := f.SetCustomer(strings.TrimSpace(field), value); err != nil {
			return usagef("--customer %s: %v", s, err)
		}
	}

	if e.Project != nil {
		f.SetProjectDescription(*e.Project)
	}
	if e.Location != nil {
		f.SetLocation(*e.Location)
	}
	if e.Notes != nil {
		f.SetNotes(*e.Notes)
	}
	return nil
}

// parseItemEdit splits "2.unit_price=150".
func parseItemEdit(s string) (int, string, string, error) {
	target, value, ok := strings.Cut(s, "=")
	if !ok {
		return 0, "", "", usagef("--set %q: want N.field=value", s)
	}
	index, field, ok := strings.Cut(target, ".")
	if !ok {
		return 0, "", "", usagef("--set %q: want N.field=value", s)
	}
	n, err := strconv.Atoi(strings.TrimSpace(index))
	if err != nil || n < 1 {
		return 0, "", "", usagef("--set %q: item number must be 1 or more", s)
	}
	return n, strings.TrimSpace(field), value, nil
}
