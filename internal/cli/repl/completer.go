package repl

import "strings"

// Completer resolves what the user typed at the menu to an item.
type Completer struct {
	items []Item
}

// NewCompleter creates a Completer over items.
func NewCompleter(items []Item) *Completer {
	return &Completer{items: items}
}

// Resolve returns the item selected by input: its key ("3"), or a
// case-insensitive prefix of its label ("li" for "List") that matches
// exactly one item.
func (c *Completer) Resolve(input string) (Item, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Item{}, false
	}

	for _, it := range c.items {
		if it.Key == input {
			return it, true
		}
	}

	matches := c.Complete(input)
	if len(matches) != 1 {
		return Item{}, false
	}
	return matches[0], true
}

// Complete returns the items whose label starts with prefix, ignoring case.
func (c *Completer) Complete(prefix string) []Item {
	prefix = strings.ToLower(strings.TrimSpace(prefix))

	var matches []Item
	for _, it := range c.items {
		if strings.HasPrefix(strings.ToLower(it.Label), prefix) {
			matches = append(matches, it)
		}
	}
	return matches
}
