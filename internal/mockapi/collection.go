package mockapi

import (
	"maps"
	"slices"
	"strconv"
)

// collection stores JSON objects by numeric id; not safe on its own,
// the Server lock guards it.
type collection struct {
	items  map[int64]map[string]any
	nextID int64
}

func newCollection() *collection {
	return &collection{items: make(map[int64]map[string]any), nextID: 1}
}

// insert stores a shallow copy of item so callers can reuse their map.
func (c *collection) insert(item map[string]any) map[string]any {
	item = maps.Clone(item)
	id, ok := idOf(item["id"])
	if !ok {
		id = c.nextID
	}
	if id >= c.nextID {
		c.nextID = id + 1
	}
	item["id"] = id
	c.items[id] = item
	return item
}

func (c *collection) list() []map[string]any {
	ids := make([]int64, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.items[id])
	}
	return out
}

// idOf accepts the numeric forms produced by encoding/json and path params.
func idOf(v any) (int64, bool) {
	switch id := v.(type) {
	case int64:
		return id, id > 0
	case int:
		return int64(id), id > 0
	case float64:
		return int64(id), id > 0 && id == float64(int64(id))
	case string:
		n, err := strconv.ParseInt(id, 10, 64)
		return n, err == nil && n > 0
	default:
		return 0, false
	}
}
