package value

import "github.com/maa-cli/maa-go/internal/apperr"

// color tags a vertex's DFS visitation state. A visited/unvisited boolean
// set alone cannot distinguish a back-edge (cycle) from cross-edges into an
// already-finished vertex (a reconverging diamond), hence the third "gray"
// state here.
type color int

const (
	white color = iota // not yet visited
	gray               // on the current DFS stack
	black              // fully processed
)

// topoSortObjectKeys orders the keys of an Object so that every Optional's
// condition dependencies appear before it. Returns
// apperr.ErrCircularDependency if a gray vertex is revisited.
func topoSortObjectKeys(obj map[string]Value) ([]string, error) {
	colors := make(map[string]color, len(obj))
	var order []string

	var visit func(key string) error
	visit = func(key string) error {
		switch colors[key] {
		case black:
			return nil
		case gray:
			return apperr.ErrCircularDependency
		}
		colors[key] = gray

		if v, ok := obj[key]; ok && v.Kind == KindOptional {
			for dep := range v.OptionalConditions {
				if _, exists := obj[dep]; !exists {
					// Dependency on a sibling that doesn't exist; it will
					// simply never be satisfied at evaluation time, no
					// structural edge to walk.
					continue
				}
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		colors[key] = black
		order = append(order, key)
		return nil
	}

	// Deterministic base iteration order so error messages and resolution
	// order are stable across runs even though Go map iteration isn't.
	for _, key := range sortedKeys(obj) {
		if colors[key] == white {
			if err := visit(key); err != nil {
				return nil, err
			}
		}
	}
	return order, nil
}

func sortedKeys(obj map[string]Value) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	// insertion-sort is fine; these objects are small (a handful of fields)
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
