package syncer

// guard is a set of keys currently (or already) being processed in a run.
type guard map[string]struct{}

// enter adds key and reports false if it was already present.
func (g guard) enter(key string) bool {
	if _, ok := g[key]; ok {
		return false
	}
	g[key] = struct{}{}
	return true
}

func (g guard) has(key string) bool {
	_, ok := g[key]
	return ok
}

func (g guard) leave(key string) {
	delete(g, key)
}
