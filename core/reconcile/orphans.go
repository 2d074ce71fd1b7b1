package reconcile

// Orphans returns the target entities whose key has no source counterpart,
// in target order.
func Orphans[S, T any](source []S, sourceKey func(S) string, target []T, targetKey func(T) string) []T {
	keys := make(map[string]struct{}, len(source))
	for _, s := range source {
		keys[sourceKey(s)] = struct{}{}
	}

	var out []T
	for _, t := range target {
		if _, ok := keys[targetKey(t)]; !ok {
			out = append(out, t)
		}
	}
	return out
}
