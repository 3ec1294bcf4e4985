package check

// Kind classifies how a key in the reference aggregate relates to the current
// one.
type Kind int

const (
	// KindMissingInCurrent marks a reference key absent from the current
	// snapshot.
	KindMissingInCurrent Kind = iota
	// KindCountDecreased marks a key whose count dropped below the reference.
	KindCountDecreased
	// KindUnchangedOrIncreased marks a key that held or grew. Compare never
	// emits it; growth is acceptable drift in release databases.
	KindUnchangedOrIncreased
)

func (k Kind) String() string {
	switch k {
	case KindMissingInCurrent:
		return "missing_in_current"
	case KindCountDecreased:
		return "count_decreased"
	case KindUnchangedOrIncreased:
		return "unchanged_or_increased"
	default:
		return "unknown"
	}
}

// Discrepancy is one regression relative to the reference snapshot. Current
// carries a meaningful value only when the key exists in the current
// aggregate, signalled by HasCurrent.
type Discrepancy struct {
	Key        string
	Kind       Kind
	Current    int64
	HasCurrent bool
	Reference  int64
}

// Compare walks every key of the reference aggregate and reports regressions
// in the current one: keys that vanished and counts that decreased. Keys only
// present in current are never inspected; new entities are not this
// comparator's concern, continuity of existing ones is. Output is ordered by
// key.
func Compare(current, reference CountAggregate) []Discrepancy {
	var out []Discrepancy
	for _, key := range reference.Keys() {
		ref, _ := reference.Get(key)
		cur, ok := current.Get(key)
		switch {
		case !ok:
			out = append(out, Discrepancy{Key: key, Kind: KindMissingInCurrent, Reference: ref})
		case cur < ref:
			out = append(out, Discrepancy{Key: key, Kind: KindCountDecreased, Current: cur, HasCurrent: true, Reference: ref})
		}
	}
	return out
}
