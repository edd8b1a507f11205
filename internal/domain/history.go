package domain

// MaxHistory is the number of lookups kept in history.
const MaxHistory = 10

// UpsertFront returns a new history with entry first, any older copy with the
// same ID removed, truncated to MaxHistory. The input slice is not modified.
func UpsertFront(history []HistoryEntry, entry HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, 0, MaxHistory)
	out = append(out, entry)
	for _, h := range history {
		if len(out) >= MaxHistory {
			break
		}
		if h.ID == entry.ID {
			continue
		}
		out = append(out, h)
	}
	return out
}

// NormalizeHistory drops empty ids and duplicates (first occurrence wins) and
// applies the cap. Used on load so a hand-edited value cannot break the invariants.
func NormalizeHistory(history []HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(history))
	seen := make(map[string]struct{}, len(history))
	for _, h := range history {
		if h.ID == "" {
			continue
		}
		if _, ok := seen[h.ID]; ok {
			continue
		}
		seen[h.ID] = struct{}{}
		out = append(out, h)
		if len(out) >= MaxHistory {
			break
		}
	}
	return out
}
