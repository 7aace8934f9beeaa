package overrides

// Outcome describes what an upsert did to the line sequence.
type Outcome struct {
	Family     Family // with Key, meaningful only when Classified
	Key        string
	Classified bool
	Replaced   bool
	Index      int // index of the written line (first line for blocks)
}

// Merge upserts line into lines and returns the new sequence. The input slice
// is not modified.
//
// A classified line replaces the first existing line of the same family with
// the same key; otherwise it is appended. Unclassified lines are always
// appended, so repeating them duplicates them. A line with a line break is
// rejected with ErrMultiline.
func Merge(lines []string, line string) ([]string, Outcome, error) {
	if err := ValidateLine(line); err != nil {
		return nil, Outcome{}, err
	}
	out := append([]string(nil), lines...)

	family, key, ok := Classify(line)
	if !ok {
		out = append(out, line)
		return out, Outcome{Index: len(out) - 1}, nil
	}

	outcome := Outcome{Family: family, Key: key, Classified: true}
	if family.ReplaceOnConflict() {
		for i, existing := range out {
			if existingKey, ok := family.ExtractKey(existing); ok && existingKey == key {
				out[i] = line
				outcome.Replaced = true
				outcome.Index = i
				return out, outcome, nil
			}
		}
	}

	out = append(out, line)
	outcome.Index = len(out) - 1
	return out, outcome, nil
}
