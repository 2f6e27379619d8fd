package tle

import "strings"

// Filter keeps the entries whose name matches one of names, ignoring case and
// surrounding whitespace. Order of entries is preserved.
func Filter(entries []TLEEntry, names []string) []TLEEntry {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[normalizeName(n)] = true
	}

	var out []TLEEntry
	for _, e := range entries {
		if want[normalizeName(e.Name)] {
			out = append(out, e)
		}
	}
	return out
}

// Format renders entries back into 3-line TLE text.
func Format(entries []TLEEntry) []byte {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Name)
		b.WriteByte('\n')
		b.WriteString(e.Line1)
		b.WriteByte('\n')
		b.WriteString(e.Line2)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func normalizeName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
