package ambiguity

// DefaultEntries is the curated built-in false-positive table, used when no
// ambiguity file is configured. Keywords here are legitimate standalone words
// that are also fragments of common unrelated nouns.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Keyword:         "מס", // tax
			KnownContainers: []string{"מסעדה", "מסעדות", "מסלול", "מספרה", "מסך"},
		},
		{
			Keyword:         "ביט", // the Bit payment app
			KnownContainers: []string{"ביטוח", "ביטול"},
		},
		{
			Keyword:         "גז", // gas
			KnownContainers: []string{"גזר", "מגזין"},
		},
		{
			Keyword:         "בר", // bar
			KnownContainers: []string{"חברה", "מעבר", "ברקוד"},
		},
		{
			Keyword:         "יין", // wine
			KnownContainers: []string{"בניין", "עניין", "מניין"},
		},
		{
			Keyword:         "גן", // kindergarten
			KnownContainers: []string{"מגן"},
		},
		{
			Keyword:         "חג", // holiday
			KnownContainers: []string{"חגורה"},
		},
		{
			Keyword:         "tax",
			KnownContainers: []string{"taxi"},
		},
		{
			Keyword:         "gas",
			KnownContainers: []string{"gastro"},
		},
		{
			// Fuel-station brand, regularly glued to location text
			// ("דלקמנטה", "מתחםדלק" in provider exports).
			Keyword:        "דלק",
			AllowSubstring: true,
		},
	}
}

// DefaultGuard returns a Guard backed by the built-in table.
func DefaultGuard() *Guard {
	return NewGuard(DefaultEntries())
}
