package picking

// DisplayFormatter maps a JAN to the short code printed on the picking list.
type DisplayFormatter struct {
	overrides map[string]string
}

// NewDisplayFormatter copies the JAN → display value exception table.
func NewDisplayFormatter(overrides map[string]string) *DisplayFormatter {
	o := make(map[string]string, len(overrides))
	for k, v := range overrides {
		o[k] = v
	}
	return &DisplayFormatter{overrides: o}
}

// ShortForm returns the last four characters of the JAN, or of its override
// value when the JAN is in the exception table. Override values are
// truncated too, placeholders included. Shorter strings are not padded.
func (f *DisplayFormatter) ShortForm(jan string) string {
	if jan == "" {
		return ""
	}
	if v, ok := f.overrides[jan]; ok && v != "" {
		return lastRunes(v, 4)
	}
	return lastRunes(jan, 4)
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
