package main

import "strings"

// buildDescription joins label, vendor, model and the label again, the same
// shape other drivelist implementations print. Whitespace runs collapse to a
// single space and the result may be empty.
func buildDescription(label, vendor, model string) string {
	parts := []string{label, vendor, model}
	if label != "" {
		parts = append(parts, label)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
