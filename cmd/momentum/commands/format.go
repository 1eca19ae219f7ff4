package commands

import "fmt"

// Shared output formatting so every command prints the same way.

// printSeparator prints a visual separator.
func printSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// printDoubleSeparator prints a double-line separator.
func printDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// printTableHeader prints a table header with a separator line.
func printTableHeader(columns []string, widths []int) {
	for i, col := range columns {
		fmt.Printf("%-*s", widths[i], col)
		if i < len(columns)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2
		}
	}
	for i := 0; i < totalWidth; i++ {
		fmt.Print("─")
	}
	fmt.Println()
}

// printTableRow prints one table row.
func printTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// formatNumber formats a float with thousands separators, no decimals.
func formatNumber(n float64) string {
	whole := int64(n)
	s := fmt.Sprintf("%d", whole)
	if whole < 0 {
		s = s[1:]
	}

	var out []byte
	for i, digit := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digit)
	}

	if whole < 0 {
		return "-" + string(out)
	}
	return string(out)
}
