package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
)

const (
	doubleRule = "═══════════════════════════════════════════════════════════════"
	singleRule = "───────────────────────────────────────────────────────────────"
)

func printHeader(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, doubleRule)
	fmt.Fprintf(w, "     %s\n", title)
	fmt.Fprintln(w, doubleRule)
	fmt.Fprintln(w)
}

func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "%s:\n", title)
	fmt.Fprintln(w, singleRule)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func yesNo(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
