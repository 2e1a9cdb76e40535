package cli

import (
	"fmt"
	"io"
)

// progressPrinter renders a single-line percentage for one download.
type progressPrinter struct {
	w       io.Writer
	label   string
	printed bool
}

func (p *progressPrinter) Progress(percent float64) {
	fmt.Fprintf(p.w, "\r%s %5.1f%%", p.label, percent)
	p.printed = true
}

func (p *progressPrinter) finish() {
	if !p.printed {
		fmt.Fprint(p.w, p.label)
	}
	fmt.Fprintln(p.w)
}
