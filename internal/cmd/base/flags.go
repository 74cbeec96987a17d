package base

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// FlagSet wraps flag.FlagSet to render option help in the CLI's style.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Parse errors are reported by the caller through the
// UI, so the flag package's own output is discarded.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(io.Discard)
	return &FlagSet{FlagSet: f}
}

// Help returns the options section of a command's help text.
func (f *FlagSet) Help() string {
	var b strings.Builder

	f.VisitAll(func(fl *flag.Flag) {
		if b.Len() == 0 {
			b.WriteString("\n\nOptions:\n")
		}
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if fl.DefValue != "" && fl.DefValue != "false" && fl.DefValue != "0" {
			fmt.Fprintf(&b, "=%s", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", fl.Usage)
	})

	return b.String()
}
