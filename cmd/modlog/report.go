package modlog

import (
	"fmt"
	"io"
	"sort"

	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/arthur-debert/modlog/pkg/ui"
)

// ReportError prints err followed by its details, one sorted key per line
func ReportError(w io.Writer, err error) {
	fmt.Fprintln(w, ui.Render("Error", fmt.Sprintf("Error: %v", err)))

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s: %v\n", ui.Render("Muted", k), details[k])
	}
}
