package script

import (
	"fmt"
	"io"
	"strings"
)

// Render produces the program text fed to the external assembler.
//
// The layout is fixed: an album header, the position register
// initializer, then each section with its statements indented by two
// spaces. Statement order within a section is significant.
func (p *Program) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "album: %d\n", p.AlbumID)
	b.WriteString("init: $current:=0\n")
	for _, section := range p.Sections {
		fmt.Fprintf(&b, "%s:\n", section.Name)
		for _, line := range section.Lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	return b.String()
}

// WriteCodeMap writes the sidecar mapping of action name to code, one
// "name: code" pair per line in the order given. Regenerating a program
// rewrites the same pairs for names that already existed, so material
// printed against an earlier run stays valid.
func WriteCodeMap(w io.Writer, program *Program) error {
	for _, ac := range program.Codes {
		if _, err := fmt.Fprintf(w, "%s: %d\n", ac.Name, ac.Code); err != nil {
			return fmt.Errorf("write code map entry %q: %w", ac.Name, err)
		}
	}
	return nil
}
