// Copyright (c) 2026, The Partkit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kit

import (
	"fmt"
	"io"
	"strings"
)

// PrintDiagram writes the catalog's part hierarchy as an indented tree,
// one part per line, marking private parts and lists.
func (c *Catalog) PrintDiagram(w io.Writer) {
	c.printSubDiagram(w, 0, 0)
}

func (c *Catalog) printSubDiagram(w io.Writer, partNum, depth int) {
	e := c.Entry(partNum)
	if e == nil {
		return
	}
	marks := ""
	if e.IsList {
		marks += " [list]"
	}
	if partNum != 0 && !e.IsPublic {
		marks += " (private)"
	}
	fmt.Fprintf(w, "%s%q%s\n", strings.Repeat("   ", depth), e.Name, marks)
	for i := partNum + 1; i < c.NumEntries(); i++ {
		if c.Entry(i).Parent == partNum {
			c.printSubDiagram(w, i, depth+1)
		}
	}
}

// PrintTable writes one line per catalog entry with its name, required
// and default types, and flags.
func (c *Catalog) PrintTable(w io.Writer) {
	for i, fn := 0, c.NumEntries(); i < fn; i++ {
		e := c.Entry(i)
		fmt.Fprintf(w, "%-20s %-28s", e.Name, e.Type.ShortName())
		if e.IsList {
			items := make([]string, len(e.ListItemTypes))
			for j, t := range e.ListItemTypes {
				items[j] = t.ShortName()
			}
			fmt.Fprintf(w, " [%s of %s]", e.ListContainerType.ShortName(),
				strings.Join(items, ", "))
		} else if e.DefaultType != e.Type {
			fmt.Fprintf(w, " (default %s)", e.DefaultType.ShortName())
		}
		var flags []string
		if !e.IsPublic && i != 0 {
			flags = append(flags, "private")
		}
		if !e.Leaf {
			flags = append(flags, "interior")
		}
		if e.NullByDefault {
			flags = append(flags, "null-by-default")
		}
		if len(flags) > 0 {
			fmt.Fprintf(w, "  %s", strings.Join(flags, " "))
		}
		fmt.Fprintln(w)
	}
}
