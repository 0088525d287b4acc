package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PrintTable renders data as a boxed table. The first row is the header.
func PrintTable(data [][]string, writer io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to output table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}

// PrintFields renders label/value pairs as a two column table.
func PrintFields(header [2]string, fields [][2]string, writer io.Writer) {
	data := make([][]string, 0, len(fields)+1)
	data = append(data, []string{header[0], header[1]})

	for _, f := range fields {
		data = append(data, []string{Highlight(f[0]), f[1]})
	}

	PrintTable(data, writer)
}
