package main

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// result pairs a command argument with the Catbox response for it.
type result struct {
	Input    string
	Response string
}

func renderResults(w io.Writer, inputHeader string, results []result) {
	if len(results) == 0 {
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{inputHeader, "RESPONSE"})
	table.SetAutoWrapText(false)
	for _, r := range results {
		table.Append([]string{r.Input, r.Response})
	}
	table.Render()
}
