package main

import (
	"encoding/json"
	"io"
	"os"

	"golang.org/x/term"
)

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

// outputWidth returns the terminal width of stdout, or 80.
func outputWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func emptyListMessage(total int, includeAll bool) string {
	if total == 0 {
		return "No todos found."
	}
	if !includeAll {
		return "No todos to show. Use --all to include hidden todos."
	}
	return "No todos found."
}
