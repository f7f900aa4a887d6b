package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	jsonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	keyStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// writeJSON prints v as one line of JSON, or indented and coloured when
// stdout is a terminal.
func writeJSON(cmd *cobra.Command, v any) error {
	w := cmd.OutOrStdout()
	if isTerminal(w) {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		_, err = fmt.Fprintln(w, jsonStyle.Render(string(data)))
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeField prints a "key: value" line, styled on terminals.
func writeField(cmd *cobra.Command, key string, value any) {
	w := cmd.OutOrStdout()
	if value == "" {
		value = "(not set)"
	}
	if isTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", keyStyle.Render(key+":"), mutedStyle.Render(fmt.Sprint(value)))
		return
	}
	fmt.Fprintf(w, "%s: %v\n", key, value)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
