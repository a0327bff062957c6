package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"shortcut-recorder/internal/store"
)

// ListCmd lists all declared names
type ListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

type listEntry struct {
	Name     string `json:"name"`
	Shortcut string `json:"shortcut"`
	Display  string `json:"display"`
	Default  string `json:"default"`
}

// Run executes the list command
func (l *ListCmd) Run(cli *CLI) error {
	a, err := cli.newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	entries := listEntries(a.Store())
	if l.Format == "json" {
		return printJSON(os.Stdout, entries)
	}
	printTable(os.Stdout, entries)
	return nil
}

func listEntries(st *store.Store) []listEntry {
	names := st.Names()
	entries := make([]listEntry, 0, len(names))
	for _, name := range names {
		sc, ok := st.Get(name)
		def, _ := st.Default(name)
		entries = append(entries, listEntry{
			Name:     string(name),
			Shortcut: sc.String(),
			Display:  display(sc, ok),
			Default:  def.String(),
		})
	}
	return entries
}

func printJSON(w io.Writer, entries []listEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printTable(w io.Writer, entries []listEntry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSHORTCUT\tDEFAULT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, e.Display, e.Default)
	}
	tw.Flush()
}
