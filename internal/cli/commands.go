package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/nconklindev/diacritix/internal/converter"
	"github.com/nconklindev/diacritix/internal/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newFixCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix FILE",
		Short: "Write a copy of FILE with special characters replaced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := r.app.ProcessFile(args[0])
			if !result.Success {
				return errors.New(result.Message)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Message)
			fmt.Fprintf(out, "Sheets: %d  Cells scanned: %d  Cells changed: %d\n",
				result.Sheets, result.CellsScanned, result.CellsChanged)
			return nil
		},
	}
	cmd.Flags().String("suffix", converter.DefaultSuffix, "Text inserted before the output file's extension (default: $DIACRITIX_OUTPUT_SUFFIX)")
	return cmd
}

func newAnalyzeCommand(r *runner) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "List the special characters in FILE and how they are mapped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := r.app.AnalyzeFile(args[0])
			if !result.Success {
				return errors.New(result.Message)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				chars := result.Characters
				if chars == nil {
					chars = []types.CharacterReport{}
				}
				return writeJSON(out, chars)
			}

			if len(result.Characters) == 0 {
				fmt.Fprintln(out, "No special characters found")
				return nil
			}

			rows := make([][]string, 0, len(result.Characters))
			for _, c := range result.Characters {
				replacement := "NOT MAPPED"
				if c.Mapped {
					replacement = displayReplacement(c.Replacement)
				}
				rows = append(rows, []string{c.Char, strconv.Itoa(c.Count), c.Hex, c.Name, replacement})
			}
			fmt.Fprintln(out, renderTable([]string{"CHAR", "COUNT", "CODE", "NAME", "REPLACEMENT"}, rows))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}

func newMapCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Show or edit the character table",
	}

	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "Print every mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := r.app.GetMappings()
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, m)
			}

			rows := make([][]string, 0, len(m))
			for _, k := range m.Keys() {
				rows = append(rows, []string{string(k), fmt.Sprintf("U+%04X", k), displayReplacement(m[k])})
			}
			fmt.Fprintln(out, renderTable([]string{"CHAR", "CODE", "REPLACEMENT"}, rows))
			return nil
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "Print the table as JSON")

	set := &cobra.Command{
		Use:   "set CHAR REPLACEMENT",
		Short: "Map CHAR to REPLACEMENT; an empty REPLACEMENT deletes CHAR from cell text",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if res := r.app.UpdateMapping(args[0], args[1]); !res.Success {
				return errors.New(res.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", args[0], displayReplacement(args[1]))
			return nil
		},
	}

	del := &cobra.Command{
		Use:     "delete CHAR",
		Aliases: []string{"rm"},
		Short:   "Stop replacing CHAR",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if res := r.app.DeleteMapping(args[0]); !res.Success {
				return errors.New(res.Message)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s unmapped\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, set, del)
	return cmd
}

func newConfigCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Locate or open the character table file",
	}

	path := &cobra.Command{
		Use:   "path",
		Short: "Print the character table location",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), r.app.MappingsPath())
		},
	}

	open := &cobra.Command{
		Use:   "open",
		Short: "Open the character table in $VISUAL, $EDITOR or the system default app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if res := r.app.OpenConfig(); !res.Success {
				return errors.New(res.Message)
			}
			return nil
		},
	}

	cmd.AddCommand(path, open)
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

func displayReplacement(s string) string {
	if s == "" {
		return "(removed)"
	}
	return strconv.Quote(s)
}
