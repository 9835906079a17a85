package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"

	"ccu/internal/app"
	"ccu/internal/reconciler"
	"ccu/internal/recovery"
	pstrings "ccu/pkg/strings"
)

// Printer renders command results in one output format.
type Printer struct {
	out    io.Writer
	format OutputFormat
}

// NewPrinter creates a printer writing to out. An empty format means table.
func NewPrinter(out io.Writer, format OutputFormat) *Printer {
	if format == "" {
		format = OutputFormatTable
	}
	return &Printer{out: out, format: format}
}

// PrintStatus renders a status report.
func (p *Printer) PrintStatus(report app.StatusReport) error {
	if p.format != OutputFormatTable {
		return p.encode(report)
	}

	summary := p.createTable()
	summary.AppendHeader(table.Row{text.FgHiCyan.Sprint("KEY"), text.FgHiCyan.Sprint("VALUE")})
	summary.AppendRows([]table.Row{
		{"Project", report.ProjectDir},
		{"Group", string(report.Group)},
		{"Enable symbol", fmt.Sprintf("%s %s", report.EnableSymbol, formatBool(report.Enabled))},
		{"Symbols", joinOrDash(report.Symbols)},
		{"Marker types", joinOrDash(report.MarkerTypes)},
		{"Reset triggered", formatBool(report.Recovery.ResetTriggered)},
		{"Reset this cycle", formatBool(report.Recovery.ResetThisCycle)},
		{"Failed defines", joinOrDash(report.Recovery.FailedDefines)},
	})
	summary.Render()

	if len(report.Modules) > 0 {
		mods := p.createTable()
		mods.AppendHeader(table.Row{
			text.FgHiCyan.Sprint("MODULE"),
			text.FgHiCyan.Sprint("TYPES"),
			text.FgHiCyan.Sprint("LOAD ERROR"),
		})
		for _, m := range report.Modules {
			mods.AppendRow(table.Row{m.Name, m.Types, pstrings.TruncateCell(m.LoadError, pstrings.DefaultCellMaxLen)})
		}
		mods.Render()
	}

	if len(report.Dependencies) == 0 {
		fmt.Fprintf(p.out, "%s\n", text.FgYellow.Sprint("No optional dependencies declared"))
	} else {
		deps := p.createTable()
		deps.AppendHeader(table.Row{
			text.FgHiCyan.Sprint("DEPENDENT CLASS"),
			text.FgHiCyan.Sprint("DEFINE"),
			text.FgHiCyan.Sprint("ORIGIN"),
			text.FgHiCyan.Sprint("RESOLVED"),
			text.FgHiCyan.Sprint("DEFINED"),
		})
		for _, d := range report.Dependencies {
			deps.AppendRow(table.Row{d.DependentClass, d.Define, d.Origin, formatBool(d.Resolved), formatBool(d.Defined)})
		}
		deps.Render()
	}

	for _, m := range report.Malformed {
		fmt.Fprintln(p.out, text.FgYellow.Sprint(FormatWarning(m)))
	}
	return nil
}

// PrintPass renders the result of one reconciliation pass.
func (p *Printer) PrintPass(res reconciler.PassResult) error {
	if p.format != OutputFormatTable {
		return p.encode(res)
	}

	t := p.createTable()
	t.AppendHeader(table.Row{text.FgHiCyan.Sprint("KEY"), text.FgHiCyan.Sprint("VALUE")})
	t.AppendRows([]table.Row{
		{"Pass", res.PassID},
		{"Mode", res.Mode},
		{"Group", string(res.Group)},
		{"Bootstrapped", formatBool(res.Bootstrapped)},
		{"Wrote", formatBool(res.Wrote)},
		{"Before", res.Before},
		{"After", res.After},
		{"Added", text.FgGreen.Sprint(joinOrDash(res.Added))},
		{"Removed", text.FgRed.Sprint(joinOrDash(res.Removed))},
		{"Duration", res.Duration},
	})
	t.Render()
	return nil
}

// PrintOutcome renders what the recovery listener did with an event.
func (p *Printer) PrintOutcome(out recovery.Outcome) error {
	if p.format != OutputFormatTable {
		return p.encode(out)
	}

	line := string(out.Action)
	if out.Reason != "" {
		line = fmt.Sprintf("%s (%s)", line, out.Reason)
	}
	fmt.Fprintln(p.out, FormatSuccess(line))
	if out.Result != nil {
		return p.PrintPass(*out.Result)
	}
	return nil
}

func (p *Printer) encode(v any) error {
	switch p.format {
	case OutputFormatJSON:
		enc := json.NewEncoder(p.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputFormatYAML:
		enc := yaml.NewEncoder(p.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return ValidateOutputFormat(string(p.format))
	}
}

// createTable creates a new table with standard styling
func (p *Printer) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetStyle(table.StyleRounded)
	return t
}

func formatBool(b bool) string {
	if b {
		return text.FgGreen.Sprint("yes")
	}
	return text.FgHiBlack.Sprint("no")
}

func joinOrDash(items []string) string {
	return pstrings.JoinCell(items, ";", pstrings.DefaultCellMaxLen)
}
