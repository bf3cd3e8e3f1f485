package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/momentics/parambuf/api"
	"github.com/momentics/parambuf/buffer"
)

const demoProc = "dbo.GetOrders"

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Build the same three-parameter command with every buffer variant",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.OutOrStdout(), current)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// demoFill appends @p1..@p3, checks the fourth append is refused, then
// resets and appends them again.
func demoFill(out io.Writer, label string, appendValue func(string, any, api.DbType, api.Direction) error, reset func(), length func() int) error {
	fill := func() error {
		if err := appendValue("@p1", "A", api.DbTypeVarChar, api.DirectionInput); err != nil {
			return err
		}
		if err := appendValue("@p2", 7, api.DbTypeInt, api.DirectionInput); err != nil {
			return err
		}
		return appendValue("@p3", nil, api.DbTypeInt, api.DirectionOutput)
	}
	if err := fill(); err != nil {
		return err
	}
	err := appendValue("@p4", 0, api.DbTypeInt, api.DirectionInput)
	if !errors.Is(err, api.ErrCapacityExceeded) {
		return fmt.Errorf("%s: expected capacity error, got %v", label, err)
	}
	fmt.Fprintf(out, "  %s 4th append refused: %v\n", color.YellowString("%-6s", label), err)
	reset()
	if length() != 0 {
		return fmt.Errorf("%s: reset left length %d", label, length())
	}
	return fill()
}

func runDemo(out io.Writer, e *env) error {
	opts := e.bufferOptions()
	ok := func(label, call string) {
		fmt.Fprintf(out, "  %s %s\n", color.GreenString("%-6s", label), call)
	}

	err := buffer.UseArray(e.pool, e.factory, 3, func(b *buffer.ArrayBuffer) error {
		if err := demoFill(out, "array", func(n string, v any, t api.DbType, d api.Direction) error {
			return b.AppendValue(n, v, t, 0, d)
		}, b.Reset, b.Len); err != nil {
			return err
		}
		ok("array", renderCall(demoProc, scanUntilNil(b.Array())))
		return nil
	}, opts...)
	if err != nil {
		return err
	}

	err = buffer.UseSlice(e.pool, e.factory, 3, func(b *buffer.SliceBuffer) error {
		if err := demoFill(out, "slice", func(n string, v any, t api.DbType, d api.Direction) error {
			return b.AppendValue(n, v, t, 0, d)
		}, b.Reset, b.Len); err != nil {
			return err
		}
		ok("slice", renderCall(demoProc, b.Slice()))
		return nil
	}, opts...)
	if err != nil {
		return err
	}

	return buffer.UseList(e.pool, e.factory, 3, func(b *buffer.ListBuffer) error {
		if err := demoFill(out, "list", func(n string, v any, t api.DbType, d api.Direction) error {
			return b.AppendValue(n, v, t, 0, d)
		}, b.Reset, b.Len); err != nil {
			return err
		}
		if err := b.SetByName("@p2", &api.Parameter{Name: "@p2", Value: 8, DbType: api.DbTypeInt}); err != nil {
			return err
		}
		params := make([]*api.Parameter, 0, b.Len())
		for _, p := range b.All() {
			params = append(params, p)
		}
		ok("list", renderCall(demoProc, params))
		return nil
	}, opts...)
}

// scanUntilNil reads a sentinel-terminated parameter array the way legacy
// consumers do.
func scanUntilNil(arr []*api.Parameter) []*api.Parameter {
	for i, p := range arr {
		if p == nil {
			return arr[:i]
		}
	}
	return arr
}

// renderCall formats an EXEC statement for display only; values are not escaped.
func renderCall(proc string, params []*api.Parameter) string {
	var sb strings.Builder
	sb.WriteString("EXEC ")
	sb.WriteString(proc)
	for i, p := range params {
		if i == 0 {
			sb.WriteString(" ")
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString("=")
		switch v := p.Value.(type) {
		case nil:
			sb.WriteString("NULL")
		case string:
			sb.WriteString("'" + v + "'")
		default:
			fmt.Fprintf(&sb, "%v", v)
		}
		if p.Direction == api.DirectionOutput || p.Direction == api.DirectionInputOutput {
			sb.WriteString(" OUTPUT")
		}
	}
	return sb.String()
}
