package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/momentics/parambuf/api"
	"github.com/momentics/parambuf/buffer"
)

var (
	statsIterations int
	statsCapacity   int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Run repeated command builds and print pool metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStats(cmd.OutOrStdout(), current, statsIterations, statsCapacity)
	},
}

func init() {
	statsCmd.Flags().IntVarP(&statsIterations, "iterations", "n", 1000, "number of build cycles")
	statsCmd.Flags().IntVar(&statsCapacity, "capacity", 8, "parameters per command")
	rootCmd.AddCommand(statsCmd)
}

// runStats builds iterations commands per variant. The list variant keeps a
// two-parameter prefix and re-appends the tail each time, the way a batched
// statement reuses its key columns.
func runStats(out io.Writer, e *env, iterations, capacity int) error {
	if capacity < 3 {
		return fmt.Errorf("capacity must be at least 3, got %d", capacity)
	}
	opts := e.bufferOptions()

	for i := 0; i < iterations; i++ {
		err := buffer.UseSlice(e.pool, e.factory, capacity, func(b *buffer.SliceBuffer) error {
			for j := 0; j < capacity; j++ {
				if err := b.AppendValue(fmt.Sprintf("@c%d", j), i*j, api.DbTypeInt, 4, api.DirectionInput); err != nil {
					return err
				}
			}
			return nil
		}, opts...)
		if err != nil {
			return err
		}

		err = buffer.UseArray(e.pool, e.factory, capacity, func(b *buffer.ArrayBuffer) error {
			if err := b.AppendValue("@id", i, api.DbTypeBigInt, 8, api.DirectionInput); err != nil {
				return err
			}
			_ = scanUntilNil(b.Array())
			return nil
		}, opts...)
		if err != nil {
			return err
		}
	}

	err := buffer.UseList(e.pool, e.factory, capacity, func(b *buffer.ListBuffer) error {
		_ = b.AppendValue("@tenant", 1, api.DbTypeInt, 4, api.DirectionInput)
		_ = b.AppendValue("@region", "eu", api.DbTypeVarChar, 8, api.DirectionInput)
		for i := 0; i < iterations; i++ {
			if err := b.SetLen(2); err != nil {
				return err
			}
			for j := 2; j < capacity; j++ {
				if err := b.AppendValue(fmt.Sprintf("@row%d", j), i, api.DbTypeInt, 4, api.DirectionInput); err != nil {
					return err
				}
			}
		}
		return nil
	}, opts...)
	if err != nil {
		return err
	}

	e.pool.Publish(e.metrics, "pool.params")
	snap := e.metrics.GetSnapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s %v\n", color.CyanString("%-28s", k), snap[k])
	}

	if leaks := e.tracker.Report(); leaks > 0 {
		fmt.Fprintln(out, color.RedString("%d buffers not disposed", leaks))
	} else {
		fmt.Fprintln(out, color.GreenString("no outstanding buffers"))
	}
	return nil
}
