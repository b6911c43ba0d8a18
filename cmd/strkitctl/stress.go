package main

import (
	"errors"

	"github.com/joshuapare/strkit/pool"
	"github.com/joshuapare/strkit/strbuf"
	"github.com/spf13/cobra"
)

var (
	stressPoolSize  int
	stressChunkSize int
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressPoolSize, "pool-size", 1<<20, "Pool region size in bytes")
	cmd.Flags().IntVar(&stressChunkSize, "chunk", 1024, "Append chunk size in bytes")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Append into one buffer until the pool is exhausted",
		Long: `The stress command grows a single buffer in fixed-size chunks until the
pool refuses to allocate, then reports the high-water mark and verifies
that the buffer survived exhaustion intact.

Example:
  strkitctl stress --pool-size 65536 --chunk 512`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

func runStress() error {
	p, err := pool.New(stressPoolSize)
	if err != nil {
		return err
	}
	defer p.Close()

	b := strbuf.NewIn(p)
	chunk := make([]byte, stressChunkSize)
	for i := range chunk {
		chunk[i] = byte(i)
	}

	appends := 0
	for {
		if err := b.AppendBytes(chunk); err != nil {
			if !errors.Is(err, pool.ErrNoSpace) {
				return err
			}
			break
		}
		appends++
	}

	// Exhaustion must leave the buffer consistent: terminated, readable,
	// and still shrinkable.
	highWater := b.Len()
	if cs := b.CString(); cs[len(cs)-1] != 0 {
		return errors.New("stress: terminator missing after exhaustion")
	}
	if err := b.ShrinkToFit(); err != nil {
		return err
	}

	st := p.Stats()
	printInfo("pool:        %d bytes\n", stressPoolSize)
	printInfo("appends:     %d x %d bytes before first failure\n", appends, stressChunkSize)
	printInfo("high water:  %d content bytes (%.1f%% of pool)\n",
		highWater, 100*float64(highWater)/float64(stressPoolSize))
	printInfo("after shrink: %d bytes used, largest free %d\n", st.Used, st.LargestFree)
	return nil
}
