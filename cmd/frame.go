package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/holeframe/internal/diagram"
	"github.com/alexiusacademia/holeframe/internal/geom"
	"github.com/alexiusacademia/holeframe/internal/hole"
)

var frameModel modelFlags

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Show the derived frame of every selected opening",
	Long: `Derive the canonical frame of every selected opening without laying
out any bar: host type and thickness, face normal, orientation, location,
width and length, and the long and transverse center curves.

Examples:
  holeframe frame --model tower.json
  holeframe frame -m tower.json --glob "W*"`,
	RunE: runFrame,
}

func init() {
	rootCmd.AddCommand(frameCmd)
	frameModel.register(frameCmd)
}

func runFrame(cmd *cobra.Command, args []string) error {
	m, refs, err := frameModel.load()
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		printWarning("no openings selected in %s", frameModel.path)
		return nil
	}

	frames, err := hole.DeriveAll(m, refs)
	if err != nil {
		return err
	}

	printHeader(fmt.Sprintf("OPENING FRAMES - %d OPENINGS", len(frames)))
	for _, f := range frames {
		long, transverse := f.LongCurve(), f.TransverseCurve()
		fmt.Print(diagram.DrawSummaryBox(fmt.Sprintf("Opening %s", f.Opening()), []string{
			fmt.Sprintf("Host:         %s (%s, %.0f mm)", f.Host(), f.HostType(), f.Thickness()),
			fmt.Sprintf("Size:         %.0f x %.0f mm", f.Length(), f.Width()),
			fmt.Sprintf("Location:     %s", vec(f.Location())),
		}))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Face normal:\t%s\n", vec(f.FaceNormal()))
		fmt.Fprintf(w, "  Orientation:\t%s\n", vec(f.Orientation()))
		fmt.Fprintf(w, "  Long curve:\t%s → %s\t(%.0f mm)\n", vec(long.Start), vec(long.End), long.Length())
		fmt.Fprintf(w, "  Transverse curve:\t%s → %s\t(%.0f mm)\n", vec(transverse.Start), vec(transverse.End), transverse.Length())
		w.Flush()
		fmt.Println()
	}
	return nil
}

func vec(v geom.Vec) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v.X, v.Y, v.Z)
}
