package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/holeframe/internal/diagram"
	"github.com/alexiusacademia/holeframe/internal/emit"
	"github.com/alexiusacademia/holeframe/internal/framing"
)

var (
	layoutModel modelFlags

	// Diagram options
	layoutShowDiagram bool
	layoutExportFile  string
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Frame the openings of a model with reinforcement",
	Long: `Lay out the reinforcement around every opening of a model and place
it in a document, all in one transaction.

Selected openings are generic model instances whose family name contains
"hole" or "opening" (or the Russian "отверстие" / "проём"). Use --glob to
narrow the selection by opening id.

Settings are read for the model title (see 'holeframe settings'). When
cover_from_model is set, each host element's own cover is used.

A single failing opening aborts the whole batch: nothing is placed.

Examples:
  # Frame every opening
  holeframe layout --model tower.json

  # Only the openings of level 2, with plans
  holeframe layout -m tower.json --glob "L2-*" --diagram -o plans/plan.png`,
	RunE: runLayout,
}

func init() {
	rootCmd.AddCommand(layoutCmd)

	layoutModel.register(layoutCmd)

	layoutCmd.Flags().BoolVar(&layoutShowDiagram, "diagram", false, "Show ASCII plan and bar schedule of every opening")
	layoutCmd.Flags().StringVarP(&layoutExportFile, "output", "o", "", "Export plans to file (png, svg, pdf); the opening id is appended to the name")
}

func runLayout(cmd *cobra.Command, args []string) error {
	logger := loggerFromContext(cmd.Context())
	prog := newProgress(logger)

	m, refs, err := layoutModel.load()
	if err != nil {
		return err
	}
	if len(refs) == 0 {
		printWarning("no openings selected in %s", layoutModel.path)
		return nil
	}

	store, release, err := openStore()
	if err != nil {
		return err
	}
	defer release()

	rec, found, err := store.Load(m.Title)
	if err != nil {
		return err
	}
	if !found {
		logger.Warn("no settings stored for model, using defaults", "title", m.Title)
	}
	params, err := rec.Parameters(m.Catalog())
	if err != nil {
		return err
	}

	batch := &emit.Batch{
		Provider:       m,
		Params:         params,
		CoverFromModel: rec.CoverFromModel,
		Logger:         logger,
	}
	doc := emit.NewDocument()
	res, err := batch.Run(cmd.Context(), doc, refs)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Framed %d openings", len(res.Holes)))

	printHeader("OPENING FRAMING - " + strings.ToUpper(m.Title))
	printParameters(params, rec.CoverFromModel)

	printSection("OPENINGS:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Opening\tHost\tType\tSize (mm)\tThickness\tCovers\tBars\n")
	for _, h := range res.Holes {
		f := h.Frame
		fmt.Fprintf(w, "  %s\t%s\t%s\t%.0f x %.0f\t%.0f mm\t%.0f / %.0f\t%d\n",
			f.Opening(), f.Host(), f.HostType(), f.Length(), f.Width(), f.Thickness(),
			h.Params.UpCover, h.Params.DownCover, h.BarCount())
	}
	w.Flush()
	fmt.Println()

	printSuccess("%d bars placed in %d sets around %d openings", doc.BarCount(), len(doc.Bars()), len(res.Holes))
	fmt.Println()

	for _, h := range res.Holes {
		if layoutShowDiagram {
			fmt.Println(diagram.DrawASCIIPlan(diagram.NewPlan(h.Frame, h.Specs)))
			fmt.Println(diagram.Summary(h.Frame, h.Specs))
		}
		if layoutExportFile != "" {
			name := planFile(layoutExportFile, string(h.Frame.Opening()), len(res.Holes))
			if err := diagram.ExportPlan(diagram.NewPlan(h.Frame, h.Specs), name); err != nil {
				return err
			}
			printFile(name)
		}
	}
	return nil
}

func printParameters(p framing.Parameters, coverFromModel bool) {
	printSection("FRAMING PARAMETERS:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Long bars:\t%s, %d per side @ %.0f mm, anchorage %.0f mm\n",
		p.LongBar, p.LongCount, p.LongStep, p.LongAnchorage)
	fmt.Fprintf(w, "  Transverse bars:\t%s, %d per side @ %.0f mm, anchorage %.0f mm\n",
		p.TransverseBar, p.TransverseCount, p.TransverseStep, p.TransverseAnchorage)
	fmt.Fprintf(w, "  Bent bars:\t%s @ %.0f mm, legs %.0f mm\n", p.BendBar, p.BendStep, p.BendLength)
	fmt.Fprintf(w, "  Back-bar diameter:\t%.0f mm\n", p.BackDiameter)
	if coverFromModel {
		fmt.Fprintf(w, "  Covers:\tfrom model (fallback %.0f / %.0f mm)\n", p.UpCover, p.DownCover)
	} else {
		fmt.Fprintf(w, "  Covers:\t%.0f / %.0f mm\n", p.UpCover, p.DownCover)
	}
	fmt.Fprintf(w, "  Edge offset:\t%.0f mm\n", p.Offset)
	w.Flush()
	fmt.Println()
}

// planFile names the plan of one opening. With several openings the id
// goes before the extension: plan.png -> plan_H1.png.
func planFile(base, opening string, n int) string {
	if n <= 1 {
		return base
	}
	ext := filepath.Ext(base)
	safe := strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(opening)
	return strings.TrimSuffix(base, ext) + "_" + safe + ext
}
