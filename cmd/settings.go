package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/holeframe/internal/errors"
	"github.com/alexiusacademia/holeframe/internal/host"
	"github.com/alexiusacademia/holeframe/internal/settings"
)

var (
	settingsTitle    string
	settingsModel    string
	settingsEncoding string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or edit the framing settings of a model",
	Long: `Framing settings are stored per model title, as a TOML file in the
settings directory (--settings) or as a row of a sqlite database (--db).

Subcommands:
  show  - Print the stored settings (or the defaults)
  init  - Write the defaults, selecting the model's bar types nearest Ø12 / Ø8
  set   - Change one or more settings: key=value ...

Keys:
  ` + strings.Join(settings.Keys(), "\n  "),
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsInit,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set key=value ...",
	Short: "Change settings",
	Example: `  holeframe settings set --model tower.json long_bar="Ø12 A500" long_count=2
  holeframe settings set --title "Tower A" cover_from_model=false up_cover=25`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSettingsSet,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsInitCmd, settingsSetCmd)

	settingsCmd.PersistentFlags().StringVarP(&settingsTitle, "title", "t", "", "Model title the settings belong to")
	settingsCmd.PersistentFlags().StringVarP(&settingsModel, "model", "m", "", "Model file to take the title and bar types from")
	settingsCmd.PersistentFlags().StringVar(&settingsEncoding, "encoding", "", "Model file encoding")
}

// settingsTarget resolves the title the settings belong to, and the
// model when one is given.
func settingsTarget() (string, *host.Model, error) {
	var m *host.Model
	if settingsModel != "" {
		var err error
		if m, err = host.LoadModel(settingsModel, settingsEncoding); err != nil {
			return "", nil, err
		}
	}
	title := settingsTitle
	if title == "" && m != nil {
		title = m.Title
	}
	if title == "" {
		return "", nil, errors.New(errors.ErrCodeInvalidInput, "either --title or --model is required")
	}
	return title, m, nil
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	title, m, err := settingsTarget()
	if err != nil {
		return err
	}
	store, release, err := openStore()
	if err != nil {
		return err
	}
	defer release()

	rec, found, err := store.Load(title)
	if err != nil {
		return err
	}

	printHeader("FRAMING SETTINGS - " + title)
	if !found {
		printWarning("no stored settings, showing defaults")
		fmt.Println()
	}
	for _, k := range settings.Keys() {
		v, _ := rec.Get(k)
		printKeyValue(k, v)
	}
	fmt.Println()

	if err := rec.Validate(); err != nil {
		printWarning("%v", err)
		return nil
	}
	if m != nil {
		if _, err := rec.Parameters(m.Catalog()); err != nil {
			printWarning("%v", err)
			return nil
		}
	}
	printSuccess("settings are complete")
	return nil
}

func runSettingsInit(cmd *cobra.Command, args []string) error {
	title, m, err := settingsTarget()
	if err != nil {
		return err
	}
	store, release, err := openStore()
	if err != nil {
		return err
	}
	defer release()

	rec := settings.Defaults()
	if m != nil {
		c := m.Catalog()
		if b, ok := c.Nearest(12); ok {
			rec.LongBar, rec.TransverseBar = b.Name, b.Name
		}
		if b, ok := c.Nearest(8); ok {
			rec.BendBar = b.Name
		}
	}
	if err := store.Save(title, rec); err != nil {
		return err
	}
	loggerFromContext(cmd.Context()).Debug("settings initialized", "title", title)
	printSuccess("default settings written for %q", title)
	if fs, ok := store.(settings.FileStore); ok {
		printFile(fs.Path(title))
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	title, _, err := settingsTarget()
	if err != nil {
		return err
	}
	store, release, err := openStore()
	if err != nil {
		return err
	}
	defer release()

	rec, _, err := store.Load(title)
	if err != nil {
		return err
	}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "expected key=value, got %q", arg)
		}
		if err := rec.Set(key, value); err != nil {
			return err
		}
	}
	if err := store.Save(title, rec); err != nil {
		return err
	}
	printSuccess("%d settings updated for %q", len(args), title)
	return nil
}
