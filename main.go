// i18ncheck checks translation catalogs for missing, invalid, unused and
// undefined keys in ICU, i18next, react-intl and next-intl projects.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/minios-linux/i18ncheck/catalog"
	"github.com/minios-linux/i18ncheck/check"
	"github.com/minios-linux/i18ncheck/config"
	"github.com/minios-linux/i18ncheck/discover"
	"github.com/minios-linux/i18ncheck/extract"
	"github.com/minios-linux/i18ncheck/i18n"
	"github.com/minios-linux/i18ncheck/langmeta"
	"github.com/minios-linux/i18ncheck/report"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
	colorGray   = "\033[0;90m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// useColor enables colors in report output on stdout.
var useColor bool

func paint(color, s string) string {
	if !useColor {
		return s
	}
	return color + s + colorReset
}

func stdoutIsTerminal() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	info, err := os.Stdout.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

// errFindings makes the process exit with status 1 without printing an
// error; the findings were already reported.
var errFindings = errors.New("translation check failed")

// ---------------------------------------------------------------------------
// Global flag
// ---------------------------------------------------------------------------

var rootDir string

// ---------------------------------------------------------------------------
// Root command (runs the checks)
// ---------------------------------------------------------------------------

type checkArgs struct {
	root               string
	source             string
	locales            []string
	format             string
	only               []string
	check              []string
	reporter           string
	exclude            []string
	ignore             []string
	unused             []string
	componentFunctions []string
	goKeywords         []string
	workers            int
}

// addCatalogFlags registers the flags selecting the catalogs to read.
func addCatalogFlags(fs *pflag.FlagSet, a *checkArgs) {
	fs.StringVarP(&a.source, "source", "s", "", "Source locale, i.e. en-US")
	fs.StringSliceVarP(&a.locales, "locales", "l", nil, "Locale folder(s), file(s) or glob pattern(s), i.e. translations/")
	fs.StringVarP(&a.format, "format", "f", "", "Translation format: icu, i18next, react-intl, next-intl (default icu)")
	fs.StringSliceVarP(&a.exclude, "exclude", "e", nil, "File(s) and/or folder(s) excluded from the check")
}

func newRootCmd() *cobra.Command {
	var a checkArgs

	root := &cobra.Command{
		Use:   "i18ncheck",
		Short: "Validate translation catalogs against a source locale",
		Long: `i18ncheck validates translation catalogs against a source locale.

Finds keys missing from target locales, translations whose placeholders,
tags or plural branches differ from the source message, and, when source
code paths are given with --unused, catalog keys the code never uses and
keys the code uses that no catalog defines.

Supported formats: icu (default), i18next, react-intl, next-intl.
Catalogs may be JSON, Flutter ARB, YAML or TOML.

Examples:
  # Check all locales in translations/ against en-US
  i18ncheck -s en-US -l translations/

  # i18next catalogs, also looking for unused and undefined keys
  i18ncheck -s en -l public/locales -f i18next -u src

  # Only report missing keys, as a per-file summary
  i18ncheck -s en-US -l translations/ -o missingKeys -r summary`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.root = rootDir
			if err := applyConfig(cmd.Flags(), afero.NewOsFs(), &a); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runCheck(ctx, afero.NewOsFs(), cmd.OutOrStdout(), a)
		},
	}

	// Global persistent flag, inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory (location of "+config.FileName+")")

	addCatalogFlags(root.Flags(), &a)
	root.Flags().StringSliceVarP(&a.only, "only", "o", nil, "Checks to run: missingKeys, invalidKeys, unused, undefined")
	root.Flags().StringSliceVarP(&a.check, "check", "c", nil, "Deprecated, use --only")
	_ = root.Flags().MarkHidden("check")
	root.Flags().StringVarP(&a.reporter, "reporter", "r", "standard", "Output style: standard, summary")
	root.Flags().StringSliceVarP(&a.ignore, "ignore", "i", nil, "Key(s) or key pattern(s) to ignore, i.e. some.namespace.*")
	root.Flags().StringSliceVarP(&a.unused, "unused", "u", nil, "Source code path(s) to check for unused and undefined keys")
	root.Flags().StringSliceVar(&a.componentFunctions, "parser-component-functions", nil, "Extra JSX components handled like <Trans>")
	root.Flags().StringSliceVar(&a.goKeywords, "go-keywords", nil, "Go translation functions in xgettext --keyword syntax (default T,Tr,N:1,2)")
	root.Flags().IntVar(&a.workers, "workers", runtime.NumCPU(), "Source files parsed in parallel")

	_ = root.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return check.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = root.RegisterFlagCompletionFunc("reporter", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return report.Names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = root.RegisterFlagCompletionFunc("only", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(check.AllChecks))
		for i, c := range check.AllChecks {
			names[i] = string(c)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	useColor = stdoutIsTerminal()

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFindings) {
			logError("%v", err)
		}
		os.Exit(1)
	}
}

// applyConfig fills every flag not set on the command line from
// .i18ncheck.yaml in a.root, if that file exists.
func applyConfig(flags *pflag.FlagSet, fsys afero.Fs, a *checkArgs) error {
	cfg, err := config.Load(fsys, a.root)
	if err != nil || cfg == nil {
		return err
	}

	setString := func(name string, dst *string, v string) {
		if v != "" && flags.Lookup(name) != nil && !flags.Changed(name) {
			*dst = v
		}
	}
	setSlice := func(name string, dst *[]string, v []string) {
		if len(v) > 0 && flags.Lookup(name) != nil && !flags.Changed(name) {
			*dst = v
		}
	}

	setString("source", &a.source, cfg.Source)
	setString("format", &a.format, cfg.Format)
	setString("reporter", &a.reporter, cfg.Reporter)
	setSlice("locales", &a.locales, cfg.Locales)
	setSlice("only", &a.only, cfg.Only)
	setSlice("exclude", &a.exclude, cfg.Exclude)
	setSlice("ignore", &a.ignore, cfg.Ignore)
	setSlice("unused", &a.unused, cfg.Unused)
	setSlice("parser-component-functions", &a.componentFunctions, cfg.ComponentFunctions)
	setSlice("go-keywords", &a.goKeywords, cfg.GoKeywords)
	if cfg.Workers > 0 && flags.Lookup("workers") != nil && !flags.Changed("workers") {
		a.workers = cfg.Workers
	}
	return nil
}

// resolveChecks turns the --only and deprecated --check values into the
// checks to run. Without an explicit selection the default checks run,
// plus unused and undefined when source paths are given.
func resolveChecks(a checkArgs) []check.Check {
	only := a.only
	if len(a.check) > 0 {
		logWarning("%s", i18n.T("The --check option has been deprecated, use the --only option instead."))
		if len(only) == 0 {
			only = a.check
		}
	}

	checks, unknown := check.ParseChecks(only)
	for _, name := range unknown {
		logWarning(i18n.T("Unknown check %q ignored"), name)
	}
	if len(checks) > 0 {
		return checks
	}
	checks = slices.Clone(check.DefaultChecks)
	if len(a.unused) > 0 {
		checks = append(checks, check.UnusedKeys, check.UndefinedKeys)
	}
	return checks
}

func errNoSource() error {
	return errors.New(i18n.T("Source not found. Please provide a valid source locale, i.e. -s en-US"))
}

func errNoLocales() error {
	return errors.New(i18n.T("Locale file(s) not found. Please provide valid locale file(s), i.e. --locales translations/"))
}

// validationFailed wraps err in the user-facing validation error, adding
// the file, key and message of a parse failure.
func validationFailed(err error) error {
	msg := i18n.T("Can't validate translations. Check if the format is supported or specify the translation format i.e. -f i18next")
	var verr *check.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%s\n  %s: %s %q\n  %v", msg, verr.File, verr.Key, verr.Message, verr.Err)
	}
	return fmt.Errorf("%s\n  %w", msg, err)
}

// loadCatalogs validates the catalog flags, then finds and loads the
// catalogs.
func loadCatalogs(fsys afero.Fs, a checkArgs) (*discover.Catalogs, error) {
	if a.source == "" {
		return nil, errNoSource()
	}
	if len(a.locales) == 0 {
		if dirs := discover.Detect(fsys, a.root); len(dirs) > 0 {
			logInfo(i18n.T("Translation folders found: %s"), strings.Join(dirs, ", "))
		}
		return nil, errNoLocales()
	}

	files, err := discover.Files(fsys, a.locales, a.exclude)
	if err != nil {
		return nil, err
	}
	cats, err := discover.Load(fsys, files, a.source)
	if err != nil {
		return nil, err
	}
	if len(cats.Sources) == 0 {
		return nil, errNoSource()
	}
	for _, f := range cats.Unpaired {
		logWarning(i18n.T("No source file found for %s, skipping"), f)
	}
	return cats, nil
}

func runCheck(ctx context.Context, fsys afero.Fs, out io.Writer, a checkArgs) error {
	start := time.Now()

	format, err := check.ParseFormat(a.format)
	if err != nil {
		return err
	}
	rep, err := report.New(a.reporter)
	if err != nil {
		return err
	}
	ignore, err := check.NewMatcher(a.ignore)
	if err != nil {
		return err
	}

	cats, err := loadCatalogs(fsys, a)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, i18n.T("i18n translations checker"))
	fmt.Fprintln(out, paint(colorGray, fmt.Sprintf(i18n.T("Source: %s"), a.source)))
	if a.format != "" {
		fmt.Fprintln(out, paint(colorGray, fmt.Sprintf(i18n.T("Selected format is: %s"), format.Name)))
	}

	opts := check.Options{
		Format:             format,
		Checks:             resolveChecks(a),
		Ignore:             ignore,
		ComponentFunctions: a.componentFunctions,
		GoKeywords:         a.goKeywords,
	}

	if len(cats.Targets) == 0 {
		logWarning("%s", i18n.T("No target locale files found, skipping missing and invalid key checks"))
		opts.Checks = slices.DeleteFunc(slices.Clone(opts.Checks), func(c check.Check) bool {
			return c == check.MissingKeys || c == check.InvalidKeys
		})
	} else {
		locales := discover.Locales(cats.Targets)
		names := make([]string, len(locales))
		for i, code := range locales {
			names[i] = langmeta.Resolve(code).String()
		}
		if len(names) > 0 {
			logInfo(i18n.N("Checking %d locale: %s", "Checking %d locales: %s", len(names)), len(names), strings.Join(names, ", "))
		}
	}

	res, err := check.CheckTranslations(cats.Sources, cats.Targets, opts)
	if err != nil {
		return validationFailed(err)
	}
	printResult(out, rep, res.MissingKeys, i18n.T("Found missing keys!"), i18n.T("No missing keys found!"))
	printInvalid(out, rep, res.InvalidKeys)

	if opts.Has(check.UnusedKeys) || opts.Has(check.UndefinedKeys) {
		if err := runCodeChecks(ctx, fsys, out, rep, cats.Sources, opts, a); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, paint(colorGreen, fmt.Sprintf("\n"+i18n.T("Done in %.2fs."), time.Since(start).Seconds())))

	if len(res.MissingKeys) > 0 || len(res.InvalidKeys) > 0 {
		return errFindings
	}
	return nil
}

func runCodeChecks(ctx context.Context, fsys afero.Fs, out io.Writer, rep report.Reporter, sources []check.File, opts check.Options, a checkArgs) error {
	if len(a.unused) == 0 {
		logWarning("%s", i18n.T("Unused and undefined key checks need source code paths, i.e. -u src"))
		return nil
	}
	if !opts.Format.ExtractsKeys() {
		logWarning(i18n.T("Format %s does not support unused or undefined key detection"), opts.Format.Name)
		return nil
	}

	keys, files, err := check.CodeKeys(ctx, fsys, a.unused, opts, a.workers)
	if err != nil {
		return err
	}
	logInfo(i18n.T("Scanned %s"), extract.DescribeFiles(files))

	printResult(out, rep, check.CheckUnusedKeys(sources, keys, opts), i18n.T("Found unused keys!"), i18n.T("No unused keys found!"))
	printResult(out, rep, check.CheckUndefinedKeys(sources, keys, opts), i18n.T("Found undefined keys!"), i18n.T("No undefined keys found!"))
	return nil
}

// printResult prints a result section. A nil result was not requested and
// prints nothing.
func printResult(out io.Writer, rep report.Reporter, r check.Result, found, none string) {
	switch {
	case r == nil:
	case len(r) > 0:
		fmt.Fprintln(out, paint(colorRed, "\n"+found))
		fmt.Fprintln(out, paint(colorRed, rep.Result(r)))
	default:
		fmt.Fprintln(out, paint(colorGreen, "\n"+none))
	}
}

func printInvalid(out io.Writer, rep report.Reporter, r check.InvalidResult) {
	switch {
	case r == nil:
	case len(r) > 0:
		fmt.Fprintln(out, paint(colorRed, "\n"+i18n.T("Found invalid keys!")))
		fmt.Fprintln(out, paint(colorRed, rep.Invalid(r)))
	default:
		fmt.Fprintln(out, paint(colorGreen, "\n"+i18n.T("No invalid translations found!")))
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "i18ncheck version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// status (read-only: translation progress per target file)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	var a checkArgs

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show translation progress per locale file",
		Long: `Show every target catalog with its locale and the share of source keys
it translates. Uses the same catalog flags and config file as the check.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.root = rootDir
			fsys := afero.NewOsFs()
			if err := applyConfig(cmd.Flags(), fsys, &a); err != nil {
				return err
			}
			return runStatus(fsys, cmd.OutOrStdout(), a)
		},
	}
	addCatalogFlags(cmd.Flags(), &a)
	return cmd
}

func runStatus(fsys afero.Fs, out io.Writer, a checkArgs) error {
	format, err := check.ParseFormat(a.format)
	if err != nil {
		return err
	}
	cats, err := loadCatalogs(fsys, a)
	if err != nil {
		return err
	}
	if len(cats.Targets) == 0 {
		logWarning("%s", i18n.T("No target locale files found"))
		return nil
	}

	sources := make(map[string]check.File, len(cats.Sources))
	for _, s := range cats.Sources {
		sources[s.Name] = s
	}

	rows := make([][]string, 0, len(cats.Targets))
	complete := 0
	for _, t := range cats.Targets {
		src := sources[t.Reference]
		missing := check.FindMissing(src.Content, map[string]*catalog.Translation{t.Name: t.Content}, check.Options{Format: format})
		total := len(sourceKeys(src, format))
		percent := 100
		if total > 0 {
			percent = (total - len(missing[t.Name])) * 100 / total
		}
		if percent == 100 {
			complete++
		}
		rows = append(rows, []string{langCell(langmeta.Locate(t.Name)), t.Name, progressBar(percent, 20)})
	}

	fmt.Fprintln(out, report.FormatTable([][][]string{{{i18n.T("locale"), i18n.T("file"), i18n.T("progress")}}, rows}))
	logSuccess(i18n.N("%d of %d file fully translated", "%d of %d files fully translated", len(rows)), complete, len(rows))
	return nil
}

// sourceKeys returns the logical keys of a source catalog, folding plural
// suffixes when the format uses them.
func sourceKeys(src check.File, format check.Format) []string {
	if !format.PluralSuffixes {
		return src.Content.Keys()
	}
	missing := check.FindMissing(src.Content, map[string]*catalog.Translation{"": catalog.NewTranslation()}, check.Options{Format: format})
	return missing[""]
}

// langCell formats a locale code with its flag and English name.
func langCell(code string) string {
	if code == "" {
		return "?"
	}
	m := langmeta.Resolve(code)
	if m.Flag == "" {
		return m.String()
	}
	return m.Flag + " " + m.String()
}

// progressBar renders a colored bar of the given width followed by the
// percentage. Values are clamped to 0..100.
func progressBar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := percent * width / 100

	color := colorRed
	switch {
	case percent >= 100:
		color = colorGreen
	case percent >= 50:
		color = colorYellow
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return color + bar + colorReset + fmt.Sprintf(" %3d%%", percent)
}
