package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ironsheep/dev-tools-mcp/internal/colors"
	"github.com/ironsheep/dev-tools-mcp/internal/generate"
	"github.com/ironsheep/dev-tools-mcp/internal/textutil"
	"github.com/ironsheep/dev-tools-mcp/internal/units"
)

func convertCmd(opts *rootOptions) *cobra.Command {
	var category string
	var strict bool

	cmd := &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a value between units",
		Example: `  dev-tools-mcp convert 5 miles kilometers
  dev-tools-mcp convert 98.6 Fahrenheit Celsius
  dev-tools-mcp convert -- -40 Celsius Fahrenheit`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, from, to := args[0], args[1], args[2]

			if category == "" {
				c, ok := units.CategoryOf(from)
				if !ok {
					return fmt.Errorf("%w: %q (pass --category)", units.ErrUnknownUnit, from)
				}
				category = string(c)
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			req := units.Request{Category: category, From: from, To: to, Value: value}
			res, err := req.Convert(strict || cfg.Units.Strict)
			if err != nil {
				return err
			}
			if !res.Valid {
				return errors.New(res.Text)
			}
			return opts.emit(cmd.OutOrStdout(), res.Text)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "unit category (inferred from <from> when omitted)")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject unknown units")
	return cmd
}

func unitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units [category]",
		Short: "List unit names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := units.Categories()
			if len(args) == 1 {
				c, err := units.ParseCategory(args[0])
				if err != nil {
					return err
				}
				cats = []units.Category{c}
			}

			w := cmd.OutOrStdout()
			for _, c := range cats {
				names, err := units.Units(c)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s: %s\n", c, strings.Join(names, ", "))
			}
			return nil
		},
	}
}

func colorCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "color <hex | r g b>",
		Short:   "Show a color as hex, rgb() and hsl()",
		Example: "  dev-tools-mcp color '#FF5733'\n  dev-tools-mcp color 255 87 51",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("want a hex color or three channels, got %d args", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseColorArgs(args)
			if err != nil {
				return err
			}
			d := c.Describe()

			w := cmd.OutOrStdout()
			swatch := lipgloss.NewStyle().
				Background(lipgloss.Color(d.Hex)).
				Width(8).
				Render("")
			label := lipgloss.NewStyle().Bold(true).Render(d.Hex)
			fmt.Fprintf(w, "%s %s\n", swatch, label)
			fmt.Fprintln(w, d.RGBString)
			return opts.emit(w, d.HSLString)
		},
	}
}

func parseColorArgs(args []string) (colors.Color, error) {
	if len(args) == 1 {
		return colors.ParseHex(args[0])
	}
	var ch [3]uint8
	for i, a := range args {
		n, err := strconv.ParseUint(a, 10, 8)
		if err != nil {
			return colors.Color{}, fmt.Errorf("channel %q must be 0-255", a)
		}
		ch[i] = uint8(n)
	}
	return colors.FromRGB(ch[0], ch[1], ch[2]), nil
}

func passwordCmd(opts *rootOptions) *cobra.Command {
	var length, count int
	var noUpper, noLower, noNumbers, noSymbols bool

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Generate random passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if length == 0 {
				cfg, err := opts.loadConfig()
				if err != nil {
					return err
				}
				length = cfg.Password.DefaultLength
			}
			if length < generate.MinPasswordLength || length > generate.MaxPasswordLength {
				return fmt.Errorf("length must be between %d and %d", generate.MinPasswordLength, generate.MaxPasswordLength)
			}

			p := generate.PasswordOptions{
				Length:    length,
				Uppercase: !noUpper,
				Lowercase: !noLower,
				Numbers:   !noNumbers,
				Symbols:   !noSymbols,
			}
			out := make([]string, 0, count)
			for i := 0; i < count; i++ {
				pw, err := generate.Password(p)
				if err != nil {
					return err
				}
				out = append(out, pw)
			}
			return opts.emit(cmd.OutOrStdout(), strings.Join(out, "\n"))
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", 0, "password length (default from config)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of passwords")
	cmd.Flags().BoolVar(&noUpper, "no-upper", false, "exclude A-Z")
	cmd.Flags().BoolVar(&noLower, "no-lower", false, "exclude a-z")
	cmd.Flags().BoolVar(&noNumbers, "no-numbers", false, "exclude 0-9")
	cmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "exclude symbols")
	return cmd
}

func markdownCmd(opts *rootOptions) *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "markdown [file]",
		Short: "Render Markdown to the terminal, or to HTML with --html",
		Long:  "Reads the file, or stdin when no file is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var src []byte
			var err error
			if len(args) == 1 {
				src, err = os.ReadFile(args[0])
			} else {
				src, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if html {
				out, err := textutil.RenderHTML(string(src))
				if err != nil {
					return err
				}
				return opts.emit(w, out)
			}

			if !isTerminal(w) {
				return opts.emit(w, string(src))
			}
			fmt.Fprint(w, renderMarkdown(string(src)))
			if opts.copy {
				return writeClipboard(string(src))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "print sanitized HTML instead")
	return cmd
}

// renderMarkdown styles md for the terminal, falling back to the source.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
