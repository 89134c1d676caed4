package cli

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/roach88/cartstate/internal/cart"
	"github.com/roach88/cartstate/internal/harness"
	"github.com/roach88/cartstate/internal/localize"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Currency string // overrides the scenario's starting currency
	Lang     string
}

// CartView is the rendered final cart of a scenario run.
type CartView struct {
	Scenario      string     `json:"scenario"`
	Pass          bool       `json:"pass"`
	Errors        []string   `json:"errors,omitempty"`
	Currency      string     `json:"currency"`
	Products      []LineView `json:"products"`
	Total         string     `json:"total"`
	Summary       string     `json:"summary"`
	Checkout      string     `json:"checkout"`
	MissingPrices []string   `json:"missing_prices,omitempty"`

	title string
	lines []lineText
	empty string
	total string
}

// LineView is one cart line in a CartView.
type LineView struct {
	Key        string          `json:"key"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	Properties cart.Properties `json:"properties"`
	LineTotal  string          `json:"line_total"`
}

// lineText holds the localized text rendering of one line.
type lineText struct {
	name     string
	quantity string
	props    []string
	price    string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Run a cart scenario and print the final cart",
		Long: `Run one YAML cart scenario against a fresh store and print the
resulting cart, its total, summary and checkout label.

Scenario expect clauses and assertions are checked; a failing scenario
exits with code 1.

Example:
  cart run ./scenarios/merge_quantities.yaml
  cart run ./scenarios/catalog_select.yaml --currency EUR --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Currency, "currency", "", "starting currency (overrides the scenario)")
	cmd.Flags().StringVar(&opts.Lang, "lang", "en", "language for labels and numbers")

	return cmd
}

func runScenarioFile(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	if opts.Currency != "" && !localize.ValidCurrency(opts.Currency) {
		message := fmt.Sprintf("unknown currency %q", opts.Currency)
		_ = formatter.Error(ErrCodeUnknownCurrency, message, nil)
		return NewExitError(ExitCommandError, message)
	}
	l10n, err := localize.New(opts.Lang, localize.WithLogger(logger))
	if err != nil {
		_ = formatter.Error(ErrCodeBadArgument, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid language", err)
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	if opts.Currency != "" {
		scenario.Currency = opts.Currency
	}

	logger.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Flow))
	result, err := harness.Run(scenario, harness.WithLogger(logger))
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	view := renderCart(l10n, scenario.Name, result)
	if !result.Pass {
		message := fmt.Sprintf("scenario %s failed with %d error(s)", scenario.Name, len(result.Errors))
		return formatter.Failure(ExitFailure, ErrCodeScenarioFailed, message, view, func(w io.Writer) {
			writeCart(w, view)
			fmt.Fprintf(w, "\n✗ %s\n", scenario.Name)
			for _, e := range result.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		})
	}
	return formatter.Emit(view, func(w io.Writer) { writeCart(w, view) })
}

// renderCart builds the view of result's final cart with l10n.
func renderCart(l10n *localize.Localizer, name string, result *harness.Result) CartView {
	s := result.State
	code := s.Currency()
	msgs := l10n.Scope(localize.ComponentCart)
	symbol := l10n.Symbol(localize.ComponentCart, code)
	total := cart.Total(s)

	view := CartView{
		Scenario:      name,
		Pass:          result.Pass,
		Errors:        result.Errors,
		Currency:      code,
		Products:      []LineView{},
		Total:         total.String(),
		Summary:       cart.Summary(s),
		MissingPrices: cart.MissingPrices(s),
		Checkout: l10n.Format(localize.ComponentCheckout, "checkoutTotal", localize.Params{
			"currency": l10n.Symbol(localize.ComponentCheckout, code),
			"total":    l10n.Amount(total, code),
		}),
		title: msgs.Format("shoppingCartTitle", nil),
		empty: msgs.Format("emptyCart", nil),
		total: msgs.Format("totalLabel", nil) + " " + msgs.Format("totalValue", localize.Params{
			"currency": symbol,
			"total":    l10n.Amount(total, code),
		}),
	}

	for _, item := range s.Items() {
		e := item.Entry
		line := cart.LineTotal(e, code)
		props := e.Properties
		if props == nil {
			props = cart.Properties{}
		}
		view.Products = append(view.Products, LineView{
			Key:        item.Key,
			Name:       e.Name,
			Quantity:   e.Quantity,
			Properties: props,
			LineTotal:  line.String(),
		})

		text := lineText{
			name:     msgs.Format("productName", localize.Params{"name": e.Name}),
			quantity: msgs.Format("quantityLabel", nil) + " " + l10n.Number(decimal.NewFromInt(e.Quantity)),
			price: msgs.Format("priceLabel", nil) + " " + msgs.Format("priceValue", localize.Params{
				"currency": symbol,
				"price":    l10n.Money(line, code),
			}),
		}
		for _, prop := range e.VisibleProperties() {
			text.props = append(text.props, msgs.Format("productPropertyLabel", localize.Params{"name": prop.Name})+
				" "+msgs.Format("productPropertyValue", localize.Params{"value": prop.Value}))
		}
		view.lines = append(view.lines, text)
	}
	return view
}

// writeCart prints the text rendering of view.
func writeCart(w io.Writer, view CartView) {
	fmt.Fprintln(w, view.title)
	if len(view.lines) == 0 {
		fmt.Fprintln(w, view.empty)
	}
	for _, line := range view.lines {
		fmt.Fprintf(w, "%s\n", line.name)
		fmt.Fprintf(w, "  %s\n", line.quantity)
		for _, prop := range line.props {
			fmt.Fprintf(w, "  %s\n", prop)
		}
		fmt.Fprintf(w, "  %s\n", line.price)
	}
	fmt.Fprintln(w, view.total)
	fmt.Fprintln(w, view.Checkout)
	fmt.Fprintf(w, "Summary: %s\n", view.Summary)
}
