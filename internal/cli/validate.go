package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/cartstate/internal/catalog"
	"github.com/roach88/cartstate/internal/localize"
)

// ValidationError is one problem found in a catalog file.
type ValidationError struct {
	File    string `json:"file"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// CatalogSummary describes a catalog that loaded cleanly.
type CatalogSummary struct {
	File       string   `json:"file"`
	Currency   string   `json:"currency,omitempty"`
	Products   []string `json:"products"`
	Currencies []string `json:"currencies"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Catalogs []CatalogSummary  `json:"catalogs"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <catalog>",
		Short: "Validate product catalogs",
		Long: `Validate a CUE or YAML product catalog, or every catalog in a directory.

Checks the catalog schema, product and option consistency, and that every
currency code is a known ISO 4217 code.

Exit codes:
  0 - All catalogs valid
  1 - One or more catalogs invalid
  2 - Command error (path not found, no catalog files)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := LoadCatalogs(path, LoadModeCollectAll)
	if err != nil {
		code := errorCode(err)
		_ = formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitCommandError, "cannot load catalogs", err)
	}
	formatter.VerboseLog("Found %d catalog file(s) in %s", len(files), path)

	result := ValidationResult{Valid: true, Catalogs: []CatalogSummary{}}
	for _, f := range files {
		if f.Err != nil {
			result.Errors = append(result.Errors, ValidationError{
				File:    f.Path,
				Code:    errorCode(f.Err),
				Message: f.Err.Error(),
				Line:    errorLine(f.Err),
			})
			continue
		}
		formatter.VerboseLog("Validating %s: %d product(s)", f.Path, len(f.Catalog.Products))

		errs := checkCurrencies(f.Path, f.Catalog)
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			continue
		}
		result.Catalogs = append(result.Catalogs, CatalogSummary{
			File:       f.Path,
			Currency:   f.Catalog.Currency,
			Products:   f.Catalog.IDs(),
			Currencies: f.Catalog.Currencies(),
		})
	}

	if len(result.Errors) > 0 {
		result.Valid = false
		first := result.Errors[0]
		message := fmt.Sprintf("validation failed with %d error(s)", len(result.Errors))
		return formatter.Failure(ExitFailure, first.Code, message, result, func(w io.Writer) {
			fmt.Fprintln(w, "✗ Validation failed")
			fmt.Fprintln(w)
			for _, e := range result.Errors {
				if e.Line > 0 {
					fmt.Fprintf(w, "%s line %d\n", filepath.Base(e.File), e.Line)
				} else {
					fmt.Fprintln(w, filepath.Base(e.File))
				}
				fmt.Fprintf(w, "  %s: %s\n\n", e.Code, e.Message)
			}
		})
	}

	return formatter.Emit(result, func(w io.Writer) {
		for _, c := range result.Catalogs {
			fmt.Fprintf(w, "✓ %s: %d product(s), currencies %v\n", filepath.Base(c.File), len(c.Products), c.Currencies)
		}
		fmt.Fprintln(w, "✓ All catalogs valid")
	})
}

// checkCurrencies reports every currency code in c that is not ISO 4217.
func checkCurrencies(file string, c *catalog.Catalog) []ValidationError {
	var errs []ValidationError
	unknown := func(code, where string) {
		errs = append(errs, ValidationError{
			File:    file,
			Code:    ErrCodeUnknownCurrency,
			Message: fmt.Sprintf("unknown currency %q in %s", code, where),
		})
	}

	if c.Currency != "" && !localize.ValidCurrency(c.Currency) {
		unknown(c.Currency, "catalog currency")
	}
	for _, p := range c.Products {
		for _, code := range p.Prices.Currencies() {
			if !localize.ValidCurrency(code) {
				unknown(code, "prices of "+p.ID)
			}
		}
		for _, def := range p.Properties {
			for i, opt := range def.Options {
				cost, ok := opt.(catalog.CostOption)
				if !ok {
					continue
				}
				for _, code := range cost.AdditionalCost.Currencies() {
					if !localize.ValidCurrency(code) {
						unknown(code, fmt.Sprintf("%s.%s option %d", p.ID, def.Name, i))
					}
				}
			}
		}
	}
	return errs
}
