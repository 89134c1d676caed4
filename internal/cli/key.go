package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cartstate/internal/cart"
	"github.com/roach88/cartstate/internal/ir"
)

// KeyResult is the JSON payload of the key command.
type KeyResult struct {
	Key        string          `json:"key"`
	ID         string          `json:"id"`
	Properties cart.Properties `json:"properties"`
}

// NewKeyCommand creates the key command.
func NewKeyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "key <id> [name=value...]",
		Short: "Print the cart key for a product variant",
		Long: `Print the cart key for a product id and its selected properties.

Properties are applied in argument order. Values follow YAML scalar rules,
so 31 is an integer, 35.5 a decimal, and anything else a string.

Example:
  cart key ipad-case color=red
  cart key the-west-end color=gold size=33 --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKey(rootOpts, args[0], args[1:], cmd)
		},
	}
}

func runKey(opts *RootOptions, id string, pairs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	props, err := parseProperties(pairs)
	if err != nil {
		_ = formatter.Error(ErrCodeBadArgument, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid property", err)
	}

	key := cart.GenerateKey(id, props)
	formatter.VerboseLog("id=%s properties=%v", id, props.Names())

	if props == nil {
		props = cart.Properties{}
	}
	return formatter.Emit(KeyResult{Key: key, ID: id, Properties: props}, func(w io.Writer) {
		fmt.Fprintln(w, key)
	})
}

// parseProperties turns name=value arguments into ordered properties.
func parseProperties(pairs []string) (cart.Properties, error) {
	var props cart.Properties
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("property %q: expected name=value", pair)
		}
		value, err := parseValue(raw)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		props = props.With(name, value)
	}
	return props, nil
}

func parseValue(raw string) (ir.Scalar, error) {
	if raw == "" {
		return ir.String(""), nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil || len(doc.Content) == 0 {
		return ir.String(raw), nil
	}
	value, err := ir.ScalarFromNode(doc.Content[0])
	if err != nil {
		// Booleans, nulls and collections are kept as the literal text.
		return ir.String(raw), nil
	}
	return value, nil
}
