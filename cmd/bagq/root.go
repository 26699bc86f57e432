package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/hasbyte1/go-parameterbag/bag"
)

var errNoMatch = errors.New("no entry matches")

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "bagq",
		Usage: "Query JSON, YAML, TOML or query-string documents as parameter bags",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: "-", Usage: "input file, - for stdin"},
			&cli.StringFlag{Name: "format", Usage: "input format: json, yaml, toml or query (default: from extension)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log debug output"},
		},
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "print the value at a (dotted) key",
				ArgsUsage: "KEY",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "as", Value: "raw", Usage: "coercion: raw, string, int, float, bool, alpha, alnum or digits"},
					&cli.StringFlag{Name: "default", Aliases: []string{"d"}, Usage: "value used when the key is missing"},
				},
				Action: runGet,
			},
			{
				Name:  "first",
				Usage: "print the first value matching an expression over key and value",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "where", Aliases: []string{"w"}, Value: "true", Usage: "expr-lang predicate"},
				},
				Action: runFirst,
			},
			{
				Name:      "index-by",
				Usage:     "re-key the top-level items by one of their fields",
				ArgsUsage: "KEY",
				Action:    runIndexBy,
			},
			{
				Name:  "keys",
				Usage: "list top-level keys",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dot", Usage: "flatten nested keys and print values"},
				},
				Action: runKeys,
			},
			{
				Name:   "checksum",
				Usage:  "print the BLAKE2b-256 checksum of the document",
				Action: runChecksum,
			},
		},
	}
}

func newLogger(cmd *cli.Command) *log.Logger {
	logger := log.NewWithOptions(cmd.Root().ErrWriter, log.Options{Prefix: "bagq"})
	if cmd.Bool("verbose") {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func loadInput(cmd *cli.Command) (*bag.Bag, error) {
	path, format := cmd.String("file"), cmd.String("format")
	b, err := load(path, format, cmd.Root().Reader)
	if err != nil {
		return nil, err
	}
	newLogger(cmd).Debug("loaded document", "file", path, "format", formatFor(path, format), "keys", b.Count())
	return b, nil
}

func keyArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("%s: expected exactly one KEY argument", cmd.Name)
	}
	return cmd.Args().First(), nil
}

func runGet(ctx context.Context, cmd *cli.Command) error {
	key, err := keyArg(cmd)
	if err != nil {
		return err
	}
	b, err := loadInput(cmd)
	if err != nil {
		return err
	}

	def, hasDef := cmd.String("default"), cmd.IsSet("default")
	var out any
	switch as := cmd.String("as"); as {
	case "raw":
		v, ok := b.Lookup(key)
		switch {
		case ok:
			out = v
		case hasDef:
			out = def
		default:
			return fmt.Errorf("%w: %q", bag.ErrKeyNotFound, key)
		}
	case "string":
		out = b.GetString(key, def)
	case "alpha":
		out = b.GetAlpha(key, def)
	case "alnum":
		out = b.GetAlnum(key, def)
	case "digits":
		out = b.GetDigits(key, def)
	case "int":
		n, err := parseDefault(hasDef, def, strconv.Atoi)
		if err != nil {
			return err
		}
		out = b.GetInt(key, n)
	case "float":
		f, err := parseDefault(hasDef, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
		if err != nil {
			return err
		}
		out = b.GetFloat(key, f)
	case "bool":
		v, err := parseDefault(hasDef, def, strconv.ParseBool)
		if err != nil {
			return err
		}
		out = b.GetBoolean(key, v)
	default:
		return fmt.Errorf("unknown coercion %q", as)
	}
	return printValue(cmd.Root().Writer, out)
}

func parseDefault[T any](set bool, s string, parse func(string) (T, error)) (T, error) {
	var zero T
	if !set {
		return zero, nil
	}
	v, err := parse(s)
	if err != nil {
		return zero, fmt.Errorf("invalid --default %q: %w", s, err)
	}
	return v, nil
}

func runFirst(ctx context.Context, cmd *cli.Command) error {
	b, err := loadInput(cmd)
	if err != nil {
		return err
	}
	v, err := b.FirstWhere(cmd.String("where"), errNoMatch)
	if err != nil {
		return err
	}
	if v == errNoMatch {
		return errNoMatch
	}
	return printValue(cmd.Root().Writer, v)
}

func runIndexBy(ctx context.Context, cmd *cli.Command) error {
	key, err := keyArg(cmd)
	if err != nil {
		return err
	}
	b, err := loadInput(cmd)
	if err != nil {
		return err
	}
	if _, err := b.IndexBy(key); err != nil {
		return err
	}
	return printValue(cmd.Root().Writer, b)
}

func runKeys(ctx context.Context, cmd *cli.Command) error {
	b, err := loadInput(cmd)
	if err != nil {
		return err
	}
	w := cmd.Root().Writer
	keyColor := color.New(color.FgCyan).SprintFunc()

	if !cmd.Bool("dot") {
		for _, k := range b.Keys() {
			fmt.Fprintln(w, keyColor(k))
		}
		return nil
	}
	for k, v := range b.Dot().Items() {
		s, err := formatValue(v)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s = %s\n", keyColor(k), s)
	}
	return nil
}

func runChecksum(ctx context.Context, cmd *cli.Command) error {
	b, err := loadInput(cmd)
	if err != nil {
		return err
	}
	sum, err := b.Checksum()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, sum)
	return nil
}

func printValue(w io.Writer, v any) error {
	s, err := formatValue(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

// formatValue renders strings as-is and everything else as JSON.
func formatValue(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
