// Command portalctl exercises the billing rules from the shell: amount
// normalization, Vietnamese words and payment status resolution.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"tenant-portal-svc/internal/billing"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "portalctl",
		Usage: "tenant portal billing helpers",
		Commands: []*cli.Command{
			wordsCommand(),
			normalizeCommand(),
			statusCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func wordsCommand() *cli.Command {
	return &cli.Command{
		Name:      "words",
		Usage:     "spell an amount in Vietnamese",
		ArgsUsage: "<amount>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "currency", Aliases: []string{"c"}, Usage: "append đồng"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("words needs exactly one amount", 2)
			}
			amount := billing.NormalizeAmount(c.Args().First())
			if !amount.Valid {
				return cli.Exit(fmt.Sprintf("cannot read %q as an amount", c.Args().First()), 1)
			}
			if c.Bool("currency") {
				fmt.Fprintln(c.App.Writer, billing.CurrencyText(amount.Value))
				return nil
			}
			fmt.Fprintln(c.App.Writer, billing.ToWords(amount.Value))
			return nil
		},
	}
}

func normalizeCommand() *cli.Command {
	return &cli.Command{
		Name:      "normalize",
		Usage:     "read a loosely formatted amount",
		ArgsUsage: "<value>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("normalize needs exactly one value", 2)
			}
			amount := billing.NormalizeAmount(c.Args().First())
			if !amount.Valid {
				fmt.Fprintln(c.App.Writer, "absent")
				return nil
			}
			fmt.Fprintf(c.App.Writer, "%d\t%s\n", amount.Value, billing.FormatVND(amount.Value))
			return nil
		},
	}
}

func statusCommand() *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "resolve the payment status of one billing period",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "status", Usage: "raw status flag, e.g. Y, 1, true"},
			&cli.StringFlag{Name: "paid", Usage: "paid amount"},
			&cli.StringFlag{Name: "total", Usage: "billed total"},
			&cli.BoolFlag{Name: "zero-means-paid", Usage: "treat 0 as a paid flag"},
		},
		Action: func(c *cli.Context) error {
			resolver := billing.StatusResolver{ZeroMeansPaid: c.Bool("zero-means-paid")}

			var raw any
			if c.IsSet("status") {
				raw = c.String("status")
			}

			res := resolver.Resolve(billing.Evidence{
				RawStatus: raw,
				Paid:      optionalAmount(c, "paid"),
				Total:     optionalAmount(c, "total"),
			})
			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, string(out))
			return nil
		},
	}
}

func optionalAmount(c *cli.Context, name string) billing.Amount {
	if !c.IsSet(name) {
		return billing.Amount{}
	}
	return billing.NormalizeAmount(c.String(name))
}
