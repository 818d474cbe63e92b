package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shopfront-go/internal/client/catalog"
)

// CatalogCommands returns the catalog browsing commands.
func CatalogCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:    "categories",
			Aliases: []string{"cats"},
			Usage:   "List product categories, largest first",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "top",
					Usage: "only show the first N categories (0 = all)",
				},
			},
			Action: listCategories,
		},
		{
			Name:      "products",
			Usage:     "List products in a category",
			ArgsUsage: "CATEGORY",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "skip",
					Usage: "number of products to skip",
				},
				&cli.IntFlag{
					Name:  "limit",
					Usage: fmt.Sprintf("page size (max %d)", catalog.MaxPageSize),
					Value: 20,
				},
			},
			Action: listProducts,
		},
		{
			Name:  "nav",
			Usage: "Show the navigation bar for the current page",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "max",
					Usage: "categories shown in the bar",
					Value: catalog.DefaultNavCategories,
				},
			},
			Action: showNav,
		},
	}
}

func listCategories(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}

	cats, err := catalog.NewService(env.API).Categories(c.Context)
	if err != nil {
		return err
	}
	if top := c.Int("top"); top > 0 && top < len(cats) {
		cats = cats[:top]
	}
	return env.Print(cats)
}

func listProducts(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return errors.New("usage: products CATEGORY (quote names with spaces)")
	}

	page, err := catalog.NewService(env.API).Products(c.Context, c.Args().First(), c.Int("skip"), c.Int("limit"))
	if err != nil {
		return err
	}

	if env.Structured() {
		return env.Print(page)
	}
	if err := env.Print(page.Products); err != nil {
		return err
	}
	if len(page.Products) > 0 {
		fmt.Fprintf(env.Out, "\n%d-%d of %d in %s\n", page.Skip+1, page.Skip+len(page.Products), page.Total, page.Category)
	} else {
		fmt.Fprintf(env.Out, "no products in %s\n", c.Args().First())
	}
	return nil
}

func showNav(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}

	builder := catalog.NewNavBuilder(catalog.NewService(env.API), env.Tokens, c.Int("max"))
	bar, err := builder.Build(c.Context, env.Location.Path())
	if bar == nil {
		return err
	}
	if err != nil {
		// The bar still renders without categories.
		env.Log.Warn("navigation categories unavailable", "error", err)
	}

	if env.Structured() {
		return env.Print(bar)
	}
	return bar.Render(env.Out)
}
