package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shopfront-go/internal/client/cart"
	"github.com/yndnr/shopfront-go/internal/client/orders"
	"github.com/yndnr/shopfront-go/internal/client/search"
	"github.com/yndnr/shopfront-go/internal/client/wishlist"
)

// ShopCommands returns the cart, wishlist, order and search commands.
func ShopCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "cart",
			Usage: "Show or change the shopping cart",
			Subcommands: []*cli.Command{
				{Name: "show", Usage: "List cart lines and the total", Action: showCart},
				{
					Name:      "add",
					Usage:     "Add an article to the cart",
					ArgsUsage: "ARTICLE",
					Flags: []cli.Flag{
						&cli.IntFlag{Name: "qty", Aliases: []string{"q"}, Usage: "units to add", Value: 1},
					},
					Action: addToCart,
				},
				{Name: "remove", Usage: "Remove an article from the cart", ArgsUsage: "ARTICLE", Action: removeFromCart},
				{Name: "clear", Usage: "Empty the cart", Action: clearCart},
			},
			Action: showCart,
		},
		{
			Name:  "wishlist",
			Usage: "Show or change the wishlist",
			Subcommands: []*cli.Command{
				{Name: "show", Usage: "List saved articles", Action: showWishlist},
				{Name: "add", Usage: "Save an article", ArgsUsage: "ARTICLE", Action: addToWishlist},
				{Name: "remove", Usage: "Drop a saved article", ArgsUsage: "ARTICLE", Action: removeFromWishlist},
			},
			Action: showWishlist,
		},
		{
			Name:  "orders",
			Usage: "List and place orders",
			Subcommands: []*cli.Command{
				{Name: "list", Usage: "List past orders", Action: listOrders},
				{Name: "show", Usage: "Show one order with its lines", ArgsUsage: "ID", Action: showOrder},
				{
					Name:  "checkout",
					Usage: "Order everything in the cart",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "address", Usage: "delivery address", Required: true},
						&cli.StringFlag{Name: "payment", Usage: "payment method", Required: true},
					},
					Action: checkout,
				},
				{
					Name:      "buy",
					Usage:     "Order a single article now, bypassing the cart",
					ArgsUsage: "ARTICLE",
					Flags: []cli.Flag{
						&cli.IntFlag{Name: "qty", Aliases: []string{"q"}, Usage: "units to order", Value: 1},
						&cli.StringFlag{Name: "client-order-id", Usage: "idempotency key (default: a new ULID)"},
					},
					Action: buyNow,
				},
			},
			Action: listOrders,
		},
		{
			Name:      "search",
			Usage:     "Search products; plain language like \"red summer dress\" works",
			ArgsUsage: "QUERY...",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "limit",
					Usage: fmt.Sprintf("maximum results (max %d)", search.MaxLimit),
					Value: 20,
				},
				&cli.BoolFlag{Name: "basic", Usage: "keyword search only"},
			},
			Action: runSearch,
		},
		{
			Name:      "suggest",
			Usage:     "Suggest product names for a prefix",
			ArgsUsage: "PREFIX",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "limit", Usage: fmt.Sprintf("maximum suggestions (max %d)", search.MaxSuggestions)},
			},
			Action: suggest,
		},
	}
}

func articleArg(c *cli.Context, usage string) (string, error) {
	if c.NArg() != 1 {
		return "", errors.New("usage: " + usage)
	}
	return c.Args().First(), nil
}

func showCart(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}

	ct, err := cart.NewService(env.API).Get(c.Context)
	if err != nil {
		return err
	}
	if env.Structured() {
		return env.Print(ct)
	}
	if len(ct.Items) == 0 {
		fmt.Fprintln(env.Out, "cart is empty")
		return nil
	}
	if err := env.Print(ct.Items); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "\ntotal %.2f\n", ct.Total)
	return nil
}

func addToCart(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	article, err := articleArg(c, "cart add [--qty N] ARTICLE")
	if err != nil {
		return err
	}

	res, err := cart.NewService(env.API).Add(c.Context, article, c.Int("qty"))
	if err != nil {
		return err
	}
	if env.Structured() {
		return env.Print(res)
	}
	fmt.Fprintf(env.Out, "%s (%s now x%d)\n", res.Message, article, res.Quantity)
	return nil
}

func removeFromCart(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	article, err := articleArg(c, "cart remove ARTICLE")
	if err != nil {
		return err
	}

	if err := cart.NewService(env.API).Remove(c.Context, article); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "removed %s from cart\n", article)
	return nil
}

func clearCart(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}

	n, err := cart.NewService(env.API).Clear(c.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "cleared %d item(s)\n", n)
	return nil
}

func showWishlist(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}

	items, err := wishlist.NewService(env.API).Items(c.Context)
	if err != nil {
		return err
	}
	if len(items) == 0 && !env.Structured() {
		fmt.Fprintln(env.Out, "wishlist is empty")
		return nil
	}
	return env.Print(items)
}

func addToWishlist(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	article, err := articleArg(c, "wishlist add ARTICLE")
	if err != nil {
		return err
	}

	res, err := wishlist.NewService(env.API).Add(c.Context, article)
	if err != nil {
		return err
	}
	if env.Structured() {
		return env.Print(res)
	}
	fmt.Fprintln(env.Out, res.Message)
	return nil
}

func removeFromWishlist(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	article, err := articleArg(c, "wishlist remove ARTICLE")
	if err != nil {
		return err
	}

	if err := wishlist.NewService(env.API).Remove(c.Context, article); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "removed %s from wishlist\n", article)
	return nil
}

func listOrders(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}

	list, err := orders.NewService(env.API).List(c.Context)
	if err != nil {
		return err
	}
	if len(list) == 0 && !env.Structured() {
		fmt.Fprintln(env.Out, "no orders yet")
		return nil
	}
	return env.Print(list)
}

func showOrder(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return errors.New("usage: orders show ID")
	}
	id, err := strconv.Atoi(c.Args().First())
	if err != nil {
		return fmt.Errorf("invalid order id %q", c.Args().First())
	}

	o, err := orders.NewService(env.API).Get(c.Context, id)
	if err != nil {
		return err
	}
	if env.Structured() {
		return env.Print(o)
	}
	fmt.Fprintf(env.Out, "order %d  %s  %s/%s  total %.2f\n\n", o.ID, o.CreatedAt, o.PaymentMethod, o.PaymentStatus, o.TotalAmount)
	return env.Print(o.Items)
}

func checkout(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}

	r, err := orders.NewService(env.API).Checkout(c.Context, orders.CheckoutRequest{
		Address:       c.String("address"),
		PaymentMethod: c.String("payment"),
	})
	if err != nil {
		return err
	}
	return printReceipt(env, r)
}

func buyNow(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	article, err := articleArg(c, "orders buy [--qty N] ARTICLE")
	if err != nil {
		return err
	}

	req := &orders.BuyNowRequest{ArticleID: article, Qty: c.Int("qty"), ClientOrderID: c.String("client-order-id")}
	r, err := orders.NewService(env.API).BuyNow(c.Context, req)
	if err != nil {
		if req.ClientOrderID != "" {
			env.Log.Warn("buy now failed", "client_order_id", req.ClientOrderID, "error", err)
			return fmt.Errorf("%w (retry with --client-order-id %s)", err, req.ClientOrderID)
		}
		return err
	}
	if !env.Structured() {
		fmt.Fprintf(env.ErrOut, "client order id %s\n", req.ClientOrderID)
	}
	return printReceipt(env, r)
}

func printReceipt(env *Env, r *orders.Receipt) error {
	if env.Structured() {
		return env.Print(r)
	}
	fmt.Fprintf(env.Out, "%s: order %d, total %.2f\n\n", r.Message, r.OrderID, r.TotalAmount)
	return env.Print(r.Items)
}

func runSearch(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return errors.New("usage: search QUERY...")
	}

	res, err := search.NewService(env.API).Search(c.Context, search.Query{
		Text:  strings.Join(c.Args().Slice(), " "),
		Limit: c.Int("limit"),
		Basic: c.Bool("basic"),
	})
	if err != nil {
		return err
	}
	if env.Structured() {
		return env.Print(res)
	}
	if res.InterpretedQuery != "" && res.InterpretedQuery != res.Query {
		fmt.Fprintf(env.Out, "showing results for %q\n\n", res.InterpretedQuery)
	}
	if len(res.Products) == 0 {
		fmt.Fprintf(env.Out, "no products match %q\n", res.Query)
		return nil
	}
	if err := env.Print(res.Products); err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "\n%d of %d (%s search)\n", len(res.Products), res.Total, res.SearchType)
	return nil
}

func suggest(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	if c.NArg() != 1 {
		return errors.New("usage: suggest PREFIX")
	}

	names, err := search.NewService(env.API).Suggest(c.Context, c.Args().First(), c.Int("limit"))
	if err != nil {
		return err
	}
	if env.Structured() {
		return env.Print(names)
	}
	for _, n := range names {
		fmt.Fprintln(env.Out, n)
	}
	return nil
}
