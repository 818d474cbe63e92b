package command

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yndnr/shopfront-go/internal/cli/output"
	"github.com/yndnr/shopfront-go/internal/client/tokenstore"
	"github.com/yndnr/shopfront-go/internal/ops/recommend"
)

// ErrUnhealthy is returned by `model check` when the health body does not
// pass. main maps it to exit status 1.
var ErrUnhealthy = errors.New("recommendation service is not healthy")

// ModelCommand returns the recommendation model ops command.
func ModelCommand() *cli.Command {
	return &cli.Command{
		Name:  "model",
		Usage: "Recommendation model operations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "token",
				Usage:   "bearer token for reload (default: the stored session)",
				EnvVars: []string{"SHOP_ADMIN_TOKEN"},
			},
		},
		Subcommands: []*cli.Command{
			{
				Name:   "reload",
				Usage:  "Reload the model file on the backend",
				Action: reloadModel,
			},
			{
				Name:   "health",
				Usage:  "Show the recommendation service health",
				Action: modelHealth,
			},
			{
				Name:   "check",
				Usage:  "Reload, then check health; exits 1 unless healthy",
				Action: checkModel,
			},
		},
	}
}

// modelOps returns ops over the session client, or over a dedicated
// client when --token is given so the session store is left alone.
func modelOps(c *cli.Context) (*Env, *recommend.Ops, error) {
	env, err := envFrom(c)
	if err != nil {
		return nil, nil, err
	}
	token := c.String("token")
	if token == "" {
		return env, recommend.New(env.API), nil
	}
	api, err := env.newClient(tokenstore.NewMemory(token))
	if err != nil {
		return nil, nil, err
	}
	return env, recommend.New(api), nil
}

func interactiveTerminal(env *Env) bool {
	if env.Structured() {
		return false
	}
	f, ok := env.ErrOut.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func reloadModel(c *cli.Context) error {
	env, ops, err := modelOps(c)
	if err != nil {
		return err
	}

	spin := output.NewSpinner(env.ErrOut, "Reloading model...", interactiveTerminal(env))
	spin.Start()
	res, err := ops.Reload(c.Context)
	if err != nil {
		spin.Fail("reload failed")
		return err
	}
	if !res.OK() {
		spin.Fail("reload rejected")
		if !env.Structured() {
			fmt.Fprintln(env.Out, string(res.Raw))
		}
		return fmt.Errorf("reload model: %s", res.Message)
	}
	spin.Success("model reloaded")

	if env.Structured() {
		return env.Print(res)
	}
	fmt.Fprintln(env.Out, string(res.Raw))
	return nil
}

func modelHealth(c *cli.Context) error {
	env, ops, err := modelOps(c)
	if err != nil {
		return err
	}
	h, err := ops.Health(c.Context)
	if h == nil {
		return err
	}
	if env.Structured() && err == nil {
		return env.Print(h)
	}
	fmt.Fprintln(env.Out, string(h.Raw))
	if !h.Healthy() {
		return ErrUnhealthy
	}
	return nil
}

// checkModel is the deploy check: raw bodies on stdout, verdict in the
// exit status.
func checkModel(c *cli.Context) error {
	env, ops, err := modelOps(c)
	if err != nil {
		return err
	}
	healthy, err := ops.Check(c.Context, env.Out)
	if err != nil {
		return err
	}
	if !healthy {
		return ErrUnhealthy
	}
	fmt.Fprintln(env.ErrOut, "recommendation service is healthy")
	return nil
}
