package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/yndnr/shopfront-go/internal/client/apiclient"
	"github.com/yndnr/shopfront-go/internal/client/auth"
	"github.com/yndnr/shopfront-go/internal/client/navigation"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// AuthCommands returns the account commands.
func AuthCommands() []*cli.Command {
	passwordFlag := &cli.StringFlag{
		Name:    "password",
		Usage:   "password (prompted when omitted)",
		EnvVars: []string{"SHOP_PASSWORD"},
	}
	emailFlag := &cli.StringFlag{
		Name:     "email",
		Aliases:  []string{"e"},
		Usage:    "account email",
		Required: true,
	}

	return []*cli.Command{
		{
			Name:   "login",
			Usage:  "Sign in and store the session token",
			Flags:  []cli.Flag{emailFlag, passwordFlag},
			Action: login,
		},
		{
			Name:  "signup",
			Usage: "Create an account",
			Flags: []cli.Flag{
				emailFlag,
				passwordFlag,
				&cli.StringFlag{
					Name:     "name",
					Usage:    "display name",
					Required: true,
				},
				&cli.StringSliceFlag{
					Name:     "category",
					Usage:    "preferred category, 1 to 3 times",
					Required: true,
				},
			},
			Action: signup,
		},
		{
			Name:   "logout",
			Usage:  "Forget the stored session token",
			Action: logout,
		},
		{
			Name:    "whoami",
			Aliases: []string{"me"},
			Usage:   "Show the signed-in user",
			Action:  whoami,
		},
		{
			Name:   "session",
			Usage:  "Inspect the stored session token without contacting the backend",
			Action: showSession,
		},
		{
			Name:  "password",
			Usage: "Password reset",
			Subcommands: []*cli.Command{
				{
					Name:   "forgot",
					Usage:  "Request a reset code",
					Flags:  []cli.Flag{emailFlag},
					Action: forgotPassword,
				},
				{
					Name:  "reset",
					Usage: "Set a new password with a reset code",
					Flags: []cli.Flag{
						emailFlag,
						passwordFlag,
						&cli.StringFlag{
							Name:     "code",
							Usage:    "reset code",
							Required: true,
						},
					},
					Action: resetPassword,
				},
			},
		},
	}
}

// promptPassword returns the --password value or reads one from the
// terminal without echo.
func promptPassword(c *cli.Context, w io.Writer, prompt string) (string, error) {
	if pw := c.String("password"); pw != "" {
		return pw, nil
	}
	fmt.Fprint(w, prompt)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(pw)), nil
}

const signupPath = "/signup"

// visit moves loc to page for the duration of a form submission, so a
// rejected submission is not redirected. The returned func moves back.
func visit(loc *navigation.History, page string) func() {
	if loc.Path() == page {
		return func() {}
	}
	loc.Assign(page)
	return func() { loc.Back() }
}

func login(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	password, err := promptPassword(c, env.ErrOut, "Password: ")
	if err != nil {
		return err
	}

	creds := auth.Credentials{Email: c.String("email"), Password: password}
	leave := visit(env.Location, apiclient.LoginPath)
	err = auth.NewService(env.API, env.Tokens).Login(c.Context, creds)
	leave()
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			return errors.New("login failed: invalid email or password")
		}
		return err
	}

	if apiclient.IsAuthPath(env.Location.Path()) {
		env.Location.Assign(navigation.HomePath)
	}
	fmt.Fprintf(env.Out, "Logged in as %s\n", creds.Email)
	return nil
}

func signup(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	password, err := promptPassword(c, env.ErrOut, "Choose a password: ")
	if err != nil {
		return err
	}

	leave := visit(env.Location, signupPath)
	user, err := auth.NewService(env.API, env.Tokens).Signup(c.Context, auth.SignupRequest{
		Email:               c.String("email"),
		Password:            password,
		Name:                c.String("name"),
		PreferredCategories: c.StringSlice("category"),
	})
	leave()
	if err != nil {
		return err
	}
	if env.Structured() {
		return env.Print(user)
	}
	fmt.Fprintf(env.Out, "Account created for %s; run `shopctl login --email %s` to sign in\n", user.Name, user.Email)
	return nil
}

func logout(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	if err := auth.NewService(env.API, env.Tokens).Logout(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, "Logged out")
	return nil
}

func whoami(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	user, err := auth.NewService(env.API, env.Tokens).Me(c.Context)
	if err != nil {
		return err
	}
	return env.Print(user)
}

func showSession(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	sess, err := auth.NewService(env.API, env.Tokens).Session(c.Context)
	if err != nil {
		return err
	}
	return env.Print(sess)
}

func forgotPassword(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	code, err := auth.NewService(env.API, env.Tokens).ForgotPassword(c.Context, c.String("email"))
	if err != nil {
		return err
	}
	if env.Structured() {
		return env.Print(code)
	}
	fmt.Fprintln(env.Out, code.Message)
	if code.ResetCode != "" {
		fmt.Fprintf(env.Out, "Reset code: %s\n", code.ResetCode)
	}
	return nil
}

func resetPassword(c *cli.Context) error {
	env, err := envFrom(c)
	if err != nil {
		return err
	}
	password, err := promptPassword(c, env.ErrOut, "New password: ")
	if err != nil {
		return err
	}
	svc := auth.NewService(env.API, env.Tokens)
	if err := svc.ResetPassword(c.Context, c.String("email"), c.String("code"), password); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, "Password updated")
	return nil
}
