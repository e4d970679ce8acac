package adminctl

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// App drives the interactive admin bootstrap session.
type App struct {
	client *Client
	in     *bufio.Reader
	out    io.Writer
}

func NewApp(serverURL string, in io.Reader, out io.Writer) *App {
	return &App{
		client: NewClient(serverURL),
		in:     bufio.NewReader(in),
		out:    out,
	}
}

// Run prompts for the admin's details and registers the account.
func (a *App) Run(ctx context.Context) error {

	username, err := GetSimpleText(a.in, "Admin username", a.out)
	if err != nil {
		return err
	}

	email, err := GetSimpleText(a.in, "Admin email", a.out)
	if err != nil {
		return err
	}

	phone, err := GetSimpleText(a.in, "Phone number (optional)", a.out)
	if err != nil {
		return err
	}

	pw, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.client.CreateAdmin(ctx, username, email, string(pw), phone); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Admin account %s created\n", email)
	return nil
}
