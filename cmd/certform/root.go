package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/sunthewhat/certificate-automation/internal/form"
)

var errSubmissionFailed = errors.New("certificate request failed")

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
)

// terminalNotifier prints notifications the way the web form shows toasts.
type terminalNotifier struct {
	out io.Writer
}

func (n terminalNotifier) Success(msg string) {
	fmt.Fprintln(n.out, green("✔ "+msg))
}

func (n terminalNotifier) Error(msg string) {
	fmt.Fprintln(n.out, red("✘ "+msg))
}

type options struct {
	endpoint       string
	name           string
	course         string
	date           string
	clearOnSuccess bool
	timeout        time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "certform",
		Short:         "Request a certificate from the certificate service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.endpoint, "endpoint", form.DefaultEndpoint, "certificate creation endpoint")
	flags.StringVarP(&opts.name, "name", "n", "", "recipient name")
	flags.StringVarP(&opts.course, "course", "c", "", "course name")
	flags.StringVarP(&opts.date, "date", "d", "", "completion date (DD/MM/YYYY or YYYY-MM-DD)")
	flags.BoolVar(&opts.clearOnSuccess, "clear-on-success", false, "only reset the form after a successful request")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("course")

	return cmd
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{form.DateLayout, time.DateOnly} {
		if d, err := time.Parse(layout, value); err == nil {
			return &d, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q: use DD/MM/YYYY or YYYY-MM-DD", value)
}

func run(ctx context.Context, out io.Writer, opts *options) error {
	date, err := parseDate(opts.date)
	if err != nil {
		return err
	}

	policy := form.ClearAlways
	if opts.clearOnSuccess {
		policy = form.ClearOnSuccess
	}

	f := form.New(form.Config{
		Endpoint:    opts.endpoint,
		ClearPolicy: policy,
		HTTPClient:  &http.Client{Timeout: opts.timeout},
	}, terminalNotifier{out: out})

	f.SetName(opts.name)
	f.SetCourse(opts.course)
	if date != nil {
		f.SetDate(*date)
	}

	fmt.Fprintln(out, gray("Creating certificate..."))

	sub, err := f.Submit(ctx)
	if err != nil {
		return err
	}
	if !sub.Succeeded {
		fmt.Fprintln(out, gray(sub.Err.Error()))
		return errSubmissionFailed
	}

	if sub.Result != nil && sub.Result.ViewLink != "" {
		fmt.Fprintf(out, "%s %s\n", sub.Result.FileName, sub.Result.ViewLink)
	}
	return nil
}
