// Package cli implements the interactive manager console. It drives the
// same services as the HTTP API, so every decision made here follows the
// identical workflow rules.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pavemint/claimdesk/internal/claims/domain"
	"github.com/pavemint/claimdesk/internal/claims/service"
	"github.com/pavemint/claimdesk/internal/claims/store"
	"golang.org/x/term"
)

const maxLoginAttempts = 3

// ErrLoginFailed reports that the operator exhausted their login attempts.
var ErrLoginFailed = errors.New("login failed")

// Console is an interactive menu for managers to review claims and run
// reports from a terminal.
type Console struct {
	Auth     *service.AuthService
	Workflow *service.WorkflowService
	Reports  *service.ReportService

	// In/Out default to stdin/stdout.
	In  io.Reader
	Out io.Writer

	reader  *bufio.Scanner
	manager domain.User
}

// Run prompts for manager credentials and then serves the menu until the
// operator exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	if c.In == nil {
		c.In = os.Stdin
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
	c.reader = bufio.NewScanner(c.In)

	if err := c.login(ctx); err != nil {
		return err
	}

	c.printf("\nWelcome, %s.\n", c.manager.Username)

	for {
		c.printf("\n--- Claim Desk ---\n")
		c.printf("1. View pending claims\n")
		c.printf("2. Review a claim\n")
		c.printf("3. Report: claims by employee\n")
		c.printf("4. Report: claims by date range\n")
		c.printf("5. Report: claims by status\n")
		c.printf("6. Exit\n")

		choice, ok := c.prompt("Choose an option: ")
		if !ok {
			return nil
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			err = c.viewPending(ctx)
		case "2":
			err = c.reviewClaim(ctx)
		case "3":
			err = c.reportByEmployee(ctx)
		case "4":
			err = c.reportByDateRange(ctx)
		case "5":
			err = c.reportByStatus(ctx)
		case "6":
			c.printf("Goodbye.\n")
			return nil
		default:
			c.printf("Unknown option.\n")
			continue
		}

		if err != nil {
			c.printError(err)
		}
	}
}

func (c *Console) login(ctx context.Context) error {
	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		username, ok := c.prompt("Username: ")
		if !ok {
			return ErrLoginFailed
		}
		password, err := c.promptPassword("Password: ")
		if err != nil {
			return err
		}

		user, err := c.Auth.Login(ctx, strings.TrimSpace(username), password)
		if err == nil {
			c.manager = user
			return nil
		}
		if errors.Is(err, service.ErrBadCredentials) {
			c.printf("Invalid credentials (%d of %d attempts).\n", attempt, maxLoginAttempts)
			continue
		}
		return err
	}
	return ErrLoginFailed
}

func (c *Console) viewPending(ctx context.Context) error {
	claims, err := c.Reports.Pending(ctx)
	if err != nil {
		return err
	}
	if len(claims) == 0 {
		c.printf("No pending claims.\n")
		return nil
	}
	c.printClaimTable(claims)
	return nil
}

func (c *Console) reviewClaim(ctx context.Context) error {
	idText, ok := c.prompt("Claim id: ")
	if !ok {
		return nil
	}
	claimID, err := strconv.ParseInt(strings.TrimSpace(idText), 10, 64)
	if err != nil {
		c.printf("Claim id must be a number.\n")
		return nil
	}

	claim, err := c.Reports.ClaimByID(ctx, claimID)
	if err != nil {
		return err
	}
	c.printClaimTable([]domain.ClaimDetail{claim})

	if claim.Status.Terminal() {
		c.printf("This claim has already been decided.\n")
		return nil
	}

	decision, ok := c.prompt("Decision (approve/deny): ")
	if !ok {
		return nil
	}
	comment, ok := c.prompt("Comment: ")
	if !ok {
		return nil
	}
	comment = strings.TrimSpace(comment)

	switch strings.ToLower(strings.TrimSpace(decision)) {
	case "approve", "a":
		err = c.Workflow.Approve(ctx, claimID, c.manager.ID, comment)
	case "deny", "d":
		err = c.Workflow.Deny(ctx, claimID, c.manager.ID, comment)
	default:
		c.printf("Decision must be approve or deny.\n")
		return nil
	}
	if err != nil {
		return err
	}

	c.printf("Claim %d decided.\n", claimID)
	return nil
}

func (c *Console) reportByEmployee(ctx context.Context) error {
	username, ok := c.prompt("Employee username: ")
	if !ok {
		return nil
	}
	claims, err := c.Reports.ByEmployee(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	c.printReport(claims)
	return nil
}

func (c *Console) reportByDateRange(ctx context.Context) error {
	start, err := c.promptDate("Start date (YYYY-MM-DD): ")
	if err != nil || start.IsZero() {
		return err
	}
	end, err := c.promptDate("End date (YYYY-MM-DD): ")
	if err != nil || end.IsZero() {
		return err
	}
	if end.Before(start) {
		c.printf("End date must not be before start date.\n")
		return nil
	}

	claims, err := c.Reports.ByDateRange(ctx, start, end)
	if err != nil {
		return err
	}
	c.printReport(claims)
	return nil
}

func (c *Console) reportByStatus(ctx context.Context) error {
	text, ok := c.prompt("Status (pending/approved/denied): ")
	if !ok {
		return nil
	}
	status, err := domain.ParseStatus(strings.TrimSpace(text))
	if err != nil {
		c.printf("Unknown status %q.\n", strings.TrimSpace(text))
		return nil
	}

	claims, err := c.Reports.ByStatus(ctx, status)
	if err != nil {
		return err
	}
	c.printReport(claims)
	return nil
}

func (c *Console) printReport(claims []domain.ClaimDetail) {
	if len(claims) == 0 {
		c.printf("No claims found.\n")
		return
	}
	c.printClaimTable(claims)
	c.printf("Claims: %d  Total: %s\n", len(claims), c.Reports.Total(claims))
}

func (c *Console) printClaimTable(claims []domain.ClaimDetail) {
	w := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMPLOYEE\tAMOUNT\tDATE\tSTATUS\tDESCRIPTION")
	for _, cl := range claims {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			cl.ID,
			cl.EmployeeName,
			cl.Amount,
			cl.IncurredOn.Format(domain.DateLayout),
			cl.Status,
			cl.Description,
		)
	}
	_ = w.Flush()
}

func (c *Console) prompt(label string) (string, bool) {
	c.printf("%s", label)
	if !c.reader.Scan() {
		return "", false
	}
	return c.reader.Text(), true
}

// promptPassword reads without echo when stdin is a terminal, otherwise it
// falls back to a plain line read so piped input still works.
func (c *Console) promptPassword(label string) (string, error) {
	c.printf("%s", label)

	if f, isFile := c.In.(*os.File); isFile && term.IsTerminal(int(f.Fd())) {
		raw, err := term.ReadPassword(int(f.Fd()))
		c.printf("\n")
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	if !c.reader.Scan() {
		return "", ErrLoginFailed
	}
	return c.reader.Text(), nil
}

func (c *Console) promptDate(label string) (time.Time, error) {
	text, ok := c.prompt(label)
	if !ok {
		return time.Time{}, nil
	}
	day, err := time.Parse(domain.DateLayout, strings.TrimSpace(text))
	if err != nil {
		c.printf("Dates must look like 2024-01-31.\n")
		return time.Time{}, nil
	}
	return day, nil
}

func (c *Console) printError(err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.printf("Not found.\n")
	case errors.Is(err, service.ErrInvalidTransition):
		c.printf("This claim has already been decided.\n")
	case errors.Is(err, store.ErrUnavailable):
		c.printf("The claim store is unavailable, try again later.\n")
	default:
		c.printf("Error: %v\n", err)
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}
