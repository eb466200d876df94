package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/passgate/internal/client/client"
)

// clearWebsite entered on update removes the website.
const clearWebsite = "-"

func (a *App) List(ctx context.Context) error {
	recs, err := a.recordService.List(ctx)
	if err != nil {
		return a.commandError(ctx, "list", err)
	}
	a.printRecords(recs)
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	recs, err := a.recordService.Search(ctx, query)
	if err != nil {
		return a.commandError(ctx, "search", err)
	}
	a.printRecords(recs)
	return nil
}

func (a *App) Add(ctx context.Context) error {
	var rec client.Record
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Company name", &rec.Name},
		{"Exchange", &rec.Exchange},
		{"Ticker", &rec.Ticker},
		{"ISIN", &rec.ISIN},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	website, err := GetSimpleText(a.reader, "Website (optional)", a.out)
	if err != nil {
		return err
	}
	if website != "" {
		rec.Website = &website
	}

	if err := a.recordService.Create(ctx, rec); err != nil {
		return a.commandError(ctx, "add", err)
	}
	fmt.Fprintln(a.out, "Record created successfully")
	return nil
}

func (a *App) Update(ctx context.Context, rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintln(a.out, "Invalid id:", rawID)
		return fmt.Errorf("invalid id %q", rawID)
	}

	rec, err := a.recordService.Get(ctx, id)
	if err != nil {
		return a.commandError(ctx, "update", err)
	}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Company name", &rec.Name},
		{"Exchange", &rec.Exchange},
		{"Ticker", &rec.Ticker},
		{"ISIN", &rec.ISIN},
	}
	for _, f := range fields {
		v, err := GetWithDefault(a.reader, f.prompt, *f.dst, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	current := ""
	if rec.Website != nil {
		current = *rec.Website
	}
	website, err := GetWithDefault(a.reader, "Website ('-' to clear)", current, a.out)
	if err != nil {
		return err
	}
	switch website {
	case clearWebsite, "":
		rec.Website = nil
	default:
		rec.Website = &website
	}

	updated, err := a.recordService.Update(ctx, *rec)
	if err != nil {
		return a.commandError(ctx, "update", err)
	}
	fmt.Fprintln(a.out, "Record updated")
	a.printRecords([]client.Record{*updated})
	return nil
}

// commandError reports err and leaves the dashboard when the server no
// longer accepts the session.
func (a *App) commandError(ctx context.Context, cmd string, err error) error {
	if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, client.ErrForbidden) {
		fmt.Fprintln(a.out, "Session expired, please log in again")
		a.Navigate(ctx, viewLogin)
		return err
	}
	a.logger.Warn(ctx, "command failed", "command", cmd, "error", err)
	fmt.Fprintf(a.out, "%s failed: %v\n", cmd, err)
	return err
}

func (a *App) printRecords(recs []client.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "No records")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEXCHANGE\tTICKER\tISIN\tWEBSITE")
	for _, r := range recs {
		website := ""
		if r.Website != nil {
			website = *r.Website
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Exchange, r.Ticker, r.ISIN, website)
	}
	_ = tw.Flush()
}
