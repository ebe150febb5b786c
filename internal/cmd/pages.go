package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/crossorg/hrconsole/internal/errors"
)

// addPagingFlags registers --page and --size on a list command.
func addPagingFlags(c *cobra.Command) {
	c.Flags().Int("page", 1, "page number")
	c.Flags().Int("size", 10, "page size")
}

// pagingQuery starts a query with the paging flags that were set.
func pagingQuery(cmd *cobra.Command) url.Values {
	q := url.Values{}
	for _, name := range []string{"page", "size"} {
		if !cmd.Flags().Changed(name) {
			continue
		}
		if v, err := cmd.Flags().GetInt(name); err == nil {
			q.Set(name, strconv.Itoa(v))
		}
	}
	return q
}

// setFlag copies a changed string flag into q.
func setFlag(cmd *cobra.Command, q url.Values, flag, param string) {
	if !cmd.Flags().Changed(flag) {
		return
	}
	if v, err := cmd.Flags().GetString(flag); err == nil && v != "" {
		q.Set(param, v)
	}
}

// setBoolFlag copies a true bool flag into q.
func setBoolFlag(cmd *cobra.Command, q url.Values, flag, param string) {
	if v, err := cmd.Flags().GetBool(flag); err == nil && v {
		q.Set(param, "true")
	}
}

// pagePath joins a route path and its query.
func pagePath(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

// openPage opens path and prints the page.
func openPage(cmd *cobra.Command, path string) error {
	cc, app, err := setup(cmd)
	if err != nil {
		return err
	}
	page, err := app.Open(cmd.Context(), path)
	if err != nil {
		return err
	}
	return cc.Print(cmd, page)
}

// parseID parses a positional id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError("invalid id %q", arg)
	}
	return id, nil
}

func usageError(format string, args ...any) error {
	return errors.New(errors.ErrCodeAPIRequest, fmt.Sprintf(format, args...))
}
