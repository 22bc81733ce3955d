package records

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const recordsPath = "/records"

type queryOptions struct {
	singleColorPadding bool
}

// QueryOption tweaks how BuildURL encodes a request.
type QueryOption func(*queryOptions)

// WithoutSingleColorPadding makes a one-color filter encode as a single
// color parameter instead of the color followed by an empty entry.
func WithoutSingleColorPadding() QueryOption {
	return func(o *queryOptions) {
		o.singleColorPadding = false
	}
}

// BuildURL returns the /records URL for the given page and color filter.
//
// limit is always PageItems+1 so the caller can tell whether a further page
// exists. A page of zero or below reads from offset 0.
//
// A single color is sent as two color parameters, the color and an empty
// string, matching what the records server has always received for
// one-color filters. Use WithoutSingleColorPadding to send just the color.
func BuildURL(base string, page int, colors []string, opts ...QueryOption) (*url.URL, error) {
	qo := queryOptions{singleColorPadding: true}
	for _, opt := range opts {
		opt(&qo)
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", base)
	}
	path := strings.TrimRight(u.Path, "/")
	if !strings.HasSuffix(path, recordsPath) {
		path += recordsPath
	}
	u.Path = path

	q := url.Values{}
	q.Set("limit", strconv.Itoa(PageItems+1))
	q.Set("offset", strconv.Itoa(offset(page)))

	switch {
	case len(colors) == 0:
	case len(colors) == 1 && qo.singleColorPadding:
		q["color"] = []string{colors[0], ""}
	default:
		q["color"] = colors
	}

	u.RawQuery = q.Encode()
	return u, nil
}

func offset(page int) int {
	if page <= 0 {
		return 0
	}
	return (page - 1) * PageItems
}
