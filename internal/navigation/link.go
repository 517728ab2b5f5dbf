package navigation

import (
	"fmt"
	"net/url"
	"strconv"
	"sync"
)

// LinkScheme is the URL scheme of shareable session links.
const LinkScheme = "edupath"

// Link identifies a learning path and, optionally, a day within it.
type Link struct {
	PathID string `json:"id"`
	Day    int    `json:"day,omitempty"` // 0 when omitted
}

// String renders the link as edupath://path?id=<id>&day=<n>.
func (l Link) String() string {
	u := url.URL{Scheme: LinkScheme, Host: "path", RawQuery: l.query().Encode()}
	return u.String()
}

// APIPath renders the link as the HTTP session endpoint for the path.
func (l Link) APIPath() string {
	p := "/api/paths/" + url.PathEscape(l.PathID) + "/session"
	if l.Day > 0 {
		p += "?day=" + strconv.Itoa(l.Day)
	}
	return p
}

// RequestedDay returns the day as the string form Initialize accepts.
func (l Link) RequestedDay() string {
	if l.Day <= 0 {
		return ""
	}
	return strconv.Itoa(l.Day)
}

func (l Link) query() url.Values {
	q := url.Values{}
	q.Set("id", l.PathID)
	if l.Day > 0 {
		q.Set("day", strconv.Itoa(l.Day))
	}
	return q
}

// ParseLink parses a link produced by String. A missing or malformed day
// is dropped rather than rejected; Initialize falls back to the scan.
func ParseLink(s string) (Link, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Link{}, fmt.Errorf("parse link: %w", err)
	}
	if u.Scheme != LinkScheme || u.Host != "path" {
		return Link{}, fmt.Errorf("parse link: unsupported link %q", s)
	}
	q := u.Query()
	l := Link{PathID: q.Get("id")}
	if l.PathID == "" {
		return Link{}, fmt.Errorf("parse link: missing id")
	}
	if d, err := strconv.Atoi(q.Get("day")); err == nil && d > 0 {
		l.Day = d
	}
	return l, nil
}

// LinkTracker is a Locator that keeps the current link of a path.
type LinkTracker struct {
	mu   sync.Mutex
	link Link
}

// NewLinkTracker creates a tracker for pathID with no day set.
func NewLinkTracker(pathID string) *LinkTracker {
	return &LinkTracker{link: Link{PathID: pathID}}
}

func (t *LinkTracker) SetActiveDay(day int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.link.Day = day
}

// Link returns the current link.
func (t *LinkTracker) Link() Link {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.link
}
