// Package navigation owns the active day of an open learning path.
package navigation

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/abhisek/edupath/internal/progress"
)

// Direction is a relative navigation step.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// Locator receives the active day whenever it changes.
type Locator interface {
	SetActiveDay(day int)
}

// LocatorFunc adapts a function to a Locator.
type LocatorFunc func(day int)

func (f LocatorFunc) SetActiveDay(day int) { f(day) }

// DayOutOfRangeError is returned by Select for days outside the path.
type DayOutOfRangeError struct {
	Day, Min, Max int
}

func (e *DayOutOfRangeError) Error() string {
	return fmt.Sprintf("day %d out of range [%d, %d]", e.Day, e.Min, e.Max)
}

const errNotInitialized = "navigation: controller used before Initialize"

// Controller tracks the active day. Every change is pushed to the
// registered locators.
type Controller struct {
	mu          sync.Mutex
	totalDays   int
	active      int
	initialized bool
	locators    []Locator
}

// NewController creates a controller that pushes to the given locators.
func NewController(locators ...Locator) *Controller {
	return &Controller{locators: locators}
}

// AddLocator registers another locator.
func (c *Controller) AddLocator(l Locator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locators = append(c.locators, l)
}

// Initialize picks the starting day. A requested day within bounds wins,
// otherwise the first day that is not fully complete, otherwise day 1.
func (c *Controller) Initialize(records []progress.DailyProgress, totalDays int, requested string) int {
	if totalDays < 1 {
		totalDays = 1
	}

	day, ok := parseDay(requested, totalDays)
	if !ok {
		day = FirstIncompleteDay(records, totalDays)
	}

	c.mu.Lock()
	c.totalDays = totalDays
	c.initialized = true
	c.active = day
	c.mu.Unlock()

	c.push(day)
	return day
}

// FirstIncompleteDay scans days in order and returns the first one without
// a record or with fewer than four finished tasks. It returns 1 when every
// day is fully complete.
func FirstIncompleteDay(records []progress.DailyProgress, totalDays int) int {
	byDay := make(map[int]progress.DailyProgress, len(records))
	for _, r := range records {
		byDay[r.Day] = r
	}
	for day := 1; day <= totalDays; day++ {
		r, ok := byDay[day]
		if !ok || !progress.IsDayFullyComplete(r) {
			return day
		}
	}
	return 1
}

// Select jumps to day. Days outside the path are rejected, not clamped.
func (c *Controller) Select(day int) (int, error) {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		panic(errNotInitialized)
	}
	if day < 1 || day > c.totalDays {
		last := c.totalDays
		c.mu.Unlock()
		return 0, &DayOutOfRangeError{Day: day, Min: 1, Max: last}
	}
	c.active = day
	c.mu.Unlock()

	c.push(day)
	return day, nil
}

// Step moves one day in dir, staying put at either end.
func (c *Controller) Step(dir Direction) int {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		panic(errNotInitialized)
	}
	day := min(max(c.active+int(dir), 1), c.totalDays)
	changed := day != c.active
	c.active = day
	c.mu.Unlock()

	if changed {
		c.push(day)
	}
	return day
}

// Active returns the active day.
func (c *Controller) Active() int {
	c.mu.Lock()
	initialized, day := c.initialized, c.active
	c.mu.Unlock()
	if !initialized {
		panic(errNotInitialized)
	}
	return day
}

// Bounds returns the selectable day range.
func (c *Controller) Bounds() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return 1, c.totalDays
}

// Initialized reports whether Initialize has run.
func (c *Controller) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

func (c *Controller) push(day int) {
	c.mu.Lock()
	locs := append([]Locator(nil), c.locators...)
	c.mu.Unlock()
	for _, l := range locs {
		l.SetActiveDay(day)
	}
}

func parseDay(s string, totalDays int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > totalDays {
		return 0, false
	}
	return day, true
}
