package state

import (
	"errors"
	"time"

	"github.com/atomicstack/confusion-tui/internal/menu"
)

// Visibility drives the dish transition.
type Visibility string

const (
	VisibilityHidden Visibility = "hidden"
	VisibilityShown  Visibility = "shown"
)

// ErrNoDish is returned when a comment is submitted before a dish is loaded.
var ErrNoDish = errors.New("no dish loaded")

// DishDetail is the view-model of one mounted dish detail view. A new
// instance is created on every mount.
type DishDetail struct {
	Mount      int
	DishIDs    []string
	Dish       *menu.Dish
	DishCopy   *menu.Dish
	Prev       string
	Next       string
	ErrMess    string
	IDsErr     string // kept across dish results; explains missing prev/next
	Visibility Visibility
	Persist    bool

	idsLoaded bool
	routedID  string
	seq       int
}

// NewDishDetail returns the state of a freshly mounted view.
func NewDishDetail(mount int, persist bool) *DishDetail {
	return &DishDetail{Mount: mount, Persist: persist, Visibility: VisibilityHidden}
}

// SetDishIDs stores the navigation order. Neighbours are recomputed when
// the dish arrived first.
func (d *DishDetail) SetDishIDs(ids []string, err error) {
	if err != nil {
		d.ErrMess = err.Error()
		d.IDsErr = err.Error()
		return
	}
	d.IDsErr = ""
	d.DishIDs = append([]string(nil), ids...)
	d.idsLoaded = true
	if d.Dish != nil {
		d.ComputeNeighbors(d.Dish.ID)
	}
}

// IDsLoaded reports whether SetDishIDs succeeded.
func (d *DishDetail) IDsLoaded() bool {
	return d.idsLoaded
}

// BeginFetch starts a fetch for id and returns its sequence number. Any
// earlier fetch becomes stale.
func (d *DishDetail) BeginFetch(id string) int {
	d.seq++
	d.routedID = id
	d.Visibility = VisibilityHidden
	return d.seq
}

// Seq returns the sequence number of the latest fetch.
func (d *DishDetail) Seq() int {
	return d.seq
}

// RoutedID returns the id of the latest fetch.
func (d *DishDetail) RoutedID() string {
	return d.routedID
}

// ApplyDish applies a fetch result. It returns false and changes nothing
// when seq is not the latest.
func (d *DishDetail) ApplyDish(seq int, dish *menu.Dish, err error) bool {
	if seq != d.seq {
		return false
	}
	if err == nil && dish == nil {
		err = ErrNoDish
	}
	if err != nil {
		d.Dish = nil
		d.DishCopy = nil
		d.Prev, d.Next = "", ""
		d.ErrMess = err.Error()
		return true
	}
	d.Dish = dish
	d.DishCopy = cloneDish(dish)
	d.ErrMess = ""
	d.ComputeNeighbors(dish.ID)
	d.Visibility = VisibilityShown
	return true
}

// ComputeNeighbors sets Prev and Next from the id list. An id missing from
// the list leaves both empty.
func (d *DishDetail) ComputeNeighbors(id string) {
	d.Prev, d.Next, _ = menu.Neighbors(d.DishIDs, id)
}

// HasNeighbors reports whether prev/next navigation is possible.
func (d *DishDetail) HasNeighbors() bool {
	return d.Prev != "" && d.Next != ""
}

// PrepareComment stamps c with now and appends it to the working copy. It
// returns the dish to persist. Without persistence the held dish is updated
// in place as well.
func (d *DishDetail) PrepareComment(c menu.Comment, now time.Time) (*menu.Dish, error) {
	if d.DishCopy == nil {
		return nil, ErrNoDish
	}
	stamped := menu.StampComment(c, now)
	d.DishCopy.AppendComment(stamped)
	if !d.Persist && d.Dish != nil {
		d.Dish.AppendComment(stamped)
	}
	return cloneDish(d.DishCopy), nil
}

// ApplySaved applies the result of persisting the dish. A result for an
// older fetch is dropped.
func (d *DishDetail) ApplySaved(seq int, dish *menu.Dish, err error) bool {
	if seq != d.seq {
		return false
	}
	if err != nil {
		d.Dish = nil
		d.DishCopy = nil
		d.ErrMess = err.Error()
		return true
	}
	d.Dish = dish
	d.DishCopy = cloneDish(dish)
	d.ErrMess = ""
	return true
}

func cloneDish(d *menu.Dish) *menu.Dish {
	if d == nil {
		return nil
	}
	dup := d.Clone()
	return &dup
}
