package menu

import (
	"fmt"
	"time"
)

// CommentTimeLayout is the ISO-8601 form used for comment dates, matching
// the millisecond UTC timestamps browsers produce.
const CommentTimeLayout = "2006-01-02T15:04:05.000Z"

// Dish is a menu item with an append-only comment log.
type Dish struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Image       string    `json:"image,omitempty" yaml:"image"`
	Category    string    `json:"category,omitempty" yaml:"category"`
	Featured    bool      `json:"featured,omitempty" yaml:"featured"`
	Label       string    `json:"label,omitempty" yaml:"label"`
	Price       string    `json:"price,omitempty" yaml:"price"`
	Description string    `json:"description,omitempty" yaml:"description"`
	Comments    []Comment `json:"comments" yaml:"comments"`
}

// Comment is a rated, authored, timestamped remark attached to a Dish.
type Comment struct {
	Rating  int    `json:"rating" yaml:"rating"`
	Comment string `json:"comment" yaml:"comment"`
	Author  string `json:"author" yaml:"author"`
	Date    string `json:"date" yaml:"date"`
}

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// Clone returns a deep copy so callers can mutate comments without touching
// the original.
func (d Dish) Clone() Dish {
	dup := d
	if d.Comments != nil {
		dup.Comments = make([]Comment, len(d.Comments))
		copy(dup.Comments, d.Comments)
	}
	return dup
}

// AppendComment adds c to the end of the comment log.
func (d *Dish) AppendComment(c Comment) {
	d.Comments = append(d.Comments, c)
}

// AverageRating returns the mean comment rating, or 0 with no comments.
func (d Dish) AverageRating() float64 {
	if len(d.Comments) == 0 {
		return 0
	}
	total := 0
	for _, c := range d.Comments {
		total += c.Rating
	}
	return float64(total) / float64(len(d.Comments))
}

// StampComment sets the comment date to now in CommentTimeLayout.
func StampComment(c Comment, now time.Time) Comment {
	c.Date = now.UTC().Format(CommentTimeLayout)
	return c
}

// ValidRating reports whether r falls within the accepted rating bounds.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// DishIDs returns the identifiers of dishes in their given order.
func DishIDs(dishes []Dish) []string {
	ids := make([]string, 0, len(dishes))
	for _, d := range dishes {
		ids = append(ids, d.ID)
	}
	return ids
}

// Neighbors returns the cyclic predecessor and successor of id within ids.
// When ids is empty or does not contain id, ok is false and both neighbours
// are empty.
func Neighbors(ids []string, id string) (prev, next string, ok bool) {
	n := len(ids)
	index := indexOf(ids, id)
	if n == 0 || index < 0 {
		return "", "", false
	}
	prev = ids[(n+index-1)%n]
	next = ids[(n+index+1)%n]
	return prev, next, true
}

func indexOf(ids []string, id string) int {
	for i, candidate := range ids {
		if candidate == id {
			return i
		}
	}
	return -1
}

// String renders a compact description used in trace payloads.
func (d Dish) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.ID)
}
