package model

// Accumulated maps step names to the content values received for them,
// in arrival order. Steps iterate in order of first appearance.
type Accumulated struct {
	order  []string
	values map[string][]any
}

// NewAccumulated returns an empty Accumulated.
func NewAccumulated() *Accumulated {
	return &Accumulated{values: make(map[string][]any)}
}

// Append records content under step.
func (a *Accumulated) Append(step string, content any) {
	if a.values == nil {
		a.values = make(map[string][]any)
	}
	if _, ok := a.values[step]; !ok {
		a.order = append(a.order, step)
	}
	a.values[step] = append(a.values[step], content)
}

// Steps returns step names in order of first appearance.
func (a *Accumulated) Steps() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.order...)
}

// Get returns the content values recorded for step.
func (a *Accumulated) Get(step string) ([]any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[step]
	return v, ok
}

// Len returns the number of distinct steps.
func (a *Accumulated) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}
