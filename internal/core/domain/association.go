package domain

import "slices"

// LineItem is one row of a parent-to-catalog association. Appointment
// services always carry Quantity 1.
type LineItem struct {
	Code     string
	Quantity int
}

// AssociationPlan is the minimal set of writes that turns the current
// association rows into the target ones.
type AssociationPlan struct {
	Insert []LineItem
	Update []LineItem
	Delete []string
}

// Empty reports whether applying the plan would write nothing.
func (p AssociationPlan) Empty() bool {
	return len(p.Insert) == 0 && len(p.Update) == 0 && len(p.Delete) == 0
}

// UniqueCodes drops empty and repeated codes, keeping first-seen order.
func UniqueCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// MergeLines folds repeated codes into one line whose quantity is the sum of
// the repeats. Lines with an empty code or a non-positive quantity are dropped.
func MergeLines(items []LineItem) []LineItem {
	index := make(map[string]int, len(items))
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		if it.Code == "" || it.Quantity <= 0 {
			continue
		}
		if i, ok := index[it.Code]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		index[it.Code] = len(out)
		out = append(out, it)
	}
	return out
}

// LinesFromCodes maps a set of codes to unit line items.
func LinesFromCodes(codes []string) []LineItem {
	codes = UniqueCodes(codes)
	out := make([]LineItem, len(codes))
	for i, c := range codes {
		out[i] = LineItem{Code: c, Quantity: 1}
	}
	return out
}

// PlanReplace computes the writes that make current equal to target. Rows
// present in both with the same quantity are left untouched, so planning the
// same target twice yields an empty plan the second time.
func PlanReplace(current, target []LineItem) AssociationPlan {
	target = MergeLines(target)
	have := make(map[string]int, len(current))
	for _, it := range current {
		have[it.Code] = it.Quantity
	}

	var plan AssociationPlan
	want := make(map[string]struct{}, len(target))
	for _, it := range target {
		want[it.Code] = struct{}{}
		q, ok := have[it.Code]
		switch {
		case !ok:
			plan.Insert = append(plan.Insert, it)
		case q != it.Quantity:
			plan.Update = append(plan.Update, it)
		}
	}
	for _, it := range current {
		if _, ok := want[it.Code]; !ok {
			plan.Delete = append(plan.Delete, it.Code)
		}
	}
	slices.Sort(plan.Delete)
	plan.Delete = slices.Compact(plan.Delete)
	return plan
}
