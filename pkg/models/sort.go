package models

import "sort"

// recencyKey is the date an entry is ordered by: the start date for
// ongoing entries, otherwise the end date falling back to the start date.
// YYYY-MM strings order lexically.
func recencyKey(current bool, start, end string) string {
	if current || end == "" {
		return start
	}
	return end
}

func newerFirst(aCurrent, bCurrent bool, aKey, bKey string) bool {
	if aCurrent != bCurrent {
		return aCurrent
	}
	return aKey > bKey
}

// SortExperiences returns the experiences in display order: current
// entries first, then most recent first. The input is not modified.
func SortExperiences(in []Experience) []Experience {
	out := cloneSlice(in)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		return newerFirst(a.Current, b.Current,
			recencyKey(a.Current, a.StartDate, a.EndDate),
			recencyKey(b.Current, b.StartDate, b.EndDate))
	})
	return out
}

// SortEducations orders education the same way as experiences
func SortEducations(in []Education) []Education {
	out := cloneSlice(in)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		return newerFirst(a.Current, b.Current,
			recencyKey(a.Current, a.StartDate, a.EndDate),
			recencyKey(b.Current, b.StartDate, b.EndDate))
	})
	return out
}

// SortProjects orders projects by date, newest first
func SortProjects(in []Project) []Project {
	out := cloneSlice(in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// SortLanguages orders languages by level, highest first
func SortLanguages(in []Language) []Language {
	out := cloneSlice(in)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Level > out[j].Level
	})
	return out
}

// UniqueSkills drops repeated skills, keeping the first occurrence
func UniqueSkills(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
