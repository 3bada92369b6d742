// Package gpa is the grade aggregation engine: pure computation over
// subject and semester rows, no I/O. All GPA math uses the single
// credits-normalized formula
//
//	GPA = (Σ(gradePoints × credits) / Σ(credits × 10)) × 10
//
// where credits×10 is the maximum attainable score per subject. The same
// accumulation backs per-semester GPA, cumulative CGPA and every rollup
// below, so a single-semester CGPA always equals that semester's GPA.
package gpa

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"github.com/gradepoint/gradepoint-backend/internal/types"
)

type SemesterEntry struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Year int       `json:"year"`
	GPA  float64   `json:"gpa"`
}

type CumulativePoint struct {
	Name string  `json:"name"`
	Year int     `json:"year"`
	CGPA float64 `json:"cgpa"`
}

type GradeShare struct {
	Grade      string  `json:"grade"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type YearAverage struct {
	Year int     `json:"year"`
	GPA  float64 `json:"gpa"`
}

type Level struct {
	Level       string `json:"level"`
	Description string `json:"description"`
}

// SemesterGPA computes one semester's GPA. Empty input and zero total
// credits both yield 0.
func SemesterGPA(subjects []*types.Subject) float64 {
	creditScored, totalCredit := accumulate(subjects)
	if totalCredit <= 0 {
		return 0
	}
	return round2(creditScored / totalCredit * 10)
}

// CGPA computes the cumulative GPA over the flattened subjects of all given
// semesters, with the same rounding and zero-guard as SemesterGPA.
func CGPA(semesters []*types.Semester) float64 {
	var creditScored, totalCredit float64
	for _, sem := range semesters {
		if sem == nil {
			continue
		}
		cs, tc := accumulate(sem.Subjects)
		creditScored += cs
		totalCredit += tc
	}
	if totalCredit <= 0 {
		return 0
	}
	return round2(creditScored / totalCredit * 10)
}

// TotalCredits sums plain credits (not the ×10 denominator); it feeds the
// semester total_credits cache.
func TotalCredits(subjects []*types.Subject) float64 {
	var sum float64
	for _, s := range subjects {
		if s == nil {
			continue
		}
		sum += num(s.Credits)
	}
	return sum
}

// BySemester maps each semester to its own GPA, preserving input order.
func BySemester(semesters []*types.Semester) []SemesterEntry {
	entries := make([]SemesterEntry, 0, len(semesters))
	for _, sem := range semesters {
		if sem == nil {
			continue
		}
		entries = append(entries, SemesterEntry{
			ID:   sem.ID,
			Name: sem.Name,
			Year: sem.Year,
			GPA:  SemesterGPA(sem.Subjects),
		})
	}
	return entries
}

// CumulativeSeries returns the running CGPA after each semester in input
// order. Point i is computed over semesters [0..i] only; later semesters
// never change earlier points.
func CumulativeSeries(semesters []*types.Semester) []CumulativePoint {
	points := make([]CumulativePoint, 0, len(semesters))
	var creditScored, totalCredit float64
	for _, sem := range semesters {
		if sem == nil {
			continue
		}
		cs, tc := accumulate(sem.Subjects)
		creditScored += cs
		totalCredit += tc

		cgpa := 0.0
		if totalCredit > 0 {
			cgpa = round2(creditScored / totalCredit * 10)
		}
		points = append(points, CumulativePoint{Name: sem.Name, Year: sem.Year, CGPA: cgpa})
	}
	return points
}

// Distribution counts subjects per grade label. Percentages are rounded to
// one decimal; entries are sorted by count descending with ties kept in
// first-encountered order.
func Distribution(subjects []*types.Subject) []GradeShare {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	total := 0
	for _, s := range subjects {
		if s == nil {
			continue
		}
		total++
		grade := s.Grade
		if grade == "" {
			grade = "Unknown"
		}
		if _, ok := counts[grade]; !ok {
			firstSeen[grade] = total
		}
		counts[grade]++
	}
	if total == 0 {
		return []GradeShare{}
	}

	shares := make([]GradeShare, 0, len(counts))
	for grade, count := range counts {
		shares = append(shares, GradeShare{
			Grade:      grade,
			Count:      count,
			Percentage: round1(float64(count) / float64(total) * 100),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return firstSeen[shares[i].Grade] < firstSeen[shares[j].Grade]
	})
	return shares
}

// YearlyAverages groups semester GPA entries by year and returns the plain
// arithmetic mean per year (not credit-weighted), sorted by year ascending.
func YearlyAverages(entries []SemesterEntry) []YearAverage {
	byYear := make(map[int][]float64)
	for _, e := range entries {
		byYear[e.Year] = append(byYear[e.Year], e.GPA)
	}
	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Ints(years)

	averages := make([]YearAverage, 0, len(years))
	for _, year := range years {
		mean, err := stats.Mean(stats.Float64Data(byYear[year]))
		if err != nil {
			mean = 0
		}
		averages = append(averages, YearAverage{Year: year, GPA: round2(mean)})
	}
	return averages
}

// BestWorst picks the entries with the highest and lowest GPA among
// semesters with GPA > 0. Ties keep the first occurrence. Either result is
// nil when no semester qualifies.
func BestWorst(entries []SemesterEntry) (best, worst *SemesterEntry) {
	for i := range entries {
		e := entries[i]
		if e.GPA <= 0 {
			continue
		}
		if best == nil || e.GPA > best.GPA {
			c := e
			best = &c
		}
		if worst == nil || e.GPA < worst.GPA {
			c := e
			worst = &c
		}
	}
	return best, worst
}

// TopSubjects returns up to limit subjects with the highest grade points,
// stable over input order.
func TopSubjects(subjects []*types.Subject, limit int) []*types.Subject {
	return rankSubjects(subjects, limit, func(a, b *types.Subject) bool {
		return num(a.GradePoints) > num(b.GradePoints)
	})
}

// BottomSubjects returns up to limit subjects with the lowest grade points.
func BottomSubjects(subjects []*types.Subject, limit int) []*types.Subject {
	return rankSubjects(subjects, limit, func(a, b *types.Subject) bool {
		return num(a.GradePoints) < num(b.GradePoints)
	})
}

// PerformanceLevel buckets a GPA on the 10-point scale.
func PerformanceLevel(value float64) Level {
	switch {
	case value >= 8.5:
		return Level{Level: "Excellent", Description: "Outstanding performance"}
	case value >= 7.0:
		return Level{Level: "Good", Description: "Strong performance"}
	case value >= 6.0:
		return Level{Level: "Average", Description: "Satisfactory performance"}
	default:
		return Level{Level: "Below Average", Description: "Needs improvement"}
	}
}

func rankSubjects(subjects []*types.Subject, limit int, less func(a, b *types.Subject) bool) []*types.Subject {
	ranked := make([]*types.Subject, 0, len(subjects))
	for _, s := range subjects {
		if s != nil {
			ranked = append(ranked, s)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func accumulate(subjects []*types.Subject) (creditScored, totalCredit float64) {
	for _, s := range subjects {
		if s == nil {
			continue
		}
		gp := num(s.GradePoints)
		c := num(s.Credits)
		creditScored += gp * c
		totalCredit += c * 10
	}
	return creditScored, totalCredit
}

// num treats NaN/Inf the same as a missing field.
func num(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func round2(v float64) float64 { return round(v, 2) }
func round1(v float64) float64 { return round(v, 1) }

func round(v float64, places int) float64 {
	rounded, err := stats.Round(v, places)
	if err != nil {
		return 0
	}
	return rounded
}
