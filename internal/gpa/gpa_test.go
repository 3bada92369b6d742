package gpa

import (
	"math"
	"testing"

	"github.com/gradepoint/gradepoint-backend/internal/types"
)

func subj(grade string, points, credits float64) *types.Subject {
	return &types.Subject{Name: "s", Grade: grade, GradePoints: points, Credits: credits}
}

func sem(name string, year int, subjects ...*types.Subject) *types.Semester {
	return &types.Semester{Name: name, Year: year, Subjects: subjects}
}

func TestSemesterGPA(t *testing.T) {
	cases := []struct {
		name     string
		subjects []*types.Subject
		want     float64
	}{
		{
			name:     "empty_list_is_zero",
			subjects: nil,
			want:     0,
		},
		{
			name:     "zero_credits_no_divide_by_zero",
			subjects: []*types.Subject{subj("A", 8, 0), subj("B", 7, 0)},
			want:     0,
		},
		{
			// creditScored = 40+24+18 = 82, totalCredit = (4+3+3)*10 = 100
			name: "three_subjects",
			subjects: []*types.Subject{
				subj("O", 10, 4),
				subj("A", 8, 3),
				subj("C+", 6, 3),
			},
			want: 8.20,
		},
		{
			name:     "perfect_scores",
			subjects: []*types.Subject{subj("O", 10, 3), subj("O", 10, 5)},
			want:     10,
		},
		{
			name:     "nan_fields_treated_as_zero",
			subjects: []*types.Subject{subj("A", math.NaN(), 4), subj("B", 7, 2)},
			want:     round2(14.0 / 60.0 * 10),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SemesterGPA(tc.subjects)
			if got != tc.want {
				t.Fatalf("SemesterGPA()=%v, want %v", got, tc.want)
			}
			if math.IsNaN(got) {
				t.Fatalf("SemesterGPA() returned NaN")
			}
		})
	}
}

func TestCGPAMatchesSingleSemesterGPA(t *testing.T) {
	subjects := []*types.Subject{subj("O", 10, 4), subj("A", 8, 3), subj("C+", 6, 3)}
	semesters := []*types.Semester{sem("Fall", 2023, subjects...)}

	gotCGPA := CGPA(semesters)
	gotGPA := SemesterGPA(subjects)
	if gotCGPA != gotGPA {
		t.Fatalf("CGPA over one semester = %v, semester GPA = %v", gotCGPA, gotGPA)
	}
}

func TestCGPATwoSemesters(t *testing.T) {
	// First: scored 82 of 100. Second: scored 45 of 50.
	// CGPA = 127/150*10 = 8.47 (not the average of 8.20 and 9.00).
	semesters := []*types.Semester{
		sem("Fall", 2023, subj("O", 10, 4), subj("A", 8, 3), subj("C+", 6, 3)),
		sem("Spring", 2024, subj("A+", 9, 5)),
	}
	if got := CGPA(semesters); got != 8.47 {
		t.Fatalf("CGPA()=%v, want 8.47", got)
	}
}

func TestCumulativeSeriesPrefixIndependence(t *testing.T) {
	first := sem("Fall", 2023, subj("O", 10, 4), subj("A", 8, 3), subj("C+", 6, 3))
	second := sem("Spring", 2024, subj("A+", 9, 5))
	third := sem("Fall", 2024, subj("U", 0, 10))

	short := CumulativeSeries([]*types.Semester{first, second})
	long := CumulativeSeries([]*types.Semester{first, second, third})

	if len(short) != 2 || len(long) != 3 {
		t.Fatalf("unexpected lengths: short=%d long=%d", len(short), len(long))
	}
	for i := range short {
		if short[i].CGPA != long[i].CGPA {
			t.Fatalf("appending a semester changed point %d: %v != %v", i, short[i].CGPA, long[i].CGPA)
		}
	}
	if short[0].CGPA != 8.20 {
		t.Fatalf("first point = %v, want 8.20", short[0].CGPA)
	}
	if short[1].CGPA != 8.47 {
		t.Fatalf("second point = %v, want 8.47", short[1].CGPA)
	}
	if long[2].CGPA >= long[1].CGPA {
		t.Fatalf("zero-point semester should drag the running CGPA down: %v -> %v", long[1].CGPA, long[2].CGPA)
	}
}

func TestDistribution(t *testing.T) {
	subjects := []*types.Subject{
		subj("B", 7, 3),
		subj("A", 8, 3),
		subj("A", 8, 4),
		subj("B", 7, 3),
		subj("C", 5, 2),
	}
	shares := Distribution(subjects)
	if len(shares) != 3 {
		t.Fatalf("len(shares)=%d, want 3", len(shares))
	}
	// A and B tie at 2; B was seen first.
	if shares[0].Grade != "B" || shares[1].Grade != "A" || shares[2].Grade != "C" {
		t.Fatalf("unexpected order: %v", shares)
	}

	var total float64
	for _, s := range shares {
		total += s.Percentage
	}
	if math.Abs(total-100.0) > 0.1 {
		t.Fatalf("percentages sum to %v, want 100 within 0.1", total)
	}
}

func TestDistributionEmptyAndUnknown(t *testing.T) {
	if got := Distribution(nil); len(got) != 0 {
		t.Fatalf("Distribution(nil)=%v, want empty", got)
	}
	shares := Distribution([]*types.Subject{subj("", 0, 2)})
	if len(shares) != 1 || shares[0].Grade != "Unknown" {
		t.Fatalf("blank grade should bucket as Unknown: %v", shares)
	}
}

func TestYearlyAverages(t *testing.T) {
	entries := []SemesterEntry{
		{Name: "Fall", Year: 2023, GPA: 8.20},
		{Name: "Spring", Year: 2023, GPA: 9.00},
		{Name: "Fall", Year: 2024, GPA: 7.00},
	}
	got := YearlyAverages(entries)
	if len(got) != 2 {
		t.Fatalf("len=%d, want 2", len(got))
	}
	if got[0].Year != 2023 || got[0].GPA != 8.60 {
		t.Fatalf("2023 average = %+v, want 8.60", got[0])
	}
	if got[1].Year != 2024 || got[1].GPA != 7.00 {
		t.Fatalf("2024 average = %+v, want 7.00", got[1])
	}
}

func TestBestWorst(t *testing.T) {
	t.Run("zero_gpa_excluded", func(t *testing.T) {
		entries := []SemesterEntry{
			{Name: "Empty", Year: 2023, GPA: 0},
			{Name: "Fall", Year: 2023, GPA: 8.2},
			{Name: "Spring", Year: 2024, GPA: 6.1},
		}
		best, worst := BestWorst(entries)
		if best == nil || best.Name != "Fall" {
			t.Fatalf("best=%+v, want Fall", best)
		}
		if worst == nil || worst.Name != "Spring" {
			t.Fatalf("worst=%+v, want Spring", worst)
		}
	})

	t.Run("ties_keep_first_occurrence", func(t *testing.T) {
		entries := []SemesterEntry{
			{Name: "First", Year: 2023, GPA: 8.0},
			{Name: "Second", Year: 2024, GPA: 8.0},
		}
		best, worst := BestWorst(entries)
		if best.Name != "First" || worst.Name != "First" {
			t.Fatalf("best=%s worst=%s, want First for both", best.Name, worst.Name)
		}
	})

	t.Run("no_qualifying_semester", func(t *testing.T) {
		best, worst := BestWorst([]SemesterEntry{{Name: "Empty", GPA: 0}})
		if best != nil || worst != nil {
			t.Fatalf("best=%v worst=%v, want nil/nil", best, worst)
		}
	})
}

func TestTopAndBottomSubjects(t *testing.T) {
	subjects := []*types.Subject{
		subj("B", 7, 3),
		subj("O", 10, 4),
		subj("C", 5, 2),
		subj("A", 8, 3),
	}
	top := TopSubjects(subjects, 2)
	if len(top) != 2 || top[0].Grade != "O" || top[1].Grade != "A" {
		t.Fatalf("TopSubjects order wrong: %v %v", top[0].Grade, top[1].Grade)
	}
	bottom := BottomSubjects(subjects, 2)
	if len(bottom) != 2 || bottom[0].Grade != "C" || bottom[1].Grade != "B" {
		t.Fatalf("BottomSubjects order wrong: %v %v", bottom[0].Grade, bottom[1].Grade)
	}
	// input untouched
	if subjects[0].Grade != "B" {
		t.Fatalf("input slice reordered")
	}
}

func TestPerformanceLevel(t *testing.T) {
	cases := []struct {
		gpa  float64
		want string
	}{
		{9.1, "Excellent"},
		{8.5, "Excellent"},
		{7.3, "Good"},
		{6.0, "Average"},
		{4.9, "Below Average"},
	}
	for _, tc := range cases {
		if got := PerformanceLevel(tc.gpa); got.Level != tc.want {
			t.Fatalf("PerformanceLevel(%v)=%q, want %q", tc.gpa, got.Level, tc.want)
		}
	}
}

func TestTotalCredits(t *testing.T) {
	subjects := []*types.Subject{subj("A", 8, 3.5), subj("B", 7, 0.5)}
	if got := TotalCredits(subjects); got != 4.0 {
		t.Fatalf("TotalCredits()=%v, want 4.0", got)
	}
}
