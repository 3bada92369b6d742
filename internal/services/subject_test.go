package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/gradepoint/gradepoint-backend/internal/platform/apierr"
)

func TestCreateSubjectRecomputesSemesterCache(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	env.mustSeedGrades(t, userID)
	semester := env.mustCreateSemester(t, userID, "Fall 2025", 2025)

	env.mustCreateSubject(t, userID, semester.ID, "Algorithms", "A", 4)
	env.mustCreateSubject(t, userID, semester.ID, "Databases", "O", 3)
	env.mustCreateSubject(t, userID, semester.ID, "Networks", "B", 3)

	// (8*4 + 10*3 + 7*3) / (10*10) * 10 = 8.3
	reloaded := env.reloadSemester(t, semester.ID)
	if reloaded.GPA != 8.3 {
		t.Fatalf("expected GPA 8.3, got %v", reloaded.GPA)
	}
	if reloaded.TotalCredits != 10 {
		t.Fatalf("expected 10 total credits, got %v", reloaded.TotalCredits)
	}
	if reloaded.Version != 3 {
		t.Fatalf("expected version 3 after three recomputes, got %d", reloaded.Version)
	}
}

func TestUpdateSubjectGradeRecomputes(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	ctx := context.Background()
	env.mustSeedGrades(t, userID)
	semester := env.mustCreateSemester(t, userID, "Fall 2025", 2025)

	env.mustCreateSubject(t, userID, semester.ID, "Algorithms", "A", 4)
	env.mustCreateSubject(t, userID, semester.ID, "Databases", "O", 3)
	target := env.mustCreateSubject(t, userID, semester.ID, "Networks", "B", 3)

	newGrade := "U"
	updated, err := env.subjects.Update(ctx, userID, target.ID, UpdateSubjectInput{Grade: &newGrade})
	if err != nil {
		t.Fatalf("update subject: %v", err)
	}
	if updated.Grade != "U" || updated.GradePoints != 0 {
		t.Fatalf("grade not resnapshotted: %+v", updated)
	}

	// (8*4 + 10*3 + 0*3) / 100 * 10 = 6.2
	reloaded := env.reloadSemester(t, semester.ID)
	if reloaded.GPA != 6.2 {
		t.Fatalf("expected GPA 6.2 after downgrade, got %v", reloaded.GPA)
	}
}

func TestDeleteSubjectRecomputes(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	ctx := context.Background()
	env.mustSeedGrades(t, userID)
	semester := env.mustCreateSemester(t, userID, "Fall 2025", 2025)

	env.mustCreateSubject(t, userID, semester.ID, "Algorithms", "A", 4)
	dropped := env.mustCreateSubject(t, userID, semester.ID, "Databases", "O", 3)
	env.mustCreateSubject(t, userID, semester.ID, "Networks", "B", 3)

	if err := env.subjects.Delete(ctx, userID, dropped.ID); err != nil {
		t.Fatalf("delete subject: %v", err)
	}

	// (8*4 + 7*3) / 70 * 10 = 7.57
	reloaded := env.reloadSemester(t, semester.ID)
	if reloaded.GPA != 7.57 {
		t.Fatalf("expected GPA 7.57 after delete, got %v", reloaded.GPA)
	}
	if reloaded.TotalCredits != 7 {
		t.Fatalf("expected 7 credits after delete, got %v", reloaded.TotalCredits)
	}
}

func TestBulkCreateAssignsSequentialOrder(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	env.mustSeedGrades(t, userID)
	semester := env.mustCreateSemester(t, userID, "Fall 2025", 2025)

	created, err := env.subjects.BulkCreate(context.Background(), userID, semester.ID, []CreateSubjectInput{
		{Name: "One", Grade: "A", Credits: 3},
		{Name: "Two", Grade: "B", Credits: 3},
		{Name: "Three", Grade: "O", Credits: 2},
	})
	if err != nil {
		t.Fatalf("bulk create: %v", err)
	}
	for i, subject := range created {
		if subject.Order != i {
			t.Fatalf("subject %d has order %d", i, subject.Order)
		}
	}
}

func TestCreateSubjectUnknownGradeRejected(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	env.mustSeedGrades(t, userID)
	semester := env.mustCreateSemester(t, userID, "Fall 2025", 2025)

	_, err := env.subjects.Create(context.Background(), userID, semester.ID, CreateSubjectInput{
		Name:    "Mystery",
		Grade:   "Z",
		Credits: 3,
	})
	if !apierr.Is(err, apierr.CodeValidation) {
		t.Fatalf("expected validation error for unknown grade, got %v", err)
	}
}

func TestCreateSubjectInvalidCredits(t *testing.T) {
	env := newTestEnv(t)
	userID := uuid.New()
	env.mustSeedGrades(t, userID)
	semester := env.mustCreateSemester(t, userID, "Fall 2025", 2025)

	cases := []struct {
		name    string
		credits float64
	}{
		{"below minimum", 0.25},
		{"above maximum", 10.5},
		{"off the half-credit grid", 3.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.subjects.Create(context.Background(), userID, semester.ID, CreateSubjectInput{
				Name:    "Course",
				Grade:   "A",
				Credits: tc.credits,
			})
			if !apierr.Is(err, apierr.CodeValidation) {
				t.Fatalf("expected validation error for credits %v, got %v", tc.credits, err)
			}
		})
	}
}

func TestSubjectOwnershipEnforced(t *testing.T) {
	env := newTestEnv(t)
	owner := uuid.New()
	intruder := uuid.New()
	ctx := context.Background()

	env.mustSeedGrades(t, owner)
	semester := env.mustCreateSemester(t, owner, "Fall 2025", 2025)
	subject := env.mustCreateSubject(t, owner, semester.ID, "Algorithms", "A", 4)

	if _, err := env.subjects.ListBySemester(ctx, intruder, semester.ID); !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found listing foreign semester, got %v", err)
	}
	if err := env.subjects.Delete(ctx, intruder, subject.ID); !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found deleting foreign subject, got %v", err)
	}
}
