package handlers

import (
	"context"
	"testing"

	"github.com/dhamma-seva/registration-api/internal/models"
)

func importRequest(courseID uint, students ...ImportStudent) *ImportRequest {
	req := &ImportRequest{ID: courseID}
	req.Body.Students = students
	return req
}

func TestHandleImport_Reimport(t *testing.T) {
	db := setupTestDB(t)
	course := makeCourse(t, db, "10-Day March", day(1), day(10))
	handler := NewImportHandler(db, testLogger())

	roster := []ImportStudent{
		{Name: "Alice Amber", Email: "alice@example.com", ConfNo: "OM101"},
		{Name: "Bob Birch", Phone: "555-0101"},
		{Name: "Carol Cedar", ConfNo: "NF202"},
	}

	resp, err := handler.HandleImport(context.Background(), importRequest(course.ID, roster...))
	if err != nil {
		t.Fatalf("first import failed: %v", err)
	}
	if resp.Body.Added != 3 || resp.Body.Skipped != 0 {
		t.Fatalf("expected {3, 0}, got {%d, %d}", resp.Body.Added, resp.Body.Skipped)
	}

	// Simulate processing between the imports.
	var alice models.Participant
	db.Where("full_name = ?", "Alice Amber").First(&alice)
	db.Model(&alice).Updates(map[string]interface{}{
		"status":        models.StatusAttending,
		"process_stage": models.StageOnboarded,
		"room_no":       "R-1",
	})

	resp, err = handler.HandleImport(context.Background(), importRequest(course.ID, roster...))
	if err != nil {
		t.Fatalf("second import failed: %v", err)
	}
	if resp.Body.Added != 0 || resp.Body.Skipped != 3 {
		t.Fatalf("expected {0, 3}, got {%d, %d}", resp.Body.Added, resp.Body.Skipped)
	}

	// Re-importing must not have touched Alice's state.
	db.First(&alice, alice.ID)
	if alice.Status != models.StatusAttending || alice.ProcessStage != models.StageOnboarded {
		t.Errorf("re-import mutated processed participant: %s stage %d", alice.Status, alice.ProcessStage)
	}
	if alice.RoomNo == nil || *alice.RoomNo != "R-1" {
		t.Errorf("re-import dropped room assignment: %v", alice.RoomNo)
	}

	var count int64
	db.Model(&models.Participant{}).Where("course_id = ?", course.ID).Count(&count)
	if count != 3 {
		t.Errorf("expected 3 participants, got %d", count)
	}
}

func TestHandleImport_CaseInsensitiveAndEmptyNames(t *testing.T) {
	db := setupTestDB(t)
	course := makeCourse(t, db, "10-Day March", day(1), day(10))
	handler := NewImportHandler(db, testLogger())

	resp, err := handler.HandleImport(context.Background(), importRequest(course.ID,
		ImportStudent{Name: "John Doe"},
		ImportStudent{Name: " john doe "},
		ImportStudent{Name: ""},
	))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if resp.Body.Added != 1 {
		t.Errorf("expected 1 added, got %d", resp.Body.Added)
	}
	if resp.Body.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", resp.Body.Skipped)
	}
}

func TestHandleImport_ConfNoMatch(t *testing.T) {
	db := setupTestDB(t)
	course := makeCourse(t, db, "10-Day March", day(1), day(10))
	handler := NewImportHandler(db, testLogger())

	existing := models.Participant{
		CourseID: course.ID,
		FullName: "Original Name",
		ConfNo:   str("OM101"),
		Status:   models.StatusNoResponse,
	}
	if err := db.Create(&existing).Error; err != nil {
		t.Fatalf("failed to seed participant: %v", err)
	}

	// Different name, same confirmation code: duplicate.
	resp, err := handler.HandleImport(context.Background(), importRequest(course.ID,
		ImportStudent{Name: "Renamed Person", ConfNo: "OM101"},
	))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if resp.Body.Added != 0 || resp.Body.Skipped != 1 {
		t.Errorf("expected {0, 1}, got {%d, %d}", resp.Body.Added, resp.Body.Skipped)
	}
}

func TestHandleImport_NewRowsGetDefaults(t *testing.T) {
	db := setupTestDB(t)
	course := makeCourse(t, db, "10-Day March", day(1), day(10))
	handler := NewImportHandler(db, testLogger())

	age := 34
	_, err := handler.HandleImport(context.Background(), importRequest(course.ID,
		ImportStudent{Name: "Dana Dale", Age: &age, Gender: "F", ConfNo: " NA "},
	))
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}

	var p models.Participant
	if err := db.Where("full_name = ?", "Dana Dale").First(&p).Error; err != nil {
		t.Fatalf("participant not created: %v", err)
	}
	if p.Status != models.StatusNoResponse {
		t.Errorf("expected No Response, got %s", p.Status)
	}
	if p.ProcessStage != models.StageRegistered {
		t.Errorf("expected stage 0, got %d", p.ProcessStage)
	}
	if p.ConfNo != nil {
		t.Errorf("sentinel confirmation code should be unset, got %v", *p.ConfNo)
	}
	if p.Age == nil || *p.Age != 34 {
		t.Errorf("age not stored: %v", p.Age)
	}
}
