package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dhamma-seva/registration-api/internal/models"
)

func TestHandleCreateParticipant(t *testing.T) {
	db := setupTestDB(t)
	course := makeCourse(t, db, "10-Day March", day(1), day(10))
	handler := NewParticipantHandler(db, testLogger())

	req := &CreateParticipantRequest{}
	req.Body.CourseID = course.ID
	req.Body.FullName = "Direct Reg"
	req.Body.ConfNo = "na" // sentinel

	resp, err := handler.HandleCreateParticipant(context.Background(), req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if resp.Body.Status != models.StatusNoResponse || resp.Body.ProcessStage != models.StageRegistered {
		t.Errorf("expected fresh participant defaults, got %s stage %d", resp.Body.Status, resp.Body.ProcessStage)
	}
	if resp.Body.ConfNo != nil {
		t.Errorf("sentinel conf no should be unset, got %v", *resp.Body.ConfNo)
	}
}

func TestHandleCreateParticipant_DuplicateConfNo(t *testing.T) {
	db := setupTestDB(t)
	course := makeCourse(t, db, "10-Day March", day(1), day(10))
	handler := NewParticipantHandler(db, testLogger())

	first := &CreateParticipantRequest{}
	first.Body.CourseID = course.ID
	first.Body.FullName = "First"
	first.Body.ConfNo = "OM101"
	if _, err := handler.HandleCreateParticipant(context.Background(), first); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := &CreateParticipantRequest{}
	second.Body.CourseID = course.ID
	second.Body.FullName = "Second"
	second.Body.ConfNo = "OM101"

	_, err := handler.HandleCreateParticipant(context.Background(), second)
	if err == nil {
		t.Fatal("expected duplicate confirmation number error")
	}
	if se, ok := err.(huma.StatusError); !ok || se.GetStatus() != 409 {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestHandleUpdateParticipant(t *testing.T) {
	db := setupTestDB(t)
	course := makeCourse(t, db, "10-Day March", day(1), day(10))
	p := makeParticipant(t, db, course.ID, "Before Edit")
	handler := NewParticipantHandler(db, testLogger())

	req := &UpdateParticipantRequest{ID: p.ID}
	req.Body.FullName = str("After Edit")
	req.Body.MedicalInfo = str("None declared")
	req.Body.RoomNo = str(" NA ") // sentinel clears

	resp, err := handler.HandleUpdateParticipant(context.Background(), req)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if resp.Body.FullName != "After Edit" {
		t.Errorf("name not updated: %s", resp.Body.FullName)
	}
	if resp.Body.MedicalInfo != "None declared" {
		t.Errorf("medical info not updated: %s", resp.Body.MedicalInfo)
	}
	if resp.Body.RoomNo != nil {
		t.Errorf("sentinel room value should clear the field, got %v", *resp.Body.RoomNo)
	}
}

func TestHandleUpdateParticipant_ResourceConflict(t *testing.T) {
	db := setupTestDB(t)
	course := makeCourse(t, db, "10-Day March", day(1), day(10))
	handler := NewParticipantHandler(db, testLogger())

	holder := makeParticipant(t, db, course.ID, "Holder")
	db.Model(&holder).Updates(map[string]interface{}{
		"status":         models.StatusAttending,
		"pagoda_cell_no": "P3",
	})

	p := makeParticipant(t, db, course.ID, "Editee")
	req := &UpdateParticipantRequest{ID: p.ID}
	req.Body.PagodaCellNo = str("P3")

	_, err := handler.HandleUpdateParticipant(context.Background(), req)
	if err == nil {
		t.Fatal("expected meditation cell conflict")
	}
	se, ok := err.(huma.StatusError)
	if !ok || se.GetStatus() != 409 {
		t.Fatalf("expected 409, got %v", err)
	}
	if !strings.Contains(err.Error(), "meditation cell") {
		t.Errorf("conflict must name the meditation cell, got %q", err.Error())
	}
}

func TestHandleDeleteParticipant(t *testing.T) {
	db := setupTestDB(t)
	course := makeCourse(t, db, "10-Day March", day(1), day(10))
	p := makeParticipant(t, db, course.ID, "Leaving")
	handler := NewParticipantHandler(db, testLogger())

	if _, err := handler.HandleDeleteParticipant(context.Background(), &DeleteParticipantRequest{ID: p.ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	_, err := handler.HandleDeleteParticipant(context.Background(), &DeleteParticipantRequest{ID: p.ID})
	if err == nil {
		t.Fatal("expected not found on second delete")
	}
	if se, ok := err.(huma.StatusError); !ok || se.GetStatus() != 404 {
		t.Errorf("expected 404, got %v", err)
	}
}
