package service

import (
	"context"
	"testing"
	"time"

	"github.com/femcoders/pettrack/internal/domain"
)

func seedRecords() (*fakeRecordRepo, *fakePetRepo) {
	pets := newFakePetRepo(
		&domain.Pet{ID: 1, Name: "Luna", Species: "Perro", OwnerID: 2, OwnerUsername: "debora"},
		&domain.Pet{ID: 7, Name: "Rocky", Species: "Perro", OwnerID: 3, OwnerUsername: "marc"},
	)
	records := newFakeRecordRepo(
		&domain.MedicalRecord{ID: 10, Description: "Revision anual", Weight: 20.5, Type: domain.RecordTypeRevision, PetID: 1, PetName: "Luna", OwnerID: 2, CreatedByID: 4},
		&domain.MedicalRecord{ID: 30, Description: "Cirugia menor", Weight: 18.0, Type: domain.RecordTypeSurgery, PetID: 7, PetName: "Rocky", OwnerID: 3, CreatedByID: 4},
	)
	return records, pets
}

func TestMedicalRecordListScoping(t *testing.T) {
	records, pets := seedRecords()
	svc := NewMedicalRecordService(records, pets, nil)

	if _, err := svc.List(context.Background(), nil); errCode(err) != "UNAUTHENTICATED" {
		t.Errorf("anonymous list: code = %s, want UNAUTHENTICATED", errCode(err))
	}

	all, err := svc.List(context.Background(), veterinarian(4, "vet"))
	if err != nil {
		t.Fatalf("veterinarian list: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("veterinarian sees %d records, want 2", len(all))
	}

	mine, err := svc.List(context.Background(), owner(2, "debora"))
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if len(mine) != 1 || mine[0].OwnerID != 2 {
		t.Errorf("owner scoping leaked: %+v", mine)
	}
}

func TestMedicalRecordGetByIDScoping(t *testing.T) {
	records, pets := seedRecords()
	svc := NewMedicalRecordService(records, pets, nil)

	tests := []struct {
		name     string
		caller   *domain.User
		id       int64
		wantCode string
	}{
		{"veterinarian reads any", veterinarian(4, "vet"), 30, ""},
		{"owner reads own", owner(3, "marc"), 30, ""},
		{"non-owner denied", owner(2, "debora"), 30, "FORBIDDEN"},
		{"anonymous", nil, 30, "UNAUTHENTICATED"},
		{"missing record", veterinarian(4, "vet"), 99, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetByID(context.Background(), tt.caller, tt.id)
			if code := errCode(err); code != tt.wantCode {
				t.Fatalf("code = %s, want %s", code, tt.wantCode)
			}
		})
	}
}

func TestMedicalRecordListByPetName(t *testing.T) {
	records, pets := seedRecords()
	svc := NewMedicalRecordService(records, pets, nil)

	// veterinarian sees the pet's full history
	got, err := svc.ListByPetName(context.Background(), veterinarian(4, "vet"), "rocky")
	if err != nil {
		t.Fatalf("veterinarian: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("veterinarian sees %d records, want 1", len(got))
	}

	// the owner sees their pet's records
	got, err = svc.ListByPetName(context.Background(), owner(3, "marc"), "Rocky")
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("owner sees %d records, want 1", len(got))
	}

	// another owner asking for a pet with records is denied, not given an
	// empty list
	_, err = svc.ListByPetName(context.Background(), owner(2, "debora"), "Rocky")
	if errCode(err) != "FORBIDDEN" {
		t.Errorf("non-owner: code = %s, want FORBIDDEN", errCode(err))
	}

	// a pet without records yields an empty list for anyone
	got, err = svc.ListByPetName(context.Background(), owner(2, "debora"), "Ghost")
	if err != nil {
		t.Fatalf("no records: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("no-records query returned %d records", len(got))
	}

	if _, err := svc.ListByPetName(context.Background(), nil, "Rocky"); errCode(err) != "UNAUTHENTICATED" {
		t.Errorf("anonymous: code = %s, want UNAUTHENTICATED", errCode(err))
	}
}

func TestMedicalRecordCreate(t *testing.T) {
	records, pets := seedRecords()
	svc := NewMedicalRecordService(records, pets, nil)

	input := MedicalRecordInput{
		Description: "Vacuna",
		Weight:      12.0,
		Date:        time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Type:        domain.RecordTypeVaccination,
		PetID:       7,
	}

	if _, err := svc.Create(context.Background(), owner(3, "marc"), input); errCode(err) != "FORBIDDEN" {
		t.Fatalf("owner create: code = %s, want FORBIDDEN", errCode(err))
	}
	if records.saves != 0 {
		t.Fatalf("denied create reached the repository %d times", records.saves)
	}

	record, err := svc.Create(context.Background(), veterinarian(4, "vet"), input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if record.ID == 0 {
		t.Error("record was not assigned an id")
	}
	if record.PetName != "Rocky" || record.OwnerID != 3 {
		t.Errorf("pet linkage = %q/%d, want Rocky/3", record.PetName, record.OwnerID)
	}
	if record.CreatedByID != 4 {
		t.Errorf("created by = %d, want 4", record.CreatedByID)
	}

	input.PetID = 99
	if _, err := svc.Create(context.Background(), veterinarian(4, "vet"), input); errCode(err) != "NOT_FOUND" {
		t.Errorf("unknown pet: code = %s, want NOT_FOUND", errCode(err))
	}
}

func TestMedicalRecordUpdateRepointsPet(t *testing.T) {
	records, pets := seedRecords()
	svc := NewMedicalRecordService(records, pets, nil)

	record, err := svc.Update(context.Background(), veterinarian(4, "vet"), 10, MedicalRecordInput{
		Description: "Revision y vacuna",
		Weight:      21.0,
		Date:        time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Type:        domain.RecordTypeVaccination,
		PetID:       7,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if record.PetID != 7 || record.PetName != "Rocky" || record.OwnerID != 3 {
		t.Errorf("repoint failed: %+v", record)
	}

	if _, err := svc.Update(context.Background(), owner(2, "debora"), 10, MedicalRecordInput{}); errCode(err) != "FORBIDDEN" {
		t.Errorf("owner update: code = %s, want FORBIDDEN", errCode(err))
	}
}

func TestMedicalRecordDelete(t *testing.T) {
	records, pets := seedRecords()
	svc := NewMedicalRecordService(records, pets, nil)

	if _, err := svc.Delete(context.Background(), owner(3, "marc"), 30); errCode(err) != "FORBIDDEN" {
		t.Fatalf("owner delete: code = %s, want FORBIDDEN", errCode(err))
	}
	if records.deletes != 0 {
		t.Fatalf("denied delete reached the repository %d times", records.deletes)
	}

	message, err := svc.Delete(context.Background(), veterinarian(4, "vet"), 30)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if message != "Medical record with id: 30 from pet Rocky has been deleted successfully" {
		t.Errorf("message = %q", message)
	}
}
