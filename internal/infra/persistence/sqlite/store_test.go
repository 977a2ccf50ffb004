package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	"schedcore/pkg/domain"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := NewStore(path, nil, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sched.db")
	s := openStore(t, path)

	_, err := s.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		program, err := tx.AddProgram("CS")
		if err != nil {
			return err
		}
		if _, err := tx.AddCourse(domain.Course{ID: "c1", Name: "Algorithms", Credits: 4, ProgramID: &program.ID}); err != nil {
			return err
		}
		room, err := tx.AddClassroom("101")
		if err != nil {
			return err
		}
		if _, err := tx.AddTimeslot(room.ID, domain.Monday, "09:00", "10:00"); err != nil {
			return err
		}
		return tx.Place(room.ID, domain.Monday, "09:00-10:00", "c1", "", "")
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openStore(t, path)
	defer reopened.Close()

	st := reopened.ExportState()
	if len(st.CourseCatalog) != 1 || st.CourseCatalog[0].Name != "Algorithms" {
		t.Fatalf("catalog lost across reopen: %+v", st.CourseCatalog)
	}
	variant := st.CurrentVariant()
	if len(variant.Classrooms) != 1 || variant.Classrooms[0].RoomNumber != "101" {
		t.Fatalf("classrooms lost: %+v", variant.Classrooms)
	}
	roomID := variant.Classrooms[0].ID
	placements := variant.Schedule[roomID][domain.Monday]["09:00-10:00"]
	if len(placements) != 1 || placements[0].CourseID != "c1" {
		t.Fatalf("placements lost: %+v", variant.Schedule)
	}
	if placements[0].Modality != domain.ModalityInPerson {
		t.Fatalf("modality default lost: %+v", placements[0])
	}
}

func TestLegacySnapshotNormalizedOnLoadAndWrittenBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE state (bucket TEXT PRIMARY KEY, payload BLOB NOT NULL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	legacy := `{
		"instructors": [{"id": "i1", "name": "Rivera"}],
		"courses": [{"id": "c1", "name": "Algorithms", "credits": 4, "instructorId": "i1"}],
		"classrooms": [{"id": "r1", "roomNumber": "101", "timeslots": ["09:00-10:00"]}],
		"schedule": {"r1": {"Monday": {"09:00-10:00": "c1"}}}
	}`
	if _, err := db.Exec(`INSERT INTO state(bucket,payload) VALUES(?,?)`, "store", []byte(legacy)); err != nil {
		t.Fatalf("seed legacy payload: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw db: %v", err)
	}

	s := openStore(t, path)
	st := s.ExportState()
	if len(st.CourseCatalog) != 1 || st.CourseCatalog[0].Name != "Algorithms" {
		t.Fatalf("legacy course not hoisted into the catalog: %+v", st.CourseCatalog)
	}
	variant := st.CurrentVariant()
	if variant.CourseInstructors["c1"] != "i1" {
		t.Fatalf("legacy instructor assignment not hoisted: %+v", variant.CourseInstructors)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// The upgraded snapshot is written back on load, so the stored payload
	// should already be in the current shape.
	db, err = sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen raw db: %v", err)
	}
	defer db.Close()
	var payload []byte
	if err := db.QueryRow(`SELECT payload FROM state WHERE bucket = ?`, "store").Scan(&payload); err != nil {
		t.Fatalf("select payload: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(payload, &doc); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if _, ok := doc["schedules"]; !ok {
		t.Fatalf("written-back payload still legacy shaped: %s", payload)
	}
	if _, ok := doc["courseCatalog"]; !ok {
		t.Fatalf("written-back payload missing catalog: %s", payload)
	}
}

func TestImportStatePersistsImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.db")
	s := openStore(t, path)

	st := domain.NewDefaultStore()
	st.CourseCatalog = []domain.Course{{ID: "imported", Name: "Compilers", Credits: 4}}
	s.ImportState(st)
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened := openStore(t, path)
	defer reopened.Close()
	if got := reopened.ExportState().CourseCatalog; len(got) != 1 || got[0].ID != "imported" {
		t.Fatalf("imported state not durable: %+v", got)
	}
}
