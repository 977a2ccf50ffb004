// Package exchange implements the user-initiated export/import documents:
// versioned JSON files carrying one schedule variant plus the catalogs it
// references. Exports are written through the blob store; imports accept every
// historical document version and merge catalogs instead of replacing them.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"schedcore/internal/blob"
	"schedcore/internal/migrate"
	"schedcore/pkg/domain"
)

// CurrentVersion is written on new exports.
const CurrentVersion = "4.0"

var knownVersions = map[string]bool{
	"1.0": true,
	"2.0": true,
	"3.0": true,
	"4.0": true,
}

// Document is the export/import file format. Earlier versions omit the
// top-level catalogs and embed courses or instructors inside Data; the import
// path normalizes all of them.
type Document struct {
	Version       string              `json:"version"`
	ExportDate    string              `json:"exportDate"`
	ScheduleName  string              `json:"scheduleName"`
	Programs      []domain.Program    `json:"programs,omitempty"`
	CourseCatalog []domain.Course     `json:"courseCatalog,omitempty"`
	Instructors   []domain.Instructor `json:"instructors,omitempty"`
	Data          any                 `json:"data"`
}

// BuildExport assembles a current-version document for the named variant,
// including the full catalogs so the file stands alone.
func BuildExport(st *domain.Store, scheduleName string, now time.Time) (Document, error) {
	if scheduleName == "" {
		scheduleName = st.CurrentSchedule
	}
	variant, ok := st.Schedules[scheduleName]
	if !ok {
		return Document{}, domain.NotFoundError{Entity: "schedule", ID: scheduleName}
	}
	return Document{
		Version:       CurrentVersion,
		ExportDate:    now.UTC().Format(time.RFC3339),
		ScheduleName:  scheduleName,
		Programs:      append([]domain.Program{}, st.Programs...),
		CourseCatalog: append([]domain.Course{}, st.CourseCatalog...),
		Instructors:   append([]domain.Instructor{}, st.Instructors...),
		Data:          variant.Clone(),
	}, nil
}

// ExportKey names the blob holding one export: exports/<schedule>-<date>.json.
func ExportKey(scheduleName string, now time.Time) string {
	return fmt.Sprintf("exports/%s-%s.json", scheduleName, now.UTC().Format("2006-01-02"))
}

// Export serializes the named variant and writes it through the blob store.
func Export(ctx context.Context, store domain.PersistentStore, bs blob.Store, scheduleName string, now time.Time) (blob.Info, Document, error) {
	doc, err := BuildExport(store.ExportState(), scheduleName, now)
	if err != nil {
		return blob.Info{}, Document{}, err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return blob.Info{}, Document{}, fmt.Errorf("encode export: %w", err)
	}
	info, err := bs.Put(ctx, ExportKey(doc.ScheduleName, now), bytes.NewReader(data), blob.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"schedule": doc.ScheduleName, "version": doc.Version},
	})
	if err != nil {
		return blob.Info{}, Document{}, err
	}
	return info, doc, nil
}

// ImportOptions parameterizes Apply. TargetName overrides the document's
// schedule name; Overwrite allows replacing an existing variant of that name.
type ImportOptions struct {
	TargetName string
	Overwrite  bool
}

// Apply merges a decoded document into the store in place. Catalogs merge by
// id (programs additionally by name); the variant payload is normalized
// through the migration loader's extraction rules and installed under the
// target name, which becomes current.
func Apply(st *domain.Store, doc Document, opts ImportOptions) error {
	if !knownVersions[doc.Version] {
		return fmt.Errorf("unsupported export version %q", doc.Version)
	}
	name := opts.TargetName
	if name == "" {
		name = doc.ScheduleName
	}
	if name == "" {
		name = domain.DefaultScheduleName
	}
	if _, exists := st.Schedules[name]; exists && !opts.Overwrite {
		return domain.RefusalError{Reason: domain.RefusalDuplicateSchedule, Entity: "schedule", ID: name}
	}

	for _, program := range doc.Programs {
		if program.ID == "" || hasProgram(st, program) {
			continue
		}
		st.Programs = append(st.Programs, program)
	}
	for _, course := range doc.CourseCatalog {
		if course.ID == "" {
			continue
		}
		if _, exists := st.FindCourse(course.ID); exists {
			continue
		}
		st.CourseCatalog = append(st.CourseCatalog, course.Clone())
	}
	for _, instructor := range doc.Instructors {
		if instructor.ID == "" {
			continue
		}
		if _, exists := st.FindInstructor(instructor.ID); exists {
			continue
		}
		if instructor.Color == "" {
			instructor.Color = domain.DefaultInstructorColor
		}
		st.Instructors = append(st.Instructors, instructor)
	}

	switch data := doc.Data.(type) {
	case *domain.ScheduleVariant:
		st.Schedules[name] = data.Clone()
	default:
		st.Schedules[name] = migrate.ExtractVariant(data, st)
	}
	st.CurrentSchedule = name
	return nil
}

func hasProgram(st *domain.Store, program domain.Program) bool {
	for _, existing := range st.Programs {
		if existing.ID == program.ID {
			return true
		}
		if program.Name != "" && existing.Name == program.Name {
			return true
		}
	}
	return false
}

// Import decodes raw document bytes and applies them to the store.
func Import(ctx context.Context, store domain.PersistentStore, raw []byte, opts ImportOptions) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("decode import: %w", err)
	}
	st := store.ExportState()
	if err := Apply(st, doc, opts); err != nil {
		return doc, err
	}
	store.ImportState(st)
	return doc, nil
}
