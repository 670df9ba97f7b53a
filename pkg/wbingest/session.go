package wbingest

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/wbingest-go/pkg/wbingest/models"
)

// Session holds the latest successful result of each assembler for one
// caller. It is a plain value: Ingest methods return an updated copy and
// leave the session passed in untouched, so the caller decides where the
// current session is kept and when it is replaced.
type Session struct {
	ID        uuid.UUID                      `json:"id"`
	CreatedAt time.Time                      `json:"created_at"`
	UpdatedAt time.Time                      `json:"updated_at"`
	Demand    *models.DemandResult           `json:"demand,omitempty"`
	LoadCurve *models.LoadCurveResult        `json:"load_curve,omitempty"`
	Capacity  *models.CapacityTemplateResult `json:"capacity_template,omitempty"`
}

// NewSession returns an empty session.
func NewSession() Session {
	now := time.Now().UTC()
	return Session{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// IngestDemand parses a demand workbook into a copy of s. On failure s is
// returned unchanged with the error.
func (in *Ingestor) IngestDemand(s Session, path string) (Session, error) {
	res, err := in.ParseDemand(path)
	if err != nil {
		return s, err
	}
	s.Demand = res
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

// IngestDemandReader is IngestDemand for a workbook read from r.
func (in *Ingestor) IngestDemandReader(s Session, r io.Reader, name string) (Session, error) {
	res, err := in.ParseDemandReader(r, name)
	if err != nil {
		return s, err
	}
	s.Demand = res
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

// IngestLoadCurve parses a load curve workbook into a copy of s.
func (in *Ingestor) IngestLoadCurve(s Session, path string) (Session, error) {
	res, err := in.ParseLoadCurve(path)
	if err != nil {
		return s, err
	}
	s.LoadCurve = res
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

// IngestLoadCurveReader is IngestLoadCurve for a workbook read from r.
func (in *Ingestor) IngestLoadCurveReader(s Session, r io.Reader, name string) (Session, error) {
	res, err := in.ParseLoadCurveReader(r, name)
	if err != nil {
		return s, err
	}
	s.LoadCurve = res
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

// IngestCapacityTemplate parses a capacity template workbook into a copy of s.
func (in *Ingestor) IngestCapacityTemplate(s Session, path string) (Session, error) {
	res, err := in.ParseCapacityTemplate(path)
	if err != nil {
		return s, err
	}
	s.Capacity = res
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

// IngestCapacityTemplateReader is IngestCapacityTemplate for a workbook read from r.
func (in *Ingestor) IngestCapacityTemplateReader(s Session, r io.Reader, name string) (Session, error) {
	res, err := in.ParseCapacityTemplateReader(r, name)
	if err != nil {
		return s, err
	}
	s.Capacity = res
	s.UpdatedAt = time.Now().UTC()
	return s, nil
}

// Warnings returns the warnings of every result held by s.
func (s Session) Warnings() []models.Warning {
	var out []models.Warning
	if s.Demand != nil {
		out = append(out, s.Demand.Warnings...)
	}
	if s.LoadCurve != nil {
		out = append(out, s.LoadCurve.Warnings...)
	}
	if s.Capacity != nil {
		out = append(out, s.Capacity.Warnings...)
	}
	return out
}
