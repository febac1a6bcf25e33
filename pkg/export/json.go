package export

import (
	"encoding/json"
	"os"

	"github.com/deckwerk/deckplan/pkg/errors"
	"github.com/deckwerk/deckplan/pkg/geom"
	"github.com/deckwerk/deckplan/pkg/plan"
)

// MarshalPlan serializes a plan to indented JSON.
func MarshalPlan(p *Plan) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal plan")
	}
	return append(data, '\n'), nil
}

// UnmarshalPlan deserializes a plan from JSON.
func UnmarshalPlan(data []byte) (*Plan, error) {
	var p Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal plan")
	}
	return &p, nil
}

// ReadPlanFile loads a plan document from disk.
func ReadPlanFile(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "plan file not found: %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read plan file")
	}
	return UnmarshalPlan(data)
}

// WritePlanFile stores a plan document on disk.
func WritePlanFile(path string, p *Plan) error {
	data, err := MarshalPlan(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write plan file")
	}
	return nil
}

// roomFile is the on-disk room input format.
// Points are drawing-unit vertex pairs in order; scale is drawing units
// per millimetre (from calibrating against a known real-world distance).
type roomFile struct {
	Points [][2]float64 `json:"points"`
	Scale  float64      `json:"scale"`
}

// ReadRoomFile loads a calibrated room outline from a JSON file.
//
// The expected format:
//
//	{
//	  "points": [[0, 0], [5000, 0], [5000, 4000], [0, 4000]],
//	  "scale": 1.0
//	}
func ReadRoomFile(path string) (plan.Room, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return plan.Room{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "room file not found: %s", path)
	}
	if err != nil {
		return plan.Room{}, errors.Wrap(errors.ErrCodeInternal, err, "read room file")
	}

	var rf roomFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return plan.Room{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal room file")
	}

	pts := make([]geom.Point, len(rf.Points))
	for i, p := range rf.Points {
		pts[i] = geom.Pt(p[0], p[1])
	}

	room := plan.Room{
		Polygon: geom.NewPolygon(pts...),
		Scale:   rf.Scale,
	}
	if err := room.Validate(); err != nil {
		return plan.Room{}, err
	}
	return room, nil
}

// WriteRoomFile stores a room outline on disk in the input format.
func WriteRoomFile(path string, room plan.Room) error {
	rf := roomFile{
		Points: make([][2]float64, room.Polygon.Len()),
		Scale:  room.Scale,
	}
	for i, p := range room.Polygon.Vertices {
		rf.Points[i] = [2]float64{p.X, p.Y}
	}
	data, err := json.MarshalIndent(rf, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal room file")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write room file")
	}
	return nil
}
