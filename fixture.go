package streamassert

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// fixtureEvent is the YAML form of a single recorded event. Exactly one of
// Next, Error and Completed must be set.
//
//   - {time: 10, next: alpha}
//   - {time: 20, error: boom}
//   - {time: 30, completed: true}
type fixtureEvent[T any] struct {
	Time      Tick    `yaml:"time"`
	Next      *T      `yaml:"next"`
	Error     *string `yaml:"error"`
	Completed bool    `yaml:"completed"`
}

func (fe fixtureEvent[T]) event() (RecordedEvent[T], error) {
	set := 0
	if fe.Next != nil {
		set++
	}
	if fe.Error != nil {
		set++
	}
	if fe.Completed {
		set++
	}

	if set != 1 {
		return RecordedEvent[T]{}, fmt.Errorf("event at <%d> must set exactly one of next, error or completed (%d set)", fe.Time, set)
	}

	switch {
	case fe.Next != nil:
		return Next(fe.Time, *fe.Next), nil
	case fe.Error != nil:
		return Error[T](fe.Time, FixtureError{Message: *fe.Error}), nil
	default:
		return Completed[T](fe.Time), nil
	}
}

// DecodeLog reads a YAML event log fixture. Error events are decoded as
// [FixtureError] values. The decoded log is validated against the recording
// contract before being returned.
func DecodeLog[T any](r io.Reader) (Log[T], error) {
	var raw []fixtureEvent[T]
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Log[T]{}, nil
		}

		return nil, fmt.Errorf("decode log fixture: %w", err)
	}

	log := make(Log[T], 0, len(raw))
	for idx, fe := range raw {
		event, err := fe.event()
		if err != nil {
			return nil, fmt.Errorf("decode log fixture: event #%d: %w", idx, err)
		}

		log = append(log, event)
	}

	if err := log.Validate(); err != nil {
		return nil, fmt.Errorf("decode log fixture: %w", err)
	}

	return log, nil
}

// LoadLog reads and decodes the YAML event log fixture at path inside fsys.
func LoadLog[T any](fsys fs.FS, path string) (Log[T], error) {
	contents, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("load log fixture %q: %w", path, err)
	}

	return DecodeLog[T](bytes.NewReader(contents))
}
