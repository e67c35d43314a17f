package tasklist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sandeepkv93/animtodo/internal/model"
)

var ErrMalformedSnapshot = errors.New("tasklist: malformed snapshot")

const snapshotSchemaURL = "animtodo://schemas/tasks.json"

const snapshotSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "id": {"type": "integer"},
      "title": {"type": "string"},
      "completed": {"type": "boolean"},
      "priority": {"type": "string"}
    }
  }
}`

var compiledSnapshotSchema = jsonschema.MustCompileString(snapshotSchemaURL, snapshotSchema)

// EncodeSnapshot renders tasks as the persisted JSON array, in list order.
func EncodeSnapshot(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return json.Marshal(tasks)
}

// DecodeSnapshot checks the document shape against the snapshot schema before
// decoding it. Field values are not judged here; Store.Replace drops records
// that fail Task.Validate one at a time.
func DecodeSnapshot(raw []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedSnapshot)
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if err := compiledSnapshotSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	var tasks []model.Task
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return tasks, nil
}
