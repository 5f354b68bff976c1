package audit

import (
	"encoding/json"
	"fmt"
	"time"
)

// Snapshotter is implemented by every model that shows up in the audit
// trail. Each implementation enumerates its persisted public fields by
// name; storage internals and secrets never appear in a snapshot.
type Snapshotter interface {
	AuditSnapshot() map[string]any
}

// encodeSnapshot turns a before/after value into its stored JSON form.
// Accepted inputs: nil (no snapshot), a Snapshotter, or a plain field map.
func encodeSnapshot(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case Snapshotter:
		return marshalFields(s.AuditSnapshot())
	case map[string]any:
		return marshalFields(s)
	default:
		return "", fmt.Errorf("audit: unsupported snapshot type %T", v)
	}
}

func marshalFields(fields map[string]any) (string, error) {
	out := make(map[string]any, len(fields))
	for name, value := range fields {
		out[name] = normalizeValue(value)
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("audit: marshal snapshot: %w", err)
	}
	return string(b), nil
}

// Datetimes are stored as ISO-8601 strings so snapshots stay readable and
// comparable regardless of the column type behind the model.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.UTC().Format(time.RFC3339)
	default:
		return v
	}
}
