package eventfile

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/rocinante/internal/event"
)

var errNotAList = errors.New("expected a list of events or an \"events\" key")

// decodeYAML accepts a top-level sequence of events or a mapping with an
// "events" sequence.
func decodeYAML(data []byte) ([]record, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing YAML document: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind == yaml.MappingNode {
		node = mappingValue(node, "events")
	}
	if node == nil || node.Kind != yaml.SequenceNode {
		return nil, errNotAList
	}

	records := make([]record, len(node.Content))
	for i, item := range node.Content {
		var e event.Event
		if err := item.Decode(&e); err != nil {
			id := ""
			if item.Kind == yaml.MappingNode {
				if v := mappingValue(item, "id"); v != nil {
					id = v.Value
				}
			}
			records[i] = record{id: id, err: fmt.Errorf("decoding event: %w", err)}
			continue
		}
		records[i] = record{event: &e}
	}
	return records, nil
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func encodeYAML(w io.Writer, events []*event.Event) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Events: events}); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}
