package config

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/oasisprotocol/sns-launch/common/logging"
)

var logger = logging.GetLogger(ModuleName)

var yamlUnmarshalerType = reflect.TypeOf((*yaml.Unmarshaler)(nil)).Elem()

// LoadDocument reads a launch document from the given file, substituting
// environment variables.
func LoadDocument(path string) (*Document, error) {
	raw, err := envsubst.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read '%s': %v", ErrInvalidDocument, path, err)
	}

	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %v", ErrInvalidDocument, path, err)
	}

	logger.Debug("loaded launch document",
		"path", path,
		"name", doc.Name,
		"neurons", len(doc.Distribution.Neurons),
	)
	return doc, nil
}

// ParseDocument decodes a launch document.
//
// Unknown fields and missing required fields are errors.
func ParseDocument(raw []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return nil, fmt.Errorf("empty document")
	}
	if err := checkRequired(&root, reflect.TypeOf(Document{}), ""); err != nil {
		return nil, err
	}

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, err
	}
	return &doc, nil
}

// checkRequired reports every required field of typ that is absent from the
// corresponding mapping node. Fields are required unless tagged omitempty.
func checkRequired(node *yaml.Node, typ reflect.Type, path string) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}

	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if reflect.PtrTo(typ).Implements(yamlUnmarshalerType) {
		return nil
	}

	var result *multierror.Error
	switch typ.Kind() {
	case reflect.Slice:
		if node.Kind != yaml.SequenceNode {
			return nil
		}
		for i, item := range node.Content {
			if err := checkRequired(item, typ.Elem(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				result = multierror.Append(result, err)
			}
		}
	case reflect.Struct:
		if node.Kind != yaml.MappingNode {
			return nil
		}
		present := make(map[string]*yaml.Node, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			present[node.Content[i].Value] = node.Content[i+1]
		}

		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			name, opts, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				continue
			}
			fieldPath := name
			if path != "" {
				fieldPath = path + "." + name
			}

			value, ok := present[name]
			if !ok {
				if !strings.Contains(opts, "omitempty") {
					result = multierror.Append(result, fmt.Errorf("line %d: missing field `%s`", node.Line, fieldPath))
				}
				continue
			}
			if err := checkRequired(value, field.Type, fieldPath); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = listFormat
	return result
}

func listFormat(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}
