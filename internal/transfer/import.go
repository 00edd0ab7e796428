package transfer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/khrees2412/cvblue/internal/codec"
	"github.com/khrees2412/cvblue/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// File is an uploaded file: its name decides the format
type File interface {
	io.Reader
	Name() string
}

// ImportCV reads a single-CV envelope
func ImportCV(f File) (*models.Content, error) {
	var content models.Content
	if err := load(f, SingleRoot, "CV data", singleLoader, &content); err != nil {
		return nil, err
	}
	content.Normalize()
	return &content, nil
}

// ImportCollection reads a collection envelope
func ImportCollection(f File) (*models.Collection, error) {
	var collection models.Collection
	if err := load(f, CollectionRoot, "CV collection", collectionLoader, &collection); err != nil {
		return nil, err
	}
	for i := range collection.CVs {
		collection.CVs[i].Normalize()
	}
	if collection.TotalCVs == 0 {
		collection.TotalCVs = len(collection.CVs)
	}
	return &collection, nil
}

// load detects the format, parses, checks the envelope shape and fills out
func load(f File, root, envelope string, schema gojsonschema.JSONLoader, out any) error {
	format, err := DetectFormat(f.Name())
	if err != nil {
		return err
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", f.Name(), err)
	}

	var tree any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &tree); err != nil {
			return &MalformedPayloadError{Format: format, Cause: err}
		}
	case FormatXML:
		tree, err = codec.Decode(string(data), root)
		if err != nil {
			return &MalformedPayloadError{Format: format, Cause: err}
		}
	}

	if err := checkStructure(envelope, schema, tree); err != nil {
		return err
	}

	if format == FormatXML {
		err = decodeTyped(tree, out)
	} else {
		err = json.Unmarshal(data, out)
	}
	if err != nil {
		return &InvalidStructureError{Envelope: envelope, Cause: err}
	}
	return nil
}
